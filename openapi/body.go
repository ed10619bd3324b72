package openapi

import (
	"net/http"
	"strconv"
)

const (
	mimeJSON         = "application/json"
	schemaRefPrefix  = "#/components/schemas/"
	defaultStatusKey = "default"
)

// SchemaRef returns a schema that references the named component schema.
//
// See: https://spec.openapis.org/oas/v3.0.3#reference-object
func SchemaRef(name string) *Schema {
	return &Schema{Ref: schemaRefPrefix + name}
}

// BodySpec is a shorthand for request and response bodies that point at
// component schemas by name.
//
// Schema becomes an application/json reference and Schemas maps further
// content types to schema names. Content is used verbatim, with different
// precedence per body kind: a request body prefers Content over the schema
// names, a response prefers the schema names over Content.
type BodySpec struct {
	Description string
	Required    bool // request bodies only
	Schema      string
	Schemas     map[string]string
	Content     map[string]*MediaType
}

func (b BodySpec) schemaContent() map[string]*MediaType {
	if b.Schema == "" && len(b.Schemas) == 0 {
		return nil
	}
	content := make(map[string]*MediaType, len(b.Schemas)+1)
	if b.Schema != "" {
		content[mimeJSON] = &MediaType{Schema: SchemaRef(b.Schema)}
	}
	for contentType, name := range b.Schemas {
		content[contentType] = &MediaType{Schema: SchemaRef(name)}
	}
	return content
}

// RequestBody converts the spec into a Request Body Object.
func (b BodySpec) RequestBody() *RequestBody {
	content := b.Content
	if len(content) == 0 {
		content = b.schemaContent()
	}
	if content == nil {
		content = map[string]*MediaType{}
	}
	return &RequestBody{
		Description: b.Description,
		Required:    b.Required,
		Content:     content,
	}
}

// Response converts the spec into a Response Object for the given status
// key. An empty description falls back to the HTTP status text.
func (b BodySpec) Response(status string) *Response {
	desc := b.Description
	if desc == "" {
		desc = responseDescription(status)
	}
	content := b.schemaContent()
	if content == nil && len(b.Content) > 0 {
		content = b.Content
	}
	return &Response{
		Description: desc,
		Content:     content,
	}
}

// StatusKey formats an HTTP status code as a Responses Object key.
func StatusKey(code int) string {
	return strconv.Itoa(code)
}

// responseDescription returns a human-readable description for a response key.
func responseDescription(key string) string {
	if key == defaultStatusKey {
		return "Default response"
	}
	code, err := strconv.Atoi(key)
	if err == nil {
		if text := http.StatusText(code); text != "" {
			return text
		}
	}
	return key
}
