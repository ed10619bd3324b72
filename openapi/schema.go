package openapi

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Exampler can be implemented by types to provide an example value for the
// generated component schema.
//
//	func (p Pet) OpenAPIExample() any {
//	    return Pet{ID: "b1c2", Name: "doggie"}
//	}
type Exampler interface {
	OpenAPIExample() any
}

// TypeSchemas returns a SchemaFunc that converts the Go types of values into
// named component schemas. Only the types matter; the values are typically
// zero values:
//
//	store.Assemble(shell, openapi.WithSchemas(openapi.TypeSchemas(Pet{}, Error{})))
//
// Named structs become components keyed by their type name and are referenced
// with $ref when nested. Field constraints are read from the `openapi` tag:
//
//	Name string `json:"name" openapi:"description=Pet name,minLength=1,example=doggie"`
//	Status string `json:"status" openapi:"enum=available|pending|sold"`
//
// The conversion runs on every call, so each assembly sees a fresh map.
func TypeSchemas(values ...any) SchemaFunc {
	types := make([]reflect.Type, 0, len(values))
	for _, v := range values {
		if v != nil {
			types = append(types, reflect.TypeOf(v))
		}
	}

	return func() map[string]*Schema {
		g := newSchemaGenerator()
		for _, t := range types {
			g.generateType(t)
		}
		return g.schemas
	}
}

type schemaGenerator struct {
	schemas   map[string]*Schema
	visited   map[reflect.Type]bool
	typeNames map[reflect.Type]string // type -> component name
	nameTypes map[string]reflect.Type // component name -> owning type
}

func newSchemaGenerator() *schemaGenerator {
	return &schemaGenerator{
		schemas:   make(map[string]*Schema),
		visited:   make(map[reflect.Type]bool),
		typeNames: make(map[reflect.Type]string),
		nameTypes: make(map[string]reflect.Type),
	}
}

var timeType = reflect.TypeOf(time.Time{})

// generateType returns a $ref for named structs and an inline schema for
// everything else. Pointers mark the result nullable.
func (g *schemaGenerator) generateType(t reflect.Type) *Schema {
	nullable := false
	if t.Kind() == reflect.Pointer {
		nullable = true
		t = t.Elem()
	}

	if t.Kind() == reflect.Struct && t != timeType {
		if name := g.schemaName(t); name != "" {
			if !g.visited[t] {
				g.visited[t] = true
				schema := g.structSchema(t)
				if ex, ok := reflect.New(t).Elem().Interface().(Exampler); ok {
					schema.Example = ex.OpenAPIExample()
				}
				g.schemas[name] = schema
			}

			ref := SchemaRef(name)
			if nullable {
				// $ref siblings are ignored in 3.0, so wrap it.
				return &Schema{AllOf: []*Schema{ref}, Nullable: true}
			}
			return ref
		}
	}

	schema := g.inlineType(t)
	if nullable && schema != nil {
		schema.Nullable = true
	}
	return schema
}

func (g *schemaGenerator) inlineType(t reflect.Type) *Schema {
	if t == timeType {
		s := Typed("string")
		s.Format = "date-time"
		return s
	}

	switch t.Kind() {
	case reflect.Bool:
		return Typed("boolean")

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		s := Typed("integer")
		s.Format = "int32"
		if t.Kind() == reflect.Int {
			s.Format = "int64"
		}
		return s

	case reflect.Int64:
		s := Typed("integer")
		s.Format = "int64"
		return s

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		s := Typed("integer")
		minimum := 0.0
		s.Minimum = &minimum
		return s

	case reflect.Float32:
		s := Typed("number")
		s.Format = "float"
		return s

	case reflect.Float64:
		s := Typed("number")
		s.Format = "double"
		return s

	case reflect.String:
		return Typed("string")

	case reflect.Slice, reflect.Array:
		if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
			s := Typed("string")
			s.Format = "byte"
			return s
		}
		s := Typed("array")
		s.Items = g.generateType(t.Elem())
		if s.Items == nil {
			s.Items = &Schema{}
		}
		return s

	case reflect.Map:
		s := Typed("object")
		if t.Key().Kind() == reflect.String {
			s.AdditionalProperties = g.generateType(t.Elem())
		}
		return s

	case reflect.Struct:
		return g.structSchema(t)

	case reflect.Interface:
		return &Schema{}
	}

	return nil
}

func (g *schemaGenerator) structSchema(t reflect.Type) *Schema {
	schema := Typed("object")
	schema.Properties = make(map[string]*Schema)

	g.collectFields(t, schema, false)

	if len(schema.Properties) == 0 {
		schema.Properties = nil
	}
	return schema
}

// collectFields inlines untagged embedded structs the way encoding/json
// does. Fields of pointer-embedded structs are never required.
func (g *schemaGenerator) collectFields(t reflect.Type, schema *Schema, allOptional bool) {
	for i := range t.NumField() {
		field := t.Field(i)

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name, omitempty := parseJSONTag(jsonTag)

		// Embedded structs promote their exported fields even when the
		// embedded type itself is unexported.
		if field.Anonymous && name == "" {
			ft := field.Type
			isPtr := ft.Kind() == reflect.Pointer
			if isPtr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				g.collectFields(ft, schema, allOptional || isPtr)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}

		if name == "" {
			name = field.Name
		}

		fieldSchema := g.generateType(field.Type)
		if fieldSchema == nil {
			continue
		}
		applyOpenAPITag(fieldSchema, field.Tag.Get("openapi"))

		schema.Properties[name] = fieldSchema
		if !omitempty && !allOptional {
			schema.Required = append(schema.Required, name)
		}
	}
}

func parseJSONTag(tag string) (string, bool) {
	if tag == "" {
		return "", false
	}
	name, rest, _ := strings.Cut(tag, ",")
	return name, strings.Contains(rest, "omitempty") || strings.Contains(rest, "omitzero")
}

// applyOpenAPITag applies the comma-separated key=value pairs of an
// `openapi` struct tag. A $ref schema is first wrapped in allOf so the
// keywords are not ignored as $ref siblings.
func applyOpenAPITag(schema *Schema, tag string) {
	if tag == "" {
		return
	}
	if schema.Ref != "" {
		*schema = Schema{AllOf: []*Schema{{Ref: schema.Ref}}}
	}

	for part := range strings.SplitSeq(tag, ",") {
		key, value, _ := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "description":
			schema.Description = value
		case "format":
			schema.Format = value
		case "example":
			schema.Example = parseTagValue(schema, value)
		case "enum":
			values := strings.Split(value, "|")
			schema.Enum = make([]any, len(values))
			for i, v := range values {
				schema.Enum[i] = parseTagValue(schema, v)
			}
		case "minimum":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				schema.Minimum = &v
			}
		case "maximum":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				schema.Maximum = &v
			}
		case "minLength":
			if v, err := strconv.Atoi(value); err == nil {
				schema.MinLength = &v
			}
		case "maxLength":
			if v, err := strconv.Atoi(value); err == nil {
				schema.MaxLength = &v
			}
		case "pattern":
			schema.Pattern = value
		case "readOnly":
			schema.ReadOnly = true
		case "deprecated":
			schema.Deprecated = true
		}
	}
}

// parseTagValue converts a tag value to the Go type matching the schema type.
func parseTagValue(schema *Schema, value string) any {
	if schema.Type == nil || schema.Type.IsZero() {
		return value
	}

	switch schema.Type.Values()[0] {
	case "integer":
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	case "number":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	case "boolean":
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return value
}

// schemaName returns a unique component name for a named type. When two
// types share a simple name (models.Error and api.Error), the later one is
// prefixed with its package's last path segment ("ApiError"); if that is
// taken too, a numeric suffix is appended ("ApiError2").
func (g *schemaGenerator) schemaName(t reflect.Type) string {
	simple := sanitizeSchemaName(t.Name())
	if simple == "" || t.PkgPath() == "" {
		return ""
	}

	if name, ok := g.typeNames[t]; ok {
		return name
	}

	name := simple
	if existing, ok := g.nameTypes[name]; ok && existing != t {
		name = pkgPrefix(t.PkgPath()) + simple
		if existing, ok := g.nameTypes[name]; ok && existing != t {
			base := name
			for i := 2; ; i++ {
				candidate := base + strconv.Itoa(i)
				if _, ok := g.nameTypes[candidate]; !ok {
					name = candidate
					break
				}
			}
		}
	}

	g.typeNames[t] = name
	g.nameTypes[name] = t
	return name
}

// pkgPrefix capitalizes the last segment of a package path for use as a
// name prefix: "net/http" becomes "Http".
func pkgPrefix(pkgPath string) string {
	if idx := strings.LastIndexByte(pkgPath, '/'); idx >= 0 {
		pkgPath = pkgPath[idx+1:]
	}
	if pkgPath == "" {
		return ""
	}
	pkgPath = strings.ReplaceAll(pkgPath, "-", "_")
	pkgPath = strings.ReplaceAll(pkgPath, ".", "_")
	return strings.ToUpper(pkgPath[:1]) + pkgPath[1:]
}

// sanitizeSchemaName turns generic instantiations like "Page[Pet]" into
// "PagePet"; a slice argument adds a "List" suffix.
func sanitizeSchemaName(name string) string {
	idx := strings.IndexByte(name, '[')
	if idx < 0 {
		return name
	}

	base := name[:idx]
	inner := name[idx+1 : len(name)-1]

	isList := strings.HasPrefix(inner, "[]")
	inner = strings.TrimPrefix(inner, "[]")
	if dot := strings.LastIndexByte(inner, '.'); dot >= 0 {
		inner = inner[dot+1:]
	}

	if isList {
		return base + inner + "List"
	}
	return base + inner
}
