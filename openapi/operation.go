package openapi

// OperationBuilder provides a fluent API for documenting one operation
// identity. Every call is merged into the store immediately. The first
// failing call is remembered, later calls are skipped, and Err reports it:
//
//	op := store.Op("PetController", "getPet").
//	    Summary("Find pet by ID").
//	    PathParam("id", "Pet identifier").
//	    Response(http.StatusOK, openapi.BodySpec{Schema: "Pet"}).
//	    BearerAuth()
//	if err := op.Err(); err != nil {
//	    return err
//	}
//
// See: https://spec.openapis.org/oas/v3.0.3#operation-object
type OperationBuilder struct {
	store     *Store
	owner     string
	operation string
	err       error
}

// Op returns a builder for the operation identity (owner, operation).
// The route must already be recorded, otherwise the first call fails
// with an OrderingError.
func (s *Store) Op(owner, operation string) *OperationBuilder {
	return &OperationBuilder{store: s, owner: owner, operation: operation}
}

// Err returns the first error hit by the builder.
func (b *OperationBuilder) Err() error {
	return b.err
}

func (b *OperationBuilder) apply(fn func() error) *OperationBuilder {
	if b.err == nil {
		b.err = fn()
	}
	return b
}

func (b *OperationBuilder) merge(partial *Operation) *OperationBuilder {
	return b.apply(func() error {
		return b.store.MergeOperation(b.owner, b.operation, partial)
	})
}

// Meta merges a partial Operation Object; see Store.MergeOperation.
func (b *OperationBuilder) Meta(partial *Operation) *OperationBuilder {
	return b.merge(partial)
}

// Summary sets the operation summary.
func (b *OperationBuilder) Summary(s string) *OperationBuilder {
	return b.merge(&Operation{Summary: s})
}

// Description sets the operation description.
func (b *OperationBuilder) Description(d string) *OperationBuilder {
	return b.merge(&Operation{Description: d})
}

// OperationID sets the operationId.
func (b *OperationBuilder) OperationID(id string) *OperationBuilder {
	return b.merge(&Operation{OperationID: id})
}

// Deprecated marks the operation as deprecated.
func (b *OperationBuilder) Deprecated() *OperationBuilder {
	return b.merge(&Operation{Deprecated: true})
}

// ExternalDocs sets external documentation for the operation.
func (b *OperationBuilder) ExternalDocs(url, description string) *OperationBuilder {
	return b.merge(&Operation{ExternalDocs: &ExternalDocs{URL: url, Description: description}})
}

// Server adds a server override for the operation.
func (b *OperationBuilder) Server(server Server) *OperationBuilder {
	return b.merge(&Operation{Servers: []Server{server}})
}

// Parameter appends a parameter.
func (b *OperationBuilder) Parameter(param *Parameter) *OperationBuilder {
	return b.apply(func() error {
		return b.store.AppendParameter(b.owner, b.operation, param)
	})
}

// PathParam appends a required string path parameter.
func (b *OperationBuilder) PathParam(name, description string) *OperationBuilder {
	return b.Parameter(&Parameter{
		Name:        name,
		In:          "path",
		Description: description,
		Required:    true,
		Schema:      Typed("string"),
	})
}

// QueryParam appends an optional query parameter with the given schema.
func (b *OperationBuilder) QueryParam(name, description string, schema *Schema) *OperationBuilder {
	return b.Parameter(&Parameter{
		Name:        name,
		In:          "query",
		Description: description,
		Schema:      schema,
	})
}

// HeaderParam appends a header parameter.
func (b *OperationBuilder) HeaderParam(name, description string, required bool) *OperationBuilder {
	return b.Parameter(&Parameter{
		Name:        name,
		In:          "header",
		Description: description,
		Required:    required,
		Schema:      Typed("string"),
	})
}

// RequestBody sets the request body object. The last call wins.
func (b *OperationBuilder) RequestBody(body *RequestBody) *OperationBuilder {
	return b.apply(func() error {
		return b.store.SetRequestBody(b.owner, b.operation, body)
	})
}

// Request sets the request body from a BodySpec.
func (b *OperationBuilder) Request(spec BodySpec) *OperationBuilder {
	return b.RequestBody(spec.RequestBody())
}

// Response sets the response for an HTTP status code from a BodySpec.
func (b *OperationBuilder) Response(statusCode int, spec BodySpec) *OperationBuilder {
	key := StatusKey(statusCode)
	return b.ResponseObject(key, spec.Response(key))
}

// DefaultResponse sets the "default" response from a BodySpec.
func (b *OperationBuilder) DefaultResponse(spec BodySpec) *OperationBuilder {
	return b.ResponseObject(defaultStatusKey, spec.Response(defaultStatusKey))
}

// ResponseObject sets the response for a status key verbatim.
func (b *OperationBuilder) ResponseObject(status string, resp *Response) *OperationBuilder {
	return b.apply(func() error {
		return b.store.SetResponse(b.owner, b.operation, status, resp)
	})
}

// Security appends a requirement for the named scheme.
func (b *OperationBuilder) Security(scheme string, scopes ...string) *OperationBuilder {
	return b.apply(func() error {
		return b.store.AppendSecurity(b.owner, b.operation, scheme, scopes...)
	})
}

func (b *OperationBuilder) kind(kind SchemeKind, scopes []string) *OperationBuilder {
	return b.apply(func() error {
		return b.store.AddSecurity(b.owner, b.operation, kind, "", scopes...)
	})
}

// BearerAuth appends a "bearerAuth" requirement.
func (b *OperationBuilder) BearerAuth(scopes ...string) *OperationBuilder {
	return b.kind(SchemeBearer, scopes)
}

// BasicAuth appends a "basicAuth" requirement.
func (b *OperationBuilder) BasicAuth(scopes ...string) *OperationBuilder {
	return b.kind(SchemeBasic, scopes)
}

// APIKey appends an "api_key" requirement.
func (b *OperationBuilder) APIKey(scopes ...string) *OperationBuilder {
	return b.kind(SchemeAPIKey, scopes)
}

// CookieAuth appends a "cookieAuth" requirement.
func (b *OperationBuilder) CookieAuth(scopes ...string) *OperationBuilder {
	return b.kind(SchemeCookie, scopes)
}

// OAuth2 appends an "oauth2" requirement with the given scopes.
func (b *OperationBuilder) OAuth2(scopes ...string) *OperationBuilder {
	return b.kind(SchemeOAuth2, scopes)
}

// Schema registers a component schema in the global registry. It does not
// depend on the route and never fails.
func (b *OperationBuilder) Schema(name string, schema *Schema) *OperationBuilder {
	b.store.RegisterSchema(name, schema)
	return b
}
