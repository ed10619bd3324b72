package openapi

import (
	"maps"
	"slices"
	"strings"
)

// DefaultOpenAPIVersion is used when the document shell does not name one.
const DefaultOpenAPIVersion = "3.0.3"

// SchemaFunc supplies externally converted component schemas keyed by
// schema name. It is invoked once per assembly.
type SchemaFunc func() map[string]*Schema

type assembleConfig struct {
	schemas SchemaFunc
}

// AssembleOption configures a single Assemble call.
type AssembleOption func(*assembleConfig)

// WithSchemas sets the external schema source. Its schemas take precedence
// over schemas registered on the store under the same name.
func WithSchemas(fn SchemaFunc) AssembleOption {
	return func(c *assembleConfig) {
		c.schemas = fn
	}
}

// placedOperation is an operation fragment resolved to its final location.
type placedOperation struct {
	owner  string
	name   string
	path   string
	method string
	op     *Operation
}

// Assemble reduces the store into a complete OpenAPI document. The shell
// provides the top-level fields (openapi, info, servers, components other
// than schemas, ...) and is not modified; the returned document adds
// paths, tags and components.schemas.
//
// Operations are placed owner group by owner group in declaration order,
// and within an owner in recording order. When two operations land on the
// same path and method the later one wins. Assemble does not validate the
// result; see Validate.
//
// Calling Assemble repeatedly without touching the store yields deeply
// equal documents, including path order.
func (s *Store) Assemble(shell *Document, opts ...AssembleOption) *Document {
	cfg := assembleConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	// The external converter runs outside the lock; it may be arbitrary
	// caller code.
	var external map[string]*Schema
	if cfg.schemas != nil {
		external = cfg.schemas()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := copyShell(shell)
	doc.Paths = s.reducePaths(s.placeOperations())

	schemas := make(map[string]*Schema, len(s.schemas)+len(external))
	for name, schema := range s.schemas {
		schemas[name] = cloneSchema(schema)
	}
	maps.Copy(schemas, external)
	if len(schemas) > 0 {
		if doc.Components == nil {
			doc.Components = &Components{}
		}
		doc.Components.Schemas = schemas
	}

	var tags []Tag
	for _, g := range s.groups {
		tags = append(tags, g.tags...)
	}
	doc.Tags = tags

	return doc
}

// placeOperations flattens the declared owner groups into an ordered list
// of operations carrying their translated path, lowercase method and the
// group tag names. The path and method come from the route in effect when
// each fragment was created. Callers must hold s.mu.
func (s *Store) placeOperations() []placedOperation {
	var placed []placedOperation
	grouped := make(map[string]bool, len(s.groups))

	for _, g := range s.groups {
		grouped[g.owner] = true

		b, ok := s.owners[g.owner]
		if !ok {
			continue
		}

		names := make([]string, len(g.tags))
		for i, tag := range g.tags {
			names[i] = tag.Name
		}

		for _, name := range b.order {
			route := b.resolved[name]
			op := cloneOperation(b.fragments[name])
			op.Tags = slices.Clone(names)

			placed = append(placed, placedOperation{
				owner:  g.owner,
				name:   name,
				path:   TranslatePath(route.Path),
				method: strings.ToLower(route.Method),
				op:     op,
			})
		}
	}

	for owner, b := range s.owners {
		if !grouped[owner] && len(b.fragments) > 0 {
			s.logger.Debug().
				Str("owner", owner).
				Int("operations", len(b.fragments)).
				Msg("owner has no document declaration, operations left out")
		}
	}

	return placed
}

// reducePaths groups placed operations by path and method. Callers must
// hold s.mu.
func (s *Store) reducePaths(placed []placedOperation) *Paths {
	paths := NewPaths()

	for _, p := range placed {
		if !isPathItemMethod(p.method) {
			s.logger.Warn().
				Str("owner", p.owner).
				Str("operation", p.name).
				Str("method", p.method).
				Msg("method has no OpenAPI path item field, operation skipped")
			continue
		}

		item := paths.Get(p.path)
		if item == nil {
			item = &PathItem{}
			paths.Set(p.path, item)
		}
		if item.Operation(p.method) != nil {
			s.logger.Warn().
				Str("owner", p.owner).
				Str("operation", p.name).
				Str("path", p.path).
				Str("method", p.method).
				Msg("operation overrides an earlier one on the same path and method")
		}
		item.setOperation(p.method, p.op)
	}

	return paths
}

func isPathItemMethod(method string) bool {
	switch method {
	case "get", "put", "post", "delete", "options", "head", "patch", "trace":
		return true
	}
	return false
}

// copyShell returns a copy of the shell whose slices and components can be
// modified without touching the caller's value.
func copyShell(shell *Document) *Document {
	if shell == nil {
		return &Document{OpenAPI: DefaultOpenAPIVersion}
	}

	doc := *shell
	if doc.OpenAPI == "" {
		doc.OpenAPI = DefaultOpenAPIVersion
	}
	doc.Servers = slices.Clone(shell.Servers)
	doc.Security = slices.Clone(shell.Security)

	if shell.Components != nil {
		comp := *shell.Components
		comp.Schemas = nil
		doc.Components = &comp
	}

	return &doc
}
