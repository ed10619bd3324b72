package openapi

import (
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// Route is the route descriptor supplied by the routing layer. Path uses
// framework syntax with ":name" parameter segments.
type Route struct {
	Path   string
	Method string
}

// ownerBucket holds everything recorded for one owner identity.
type ownerBucket struct {
	routes    map[string]Route
	fragments map[string]*Operation
	resolved  map[string]Route // route in effect when the fragment was created
	order     []string         // operation names in recording order
}

// tagGroup is one owner-level document declaration.
type tagGroup struct {
	owner string
	tags  []Tag
}

// Store accumulates documentation fragments keyed by owner and operation
// identity, plus the global schema registry and declared tag groups. It is
// safe for concurrent use; every record, merge and assemble call runs
// under a single lock so last-writer-wins follows call order.
type Store struct {
	mu      sync.Mutex
	logger  zerolog.Logger
	owners  map[string]*ownerBucket
	schemas map[string]*Schema
	groups  []tagGroup
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for route overwrites, ordering errors
// and assembly warnings.
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty metadata store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		logger:  zerolog.Nop(),
		owners:  make(map[string]*ownerBucket),
		schemas: make(map[string]*Schema),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// bucket returns the bucket for owner, creating it on first access.
// Callers must hold s.mu.
func (s *Store) bucket(owner string) *ownerBucket {
	b, ok := s.owners[owner]
	if !ok {
		b = &ownerBucket{
			routes:    make(map[string]Route),
			fragments: make(map[string]*Operation),
			resolved:  make(map[string]Route),
		}
		s.owners[owner] = b
	}
	return b
}

// RecordRoute registers the route descriptor for an operation identity.
// A later call for the same identity replaces the descriptor, but an
// operation that is already documented keeps the path and method it was
// first documented under.
func (s *Store) RecordRoute(owner, operation string, route Route) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.bucket(owner)
	if prev, ok := b.routes[operation]; ok && prev != route {
		s.logger.Debug().
			Str("owner", owner).
			Str("operation", operation).
			Str("previous", prev.Method+" "+prev.Path).
			Str("route", route.Method+" "+route.Path).
			Msg("route re-registered")
	}
	b.routes[operation] = route
}

// Route returns the route descriptor recorded for an operation identity.
func (s *Store) Route(owner, operation string) (Route, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.owners[owner]
	if !ok {
		return Route{}, false
	}
	r, ok := b.routes[operation]
	return r, ok
}

// Operation returns a deep copy of the fragment accumulated for an
// operation identity. Mutating the copy does not affect the store.
func (s *Store) Operation(owner, operation string) (*Operation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.owners[owner]
	if !ok {
		return nil, false
	}
	op, ok := b.fragments[operation]
	if !ok {
		return nil, false
	}
	return cloneOperation(op), true
}

// Operations returns the operation names documented for owner in
// recording order.
func (s *Store) Operations(owner string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.owners[owner]
	if !ok {
		return nil
	}
	return slices.Clone(b.order)
}

// RegisterSchema adds a named schema to the global registry. Registering
// the same name again replaces the previous schema.
func (s *Store) RegisterSchema(name string, schema *Schema) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.schemas[name] = cloneSchema(schema)
}

// Schema returns the registered schema for name.
func (s *Store) Schema(name string) (*Schema, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	schema, ok := s.schemas[name]
	return cloneSchema(schema), ok
}

// Document declares the tag group of an owner. Every operation of the
// owner is stamped with the tag names at assembly time, and the tags are
// appended to the document-level tag list. Each call adds one group.
func (s *Store) Document(owner string, tags ...Tag) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.groups = append(s.groups, tagGroup{owner: owner, tags: slices.Clone(tags)})
}

// update runs fn against the fragment of an operation identity, creating
// the fragment on first use. The route recorded at that moment fixes the
// fragment's path and method. It fails with an OrderingError, leaving the
// store untouched, when no route has been recorded for the identity.
func (s *Store) update(owner, operation string, fn func(op *Operation)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var route Route
	b, ok := s.owners[owner]
	if ok {
		route, ok = b.routes[operation]
	}
	if !ok {
		s.logger.Warn().
			Str("owner", owner).
			Str("operation", operation).
			Msg("documentation attached before route was recorded")
		return &OrderingError{Owner: owner, Operation: operation}
	}

	op, ok := b.fragments[operation]
	if !ok {
		op = &Operation{Responses: make(map[string]*Response)}
		b.fragments[operation] = op
		b.resolved[operation] = route
		b.order = append(b.order, operation)
	}
	fn(op)
	return nil
}
