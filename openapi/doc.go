// Package openapi collects OpenAPI 3.0 documentation fragments next to the
// code that registers HTTP handlers and assembles them into one document.
//
// Documentation is keyed by an operation identity: the owner (a controller
// or handler group) plus the operation name. The routing layer records the
// route of each identity; documentation calls then merge fragments into it.
// Nothing is resolved until Assemble reduces the store into a document.
//
// See: https://spec.openapis.org/oas/v3.0.3
//
// # Store
//
// A Store is shared by every owner of an application:
//
//	store := openapi.NewStore(openapi.WithLogger(logger))
//
// Record the route first, then document it. Documenting an operation whose
// route is unknown fails with an OrderingError that wraps
// ErrRouteNotRecorded and leaves the store untouched:
//
//	store.RecordRoute("PetController", "getPet", openapi.Route{Path: "/pets/:id", Method: http.MethodGet})
//	err := store.MergeOperation("PetController", "getPet", &openapi.Operation{Summary: "Find pet by ID"})
//
// Fragments merge field by field. Scalars overwrite when set, parameters and
// security requirements append in call order, responses merge per status
// key, and the last request body wins.
//
// # Operation Builder
//
// Op returns a fluent builder over the same merge operations. The first
// error is kept and reported by Err:
//
//	store.Op("PetController", "getPet").
//	    Summary("Find pet by ID").
//	    PathParam("id", "Pet identifier").
//	    Response(http.StatusOK, openapi.BodySpec{Schema: "Pet"}).
//	    Response(http.StatusNotFound, openapi.BodySpec{Description: "Pet not found"}).
//	    BearerAuth()
//
// Each security call adds one alternative requirement. Two calls mean
// "either scheme", not "both".
//
// # Controllers
//
// A Controller binds an owner to a chi router. Registering a handler
// records its route and mounts it, so the returned builder is always in
// order:
//
//	r := chi.NewRouter()
//	pets := openapi.NewController(store, "PetController", r)
//	pets.Get("/pets/:id", "getPet", getPet).Summary("Find pet by ID")
//	pets.Document(openapi.Tag{Name: "pets", Description: "Everything about pets"})
//
// Only owners with a Document declaration end up in the assembled paths.
// Their operations are tagged with the declared tag names.
//
// # Assembly
//
// Assemble takes a shell with the top-level fields and returns a new
// document with paths, tags and component schemas filled in:
//
//	shell := openapi.NewDocumentBuilder().
//	    SetTitle("Pet Store").
//	    SetVersion("1.0.0").
//	    AddBearerAuth().
//	    Build()
//	doc := store.Assemble(shell, openapi.WithSchemas(openapi.TypeSchemas(Pet{})))
//
// Route paths in ":name" form are translated to "{name}" templates. When two
// operations share a path and method the later one in declaration order
// wins. Assembly is idempotent; the result can be checked with Validate.
//
// # Serving
//
// Handle mounts the interactive docs and the JSON and YAML renditions:
//
//	store.Handle(r, "/docs", shell, &openapi.HandleConfig{
//	    UI:              openapi.DocsSwaggerUI,
//	    Schemas:         openapi.TypeSchemas(Pet{}),
//	    SwaggerUIConfig: map[string]any{"docExpansion": "none"},
//	})
//
// The document is assembled once on first request, or on every request when
// Reload is set.
//
// # Schema Tags
//
// TypeSchemas reads constraints from the `openapi` struct tag:
//
//	type Pet struct {
//	    ID     string `json:"id" openapi:"format=uuid,readOnly"`
//	    Name   string `json:"name" openapi:"description=Pet name,minLength=1,example=doggie"`
//	    Status string `json:"status,omitempty" openapi:"enum=available|pending|sold"`
//	}
//
// Supported keys: description, format, example, enum, minimum, maximum,
// minLength, maxLength, pattern, readOnly, deprecated.
package openapi
