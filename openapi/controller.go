package openapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Controller binds one owner identity to a chi router. Registering a
// handler records its route in the store (framework syntax, ":id") and
// mounts it on the router under the translated template ("{id}"), so the
// returned OperationBuilder can never hit an ordering error.
//
//	pets := openapi.NewController(store, "PetController", r)
//	pets.Get("/pets/:id", "getPet", getPet).
//	    Summary("Find pet by ID").
//	    Response(http.StatusOK, openapi.BodySpec{Schema: "Pet"})
//	pets.Document(openapi.Tag{Name: "pets"})
type Controller struct {
	store  *Store
	owner  string
	router chi.Router
}

// NewController creates a controller for owner on the router.
func NewController(store *Store, owner string, r chi.Router) *Controller {
	return &Controller{store: store, owner: owner, router: r}
}

// Owner returns the owner identity of the controller.
func (c *Controller) Owner() string {
	return c.owner
}

// Handle records the route for operation and mounts the handler.
func (c *Controller) Handle(method, path, operation string, h http.HandlerFunc) *OperationBuilder {
	c.store.RecordRoute(c.owner, operation, Route{Path: path, Method: method})
	c.router.MethodFunc(method, TranslatePath(path), h)
	return c.store.Op(c.owner, operation)
}

// Get registers a GET handler.
func (c *Controller) Get(path, operation string, h http.HandlerFunc) *OperationBuilder {
	return c.Handle(http.MethodGet, path, operation, h)
}

// Post registers a POST handler.
func (c *Controller) Post(path, operation string, h http.HandlerFunc) *OperationBuilder {
	return c.Handle(http.MethodPost, path, operation, h)
}

// Put registers a PUT handler.
func (c *Controller) Put(path, operation string, h http.HandlerFunc) *OperationBuilder {
	return c.Handle(http.MethodPut, path, operation, h)
}

// Patch registers a PATCH handler.
func (c *Controller) Patch(path, operation string, h http.HandlerFunc) *OperationBuilder {
	return c.Handle(http.MethodPatch, path, operation, h)
}

// Delete registers a DELETE handler.
func (c *Controller) Delete(path, operation string, h http.HandlerFunc) *OperationBuilder {
	return c.Handle(http.MethodDelete, path, operation, h)
}

// Op returns the builder for an operation of this controller.
func (c *Controller) Op(operation string) *OperationBuilder {
	return c.store.Op(c.owner, operation)
}

// Document declares the controller's tag group.
func (c *Controller) Document(tags ...Tag) {
	c.store.Document(c.owner, tags...)
}
