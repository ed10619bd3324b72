// Package openapifiber binds the openapi metadata store to fiber v3 routers.
//
// Fiber routes already use ":name" parameter segments, so handlers are
// mounted on the path as written and the same path is recorded in the store:
//
//	app := fiber.New()
//	pets := openapifiber.NewController(store, "PetController", app)
//	pets.Get("/pets/:id", "getPet", getPet).Summary("Find pet by ID")
//	pets.Document(openapi.Tag{Name: "pets"})
//	openapifiber.Handle(app, store, "/docs", shell, nil)
package openapifiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/vitalvas/apidoc/openapi"
)

// Controller binds one owner identity to a fiber router. Paths are recorded
// relative to the router; pass the app, not a prefixed group, when the
// documented paths must carry the full prefix.
type Controller struct {
	store  *openapi.Store
	owner  string
	router fiber.Router
}

// NewController creates a controller for owner on the router.
func NewController(store *openapi.Store, owner string, r fiber.Router) *Controller {
	return &Controller{store: store, owner: owner, router: r}
}

// Owner returns the owner identity of the controller.
func (c *Controller) Owner() string {
	return c.owner
}

// Handle records the route for operation and mounts the handler.
func (c *Controller) Handle(method, path, operation string, h fiber.Handler) *openapi.OperationBuilder {
	c.store.RecordRoute(c.owner, operation, openapi.Route{Path: path, Method: method})
	c.router.Add([]string{method}, path, h)
	return c.store.Op(c.owner, operation)
}

// Get registers a GET handler.
func (c *Controller) Get(path, operation string, h fiber.Handler) *openapi.OperationBuilder {
	return c.Handle(fiber.MethodGet, path, operation, h)
}

// Post registers a POST handler.
func (c *Controller) Post(path, operation string, h fiber.Handler) *openapi.OperationBuilder {
	return c.Handle(fiber.MethodPost, path, operation, h)
}

// Put registers a PUT handler.
func (c *Controller) Put(path, operation string, h fiber.Handler) *openapi.OperationBuilder {
	return c.Handle(fiber.MethodPut, path, operation, h)
}

// Patch registers a PATCH handler.
func (c *Controller) Patch(path, operation string, h fiber.Handler) *openapi.OperationBuilder {
	return c.Handle(fiber.MethodPatch, path, operation, h)
}

// Delete registers a DELETE handler.
func (c *Controller) Delete(path, operation string, h fiber.Handler) *openapi.OperationBuilder {
	return c.Handle(fiber.MethodDelete, path, operation, h)
}

// Op returns the builder for an operation of this controller.
func (c *Controller) Op(operation string) *openapi.OperationBuilder {
	return c.store.Op(c.owner, operation)
}

// Document declares the controller's tag group.
func (c *Controller) Document(tags ...openapi.Tag) {
	c.store.Document(c.owner, tags...)
}
