package petstore

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"

	"github.com/vitalvas/apidoc/openapi"
	"github.com/vitalvas/apidoc/openapifiber"
)

// MountChi mounts every route on r and documents it in store. The returned
// error joins the documentation errors of all routes.
func (a *API) MountChi(r chi.Router, store *openapi.Store) error {
	controllers := make(map[string]*openapi.Controller)

	var errs []error
	for _, rt := range a.routes() {
		c, ok := controllers[rt.owner]
		if !ok {
			c = openapi.NewController(store, rt.owner, r)
			controllers[rt.owner] = c
		}

		op := c.Handle(rt.method, rt.path, rt.operation, httpHandler(rt.handle))
		if rt.document != nil {
			errs = append(errs, rt.document(op.OperationID(rt.operation)).Err())
		}
	}
	documentGroups(store)

	return errors.Join(errs...)
}

// MountFiber is MountChi for a fiber router.
func (a *API) MountFiber(r fiber.Router, store *openapi.Store) error {
	controllers := make(map[string]*openapifiber.Controller)

	var errs []error
	for _, rt := range a.routes() {
		c, ok := controllers[rt.owner]
		if !ok {
			c = openapifiber.NewController(store, rt.owner, r)
			controllers[rt.owner] = c
		}

		op := c.Handle(rt.method, rt.path, rt.operation, fiberHandler(rt.handle))
		if rt.document != nil {
			errs = append(errs, rt.document(op.OperationID(rt.operation)).Err())
		}
	}
	documentGroups(store)

	return errors.Join(errs...)
}

func httpHandler(h func(request) reply) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		rep := h(request{
			param: func(name string) string { return chi.URLParam(r, name) },
			query: r.URL.Query().Get,
			body:  body,
		})

		if rep.body == nil {
			w.WriteHeader(rep.status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rep.status)
		_ = json.NewEncoder(w).Encode(rep.body)
	}
}

func fiberHandler(h func(request) reply) fiber.Handler {
	return func(c fiber.Ctx) error {
		rep := h(request{
			param: func(name string) string { return c.Params(name) },
			query: func(name string) string { return c.Query(name) },
			body:  c.Body(),
		})

		if rep.body == nil {
			return c.SendStatus(rep.status)
		}
		return c.Status(rep.status).JSON(rep.body)
	}
}
