package openapifiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/vitalvas/apidoc/openapi"
)

// Handle registers the documentation endpoints on a fiber router. It serves
// the same routes and payloads as openapi.Store.Handle.
func Handle(r fiber.Router, store *openapi.Store, docURL string, shell *openapi.Document, cfg *openapi.HandleConfig) *openapi.Docs {
	d := openapi.NewDocs(store, docURL, shell, cfg)

	page := func(c fiber.Ctx) error {
		d.Observe(openapi.EndpointUI)
		c.Set(fiber.HeaderContentType, "text/html; charset=utf-8")
		return c.Status(fiber.StatusOK).Send(d.Page())
	}
	r.Get(d.UIPath(), page)
	if ui := d.UIPath(); ui != "/" {
		r.Get(ui+"/", page)
	}

	r.Get(d.JSONPath(), func(c fiber.Ctx) error {
		d.Observe(openapi.EndpointJSON)
		data, err := d.JSON()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("failed to serialize OpenAPI document as JSON")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(fiber.StatusOK).Send(data)
	})

	if yamlPath := d.YAMLPath(); yamlPath != "" {
		r.Get(yamlPath, func(c fiber.Ctx) error {
			d.Observe(openapi.EndpointYAML)
			data, err := d.YAML()
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("failed to serialize OpenAPI document as YAML")
			}
			c.Set(fiber.HeaderContentType, "application/yaml")
			return c.Status(fiber.StatusOK).Send(data)
		})
	}

	r.Get(d.InitPath(), func(c fiber.Ctx) error {
		d.Observe(openapi.EndpointInit)
		c.Set(fiber.HeaderContentType, "application/javascript; charset=utf-8")
		return c.Status(fiber.StatusOK).Send(d.InitScript())
	})

	return d
}
