package openapifiber

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/apidoc/openapi"
)

func doRequest(t *testing.T, app *fiber.App, method, path string) (*http.Response, string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func setupApp(t *testing.T) (*fiber.App, *openapi.Store) {
	t.Helper()

	app := fiber.New()
	store := openapi.NewStore()
	pets := NewController(store, "PetController", app)

	require.NoError(t, pets.Get("/pets/:id", "getPet", func(c fiber.Ctx) error {
		return c.SendString("pet " + c.Params("id"))
	}).Summary("Find pet by ID").
		PathParam("id", "Pet identifier").
		Response(http.StatusOK, openapi.BodySpec{Schema: "Pet"}).
		BearerAuth().
		Err())

	noContent := func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) }
	require.NoError(t, pets.Post("/pets", "addPet", noContent).Summary("Add pet").Err())
	require.NoError(t, pets.Put("/pets", "updatePet", noContent).Summary("Update pet").Err())
	require.NoError(t, pets.Patch("/pets/:id", "patchPet", noContent).Summary("Patch pet").Err())
	require.NoError(t, pets.Delete("/pets/:id", "deletePet", noContent).Summary("Delete pet").Err())
	require.NoError(t, pets.Op("deletePet").APIKey().Err())
	pets.Document(openapi.Tag{Name: "pets"})

	return app, store
}

func TestController(t *testing.T) {
	t.Run("records routes in fiber syntax", func(t *testing.T) {
		_, store := setupApp(t)

		route, ok := store.Route("PetController", "getPet")
		require.True(t, ok)
		assert.Equal(t, openapi.Route{Path: "/pets/:id", Method: http.MethodGet}, route)
	})

	t.Run("mounts handlers", func(t *testing.T) {
		app, _ := setupApp(t)

		resp, body := doRequest(t, app, http.MethodGet, "/pets/7")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "pet 7", body)

		for _, method := range []string{http.MethodPatch, http.MethodDelete} {
			resp, _ := doRequest(t, app, method, "/pets/7")
			assert.Equal(t, http.StatusNoContent, resp.StatusCode, method)
		}
		for _, method := range []string{http.MethodPost, http.MethodPut} {
			resp, _ := doRequest(t, app, method, "/pets")
			assert.Equal(t, http.StatusNoContent, resp.StatusCode, method)
		}
	})

	t.Run("assembles templated paths", func(t *testing.T) {
		_, store := setupApp(t)
		c := NewController(store, "PetController", fiber.New())
		assert.Equal(t, "PetController", c.Owner())

		doc := store.Assemble(&openapi.Document{})
		assert.Equal(t, []string{"/pets/{id}", "/pets"}, doc.Paths.Keys())

		item := doc.Paths.Get("/pets/{id}")
		require.NotNil(t, item.Get)
		require.NotNil(t, item.Patch)
		require.NotNil(t, item.Delete)
		assert.Equal(t, []string{"pets"}, item.Get.Tags)
		assert.Equal(t, []openapi.SecurityRequirement{{"api_key": {}}}, item.Delete.Security)
	})
}

func TestHandle(t *testing.T) {
	shell := openapi.NewDocumentBuilder().SetTitle("Fiber Pets").SetVersion("1.0.0").AddBearerAuth().AddAPIKey().Build()

	t.Run("JSON document", func(t *testing.T) {
		app, store := setupApp(t)
		Handle(app, store, "/docs", shell, nil)

		resp, body := doRequest(t, app, http.MethodGet, "/docs/json")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, fiber.MIMEApplicationJSON, resp.Header.Get(fiber.HeaderContentType))

		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(body), &doc))
		assert.Equal(t, "Fiber Pets", doc["info"].(map[string]any)["title"])
		assert.Contains(t, doc["paths"], "/pets/{id}")
	})

	t.Run("YAML document", func(t *testing.T) {
		app, store := setupApp(t)
		Handle(app, store, "/docs", shell, nil)

		resp, body := doRequest(t, app, http.MethodGet, "/docs/yaml")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/yaml", resp.Header.Get(fiber.HeaderContentType))
		assert.Contains(t, body, "openapi: 3.0.3")
	})

	t.Run("YAML disabled", func(t *testing.T) {
		app, store := setupApp(t)
		Handle(app, store, "/docs", shell, &openapi.HandleConfig{DisableYAML: true})

		resp, _ := doRequest(t, app, http.MethodGet, "/docs/yaml")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("UI and init script", func(t *testing.T) {
		app, store := setupApp(t)
		Handle(app, store, "/docs", shell, &openapi.HandleConfig{
			SwaggerUIConfig: map[string]any{"docExpansion": "list"},
		})

		resp, body := doRequest(t, app, http.MethodGet, "/docs")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "<title>Fiber Pets</title>")
		assert.Contains(t, body, `src="/docs/swagger-ui-init.js"`)

		resp, body = doRequest(t, app, http.MethodGet, "/docs/swagger-ui-init.js")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `url: "/docs/json"`)
		assert.Contains(t, body, `"docExpansion": "list"`)
	})

	t.Run("build failure", func(t *testing.T) {
		app, store := setupApp(t)
		Handle(app, store, "/docs", shell, &openapi.HandleConfig{
			Schemas: func() map[string]*openapi.Schema {
				panic("boom")
			},
		})

		resp, _ := doRequest(t, app, http.MethodGet, "/docs/json")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}
