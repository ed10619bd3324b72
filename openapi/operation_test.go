package openapi

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationBuilder(t *testing.T) {
	t.Run("fluent chain", func(t *testing.T) {
		s := newTestStore(t)

		b := s.Op("PetController", "getPet").
			Summary("Find pet by ID").
			Description("Returns a single pet").
			OperationID("getPetById").
			ExternalDocs("https://example.com/pets", "Pet docs").
			Server(Server{URL: "https://pets.example.com"}).
			PathParam("id", "Pet identifier").
			QueryParam("fields", "Fields to return", Typed("string")).
			HeaderParam("X-Request-ID", "Request identifier", false).
			Response(http.StatusOK, BodySpec{Schema: "Pet"}).
			Response(http.StatusNotFound, BodySpec{Description: "Pet not found"}).
			DefaultResponse(BodySpec{Schema: "Error"}).
			BearerAuth().
			APIKey()
		require.NoError(t, b.Err())

		op, ok := s.Operation("PetController", "getPet")
		require.True(t, ok)

		assert.Equal(t, "Find pet by ID", op.Summary)
		assert.Equal(t, "Returns a single pet", op.Description)
		assert.Equal(t, "getPetById", op.OperationID)
		assert.Equal(t, "https://example.com/pets", op.ExternalDocs.URL)
		assert.Equal(t, []Server{{URL: "https://pets.example.com"}}, op.Servers)

		require.Len(t, op.Parameters, 3)
		assert.Equal(t, &Parameter{Name: "id", In: "path", Description: "Pet identifier", Required: true, Schema: Typed("string")}, op.Parameters[0])
		assert.Equal(t, "query", op.Parameters[1].In)
		assert.False(t, op.Parameters[1].Required)
		assert.Equal(t, "header", op.Parameters[2].In)

		require.Len(t, op.Responses, 3)
		assert.Equal(t, "OK", op.Responses["200"].Description)
		assert.Equal(t, "#/components/schemas/Pet", op.Responses["200"].Content["application/json"].Schema.Ref)
		assert.Equal(t, "Pet not found", op.Responses["404"].Description)
		assert.Nil(t, op.Responses["404"].Content)
		assert.Equal(t, "Default response", op.Responses["default"].Description)

		assert.Equal(t, []SecurityRequirement{{"bearerAuth": {}}, {"api_key": {}}}, op.Security)
	})

	t.Run("request body", func(t *testing.T) {
		s := newTestStore(t)

		require.NoError(t, s.Op("PetController", "getPet").
			Request(BodySpec{Schema: "Pet"}).
			Request(BodySpec{
				Description: "Pet to store",
				Required:    true,
				Schemas:     map[string]string{"application/xml": "Pet"},
			}).Err())

		op, _ := s.Operation("PetController", "getPet")
		require.NotNil(t, op.RequestBody)
		assert.Equal(t, "Pet to store", op.RequestBody.Description)
		assert.True(t, op.RequestBody.Required)
		assert.Len(t, op.RequestBody.Content, 1)
		assert.Contains(t, op.RequestBody.Content, "application/xml")
	})

	t.Run("deprecated and meta", func(t *testing.T) {
		s := newTestStore(t)

		require.NoError(t, s.Op("PetController", "getPet").
			Deprecated().
			Meta(&Operation{Summary: "old"}).
			Err())

		op, _ := s.Operation("PetController", "getPet")
		assert.True(t, op.Deprecated)
		assert.Equal(t, "old", op.Summary)
	})

	t.Run("security variants", func(t *testing.T) {
		s := newTestStore(t)

		require.NoError(t, s.Op("PetController", "getPet").
			BasicAuth().
			CookieAuth().
			OAuth2("read:pets").
			Security("custom", "a", "b").
			Err())

		op, _ := s.Operation("PetController", "getPet")
		assert.Equal(t, []SecurityRequirement{
			{"basicAuth": {}},
			{"cookieAuth": {}},
			{"oauth2": {"read:pets"}},
			{"custom": {"a", "b"}},
		}, op.Security)
	})

	t.Run("first error stops the chain", func(t *testing.T) {
		s := newTestStore(t)

		b := s.Op("PetController", "deletePet").
			Summary("Delete pet").
			PathParam("id", "Pet identifier")

		err := b.Err()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrRouteNotRecorded))

		s.RecordRoute("PetController", "deletePet", Route{Path: "/pets/:id", Method: http.MethodDelete})
		b.Description("ignored")
		assert.Same(t, err, b.Err())

		_, ok := s.Operation("PetController", "deletePet")
		assert.False(t, ok)
	})

	t.Run("schema registration never fails", func(t *testing.T) {
		s := NewStore()

		b := s.Op("PetController", "unknown").Schema("Pet", Typed("object"))
		assert.NoError(t, b.Err())

		got, ok := s.Schema("Pet")
		require.True(t, ok)
		assert.Equal(t, Typed("object"), got)
	})
}

func TestBodySpec(t *testing.T) {
	t.Run("request body prefers explicit content", func(t *testing.T) {
		content := map[string]*MediaType{"text/plain": {Schema: Typed("string")}}
		body := BodySpec{Schema: "Pet", Content: content}.RequestBody()

		assert.Equal(t, content, body.Content)
	})

	t.Run("response prefers schema over content", func(t *testing.T) {
		content := map[string]*MediaType{"text/plain": {Schema: Typed("string")}}
		resp := BodySpec{Schema: "Pet", Content: content}.Response("200")

		require.Len(t, resp.Content, 1)
		assert.Equal(t, "#/components/schemas/Pet", resp.Content["application/json"].Schema.Ref)

		resp = BodySpec{Schemas: map[string]string{"application/xml": "PetXML"}, Content: content}.Response("200")
		require.Len(t, resp.Content, 1)
		assert.Equal(t, "#/components/schemas/PetXML", resp.Content["application/xml"].Schema.Ref)
	})

	t.Run("response without schema uses content", func(t *testing.T) {
		content := map[string]*MediaType{"text/plain": {Schema: Typed("string")}}
		resp := BodySpec{Content: content}.Response("200")

		assert.Equal(t, content, resp.Content)
	})

	t.Run("response without body has no content", func(t *testing.T) {
		assert.Nil(t, BodySpec{}.Response("204").Content)
	})

	t.Run("empty request body has empty content", func(t *testing.T) {
		body := BodySpec{}.RequestBody()

		assert.NotNil(t, body.Content)
		assert.Empty(t, body.Content)
	})

	t.Run("schema and schemas", func(t *testing.T) {
		resp := BodySpec{
			Schema:  "Pet",
			Schemas: map[string]string{"application/xml": "PetXML"},
		}.Response("201")

		assert.Equal(t, "Created", resp.Description)
		assert.Equal(t, "#/components/schemas/Pet", resp.Content["application/json"].Schema.Ref)
		assert.Equal(t, "#/components/schemas/PetXML", resp.Content["application/xml"].Schema.Ref)
	})

	t.Run("response descriptions", func(t *testing.T) {
		assert.Equal(t, "Not Found", responseDescription("404"))
		assert.Equal(t, "Default response", responseDescription("default"))
		assert.Equal(t, "2XX", responseDescription("2XX"))
		assert.Equal(t, "799", responseDescription("799"))
	})

	t.Run("status key", func(t *testing.T) {
		assert.Equal(t, "200", StatusKey(http.StatusOK))
	})
}
