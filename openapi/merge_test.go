package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeOperation(t *testing.T) {
	t.Run("scalars overwrite when set", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, s.MergeOperation("PetController", "getPet", &Operation{
			Summary:     "Find pet",
			Description: "Returns a single pet",
			OperationID: "getPetById",
		}))
		require.NoError(t, s.MergeOperation("PetController", "getPet", &Operation{Summary: "Find pet by ID"}))

		op, _ := s.Operation("PetController", "getPet")
		assert.Equal(t, "Find pet by ID", op.Summary)
		assert.Equal(t, "Returns a single pet", op.Description)
		assert.Equal(t, "getPetById", op.OperationID)
	})

	t.Run("deprecated latches", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, s.MergeOperation("PetController", "getPet", &Operation{Deprecated: true}))
		require.NoError(t, s.MergeOperation("PetController", "getPet", &Operation{Summary: "x"}))

		op, _ := s.Operation("PetController", "getPet")
		assert.True(t, op.Deprecated)
	})

	t.Run("responses merge per key", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, s.MergeOperation("PetController", "getPet", &Operation{
			Responses: map[string]*Response{
				"200": {Description: "OK"},
				"404": {Description: "Not Found"},
			},
		}))
		require.NoError(t, s.MergeOperation("PetController", "getPet", &Operation{
			Responses: map[string]*Response{"200": {Description: "Pet found"}},
		}))
		require.NoError(t, s.SetResponse("PetController", "getPet", "default", &Response{Description: "Error"}))

		op, _ := s.Operation("PetController", "getPet")
		require.Len(t, op.Responses, 3)
		assert.Equal(t, "Pet found", op.Responses["200"].Description)
		assert.Equal(t, "Not Found", op.Responses["404"].Description)
		assert.Equal(t, "Error", op.Responses["default"].Description)
	})

	t.Run("request body last call wins", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, s.SetRequestBody("PetController", "getPet", BodySpec{Schema: "Pet"}.RequestBody()))
		require.NoError(t, s.MergeOperation("PetController", "getPet", &Operation{
			RequestBody: BodySpec{Schema: "NewPet", Required: true}.RequestBody(),
		}))

		op, _ := s.Operation("PetController", "getPet")
		require.NotNil(t, op.RequestBody)
		assert.True(t, op.RequestBody.Required)
		assert.Equal(t, "#/components/schemas/NewPet", op.RequestBody.Content["application/json"].Schema.Ref)
	})

	t.Run("lists append in call order", func(t *testing.T) {
		s := newTestStore(t)
		p1 := &Parameter{Name: "b", In: "query"}
		p2 := &Parameter{Name: "a", In: "query"}

		require.NoError(t, s.AppendParameter("PetController", "getPet", p1))
		require.NoError(t, s.MergeOperation("PetController", "getPet", &Operation{
			Parameters: []*Parameter{p2},
			Servers:    []Server{{URL: "https://a.example.com"}},
		}))
		require.NoError(t, s.MergeOperation("PetController", "getPet", &Operation{
			Servers: []Server{{URL: "https://b.example.com"}},
		}))

		op, _ := s.Operation("PetController", "getPet")
		assert.Equal(t, []*Parameter{p1, p2}, op.Parameters)
		assert.Equal(t, []Server{{URL: "https://a.example.com"}, {URL: "https://b.example.com"}}, op.Servers)
	})

	t.Run("duplicate parameters are kept", func(t *testing.T) {
		s := newTestStore(t)
		p := &Parameter{Name: "id", In: "path", Required: true}
		require.NoError(t, s.AppendParameter("PetController", "getPet", p))
		require.NoError(t, s.AppendParameter("PetController", "getPet", p))

		op, _ := s.Operation("PetController", "getPet")
		assert.Len(t, op.Parameters, 2)
	})

	t.Run("nil partial creates empty fragment", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, s.MergeOperation("PetController", "getPet", nil))

		op, ok := s.Operation("PetController", "getPet")
		require.True(t, ok)
		assert.NotNil(t, op.Responses)
		assert.Empty(t, op.Responses)
	})
}

func TestAppendSecurity(t *testing.T) {
	t.Run("requirements are alternatives", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, s.AddSecurity("PetController", "getPet", SchemeBearer, ""))
		require.NoError(t, s.AddSecurity("PetController", "getPet", SchemeAPIKey, ""))

		op, _ := s.Operation("PetController", "getPet")
		assert.Equal(t, []SecurityRequirement{
			{"bearerAuth": {}},
			{"api_key": {}},
		}, op.Security)
	})

	t.Run("scopes", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, s.AppendSecurity("PetController", "getPet", "petstore_auth", "read:pets", "write:pets"))

		op, _ := s.Operation("PetController", "getPet")
		require.Len(t, op.Security, 1)
		assert.Equal(t, []string{"read:pets", "write:pets"}, op.Security[0]["petstore_auth"])
	})

	t.Run("custom name", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, s.AddSecurity("PetController", "getPet", SchemeBearer, "jwt"))

		op, _ := s.Operation("PetController", "getPet")
		assert.Equal(t, []SecurityRequirement{{"jwt": {}}}, op.Security)
	})

	t.Run("empty scopes encode as empty list", func(t *testing.T) {
		s := newTestStore(t)
		s.Document("PetController")
		require.NoError(t, s.AppendSecurity("PetController", "getPet", "basicAuth"))

		data, err := MarshalJSON(s.Assemble(&Document{}))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"basicAuth": []`)
	})
}
