package openapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatePet struct {
	ID     string   `json:"id" openapi:"format=uuid,readOnly"`
	Name   string   `json:"name" openapi:"minLength=1,example=doggie"`
	Status string   `json:"status,omitempty" openapi:"enum=available|pending|sold"`
	Tags   []string `json:"tags,omitempty"`
}

func TestValidate(t *testing.T) {
	shell := NewDocumentBuilder().SetTitle("Pet Store").SetVersion("1.0.0").AddBearerAuth().Build()

	t.Run("valid document", func(t *testing.T) {
		s := NewStore()
		s.RecordRoute("PetController", "getPet", Route{Path: "/pets/:id", Method: http.MethodGet})
		s.RecordRoute("PetController", "addPet", Route{Path: "/pets", Method: http.MethodPost})
		require.NoError(t, s.Op("PetController", "getPet").
			PathParam("id", "Pet identifier").
			Response(http.StatusOK, BodySpec{Schema: "validatePet"}).
			Response(http.StatusNotFound, BodySpec{}).
			BearerAuth().Err())
		require.NoError(t, s.Op("PetController", "addPet").
			Request(BodySpec{Schema: "validatePet", Required: true}).
			Response(http.StatusCreated, BodySpec{Schema: "validatePet"}).Err())
		s.Document("PetController", Tag{Name: "pets"})

		doc := s.Assemble(shell, WithSchemas(TypeSchemas(validatePet{})))
		assert.NoError(t, Validate(context.Background(), doc))
	})

	t.Run("oauth2 operation with default flow", func(t *testing.T) {
		s := NewStore()
		s.RecordRoute("PetController", "listPets", Route{Path: "/pets", Method: http.MethodGet})
		require.NoError(t, s.Op("PetController", "listPets").
			Response(http.StatusOK, BodySpec{Description: "OK"}).
			OAuth2().Err())
		s.Document("PetController", Tag{Name: "pets"})

		shell := NewDocumentBuilder().SetTitle("Pet Store").SetVersion("1.0.0").AddOAuth2(nil).Build()
		assert.NoError(t, Validate(context.Background(), s.Assemble(shell)))
	})

	t.Run("oauth2 operation with caller flows", func(t *testing.T) {
		s := NewStore()
		s.RecordRoute("PetController", "listPets", Route{Path: "/pets", Method: http.MethodGet})
		require.NoError(t, s.Op("PetController", "listPets").
			Response(http.StatusOK, BodySpec{Description: "OK"}).
			OAuth2("read:pets").Err())
		s.Document("PetController", Tag{Name: "pets"})

		shell := NewDocumentBuilder().SetTitle("Pet Store").SetVersion("1.0.0").
			AddOAuth2(&OAuthFlows{AuthorizationCode: &OAuthFlow{
				AuthorizationURL: "https://example.com/oauth/authorize",
				TokenURL:         "https://example.com/oauth/token",
				Scopes:           map[string]string{"read:pets": "read your pets"},
			}}).Build()
		assert.NoError(t, Validate(context.Background(), s.Assemble(shell)))
	})

	t.Run("oauth2 flow without token url is rejected", func(t *testing.T) {
		s := NewStore()
		s.RecordRoute("PetController", "listPets", Route{Path: "/pets", Method: http.MethodGet})
		require.NoError(t, s.Op("PetController", "listPets").
			Response(http.StatusOK, BodySpec{Description: "OK"}).
			OAuth2().Err())
		s.Document("PetController")

		shell := NewDocumentBuilder().SetTitle("Pet Store").SetVersion("1.0.0").
			AddOAuth2(&OAuthFlows{Password: &OAuthFlow{Scopes: map[string]string{}}}).Build()
		assert.Error(t, Validate(context.Background(), s.Assemble(shell)))
	})

	t.Run("undeclared path parameter", func(t *testing.T) {
		s := NewStore()
		s.RecordRoute("PetController", "getPet", Route{Path: "/pets/:id", Method: http.MethodGet})
		require.NoError(t, s.Op("PetController", "getPet").
			Response(http.StatusOK, BodySpec{Description: "OK"}).Err())
		s.Document("PetController")

		err := Validate(context.Background(), s.Assemble(shell))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "openapi: invalid document")
	})

	t.Run("unresolved reference", func(t *testing.T) {
		s := NewStore()
		s.RecordRoute("PetController", "listPets", Route{Path: "/pets", Method: http.MethodGet})
		require.NoError(t, s.Op("PetController", "listPets").
			Response(http.StatusOK, BodySpec{Schema: "Missing"}).Err())
		s.Document("PetController")

		assert.Error(t, Validate(context.Background(), s.Assemble(shell)))
	})
}
