package petstore

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/vitalvas/apidoc/openapi"
)

// Owner identities of the sample controllers.
const (
	PetOwner    = "PetController"
	OrderOwner  = "StoreController"
	UserOwner   = "UserController"
	HealthOwner = "HealthController"
)

// maxBodySize caps request bodies read by the handlers.
const maxBodySize = 1 << 20

// request is the routing-independent view of an incoming request.
type request struct {
	param func(name string) string
	query func(name string) string
	body  []byte
}

// reply is written as JSON; a nil body sends only the status.
type reply struct {
	status int
	body   any
}

type route struct {
	owner     string
	method    string
	path      string
	operation string
	handle    func(request) reply
	document  func(op *openapi.OperationBuilder) *openapi.OperationBuilder
}

// API serves the sample resources from a repository.
type API struct {
	repo *Repository
}

// New creates the API over repo.
func New(repo *Repository) *API {
	return &API{repo: repo}
}

// Schemas returns the component schemas of every type the API exchanges.
func Schemas() openapi.SchemaFunc {
	return openapi.TypeSchemas(Pet{}, PetInput{}, Order{}, OrderInput{}, User{}, Error{})
}

// Shell returns the document shell the API is assembled into.
func Shell(title string) *openapi.Document {
	if title == "" {
		title = "Pet Store"
	}
	return openapi.NewDocumentBuilder().
		SetTitle(title).
		SetDescription("Sample pet store served with generated OpenAPI documentation.").
		SetVersion("1.0.0").
		SetLicense("MIT", "https://opensource.org/licenses/MIT").
		AddBearerAuth().
		AddAPIKey().
		Build()
}

// documentGroups declares the tag groups. HealthOwner is left ungrouped so
// its probe stays out of the document.
func documentGroups(store *openapi.Store) {
	store.Document(PetOwner, openapi.Tag{Name: "pets", Description: "Everything about your pets"})
	store.Document(OrderOwner, openapi.Tag{Name: "store", Description: "Access to pet store orders"})
	store.Document(UserOwner, openapi.Tag{Name: "users", Description: "Operations about users"})
}

func jsonBody(schema string) openapi.BodySpec {
	return openapi.BodySpec{Schema: schema}
}

func listOf(schema string) openapi.BodySpec {
	array := openapi.Typed("array")
	array.Items = openapi.SchemaRef(schema)
	return openapi.BodySpec{Content: map[string]*openapi.MediaType{
		"application/json": {Schema: array},
	}}
}

func errorBody(description string) openapi.BodySpec {
	return openapi.BodySpec{Description: description, Schema: "Error"}
}

func (a *API) routes() []route {
	return []route{
		{
			owner: PetOwner, method: http.MethodGet, path: "/pets", operation: "listPets",
			handle: a.listPets,
			document: func(op *openapi.OperationBuilder) *openapi.OperationBuilder {
				status := openapi.Typed("string")
				status.Enum = []any{StatusAvailable, StatusPending, StatusSold}
				return op.Summary("List pets").
					Schema("PetStatus", status).
					QueryParam("status", "Filter by status", openapi.SchemaRef("PetStatus")).
					Response(http.StatusOK, listOf("Pet")).
					Response(http.StatusBadRequest, errorBody("Unknown status"))
			},
		},
		{
			owner: PetOwner, method: http.MethodPost, path: "/pets", operation: "addPet",
			handle: a.addPet,
			document: func(op *openapi.OperationBuilder) *openapi.OperationBuilder {
				return op.Summary("Add a new pet").
					Request(openapi.BodySpec{Schema: "PetInput", Required: true}).
					Response(http.StatusCreated, jsonBody("Pet")).
					Response(http.StatusBadRequest, errorBody("Invalid input")).
					BearerAuth()
			},
		},
		{
			owner: PetOwner, method: http.MethodGet, path: "/pets/:id", operation: "getPet",
			handle: a.getPet,
			document: func(op *openapi.OperationBuilder) *openapi.OperationBuilder {
				return op.Summary("Find pet by ID").
					PathParam("id", "Pet identifier").
					Response(http.StatusOK, jsonBody("Pet")).
					Response(http.StatusNotFound, errorBody("Pet not found"))
			},
		},
		{
			owner: PetOwner, method: http.MethodPut, path: "/pets/:id", operation: "updatePet",
			handle: a.updatePet,
			document: func(op *openapi.OperationBuilder) *openapi.OperationBuilder {
				return op.Summary("Update an existing pet").
					PathParam("id", "Pet identifier").
					Request(openapi.BodySpec{Schema: "PetInput", Required: true}).
					Response(http.StatusOK, jsonBody("Pet")).
					Response(http.StatusBadRequest, errorBody("Invalid input")).
					Response(http.StatusNotFound, errorBody("Pet not found")).
					BearerAuth()
			},
		},
		{
			owner: PetOwner, method: http.MethodDelete, path: "/pets/:id", operation: "deletePet",
			handle: a.deletePet,
			document: func(op *openapi.OperationBuilder) *openapi.OperationBuilder {
				return op.Summary("Delete a pet").
					PathParam("id", "Pet identifier").
					Response(http.StatusNoContent, openapi.BodySpec{}).
					Response(http.StatusNotFound, errorBody("Pet not found")).
					BearerAuth()
			},
		},
		{
			owner: OrderOwner, method: http.MethodPost, path: "/store/orders", operation: "placeOrder",
			handle: a.placeOrder,
			document: func(op *openapi.OperationBuilder) *openapi.OperationBuilder {
				return op.Summary("Place an order for a pet").
					Request(openapi.BodySpec{Schema: "OrderInput", Required: true}).
					Response(http.StatusCreated, jsonBody("Order")).
					Response(http.StatusNotFound, errorBody("Pet not found")).
					Response(http.StatusConflict, errorBody("Pet is not available")).
					APIKey()
			},
		},
		{
			owner: OrderOwner, method: http.MethodGet, path: "/store/orders/:id", operation: "getOrder",
			handle: a.getOrder,
			document: func(op *openapi.OperationBuilder) *openapi.OperationBuilder {
				return op.Summary("Find purchase order by ID").
					PathParam("id", "Order identifier").
					Response(http.StatusOK, jsonBody("Order")).
					Response(http.StatusNotFound, errorBody("Order not found")).
					APIKey()
			},
		},
		{
			owner: OrderOwner, method: http.MethodDelete, path: "/store/orders/:id", operation: "deleteOrder",
			handle: a.deleteOrder,
			document: func(op *openapi.OperationBuilder) *openapi.OperationBuilder {
				return op.Summary("Delete purchase order by ID").
					Description("Cancels the order and puts the pet back on sale.").
					PathParam("id", "Order identifier").
					Response(http.StatusNoContent, openapi.BodySpec{}).
					Response(http.StatusNotFound, errorBody("Order not found")).
					APIKey()
			},
		},
		{
			owner: UserOwner, method: http.MethodPost, path: "/users", operation: "createUser",
			handle: a.createUser,
			document: func(op *openapi.OperationBuilder) *openapi.OperationBuilder {
				return op.Summary("Create user").
					Request(openapi.BodySpec{Schema: "User", Required: true}).
					Response(http.StatusCreated, jsonBody("User")).
					Response(http.StatusBadRequest, errorBody("Invalid input")).
					Response(http.StatusConflict, errorBody("Username taken"))
			},
		},
		{
			owner: UserOwner, method: http.MethodGet, path: "/users/:username", operation: "getUser",
			handle: a.getUser,
			document: func(op *openapi.OperationBuilder) *openapi.OperationBuilder {
				return op.Summary("Get user by username").
					PathParam("username", "Name of the user").
					Response(http.StatusOK, jsonBody("User")).
					Response(http.StatusNotFound, errorBody("User not found"))
			},
		},
		{
			owner: HealthOwner, method: http.MethodGet, path: "/healthz", operation: "health",
			handle: func(request) reply {
				return reply{status: http.StatusOK, body: map[string]string{"status": "ok"}}
			},
		},
	}
}

func errorReply(err error) reply {
	status, code := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, ErrConflict):
		status, code = http.StatusConflict, "conflict"
	case errors.Is(err, ErrInvalid):
		status, code = http.StatusBadRequest, "invalid"
	}
	return reply{status: status, body: Error{Code: code, Message: err.Error()}}
}

func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func (a *API) listPets(req request) reply {
	status := req.query("status")
	if status != "" && !validStatus(status) {
		return errorReply(fmt.Errorf("%w: unknown status %s", ErrInvalid, status))
	}
	return reply{status: http.StatusOK, body: a.repo.Pets(status)}
}

func (a *API) addPet(req request) reply {
	var in PetInput
	if err := decode(req.body, &in); err != nil {
		return errorReply(err)
	}
	pet, err := a.repo.AddPet(in)
	if err != nil {
		return errorReply(err)
	}
	return reply{status: http.StatusCreated, body: pet}
}

func (a *API) getPet(req request) reply {
	pet, err := a.repo.Pet(req.param("id"))
	if err != nil {
		return errorReply(err)
	}
	return reply{status: http.StatusOK, body: pet}
}

func (a *API) updatePet(req request) reply {
	var in PetInput
	if err := decode(req.body, &in); err != nil {
		return errorReply(err)
	}
	pet, err := a.repo.UpdatePet(req.param("id"), in)
	if err != nil {
		return errorReply(err)
	}
	return reply{status: http.StatusOK, body: pet}
}

func (a *API) deletePet(req request) reply {
	if err := a.repo.DeletePet(req.param("id")); err != nil {
		return errorReply(err)
	}
	return reply{status: http.StatusNoContent}
}

func (a *API) placeOrder(req request) reply {
	var in OrderInput
	if err := decode(req.body, &in); err != nil {
		return errorReply(err)
	}
	order, err := a.repo.PlaceOrder(in)
	if err != nil {
		return errorReply(err)
	}
	return reply{status: http.StatusCreated, body: order}
}

func (a *API) getOrder(req request) reply {
	order, err := a.repo.Order(req.param("id"))
	if err != nil {
		return errorReply(err)
	}
	return reply{status: http.StatusOK, body: order}
}

func (a *API) deleteOrder(req request) reply {
	if err := a.repo.DeleteOrder(req.param("id")); err != nil {
		return errorReply(err)
	}
	return reply{status: http.StatusNoContent}
}

func (a *API) createUser(req request) reply {
	var in User
	if err := decode(req.body, &in); err != nil {
		return errorReply(err)
	}
	user, err := a.repo.CreateUser(in)
	if err != nil {
		return errorReply(err)
	}
	return reply{status: http.StatusCreated, body: user}
}

func (a *API) getUser(req request) reply {
	user, err := a.repo.User(req.param("username"))
	if err != nil {
		return errorReply(err)
	}
	return reply{status: http.StatusOK, body: user}
}
