// Package petstore is the sample API served by the apidoc binary. It keeps
// pets, orders and users in memory and documents every route through the
// openapi store, so the served document always matches the mounted handlers.
package petstore

import "time"

// Pet status values.
const (
	StatusAvailable = "available"
	StatusPending   = "pending"
	StatusSold      = "sold"
)

// Category groups pets.
type Category struct {
	ID   int64  `json:"id" openapi:"example=1"`
	Name string `json:"name" openapi:"example=Dogs"`
}

// Pet is a pet for sale.
type Pet struct {
	ID        string    `json:"id" openapi:"format=uuid,readOnly,description=Pet identifier"`
	Name      string    `json:"name" openapi:"minLength=1,maxLength=64,example=doggie"`
	Status    string    `json:"status" openapi:"enum=available|pending|sold,description=Pet status in the store"`
	Category  *Category `json:"category,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt" openapi:"readOnly"`
}

// PetInput is the writable part of a pet.
type PetInput struct {
	Name     string    `json:"name" openapi:"minLength=1,maxLength=64,example=doggie"`
	Status   string    `json:"status,omitempty" openapi:"enum=available|pending|sold"`
	Category *Category `json:"category,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
}

// Order is a purchase of one pet.
type Order struct {
	ID       string    `json:"id" openapi:"format=uuid,readOnly"`
	PetID    string    `json:"petId" openapi:"format=uuid"`
	Quantity int32     `json:"quantity" openapi:"minimum=1,example=1"`
	PlacedAt time.Time `json:"placedAt" openapi:"readOnly"`
}

// OrderInput is the body of an order request.
type OrderInput struct {
	PetID    string `json:"petId" openapi:"format=uuid"`
	Quantity int32  `json:"quantity,omitempty" openapi:"minimum=1,example=1"`
}

// User is a store customer.
type User struct {
	Username string `json:"username" openapi:"minLength=3,example=alice"`
	Email    string `json:"email" openapi:"format=email,example=alice@example.com"`
	Phone    string `json:"phone,omitempty"`
}

// Error is the body of every failed request.
type Error struct {
	Code    string `json:"code" openapi:"example=not_found,description=Machine-readable error code"`
	Message string `json:"message" openapi:"description=Human-readable description"`
}

// OpenAPIExample provides the component example for Pet.
func (Pet) OpenAPIExample() any {
	return Pet{
		ID:        "0192a4d2-6c1e-7a38-9d44-1f3c5b7e9a01",
		Name:      "doggie",
		Status:    StatusAvailable,
		Tags:      []string{"friendly"},
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
