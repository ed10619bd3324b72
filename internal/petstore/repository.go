package petstore

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("petstore: not found")
	// ErrConflict is returned when a record with the same key exists.
	ErrConflict = errors.New("petstore: already exists")
	// ErrInvalid is returned for input that fails validation.
	ErrInvalid = errors.New("petstore: invalid input")
)

// Repository is an in-memory store for pets, orders and users. It is safe
// for concurrent use.
type Repository struct {
	mu     sync.RWMutex
	pets   map[string]Pet
	order  []string
	orders map[string]Order
	users  map[string]User
	now    func() time.Time
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{
		pets:   make(map[string]Pet),
		orders: make(map[string]Order),
		users:  make(map[string]User),
		now:    time.Now,
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func validStatus(status string) bool {
	switch status {
	case StatusAvailable, StatusPending, StatusSold:
		return true
	}
	return false
}

func (in PetInput) validate() error {
	if in.Name == "" || len(in.Name) > 64 {
		return fmt.Errorf("%w: name must be 1 to 64 characters", ErrInvalid)
	}
	if in.Status != "" && !validStatus(in.Status) {
		return fmt.Errorf("%w: unknown status %s", ErrInvalid, in.Status)
	}
	return nil
}

// AddPet stores a new pet. An empty status defaults to available.
func (r *Repository) AddPet(in PetInput) (Pet, error) {
	if err := in.validate(); err != nil {
		return Pet{}, err
	}

	pet := Pet{
		ID:        newID(),
		Name:      in.Name,
		Status:    in.Status,
		Category:  in.Category,
		Tags:      slices.Clone(in.Tags),
		CreatedAt: r.now().UTC(),
	}
	if pet.Status == "" {
		pet.Status = StatusAvailable
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pets[pet.ID] = pet
	r.order = append(r.order, pet.ID)

	return pet, nil
}

// Pet returns the pet with id.
func (r *Repository) Pet(id string) (Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pet, ok := r.pets[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return pet, nil
}

// Pets lists pets in creation order, filtered by status when set.
func (r *Repository) Pets(status string) []Pet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pets := make([]Pet, 0, len(r.order))
	for _, id := range r.order {
		pet := r.pets[id]
		if status != "" && pet.Status != status {
			continue
		}
		pets = append(pets, pet)
	}
	return pets
}

// UpdatePet replaces the writable fields of a pet.
func (r *Repository) UpdatePet(id string, in PetInput) (Pet, error) {
	if err := in.validate(); err != nil {
		return Pet{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pet, ok := r.pets[id]
	if !ok {
		return Pet{}, ErrNotFound
	}

	pet.Name = in.Name
	pet.Category = in.Category
	pet.Tags = slices.Clone(in.Tags)
	if in.Status != "" {
		pet.Status = in.Status
	}
	r.pets[id] = pet

	return pet, nil
}

// DeletePet removes a pet.
func (r *Repository) DeletePet(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pets[id]; !ok {
		return ErrNotFound
	}
	delete(r.pets, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })

	return nil
}

// PlaceOrder buys an available pet and marks it sold.
func (r *Repository) PlaceOrder(in OrderInput) (Order, error) {
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 0 {
		return Order{}, fmt.Errorf("%w: quantity must be positive", ErrInvalid)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pet, ok := r.pets[in.PetID]
	if !ok {
		return Order{}, ErrNotFound
	}
	if pet.Status != StatusAvailable {
		return Order{}, fmt.Errorf("%w: pet is %s", ErrConflict, pet.Status)
	}

	pet.Status = StatusSold
	r.pets[pet.ID] = pet

	order := Order{
		ID:       newID(),
		PetID:    pet.ID,
		Quantity: in.Quantity,
		PlacedAt: r.now().UTC(),
	}
	r.orders[order.ID] = order

	return order, nil
}

// Order returns the order with id.
func (r *Repository) Order(id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return order, nil
}

// DeleteOrder cancels an order and puts its pet back on sale.
func (r *Repository) DeleteOrder(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.orders, id)

	if pet, ok := r.pets[order.PetID]; ok {
		pet.Status = StatusAvailable
		r.pets[pet.ID] = pet
	}

	return nil
}

// CreateUser stores a user keyed by username.
func (r *Repository) CreateUser(user User) (User, error) {
	if len(user.Username) < 3 {
		return User{}, fmt.Errorf("%w: username must be at least 3 characters", ErrInvalid)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return User{}, ErrConflict
	}
	r.users[user.Username] = user

	return user, nil
}

// User returns the user with username.
func (r *Repository) User(username string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}
