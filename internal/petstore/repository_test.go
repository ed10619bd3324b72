package petstore

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryPets(t *testing.T) {
	repo := NewRepository()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	t.Run("add defaults status", func(t *testing.T) {
		pet, err := repo.AddPet(PetInput{Name: "doggie", Tags: []string{"a"}})
		require.NoError(t, err)

		assert.NotEmpty(t, pet.ID)
		assert.Equal(t, StatusAvailable, pet.Status)
		assert.Equal(t, fixed, pet.CreatedAt)

		got, err := repo.Pet(pet.ID)
		require.NoError(t, err)
		assert.Equal(t, pet, got)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := repo.AddPet(PetInput{})
		assert.ErrorIs(t, err, ErrInvalid)

		_, err = repo.AddPet(PetInput{Name: "cat", Status: "lost"})
		assert.ErrorIs(t, err, ErrInvalid)
		assert.Contains(t, err.Error(), "unknown status lost")
	})

	t.Run("list keeps creation order and filters", func(t *testing.T) {
		repo := NewRepository()
		a, _ := repo.AddPet(PetInput{Name: "a"})
		b, _ := repo.AddPet(PetInput{Name: "b", Status: StatusPending})
		c, _ := repo.AddPet(PetInput{Name: "c"})

		assert.Equal(t, []Pet{a, b, c}, repo.Pets(""))
		assert.Equal(t, []Pet{b}, repo.Pets(StatusPending))
		assert.Empty(t, repo.Pets(StatusSold))
	})

	t.Run("update", func(t *testing.T) {
		pet, _ := repo.AddPet(PetInput{Name: "old", Status: StatusPending})

		updated, err := repo.UpdatePet(pet.ID, PetInput{Name: "new"})
		require.NoError(t, err)
		assert.Equal(t, "new", updated.Name)
		assert.Equal(t, StatusPending, updated.Status)
		assert.Equal(t, pet.CreatedAt, updated.CreatedAt)

		_, err = repo.UpdatePet("missing", PetInput{Name: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		pet, _ := repo.AddPet(PetInput{Name: "gone"})

		require.NoError(t, repo.DeletePet(pet.ID))
		_, err := repo.Pet(pet.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotContains(t, repo.Pets(""), pet)
		assert.ErrorIs(t, repo.DeletePet(pet.ID), ErrNotFound)
	})

	t.Run("tags are copied", func(t *testing.T) {
		tags := []string{"x"}
		pet, _ := repo.AddPet(PetInput{Name: "copy", Tags: tags})
		tags[0] = "y"

		got, _ := repo.Pet(pet.ID)
		assert.Equal(t, []string{"x"}, got.Tags)
	})
}

func TestRepositoryOrders(t *testing.T) {
	repo := NewRepository()
	pet, err := repo.AddPet(PetInput{Name: "doggie"})
	require.NoError(t, err)

	order, err := repo.PlaceOrder(OrderInput{PetID: pet.ID})
	require.NoError(t, err)
	assert.Equal(t, int32(1), order.Quantity)
	assert.Equal(t, pet.ID, order.PetID)

	sold, _ := repo.Pet(pet.ID)
	assert.Equal(t, StatusSold, sold.Status)

	_, err = repo.PlaceOrder(OrderInput{PetID: pet.ID})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = repo.PlaceOrder(OrderInput{PetID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.PlaceOrder(OrderInput{PetID: pet.ID, Quantity: -1})
	assert.ErrorIs(t, err, ErrInvalid)

	got, err := repo.Order(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, got)

	require.NoError(t, repo.DeleteOrder(order.ID))
	back, _ := repo.Pet(pet.ID)
	assert.Equal(t, StatusAvailable, back.Status)

	_, err = repo.Order(order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.DeleteOrder(order.ID), ErrNotFound)
}

func TestRepositoryUsers(t *testing.T) {
	repo := NewRepository()

	user, err := repo.CreateUser(User{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	got, err := repo.User("alice")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = repo.CreateUser(User{Username: "alice"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = repo.CreateUser(User{Username: "al"})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = repo.User("bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryConcurrency(t *testing.T) {
	repo := NewRepository()

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			pet, err := repo.AddPet(PetInput{Name: "p"})
			if err != nil {
				return
			}
			_, _ = repo.Pet(pet.ID)
			_ = repo.Pets("")
		})
	}
	wg.Wait()

	assert.Len(t, repo.Pets(""), 50)
}
