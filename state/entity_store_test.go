package state

import (
	"testing"

	"storegate/entities"

	"github.com/stretchr/testify/assert"
)

func newCategoryStore() *EntityStore[entities.Category] {
	return NewEntityStore(func(c entities.Category) int { return c.Id })
}

func TestEntityStore_StartSucceeded(t *testing.T) {
	s := newCategoryStore()

	token := s.Start()
	assert.True(t, s.Loading())
	assert.Empty(t, s.Err())

	want := []entities.Category{{Id: 1, Name: "Shoes"}, {Id: 2, Name: "Hats"}}
	applied := s.Succeeded(token, want)
	assert.True(t, applied)

	items, loading, errMsg := s.Snapshot()
	assert.Equal(t, want, items)
	assert.False(t, loading)
	assert.Empty(t, errMsg)
}

func TestEntityStore_FailedKeepsCollection(t *testing.T) {
	s := newCategoryStore()
	token := s.Start()
	s.Succeeded(token, []entities.Category{{Id: 1, Name: "Shoes"}})

	before := s.Items()
	token = s.Start()
	s.Failed(token, "backend down")

	items, loading, errMsg := s.Snapshot()
	assert.Equal(t, before, items, "failure must not touch last-known-good data")
	assert.False(t, loading)
	assert.Equal(t, "backend down", errMsg)

	// Repeated failures stay idempotent on the collection.
	token = s.Start()
	s.Failed(token, "still down")
	assert.Equal(t, before, s.Items())
	assert.Equal(t, "still down", s.Err())
}

func TestEntityStore_CreatedThenRemovedRestores(t *testing.T) {
	s := newCategoryStore()
	token := s.Start()
	s.Succeeded(token, []entities.Category{{Id: 1, Name: "Shoes"}})
	before := s.Items()

	s.Created(entities.Category{Id: 7, Name: "Bags"})
	assert.Len(t, s.Items(), 2)

	s.Removed(7)
	assert.Equal(t, before, s.Items())
}

func TestEntityStore_UpdatedAbsentIsNoop(t *testing.T) {
	s := newCategoryStore()
	token := s.Start()
	want := []entities.Category{{Id: 1, Name: "Shoes"}}
	s.Succeeded(token, want)

	s.Updated(entities.Category{Id: 99, Name: "Ghost"})
	assert.Equal(t, want, s.Items())
}

func TestEntityStore_UpdatedReplacesMatch(t *testing.T) {
	s := newCategoryStore()
	token := s.Start()
	s.Succeeded(token, []entities.Category{{Id: 1, Name: "Shoes"}, {Id: 2, Name: "Hats"}})

	s.Updated(entities.Category{Id: 2, Name: "Caps"})

	got, ok := s.Find(2)
	assert.True(t, ok)
	assert.Equal(t, "Caps", got.Name)
	assert.Len(t, s.Items(), 2)
}

func TestEntityStore_StaleResponseDiscarded(t *testing.T) {
	s := newCategoryStore()

	first := s.Start()
	second := s.Start()

	// The slow first response resolves after a newer fetch was issued.
	applied := s.Succeeded(first, []entities.Category{{Id: 1, Name: "Old"}})
	assert.False(t, applied)
	assert.Empty(t, s.Items())
	assert.True(t, s.Loading())

	applied = s.Succeeded(second, []entities.Category{{Id: 2, Name: "New"}})
	assert.True(t, applied)
	items, loading, _ := s.Snapshot()
	assert.Equal(t, []entities.Category{{Id: 2, Name: "New"}}, items)
	assert.False(t, loading)

	// Same for a stale failure: it must not overwrite the settled state.
	assert.False(t, s.Failed(first, "too late"))
	assert.Empty(t, s.Err())
}

func TestEntityStore_HydrateLeavesStatusAlone(t *testing.T) {
	s := newCategoryStore()
	s.Hydrate([]entities.Category{{Id: 3, Name: "Stale"}})

	items, loading, errMsg := s.Snapshot()
	assert.Len(t, items, 1)
	assert.False(t, loading)
	assert.Empty(t, errMsg)
}

func TestEntityStore_Selected(t *testing.T) {
	s := newCategoryStore()
	_, ok := s.Selected()
	assert.False(t, ok)

	s.Select(entities.Category{Id: 4, Name: "Belts"})
	got, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, 4, got.Id)
}
