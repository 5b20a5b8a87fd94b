// Package state holds the single current recipe shared between the fetch and
// remix flows.
package state

import (
	"errors"
	"sync"

	"github.com/remixlab/mealremix/internal/mealdb"
)

// ErrNoRecipeLoaded indicates a remix was requested before any recipe was
// successfully fetched.
var ErrNoRecipeLoaded = errors.New("no recipe loaded")

// Store is the process-wide container for the most recently fetched recipe.
//
// Each fetch obtains a token from Begin before issuing its network call and
// publishes its result with that token. Publish only applies the result of the
// latest-started fetch, so overlapping fetches resolve last-started-wins
// rather than last-resolved-wins. A failed fetch publishes nothing and never
// clobbers a prior good value.
type Store struct {
	mu      sync.Mutex
	latest  uint64
	current *mealdb.Recipe
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Begin issues a token for a new fetch. Tokens are monotonically increasing.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// Publish stores the recipe if token belongs to the latest-started fetch.
// It reports whether the recipe was applied.
func (s *Store) Publish(token uint64, recipe *mealdb.Recipe) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.latest {
		return false
	}
	s.current = recipe
	return true
}

// Current returns the most recently published recipe, or ErrNoRecipeLoaded if
// no fetch has succeeded yet.
func (s *Store) Current() (*mealdb.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, ErrNoRecipeLoaded
	}
	return s.current, nil
}
