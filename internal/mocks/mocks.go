package mocks

import (
	"context"

	"github.com/remixlab/mealremix/internal/mealdb"
)

// MockFetcher is a mock implementation of the random-recipe fetcher.
type MockFetcher struct {
	Recipe *mealdb.Recipe
	Err    error
	Calls  int
}

func (m *MockFetcher) Random(ctx context.Context) (*mealdb.Recipe, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Recipe, nil
}

// MockRemixer is a mock implementation of the remix service.
type MockRemixer struct {
	Response  string
	Err       error
	Calls     int
	LastTheme string
}

func (m *MockRemixer) Remix(ctx context.Context, recipe *mealdb.Recipe, theme string) (string, error) {
	m.Calls++
	m.LastTheme = theme
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
