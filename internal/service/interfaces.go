package service

import (
	"context"

	"github.com/remixlab/mealremix/internal/mealdb"
)

// Remixer defines the remix operation for handlers and tests.
type Remixer interface {
	Remix(ctx context.Context, recipe *mealdb.Recipe, theme string) (string, error)
}

// RandomFetcher defines the random-recipe fetch for handlers and tests.
type RandomFetcher interface {
	Random(ctx context.Context) (*mealdb.Recipe, error)
}
