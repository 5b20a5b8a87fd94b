package mealdb

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MaxIngredientSlots is the number of ingredient/measure slot pairs the API
// exposes on every meal record.
const MaxIngredientSlots = 20

// Recipe represents one meal as returned by the recipe API. The upstream
// contract is weak: any field may be absent, null, or blank, so the type keeps
// the raw slot pairs and exposes only the displayable ones via Ingredients.
type Recipe struct {
	Title        string
	Thumbnail    string
	Instructions string

	slots [MaxIngredientSlots]slot
}

type slot struct {
	Ingredient string
	Measure    string
}

// Ingredient is a single displayable ingredient entry.
type Ingredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// UnmarshalJSON decodes the flat strIngredientN/strMeasureN record shape.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode meal record: %w", err)
	}

	field := func(key string) string {
		if v, ok := raw[key]; ok && v != nil {
			return *v
		}
		return ""
	}

	r.Title = field("strMeal")
	r.Thumbnail = field("strMealThumb")
	r.Instructions = field("strInstructions")

	for i := range r.slots {
		n := i + 1
		r.slots[i] = slot{
			Ingredient: field(fmt.Sprintf("strIngredient%d", n)),
			Measure:    field(fmt.Sprintf("strMeasure%d", n)),
		}
	}

	return nil
}

// Ingredients returns the displayable ingredient entries in slot order.
// Slots whose ingredient name is blank or whitespace-only are skipped.
func (r *Recipe) Ingredients() []Ingredient {
	out := make([]Ingredient, 0, MaxIngredientSlots)
	for _, s := range r.slots {
		name := strings.TrimSpace(s.Ingredient)
		if name == "" {
			continue
		}
		out = append(out, Ingredient{
			Name:    name,
			Measure: strings.TrimSpace(s.Measure),
		})
	}
	return out
}
