package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRemix(t *testing.T) {
	t.Run("should parse a bare JSON object verbatim", func(t *testing.T) {
		raw := `{"title":"X","ingredients":[{"name":"flour","measure":"2 cups","changed":true}],"instructions":"Y","note":"Z"}`

		result, err := ExtractRemix(raw)

		require.NoError(t, err)
		assert.Equal(t, "X", result.Title)
		assert.Equal(t, "Y", result.Instructions)
		assert.Equal(t, "Z", result.Note)
		require.Len(t, result.Ingredients, 1)
		assert.Equal(t, RemixIngredient{Name: "flour", Measure: "2 cups", Changed: true}, result.Ingredients[0])
	})

	t.Run("should parse an object wrapped in code fences", func(t *testing.T) {
		raw := "```json\n{\"title\":\"X\",\"ingredients\":[],\"instructions\":\"Y\"}\n```"

		result, err := ExtractRemix(raw)

		require.NoError(t, err)
		assert.Equal(t, "X", result.Title)
	})

	t.Run("should parse an object surrounded by prose", func(t *testing.T) {
		raw := "Sure! Here is your remix:\n{\"title\":\"Lava Soup\",\"instructions\":\"Stir\"}\nEnjoy!"

		result, err := ExtractRemix(raw)

		require.NoError(t, err)
		assert.Equal(t, "Lava Soup", result.Title)
		assert.Equal(t, "Stir", result.Instructions)
	})

	t.Run("should treat absent fields as optional", func(t *testing.T) {
		result, err := ExtractRemix(`{}`)

		require.NoError(t, err)
		assert.Empty(t, result.Title)
		assert.Empty(t, result.Ingredients)
		assert.Empty(t, result.Instructions)
		assert.Empty(t, result.Note)
	})

	t.Run("should accept the legacy amount field name", func(t *testing.T) {
		raw := `{"ingredients":[{"name":"sugar","amount":"1 tbsp","changed":false}]}`

		result, err := ExtractRemix(raw)

		require.NoError(t, err)
		require.Len(t, result.Ingredients, 1)
		assert.Equal(t, "1 tbsp", result.Ingredients[0].Measure)
	})

	t.Run("should prefer measure over amount when both present", func(t *testing.T) {
		raw := `{"ingredients":[{"name":"sugar","measure":"2 tbsp","amount":"1 tbsp"}]}`

		result, err := ExtractRemix(raw)

		require.NoError(t, err)
		assert.Equal(t, "2 tbsp", result.Ingredients[0].Measure)
	})

	t.Run("should fail cleanly on unrecoverable input", func(t *testing.T) {
		cases := map[string]string{
			"empty string":          "",
			"whitespace only":       "   \n\t  ",
			"prose without braces":  "I could not come up with a remix, sorry.",
			"deeply malformed json": "{\"title\": \"X\", \"ingredients\": [}",
			"non-object value":      `[1, 2, 3]`,
			"null value":            `null`,
			"bare number":           `42`,
			"unbalanced braces":     "} hello {",
		}

		for name, raw := range cases {
			t.Run(name, func(t *testing.T) {
				result, err := ExtractRemix(raw)
				assert.Nil(t, result)
				assert.ErrorIs(t, err, ErrExtractionFailed)
			})
		}
	})

	t.Run("should round-trip a well-formed response unchanged", func(t *testing.T) {
		raw := `{"title":"Ghost Pepper Pancakes","ingredients":[{"name":"flour","measure":"2 cups","changed":false},{"name":"ghost pepper","measure":"1","changed":true,"note":"the theme"}],"instructions":"Mix\nFry","note":"spicy"}`

		result, err := ExtractRemix(raw)

		require.NoError(t, err)
		assert.Equal(t, &RemixResult{
			Title: "Ghost Pepper Pancakes",
			Ingredients: []RemixIngredient{
				{Name: "flour", Measure: "2 cups", Changed: false},
				{Name: "ghost pepper", Measure: "1", Changed: true, Note: "the theme"},
			},
			Instructions: "Mix\nFry",
			Note:         "spicy",
		}, result)
	})
}
