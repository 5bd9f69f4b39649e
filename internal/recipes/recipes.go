// Package recipes defines the third-party recipe directory contract.
package recipes

import "context"

// Summary is a directory listing entry.
type Summary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Ingredient pairs a name with its free-text measure ("2 cups").
type Ingredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// Recipe is the full directory record for one dish.
type Recipe struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     string       `json:"category,omitempty"`
	Area         string       `json:"area,omitempty"`
	Instructions string       `json:"instructions,omitempty"`
	Thumbnail    string       `json:"thumbnail,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
}

// Directory looks up recipes by ingredient keyword or id. Absent results
// are an empty list or nil recipe, never an error.
type Directory interface {
	FilterByIngredient(ctx context.Context, ingredient string) ([]Summary, error)
	Lookup(ctx context.Context, id string) (*Recipe, error)
}
