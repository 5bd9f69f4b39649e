package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"larder/internal/ai"
	"larder/internal/domain"
	"larder/internal/recipes"
)

type stubStock struct {
	items []*domain.PantryItem
}

func (s *stubStock) List(context.Context) ([]*domain.PantryItem, error) {
	return s.items, nil
}

type stubDislikes struct {
	names []string
}

func (s *stubDislikes) Add(_ context.Context, name string) error {
	s.names = append(s.names, name)
	return nil
}

func (s *stubDislikes) Remove(_ context.Context, name string) error {
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *stubDislikes) List(context.Context) ([]string, error) {
	return s.names, nil
}

type stubDirectory struct {
	summaries []recipes.Summary
	recipe    *recipes.Recipe
}

func (s *stubDirectory) FilterByIngredient(context.Context, string) ([]recipes.Summary, error) {
	return s.summaries, nil
}

func (s *stubDirectory) Lookup(context.Context, string) (*recipes.Recipe, error) {
	return s.recipe, nil
}

func stockOf(names ...string) *stubStock {
	items := make([]*domain.PantryItem, 0, len(names))
	for _, name := range names {
		items = append(items, &domain.PantryItem{Name: name, Quantity: 1})
	}
	return &stubStock{items: items}
}

func TestRecipeServiceSuggestRecipes(t *testing.T) {
	gen := &stubGenerator{reply: `Here you go: ["Frittata", "Shakshuka"]`}
	svc := NewRecipeService(stockOf("Eggs", "Tomatoes"), &stubDislikes{}, gen, &stubDirectory{}, slog.Default())

	got, err := svc.SuggestRecipes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Frittata", "Shakshuka"}, got)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Eggs, Tomatoes")
}

func TestRecipeServiceSuggestRecipes_ExcludesDisliked(t *testing.T) {
	gen := &stubGenerator{reply: `["Frittata", "Shakshuka"]`}
	dislikes := &stubDislikes{names: []string{"shakshuka"}}
	svc := NewRecipeService(stockOf("Eggs"), dislikes, gen, &stubDirectory{}, slog.Default())

	got, err := svc.SuggestRecipes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Frittata"}, got, "disliked dishes are dropped even when the model suggests them")
	assert.Contains(t, gen.prompts[0], "Never suggest these dishes: shakshuka")
}

func TestRecipeServiceSuggestRecipes_EmptyStockSkipsModel(t *testing.T) {
	gen := &stubGenerator{}
	svc := NewRecipeService(stockOf(), &stubDislikes{}, gen, &stubDirectory{}, slog.Default())

	got, err := svc.SuggestRecipes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, gen.prompts)
}

func TestRecipeServiceSuggestRecipes_DeduplicatesStockNames(t *testing.T) {
	gen := &stubGenerator{reply: `[]`}
	svc := NewRecipeService(stockOf("Milk", "milk", "Eggs"), &stubDislikes{}, gen, &stubDirectory{}, slog.Default())

	_, err := svc.SuggestRecipes(context.Background())
	require.NoError(t, err)
	assert.Contains(t, gen.prompts[0], "Milk, Eggs")
}

func TestRecipeServiceSuggestRecipes_UnavailableGeneratorPropagates(t *testing.T) {
	gen := &stubGenerator{err: ai.ErrUnavailable}
	svc := NewRecipeService(stockOf("Eggs"), &stubDislikes{}, gen, &stubDirectory{}, slog.Default())

	_, err := svc.SuggestRecipes(context.Background())
	assert.ErrorIs(t, err, ai.ErrUnavailable)
}

func TestRecipeServiceSuggestRecipes_UnparseableReplyIsEmpty(t *testing.T) {
	gen := &stubGenerator{reply: "I would rather not answer in JSON."}
	svc := NewRecipeService(stockOf("Eggs"), &stubDislikes{}, gen, &stubDirectory{}, slog.Default())

	got, err := svc.SuggestRecipes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecipeServiceFilterIngredients(t *testing.T) {
	gen := &stubGenerator{reply: `["Flour", "Butter"]`}
	svc := NewRecipeService(stockOf(), &stubDislikes{}, gen, &stubDirectory{}, slog.Default())

	got, err := svc.FilterIngredients(context.Background(), []string{"FLOUR 2KG 1.99", "BUTTER 250G"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Flour", "Butter"}, got)
}

func TestRecipeServiceSearchByIngredient_Validation(t *testing.T) {
	svc := NewRecipeService(stockOf(), &stubDislikes{}, &stubGenerator{}, &stubDirectory{}, slog.Default())

	_, err := svc.SearchByIngredient(context.Background(), "   ")
	assert.True(t, domain.IsValidation(err))
}

func TestRecipeServiceGetRecipe_NotFound(t *testing.T) {
	svc := NewRecipeService(stockOf(), &stubDislikes{}, &stubGenerator{}, &stubDirectory{recipe: nil}, slog.Default())

	_, err := svc.GetRecipe(context.Background(), "0")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRecipeServiceDislike_Validation(t *testing.T) {
	svc := NewRecipeService(stockOf(), &stubDislikes{}, &stubGenerator{}, &stubDirectory{}, slog.Default())

	err := svc.Dislike(context.Background(), " ")
	assert.True(t, domain.IsValidation(err))
}
