package service

import (
	"context"
	"log/slog"
	"strings"

	"larder/internal/ai"
	"larder/internal/domain"
	"larder/internal/recipes"
)

// dislikeRepository is the subset of store.DislikeStore that RecipeService
// requires.
type dislikeRepository interface {
	Add(ctx context.Context, name string) error
	Remove(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}

// stockLister is the read-only view of the pantry RecipeService needs.
type stockLister interface {
	List(ctx context.Context) ([]*domain.PantryItem, error)
}

// RecipeService produces recipe proposals from current stock and proxies
// the recipe directory. Disliked names never appear in AI proposals.
type RecipeService struct {
	items     stockLister
	dislikes  dislikeRepository
	generator ai.Generator
	directory recipes.Directory
	logger    *slog.Logger
}

func NewRecipeService(items stockLister, dislikes dislikeRepository, generator ai.Generator, directory recipes.Directory, logger *slog.Logger) *RecipeService {
	return &RecipeService{
		items:     items,
		dislikes:  dislikes,
		generator: generator,
		directory: directory,
		logger:    logger,
	}
}

// SuggestRecipes asks the generator for dishes cookable from current stock,
// excluding disliked names. An unparseable reply yields an empty list; only
// an unavailable or failing generator is an error.
func (s *RecipeService) SuggestRecipes(ctx context.Context) ([]string, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []string{}, nil
	}

	stock := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		key := strings.ToLower(item.Name)
		if !seen[key] {
			stock = append(stock, item.Name)
			seen[key] = true
		}
	}

	disliked, err := s.dislikes.List(ctx)
	if err != nil {
		return nil, err
	}

	reply, err := s.generator.Generate(ctx, ai.RecipeSuggestionPrompt(stock, disliked))
	if err != nil {
		return nil, err
	}

	suggestions := ai.ExtractJSONArray(reply)
	suggestions = s.dropDisliked(suggestions, disliked)
	s.logger.Info("recipe suggestions generated", "stock_items", len(stock), "suggestions", len(suggestions))
	return suggestions, nil
}

// FilterIngredients cleans raw transcribed lines into ingredient names via
// the generator. Parse failure degrades to an empty list, never an error,
// unless the generator itself is unavailable.
func (s *RecipeService) FilterIngredients(ctx context.Context, lines []string) ([]string, error) {
	if len(lines) == 0 {
		return []string{}, nil
	}
	reply, err := s.generator.Generate(ctx, ai.IngredientFilterPrompt(lines))
	if err != nil {
		return nil, err
	}
	return ai.ExtractJSONArray(reply), nil
}

func (s *RecipeService) SearchByIngredient(ctx context.Context, ingredient string) ([]recipes.Summary, error) {
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return nil, domain.Validationf("ingredient must not be empty")
	}
	return s.directory.FilterByIngredient(ctx, ingredient)
}

func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*recipes.Recipe, error) {
	recipe, err := s.directory.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	return recipe, nil
}

func (s *RecipeService) Dislike(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Validationf("recipe name must not be empty")
	}
	return s.dislikes.Add(ctx, name)
}

func (s *RecipeService) Undislike(ctx context.Context, name string) error {
	return s.dislikes.Remove(ctx, name)
}

func (s *RecipeService) ListDislikes(ctx context.Context) ([]string, error) {
	return s.dislikes.List(ctx)
}

// dropDisliked is a second line of defence: the prompt already excludes
// disliked dishes, but the model is free to ignore it.
func (s *RecipeService) dropDisliked(suggestions, disliked []string) []string {
	if len(disliked) == 0 {
		return suggestions
	}
	banned := make(map[string]bool, len(disliked))
	for _, name := range disliked {
		banned[strings.ToLower(name)] = true
	}
	out := make([]string, 0, len(suggestions))
	for _, name := range suggestions {
		if !banned[strings.ToLower(name)] {
			out = append(out, name)
		}
	}
	return out
}
