// Package mealdb backs recipes.Directory with TheMealDB public API.
package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"larder/internal/recipes"
)

const defaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// FilterByIngredient lists meals containing the ingredient. TheMealDB
// answers {"meals": null} when nothing matches; that decodes to an empty
// list here, not an error.
func (c *Client) FilterByIngredient(ctx context.Context, ingredient string) ([]recipes.Summary, error) {
	var respBody struct {
		Meals []struct {
			ID        string `json:"idMeal"`
			Name      string `json:"strMeal"`
			Thumbnail string `json:"strMealThumb"`
		} `json:"meals"`
	}
	if err := c.get(ctx, "/filter.php?i="+url.QueryEscape(ingredient), &respBody); err != nil {
		return nil, err
	}

	summaries := make([]recipes.Summary, 0, len(respBody.Meals))
	for _, meal := range respBody.Meals {
		summaries = append(summaries, recipes.Summary{
			ID:        meal.ID,
			Name:      meal.Name,
			Thumbnail: meal.Thumbnail,
		})
	}
	return summaries, nil
}

// Lookup fetches the full record for one meal id; nil when the id is
// unknown. TheMealDB spreads ingredients over strIngredient1..20 paired
// with strMeasure1..20, so the payload is decoded as a flat field map.
func (c *Client) Lookup(ctx context.Context, id string) (*recipes.Recipe, error) {
	var respBody struct {
		Meals []map[string]*string `json:"meals"`
	}
	if err := c.get(ctx, "/lookup.php?i="+url.QueryEscape(id), &respBody); err != nil {
		return nil, err
	}
	if len(respBody.Meals) == 0 {
		return nil, nil
	}

	fields := respBody.Meals[0]
	recipe := &recipes.Recipe{
		ID:           field(fields, "idMeal"),
		Name:         field(fields, "strMeal"),
		Category:     field(fields, "strCategory"),
		Area:         field(fields, "strArea"),
		Instructions: field(fields, "strInstructions"),
		Thumbnail:    field(fields, "strMealThumb"),
	}
	for i := 1; i <= 20; i++ {
		name := strings.TrimSpace(field(fields, fmt.Sprintf("strIngredient%d", i)))
		if name == "" {
			continue
		}
		recipe.Ingredients = append(recipe.Ingredients, recipes.Ingredient{
			Name:    name,
			Measure: strings.TrimSpace(field(fields, fmt.Sprintf("strMeasure%d", i))),
		})
	}
	return recipe, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call recipe directory: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close recipe directory response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("recipe directory returned status %d: %s", resp.StatusCode, errBody)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func field(fields map[string]*string, key string) string {
	if v := fields[key]; v != nil {
		return *v
	}
	return ""
}
