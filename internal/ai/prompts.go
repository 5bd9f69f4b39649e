package ai

import (
	"fmt"
	"strings"
)

// The prompts all demand a JSON array embedded in the reply; ExtractJSONArray
// tolerates the prose most models wrap around it.

func RecipeSuggestionPrompt(stock, excluded []string) string {
	var b strings.Builder
	b.WriteString("You are a home cook planning dinner from what is on hand.\n")
	b.WriteString("Current pantry stock: ")
	b.WriteString(strings.Join(stock, ", "))
	b.WriteString(".\n")
	if len(excluded) > 0 {
		b.WriteString("Never suggest these dishes: ")
		b.WriteString(strings.Join(excluded, ", "))
		b.WriteString(".\n")
	}
	b.WriteString("Suggest up to 5 dishes that can be cooked mostly from this stock.\n")
	b.WriteString(`Respond with a JSON array of dish names, e.g. ["Mushroom Risotto", "Frittata"].`)
	return b.String()
}

func IngredientFilterPrompt(lines []string) string {
	return fmt.Sprintf(`The following lines were transcribed from a shopping receipt or a handwritten list:

%s

Extract only the food ingredient names, cleaned up (no quantities, prices, codes or store jargon).
Respond with a JSON array of strings.`, strings.Join(lines, "\n"))
}

func ScannedItemFilterPrompt(lines []string) string {
	return fmt.Sprintf(`The following candidate item names were extracted from a scanned grocery receipt:

%s

Keep only real grocery items, normalise abbreviations to plain product names, and drop totals, discounts and store metadata.
Respond with a JSON array of strings.`, strings.Join(lines, "\n"))
}
