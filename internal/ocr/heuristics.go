package ocr

import (
	"regexp"
	"strings"
)

// Receipt lines that are only a price or only a date carry no item name.
var (
	pureLinePrice = regexp.MustCompile(`^[-$€£]*\s*\d+[.,]\d{2}\s*[$€£]?\s*$`)
	pureLineDate  = regexp.MustCompile(`^\d{1,4}[./-]\d{1,2}[./-]\d{1,4}\.?$`)

	// "2x ", "3 x ", "12X" quantity prefixes.
	leadingQuantity = regexp.MustCompile(`(?i)^\d+\s*x\s+`)

	// Trailing price tokens, with or without a currency sign and an optional
	// single tax-class letter ("1.99 A" on German receipts).
	trailingPrice = regexp.MustCompile(`\s+[-$€£]?\d+[.,]\d{2}\s*[$€£]?\s*[A-Z]?$`)
)

// Lines splits raw extracted text into non-empty trimmed lines.
func Lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ProbableItemNames filters receipt lines down to lines that plausibly name
// a purchased item: pure-price and pure-date lines are dropped, leading
// quantity tokens ("2x") and trailing price tokens are stripped. Purely
// lexical; anything smarter belongs to the AI filter, whose failure falls
// back to this list.
func ProbableItemNames(lines []string) []string {
	var out []string
	for _, line := range lines {
		line = leadingQuantity.ReplaceAllString(line, "")
		line = trailingPrice.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" || pureLinePrice.MatchString(line) || pureLineDate.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}
