package ai

import (
	"encoding/json"
	"strings"
)

// ExtractJSONArray pulls the first bracketed JSON array of strings out of a
// model's free-text reply. Models wrap the array in prose, code fences or
// nothing at all; the contract here is "a list, possibly empty, never an
// error" — any malformed, missing or non-string-array payload yields an
// empty list.
func ExtractJSONArray(raw string) []string {
	start := strings.IndexByte(raw, '[')
	for start >= 0 {
		if candidate, ok := balancedArray(raw[start:]); ok {
			var items []string
			if err := json.Unmarshal([]byte(candidate), &items); err == nil {
				return cleanStrings(items)
			}
		}
		next := strings.IndexByte(raw[start+1:], '[')
		if next < 0 {
			break
		}
		start += 1 + next
	}
	return []string{}
}

// balancedArray returns the prefix of s spanning the bracket-balanced array
// that s starts with, honouring JSON string escapes.
func balancedArray(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
