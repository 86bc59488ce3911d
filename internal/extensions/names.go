package extensions

import (
	"strings"
	"unicode"
)

// PascalCase converts to PascalCase.
func PascalCase(s string) string {
	words := splitWords(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, "")
}

// SnakeCase converts to snake_case.
func SnakeCase(s string) string {
	return strings.ToLower(strings.Join(splitWords(s), "_"))
}

// KebabCase converts to kebab-case.
func KebabCase(s string) string {
	return strings.ToLower(strings.Join(splitWords(s), "-"))
}

// splitWords splits camelCase, PascalCase, snake_case and kebab-case names
// into words. An acronym stays one word: "HTTPServer" is "HTTP", "Server".
func splitWords(s string) []string {
	var (
		words   []string
		current []rune
	)
	runes := []rune(s)

	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' || r == '.' {
			if len(current) > 0 {
				words = append(words, string(current))
				current = nil
			}
			continue
		}

		if unicode.IsUpper(r) && i > 0 && len(current) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				words = append(words, string(current))
				current = nil
			}
		}

		current = append(current, r)
	}

	if len(current) > 0 {
		words = append(words, string(current))
	}
	return words
}

// JSDoc formats comment text as a JSDoc block. A single line stays on one
// line.
func JSDoc(comment string) string {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return ""
	}
	lines := strings.Split(comment, "\n")
	if len(lines) == 1 {
		return "/** " + lines[0] + " */"
	}
	result := []string{"/**"}
	for _, line := range lines {
		result = append(result, strings.TrimRight(" * "+strings.TrimSpace(line), " "))
	}
	result = append(result, " */")
	return strings.Join(result, "\n")
}
