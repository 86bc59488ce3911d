package codemodel

import (
	"strings"
	"unicode"
)

// CamelCase lowercases the leading run of upper-case letters of s. The last
// letter of a run is kept when the letter after it is lower-case, so it stays
// the start of the next word: Name -> name, IOStream -> ioStream, ID -> id.
// Strings that do not start with an upper-case letter are returned unchanged.
func CamelCase(s string) string {
	if s == "" {
		return s
	}
	chars := []rune(s)
	if !unicode.IsUpper(chars[0]) {
		return s
	}

	for i := range chars {
		if i == 1 && !unicode.IsUpper(chars[i]) {
			break
		}
		hasNext := i+1 < len(chars)
		if i > 0 && hasNext && !unicode.IsUpper(chars[i+1]) {
			break
		}
		chars[i] = unicode.ToLower(chars[i])
	}
	return string(chars)
}

// declaredName strips the verbatim-identifier prefix.
func declaredName(name string) string {
	return strings.TrimLeft(name, "@")
}

// joinDisplay joins the display strings of items with ", ".
func joinDisplay[T Item](items []T) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.DisplayString())
	}
	return strings.Join(parts, ", ")
}
