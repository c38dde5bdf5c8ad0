package service

import "strings"

// Slugify derives a URL slug from a recipe name: lowercase with every space
// replaced by a hyphen. No collision handling is applied.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// NormalizeIngredientName trims and lowercases an ingredient name so the
// same ingredient is reused across recipes regardless of input casing.
func NormalizeIngredientName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
