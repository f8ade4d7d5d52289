package news

import "strings"

// sourceIDAliases maps free-text publication names to NewsAPI canonical
// source identifiers. Keys are matched case-insensitively.
var sourceIDAliases = map[string]string{
	"wall street journal": "the-wall-street-journal",
	"wsj":                 "the-wall-street-journal",
	"new york times":      "the-new-york-times",
	"nyt":                 "the-new-york-times",
	"washington post":     "the-washington-post",
	"cnn":                 "cnn",
	"bbc":                 "bbc-news",
	"bbc news":            "bbc-news",
	"fox news":            "fox-news",
	"nbc news":            "nbc-news",
	"abc news":            "abc-news",
	"reuters":             "reuters",
	"associated press":    "associated-press",
	"ap":                  "associated-press",
}

// MapPublicationToSourceID resolves a publication name to its NewsAPI source
// id. Unmapped names pass through lower-cased unchanged.
func MapPublicationToSourceID(publication string) string {
	pubLower := strings.ToLower(publication)
	if id, ok := sourceIDAliases[pubLower]; ok {
		return id
	}
	return pubLower
}

// categorySections maps general news categories to NYT section names.
var categorySections = map[string]string{
	"business":   "business",
	"technology": "technology",
	"politics":   "politics",
	"science":    "science",
	"health":     "health",
	"sports":     "sports",
	"arts":       "arts",
	"world":      "world",
	"us":         "us",
}

// MapCategoryToSection resolves a category to an NYT section, defaulting to
// "home" for unknown or empty categories.
func MapCategoryToSection(category string) string {
	if section, ok := categorySections[strings.ToLower(category)]; ok {
		return section
	}
	return "home"
}
