// Package intent classifies free-text user input into a typed Intent.
package intent

import "strings"

// Kind enumerates the intent variants.
type Kind string

const (
	FetchHeadlines    Kind = "fetch_headlines"
	FetchPublication  Kind = "fetch_specific_publication"
	FetchTopic        Kind = "fetch_topic"
	UpdatePreferences Kind = "update_preferences"
	Discussion        Kind = "discussion"
)

// Intent is the classified purpose of a user's input. Publication and Topic
// carry the literal matched phrase for their respective kinds.
type Intent struct {
	Kind        Kind   `json:"type"`
	Publication string `json:"publication,omitempty"`
	Topic       string `json:"topic,omitempty"`
}

// Rule tables. Evaluation order is a behavioral contract: headline triggers,
// then publications, then topics (categories before event keywords), then
// preference words, then discussion. First match wins.
var (
	headlineTriggers = []string{
		"latest headlines",
		"top news",
		"breaking news",
	}

	knownPublications = []string{
		"wall street journal",
		"new york times",
		"washington post",
		"cnn",
		"bbc",
		"fox news",
	}

	topicKeywords = []string{
		// Generic categories
		"politics",
		"business",
		"technology",
		"health",
		"science",
		"sports",
		"entertainment",
		// Specific events and locations
		"ukraine",
		"election",
		"covid",
		"climate",
	}

	preferenceKeywords = []string{
		"preferences",
		"settings",
		"configure",
	}
)

// rule pairs a predicate over the lower-cased input with an intent
// constructor, so precedence stays inspectable and testable.
type rule struct {
	match func(string) (string, bool)
	build func(matched string) Intent
}

var rules = []rule{
	{
		match: containsAny(headlineTriggers),
		build: func(string) Intent { return Intent{Kind: FetchHeadlines} },
	},
	{
		match: containsAny(knownPublications),
		build: func(matched string) Intent { return Intent{Kind: FetchPublication, Publication: matched} },
	},
	{
		match: containsAny(topicKeywords),
		build: func(matched string) Intent { return Intent{Kind: FetchTopic, Topic: matched} },
	},
	{
		match: containsAny(preferenceKeywords),
		build: func(string) Intent { return Intent{Kind: UpdatePreferences} },
	},
}

func containsAny(phrases []string) func(string) (string, bool) {
	return func(input string) (string, bool) {
		for _, phrase := range phrases {
			if strings.Contains(input, phrase) {
				return phrase, true
			}
		}
		return "", false
	}
}

// Classify maps raw user text to an Intent. Pure and deterministic;
// case-insensitive substring matching; always produces a variant, defaulting
// to Discussion.
func Classify(text string) Intent {
	input := strings.ToLower(text)

	for _, r := range rules {
		if matched, ok := r.match(input); ok {
			return r.build(matched)
		}
	}

	return Intent{Kind: Discussion}
}
