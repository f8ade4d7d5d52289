package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Headlines(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plain trigger", "show me the latest headlines"},
		{"mixed case", "What's the Breaking News today?"},
		{"surrounded by words", "hey could you get me the TOP NEWS please"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.input)
			assert.Equal(t, FetchHeadlines, result.Kind)
		})
	}
}

func TestClassify_Publication(t *testing.T) {
	result := Classify("What's new in the Wall Street Journal?")

	assert.Equal(t, FetchPublication, result.Kind)
	assert.Equal(t, "wall street journal", result.Publication)
}

func TestClassify_PublicationBeatsTopic(t *testing.T) {
	// "cnn" and "politics" both appear; publication check precedes topic check
	result := Classify("what does cnn say about politics")

	assert.Equal(t, FetchPublication, result.Kind)
	assert.Equal(t, "cnn", result.Publication)
}

func TestClassify_HeadlinesBeatsPublication(t *testing.T) {
	result := Classify("breaking news from the bbc")

	assert.Equal(t, FetchHeadlines, result.Kind)
}

func TestClassify_Topic(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"category", "any news about technology lately?", "technology"},
		{"event keyword", "what's happening in ukraine", "ukraine"},
		{"category before event keyword", "the politics of the election", "politics"},
		{"case insensitive", "Tell me about CLIMATE change", "climate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.input)
			assert.Equal(t, FetchTopic, result.Kind)
			assert.Equal(t, tt.expected, result.Topic)
		})
	}
}

func TestClassify_Preferences(t *testing.T) {
	result := Classify("I'd like to change my settings")

	assert.Equal(t, UpdatePreferences, result.Kind)
}

func TestClassify_DefaultsToDiscussion(t *testing.T) {
	tests := []string{
		"what do you think about all this",
		"hello there",
		"",
	}

	for _, input := range tests {
		result := Classify(input)
		assert.Equal(t, Discussion, result.Kind, "input: %q", input)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	input := "bbc coverage of the covid election in ukraine"

	first := Classify(input)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(input))
	}
}
