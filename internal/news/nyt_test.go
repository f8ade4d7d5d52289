package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-agent/internal/common/config"
	"news-agent/internal/common/logger"
)

func TestLargestImageURL(t *testing.T) {
	tests := []struct {
		name       string
		candidates []nytMultimedia
		expected   string
	}{
		{
			name:     "no candidates",
			expected: "",
		},
		{
			name: "largest width wins",
			candidates: []nytMultimedia{
				{URL: "small.jpg", Width: 100},
				{URL: "large.jpg", Width: 2048},
				{URL: "medium.jpg", Width: 640},
			},
			expected: "large.jpg",
		},
		{
			name: "ties keep the first seen",
			candidates: []nytMultimedia{
				{URL: "first.jpg", Width: 500},
				{URL: "second.jpg", Width: 500},
			},
			expected: "first.jpg",
		},
		{
			name: "zero widths yield nothing",
			candidates: []nytMultimedia{
				{URL: "a.jpg"},
				{URL: "b.jpg"},
			},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, largestImageURL(tt.candidates))
		})
	}
}

func TestSearchImageURL(t *testing.T) {
	candidates := []nytMultimedia{
		{URL: "clips/v.mp4", Type: "video"},
		{URL: "images/pic.jpg", Type: "image"},
		{URL: "images/other.jpg", Type: "image"},
	}

	assert.Equal(t, "https://www.nytimes.com/images/pic.jpg", searchImageURL(candidates))
	assert.Equal(t, "", searchImageURL(nil))
}

func TestNYTClient_TopStories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/topstories/v2/business.json", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("api-key"))

		_ = json.NewEncoder(w).Encode(nytTopStoriesResponse{
			Results: []nytTopStory{
				{
					Title:         "Markets rally",
					Abstract:      "Stocks climbed on Monday.",
					URL:           "https://nyt.example/markets",
					Section:       "business",
					PublishedDate: "2026-08-29",
					Multimedia: []nytMultimedia{
						{URL: "small.jpg", Width: 100},
						{URL: "big.jpg", Width: 1200},
					},
				},
			},
		})
	}))
	defer server.Close()

	client := NewNYTClient(config.NYTConfig{APIKey: "secret", BaseURL: server.URL}, 5*time.Second, logger.NewNoOpLogger())

	articles, err := client.TopStories(context.Background(), "business")
	require.NoError(t, err)
	require.Len(t, articles, 1)

	assert.Equal(t, "Markets rally", articles[0].Title)
	assert.Equal(t, "Stocks climbed on Monday.", articles[0].Description)
	assert.Equal(t, "big.jpg", articles[0].ImageURL)
	assert.Equal(t, "The New York Times", articles[0].Source)
	assert.Equal(t, "2026-08-29", articles[0].PublishedAt)
	assert.Equal(t, "business", articles[0].Section)
}

func TestNYTClient_SearchArticles_SnippetFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/v2/articlesearch.json", r.URL.Path)
		assert.Equal(t, "newest", r.URL.Query().Get("sort"))
		assert.Equal(t, "ukraine", r.URL.Query().Get("q"))

		resp := nytSearchResponse{}
		resp.Response.Docs = []nytSearchDoc{
			{
				Snippet: "only a snippet",
				WebURL:  "https://nyt.example/doc",
				PubDate: "2026-08-28",
			},
		}
		resp.Response.Docs[0].Headline.Main = "Front line report"
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewNYTClient(config.NYTConfig{APIKey: "secret", BaseURL: server.URL}, 5*time.Second, logger.NewNoOpLogger())

	articles, err := client.SearchArticles(context.Background(), "ukraine")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Front line report", articles[0].Title)
	assert.Equal(t, "only a snippet", articles[0].Description)
}

func TestNYTClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewNYTClient(config.NYTConfig{APIKey: "secret", BaseURL: server.URL}, 5*time.Second, logger.NewNoOpLogger())

	_, err := client.TopStories(context.Background(), "home")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FETCH_FAILED")
}
