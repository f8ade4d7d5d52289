package news

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"news-agent/internal/common/config"
	apperrors "news-agent/internal/common/errors"
	"news-agent/internal/common/logger"
	"news-agent/internal/common/metrics"
	"news-agent/internal/models"
)

const nytSourceName = "The New York Times"

// NYTClient talks to the secondary provider (NYT Top Stories and Article
// Search APIs).
type NYTClient struct {
	cfg    config.NYTConfig
	client *http.Client
	logger logger.Logger
}

func NewNYTClient(cfg config.NYTConfig, timeout time.Duration, log logger.Logger) *NYTClient {
	return &NYTClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: log.With(map[string]interface{}{"provider": "nyt"}),
	}
}

func (c *NYTClient) Configured() bool {
	return c.cfg.APIKey != ""
}

type nytMultimedia struct {
	URL   string `json:"url"`
	Type  string `json:"type"`
	Width int    `json:"width"`
}

type nytTopStory struct {
	Title         string          `json:"title"`
	Abstract      string          `json:"abstract"`
	URL           string          `json:"url"`
	Section       string          `json:"section"`
	PublishedDate string          `json:"published_date"`
	Multimedia    []nytMultimedia `json:"multimedia"`
}

type nytTopStoriesResponse struct {
	Results []nytTopStory `json:"results"`
}

type nytSearchDoc struct {
	Headline struct {
		Main string `json:"main"`
	} `json:"headline"`
	Abstract    string          `json:"abstract"`
	Snippet     string          `json:"snippet"`
	WebURL      string          `json:"web_url"`
	PubDate     string          `json:"pub_date"`
	SectionName string          `json:"section_name"`
	Multimedia  []nytMultimedia `json:"multimedia"`
}

type nytSearchResponse struct {
	Response struct {
		Docs []nytSearchDoc `json:"docs"`
	} `json:"response"`
}

// TopStories fetches the top stories for an NYT section.
func (c *NYTClient) TopStories(ctx context.Context, section string) ([]models.Article, error) {
	params := url.Values{}
	params.Set("api-key", c.cfg.APIKey)

	c.logger.Info("fetching top stories", map[string]interface{}{
		"section": section,
	})

	start := time.Now()
	var payload nytTopStoriesResponse
	err := getJSON(ctx, c.client, c.cfg.BaseURL+"/topstories/v2/"+section+".json?"+params.Encode(), &payload)
	metrics.ProviderFetchDuration.WithLabelValues("nyt").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderFetches.WithLabelValues("nyt", "error").Inc()
		return nil, apperrors.NewFetchError("nyt", err)
	}
	metrics.ProviderFetches.WithLabelValues("nyt", "success").Inc()

	articles := make([]models.Article, 0, len(payload.Results))
	for _, story := range payload.Results {
		articles = append(articles, models.Article{
			Title:       story.Title,
			Description: story.Abstract,
			URL:         story.URL,
			ImageURL:    largestImageURL(story.Multimedia),
			Source:      nytSourceName,
			PublishedAt: story.PublishedDate,
			Section:     story.Section,
		})
	}
	return articles, nil
}

// SearchArticles searches NYT articles sorted by newest.
func (c *NYTClient) SearchArticles(ctx context.Context, query string) ([]models.Article, error) {
	params := url.Values{}
	params.Set("api-key", c.cfg.APIKey)
	params.Set("q", query)
	params.Set("sort", "newest")

	c.logger.Info("searching articles", map[string]interface{}{
		"query": query,
	})

	start := time.Now()
	var payload nytSearchResponse
	err := getJSON(ctx, c.client, c.cfg.BaseURL+"/search/v2/articlesearch.json?"+params.Encode(), &payload)
	metrics.ProviderFetchDuration.WithLabelValues("nyt").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderFetches.WithLabelValues("nyt", "error").Inc()
		return nil, apperrors.NewFetchError("nyt", err)
	}
	metrics.ProviderFetches.WithLabelValues("nyt", "success").Inc()

	articles := make([]models.Article, 0, len(payload.Response.Docs))
	for _, doc := range payload.Response.Docs {
		description := doc.Abstract
		if description == "" {
			description = doc.Snippet
		}
		articles = append(articles, models.Article{
			Title:       doc.Headline.Main,
			Description: description,
			URL:         doc.WebURL,
			ImageURL:    searchImageURL(doc.Multimedia),
			Source:      nytSourceName,
			PublishedAt: doc.PubDate,
			Section:     doc.SectionName,
		})
	}
	return articles, nil
}

// largestImageURL picks the candidate with the largest declared width.
// Ties keep the first seen.
func largestImageURL(candidates []nytMultimedia) string {
	best := ""
	maxWidth := 0
	for _, image := range candidates {
		if image.Width > maxWidth {
			maxWidth = image.Width
			best = image.URL
		}
	}
	return best
}

// searchImageURL picks the first multimedia entry of type "image" from
// article search results, prefixed with the NYT site.
func searchImageURL(candidates []nytMultimedia) string {
	for _, m := range candidates {
		if m.Type == "image" {
			return "https://www.nytimes.com/" + m.URL
		}
	}
	return ""
}
