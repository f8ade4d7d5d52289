// Package news aggregates articles from the configured provider APIs.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"news-agent/internal/common/config"
	apperrors "news-agent/internal/common/errors"
	"news-agent/internal/common/logger"
	"news-agent/internal/common/metrics"
	"news-agent/internal/models"
)

// NewsAPIClient talks to the primary provider (newsapi.org).
type NewsAPIClient struct {
	cfg    config.NewsAPIConfig
	client *http.Client
	logger logger.Logger
}

func NewNewsAPIClient(cfg config.NewsAPIConfig, timeout time.Duration, log logger.Logger) *NewsAPIClient {
	return &NewsAPIClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: log.With(map[string]interface{}{"provider": "newsapi"}),
	}
}

// Configured reports whether a credential is available. An unconfigured
// provider is a valid degraded state, not an error.
func (c *NewsAPIClient) Configured() bool {
	return c.cfg.APIKey != ""
}

type newsAPIArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

// TopHeadlines fetches top headlines for a country, optionally filtered by
// category.
func (c *NewsAPIClient) TopHeadlines(ctx context.Context, country, category string) ([]models.Article, error) {
	params := url.Values{}
	params.Set("country", country)
	if category != "" {
		params.Set("category", category)
	}

	c.logger.Info("fetching top headlines", map[string]interface{}{
		"country":  country,
		"category": category,
	})

	return c.get(ctx, "/top-headlines", params)
}

// SearchEverything runs a full-text search sorted by relevance.
func (c *NewsAPIClient) SearchEverything(ctx context.Context, query, language string) ([]models.Article, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("language", language)
	params.Set("sortBy", "relevancy")

	c.logger.Info("searching by topic", map[string]interface{}{
		"query":    query,
		"language": language,
	})

	return c.get(ctx, "/everything", params)
}

// BySource fetches articles from a canonical source id.
func (c *NewsAPIClient) BySource(ctx context.Context, sourceID string) ([]models.Article, error) {
	params := url.Values{}
	params.Set("sources", sourceID)

	c.logger.Info("searching by source", map[string]interface{}{
		"sourceId": sourceID,
	})

	return c.get(ctx, "/everything", params)
}

func (c *NewsAPIClient) get(ctx context.Context, path string, params url.Values) ([]models.Article, error) {
	params.Set("apiKey", c.cfg.APIKey)

	start := time.Now()
	var payload newsAPIResponse
	err := getJSON(ctx, c.client, c.cfg.BaseURL+path+"?"+params.Encode(), &payload)
	metrics.ProviderFetchDuration.WithLabelValues("newsapi").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderFetches.WithLabelValues("newsapi", "error").Inc()
		return nil, apperrors.NewFetchError("newsapi", err)
	}
	metrics.ProviderFetches.WithLabelValues("newsapi", "success").Inc()

	articles := make([]models.Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		articles = append(articles, models.Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			ImageURL:    a.URLToImage,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
			Content:     a.Content,
		})
	}
	return articles, nil
}

// getJSON issues a GET and decodes the JSON body, treating any non-200
// status as a failure.
func getJSON(ctx context.Context, client *http.Client, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
