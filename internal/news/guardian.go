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

const guardianSourceName = "The Guardian"

// GuardianClient talks to the Guardian content API, used for the dedicated
// Guardian publication path.
type GuardianClient struct {
	cfg    config.GuardianConfig
	client *http.Client
	logger logger.Logger
}

func NewGuardianClient(cfg config.GuardianConfig, timeout time.Duration, log logger.Logger) *GuardianClient {
	return &GuardianClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: log.With(map[string]interface{}{"provider": "guardian"}),
	}
}

func (c *GuardianClient) Configured() bool {
	return c.cfg.APIKey != ""
}

type guardianResult struct {
	WebTitle           string `json:"webTitle"`
	WebURL             string `json:"webUrl"`
	WebPublicationDate string `json:"webPublicationDate"`
	SectionName        string `json:"sectionName"`
	Fields             struct {
		TrailText string `json:"trailText"`
		Thumbnail string `json:"thumbnail"`
	} `json:"fields"`
}

type guardianResponse struct {
	Response struct {
		Results []guardianResult `json:"results"`
	} `json:"response"`
}

// Latest fetches recent Guardian news articles.
func (c *GuardianClient) Latest(ctx context.Context) ([]models.Article, error) {
	params := url.Values{}
	params.Set("api-key", c.cfg.APIKey)
	params.Set("show-fields", "headline,trailText,thumbnail,byline,publication")
	params.Set("section", "news")

	c.logger.Info("fetching latest articles", nil)

	start := time.Now()
	var payload guardianResponse
	err := getJSON(ctx, c.client, c.cfg.BaseURL+"/search?"+params.Encode(), &payload)
	metrics.ProviderFetchDuration.WithLabelValues("guardian").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderFetches.WithLabelValues("guardian", "error").Inc()
		return nil, apperrors.NewFetchError("guardian", err)
	}
	metrics.ProviderFetches.WithLabelValues("guardian", "success").Inc()

	articles := make([]models.Article, 0, len(payload.Response.Results))
	for _, result := range payload.Response.Results {
		articles = append(articles, models.Article{
			Title:       result.WebTitle,
			Description: result.Fields.TrailText,
			URL:         result.WebURL,
			ImageURL:    result.Fields.Thumbnail,
			Source:      guardianSourceName,
			PublishedAt: result.WebPublicationDate,
			Section:     result.SectionName,
		})
	}
	return articles, nil
}
