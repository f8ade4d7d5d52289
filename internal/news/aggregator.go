package news

import (
	"context"
	"strings"
	"time"

	"news-agent/internal/agent/cache"
	"news-agent/internal/common/logger"
	"news-agent/internal/models"
)

// Aggregator routes each request shape to the right provider in priority
// order and serves results through per-shape TTL caches. When no provider
// credential is configured it degrades to empty results rather than failing;
// provider failures propagate untouched, never replaced with placeholders.
type Aggregator struct {
	newsAPI  *NewsAPIClient
	nyt      *NYTClient
	guardian *GuardianClient

	headlines    *cache.Cache
	topics       *cache.Cache
	publications *cache.Cache

	logger logger.Logger
}

func NewAggregator(newsAPI *NewsAPIClient, nyt *NYTClient, guardian *GuardianClient, ttl time.Duration, log logger.Logger) *Aggregator {
	return &Aggregator{
		newsAPI:      newsAPI,
		nyt:          nyt,
		guardian:     guardian,
		headlines:    cache.New("headlines", ttl),
		topics:       cache.New("topics", ttl),
		publications: cache.New("publications", ttl),
		logger:       log.With(map[string]interface{}{"component": "aggregator"}),
	}
}

// Headlines returns top headlines for a country, optionally filtered by
// category. NewsAPI is used exclusively when configured; otherwise NYT top
// stories with the category mapped into NYT's section taxonomy; with no
// provider at all the result is empty, not an error.
func (a *Aggregator) Headlines(ctx context.Context, country, category string) ([]models.Article, error) {
	key := country + "-" + category

	return a.headlines.GetOrFetch(ctx, key, func() ([]models.Article, error) {
		switch {
		case a.newsAPI.Configured():
			return a.newsAPI.TopHeadlines(ctx, country, category)
		case a.nyt.Configured():
			section := "home"
			if category != "" {
				section = MapCategoryToSection(category)
			}
			return a.nyt.TopStories(ctx, section)
		default:
			a.logger.Warn("no provider configured for headlines", map[string]interface{}{
				"country":  country,
				"category": category,
			})
			return []models.Article{}, nil
		}
	})
}

// ByPublication returns recent articles from a named publication. The two
// flagship publications always route to their dedicated APIs, degrading to
// empty when that provider lacks a credential; every other name goes through
// the NewsAPI source search.
func (a *Aggregator) ByPublication(ctx context.Context, name string) ([]models.Article, error) {
	pubLower := strings.ToLower(name)

	return a.publications.GetOrFetch(ctx, pubLower, func() ([]models.Article, error) {
		switch {
		case pubLower == "new york times" || pubLower == "nyt":
			if !a.nyt.Configured() {
				return a.unconfigured(name), nil
			}
			return a.nyt.TopStories(ctx, "home")
		case pubLower == "the guardian" || pubLower == "guardian":
			if !a.guardian.Configured() {
				return a.unconfigured(name), nil
			}
			return a.guardian.Latest(ctx)
		case a.newsAPI.Configured():
			return a.newsAPI.BySource(ctx, MapPublicationToSourceID(name))
		default:
			return a.unconfigured(name), nil
		}
	})
}

func (a *Aggregator) unconfigured(publication string) []models.Article {
	a.logger.Warn("no provider configured for publication", map[string]interface{}{
		"publication": publication,
	})
	return []models.Article{}
}

// ByTopic returns articles matching a topic: NewsAPI full-text search by
// relevance when configured, else NYT article search by newest, else empty.
func (a *Aggregator) ByTopic(ctx context.Context, topic, language string) ([]models.Article, error) {
	topicLower := strings.ToLower(topic)

	return a.topics.GetOrFetch(ctx, topicLower, func() ([]models.Article, error) {
		switch {
		case a.newsAPI.Configured():
			return a.newsAPI.SearchEverything(ctx, topic, language)
		case a.nyt.Configured():
			return a.nyt.SearchArticles(ctx, topic)
		default:
			a.logger.Warn("no provider configured for topic search", map[string]interface{}{
				"topic": topic,
			})
			return []models.Article{}, nil
		}
	})
}
