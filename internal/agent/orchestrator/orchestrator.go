// Package orchestrator ties intent classification, the session store, the
// news aggregator and the discussion collaborator into a single request
// pipeline.
package orchestrator

import (
	"context"

	"news-agent/internal/agent/intent"
	"news-agent/internal/agent/session"
	"news-agent/internal/common/logger"
	"news-agent/internal/common/metrics"
	"news-agent/internal/models"
)

// NewsSource fetches articles. Satisfied by *news.Aggregator.
type NewsSource interface {
	Headlines(ctx context.Context, country, category string) ([]models.Article, error)
	ByPublication(ctx context.Context, name string) ([]models.Article, error)
	ByTopic(ctx context.Context, topic, language string) ([]models.Article, error)
}

// Discussant generates free-form conversational replies. Satisfied by
// *discuss.Client.
type Discussant interface {
	Reply(ctx context.Context, history []models.ConversationTurn, userText string) (string, error)
}

// Orchestrator handles one user message end to end: record the turn, classify
// it, dispatch to the right collaborator and compose the reply. Fetch and
// generation failures never escape to the caller; they degrade to fixed
// apologetic replies so the conversation always moves forward.
type Orchestrator struct {
	store      *session.Store
	news       NewsSource
	discussant Discussant
	logger     logger.Logger
}

func New(store *session.Store, news NewsSource, discussant Discussant, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		store:      store,
		news:       news,
		discussant: discussant,
		logger:     log.With(map[string]interface{}{"component": "orchestrator"}),
	}
}

// HandleUserMessage processes one message for the user and returns the
// assistant reply. Exactly two turns are appended to the history per call,
// the user turn then the assistant turn, regardless of downstream outcome.
func (o *Orchestrator) HandleUserMessage(ctx context.Context, userID, text string) string {
	// Snapshot the history before recording the new turn so the discussion
	// collaborator sees prior turns plus the new message exactly once.
	history := o.store.History(userID)
	o.store.AppendTurn(userID, models.RoleUser, text)

	det := intent.Classify(text)
	metrics.RequestsHandled.WithLabelValues(string(det.Kind)).Inc()

	o.logger.Info("handling user message", map[string]interface{}{
		"userId": userID,
		"intent": string(det.Kind),
	})

	var reply string
	switch det.Kind {
	case intent.FetchHeadlines:
		articles, err := o.news.Headlines(ctx, o.headlinesCountry(userID), "")
		if err != nil {
			o.logger.WithError(err).Warn("headline fetch failed", map[string]interface{}{"userId": userID})
		}
		reply = composeHeadlinesReply(articles, err)

	case intent.FetchPublication:
		articles, err := o.news.ByPublication(ctx, det.Publication)
		if err != nil {
			o.logger.WithError(err).Warn("publication fetch failed", map[string]interface{}{
				"userId":      userID,
				"publication": det.Publication,
			})
		}
		reply = composePublicationReply(det.Publication, articles, err)

	case intent.FetchTopic:
		articles, err := o.news.ByTopic(ctx, det.Topic, "en")
		if err != nil {
			o.logger.WithError(err).Warn("topic fetch failed", map[string]interface{}{
				"userId": userID,
				"topic":  det.Topic,
			})
		}
		reply = composeTopicReply(det.Topic, articles, err)

	case intent.UpdatePreferences:
		// The message itself carries no structured payload; the settings
		// endpoint does. Acknowledge so the client can surface its form.
		reply = preferencesUpdatedReply

	default:
		reply = o.discuss(ctx, userID, history, text)
	}

	o.store.AppendTurn(userID, models.RoleAssistant, reply)
	return reply
}

func (o *Orchestrator) discuss(ctx context.Context, userID string, history []models.ConversationTurn, text string) string {
	reply, err := o.discussant.Reply(ctx, history, text)
	if err != nil {
		o.logger.WithError(err).Warn("discussion reply failed", map[string]interface{}{"userId": userID})
		return discussionFallbackReply
	}
	return reply
}

// InitializeSession creates (or refreshes) the user's session, applies an
// optional preferences payload and returns a welcome message seeded with
// current headlines. The welcome is recorded as the first assistant turn.
func (o *Orchestrator) InitializeSession(ctx context.Context, userID string, update *models.PreferencesUpdate) string {
	o.store.GetOrCreate(userID)
	if update != nil && !update.IsEmpty() {
		o.store.MergePreferences(userID, *update)
	}

	articles, err := o.news.Headlines(ctx, o.headlinesCountry(userID), "")
	if err != nil {
		o.logger.WithError(err).Warn("welcome headline fetch failed", map[string]interface{}{"userId": userID})
	}
	welcome := composeWelcome(articles, err)

	o.store.AppendTurn(userID, models.RoleAssistant, welcome)
	return welcome
}

// UpdatePreferences merges the partial update into the user's preferences and
// returns a confirmation naming what changed.
func (o *Orchestrator) UpdatePreferences(userID string, update models.PreferencesUpdate) string {
	o.store.MergePreferences(userID, update)
	return composePreferencesReply(update)
}

// Preferences returns the user's current preferences.
func (o *Orchestrator) Preferences(userID string) models.Preferences {
	return o.store.Preferences(userID)
}

// History returns the user's conversation history in order.
func (o *Orchestrator) History(userID string) []models.ConversationTurn {
	return o.store.History(userID)
}

// ClearHistory wipes the user's conversation history, preferences intact.
func (o *Orchestrator) ClearHistory(userID string) {
	o.store.ClearHistory(userID)
}

// headlinesCountry maps the user's preferred region to a provider country
// code. The "global" default has no provider equivalent and falls back to
// "us".
func (o *Orchestrator) headlinesCountry(userID string) string {
	region := o.store.Preferences(userID).Region
	if region == "" || region == "global" {
		return "us"
	}
	return region
}
