package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-agent/internal/agent/session"
	"news-agent/internal/common/logger"
	"news-agent/internal/models"
)

type stubNews struct {
	articles []models.Article
	err      error

	headlinesCalls   []string // country values seen
	publicationCalls []string
	topicCalls       []string
}

func (s *stubNews) Headlines(_ context.Context, country, _ string) ([]models.Article, error) {
	s.headlinesCalls = append(s.headlinesCalls, country)
	return s.articles, s.err
}

func (s *stubNews) ByPublication(_ context.Context, name string) ([]models.Article, error) {
	s.publicationCalls = append(s.publicationCalls, name)
	return s.articles, s.err
}

func (s *stubNews) ByTopic(_ context.Context, topic, _ string) ([]models.Article, error) {
	s.topicCalls = append(s.topicCalls, topic)
	return s.articles, s.err
}

type stubDiscussant struct {
	reply string
	err   error

	history  []models.ConversationTurn
	userText string
}

func (s *stubDiscussant) Reply(_ context.Context, history []models.ConversationTurn, userText string) (string, error) {
	s.history = history
	s.userText = userText
	return s.reply, s.err
}

func newTestOrchestrator(t *testing.T, ns *stubNews, d *stubDiscussant) (*Orchestrator, *session.Store) {
	t.Helper()
	store := session.NewStore(24*time.Hour, logger.NewTestLogger(t))
	return New(store, ns, d, logger.NewTestLogger(t)), store
}

func articlesTitled(titles ...string) []models.Article {
	out := make([]models.Article, 0, len(titles))
	for _, title := range titles {
		out = append(out, models.Article{Title: title, Source: "Test"})
	}
	return out
}

func TestHandleUserMessage_Headlines(t *testing.T) {
	ns := &stubNews{articles: articlesTitled("One", "Two", "Three")}
	orch, _ := newTestOrchestrator(t, ns, &stubDiscussant{})

	reply := orch.HandleUserMessage(context.Background(), "u1", "show me the latest headlines")

	assert.Equal(t, "Here are today's top headlines:\nOne\nTwo\nThree", reply)
	require.Len(t, ns.headlinesCalls, 1)
	assert.Equal(t, "us", ns.headlinesCalls[0], "default global region should map to us")
}

func TestHandleUserMessage_HeadlinesCapsAtFiveTitles(t *testing.T) {
	ns := &stubNews{articles: articlesTitled("a", "b", "c", "d", "e", "f", "g")}
	orch, _ := newTestOrchestrator(t, ns, &stubDiscussant{})

	reply := orch.HandleUserMessage(context.Background(), "u1", "top news please")

	assert.Equal(t, "Here are today's top headlines:\na\nb\nc\nd\ne", reply)
}

func TestHandleUserMessage_HeadlinesSkipsEmptyTitles(t *testing.T) {
	ns := &stubNews{articles: []models.Article{
		{Title: "First"},
		{Title: ""},
		{Title: "Second"},
	}}
	orch, _ := newTestOrchestrator(t, ns, &stubDiscussant{})

	reply := orch.HandleUserMessage(context.Background(), "u1", "breaking news")

	assert.Equal(t, "Here are today's top headlines:\nFirst\nSecond", reply)
}

func TestHandleUserMessage_UntitledArticlesDoNotShrinkTheReply(t *testing.T) {
	ns := &stubNews{articles: []models.Article{
		{Title: "a"},
		{Title: ""},
		{Title: "b"},
		{Title: "c"},
		{Title: "d"},
		{Title: "e"},
		{Title: "f"},
	}}
	orch, _ := newTestOrchestrator(t, ns, &stubDiscussant{})

	reply := orch.HandleUserMessage(context.Background(), "u1", "latest headlines")

	// Five titles are drawn from the whole result, not the first five slots.
	assert.Equal(t, "Here are today's top headlines:\na\nb\nc\nd\ne", reply)
}

func TestHandleUserMessage_HeadlinesUsesPreferredRegion(t *testing.T) {
	ns := &stubNews{articles: articlesTitled("One")}
	orch, store := newTestOrchestrator(t, ns, &stubDiscussant{})
	store.MergePreferences("u1", models.PreferencesUpdate{Region: "gb"})

	orch.HandleUserMessage(context.Background(), "u1", "latest headlines")

	require.Len(t, ns.headlinesCalls, 1)
	assert.Equal(t, "gb", ns.headlinesCalls[0])
}

func TestHandleUserMessage_Publication(t *testing.T) {
	ns := &stubNews{articles: articlesTitled("Markets rally")}
	orch, _ := newTestOrchestrator(t, ns, &stubDiscussant{})

	reply := orch.HandleUserMessage(context.Background(), "u1", "any news from the Wall Street Journal?")

	assert.Equal(t, "Here are the latest articles from wall street journal:\nMarkets rally", reply)
	require.Len(t, ns.publicationCalls, 1)
	assert.Equal(t, "wall street journal", ns.publicationCalls[0])
}

func TestHandleUserMessage_Topic(t *testing.T) {
	ns := &stubNews{articles: articlesTitled("Chip shortage eases")}
	orch, _ := newTestOrchestrator(t, ns, &stubDiscussant{})

	reply := orch.HandleUserMessage(context.Background(), "u1", "what's happening in technology?")

	assert.Equal(t, "Here are the latest articles about technology:\nChip shortage eases", reply)
	require.Len(t, ns.topicCalls, 1)
	assert.Equal(t, "technology", ns.topicCalls[0])
}

func TestHandleUserMessage_FetchFailureDegradesToApology(t *testing.T) {
	ns := &stubNews{err: errors.New("boom")}
	orch, store := newTestOrchestrator(t, ns, &stubDiscussant{})

	reply := orch.HandleUserMessage(context.Background(), "u1", "latest headlines")

	assert.Equal(t, "I'm sorry, I couldn't fetch the latest headlines right now. Please try again later.", reply)

	// The failed request still records both turns.
	history := store.History("u1")
	require.Len(t, history, 2)
	assert.Equal(t, models.RoleUser, history[0].Role)
	assert.Equal(t, models.RoleAssistant, history[1].Role)
	assert.Equal(t, reply, history[1].Content)
}

func TestHandleUserMessage_NoArticlesFound(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "headlines",
			input: "latest headlines",
			want:  "I'm sorry, I couldn't find any headlines at the moment. Please try again later.",
		},
		{
			name:  "publication",
			input: "show me cnn",
			want:  "I'm sorry, I couldn't find any recent articles from cnn. Please try another publication or try again later.",
		},
		{
			name:  "topic",
			input: "tell me about sports",
			want:  "I'm sorry, I couldn't find any recent articles about sports. Please try another topic or try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orch, _ := newTestOrchestrator(t, &stubNews{}, &stubDiscussant{})
			reply := orch.HandleUserMessage(context.Background(), "u1", tt.input)
			assert.Equal(t, tt.want, reply)
		})
	}
}

func TestHandleUserMessage_DiscussionPassesHistoryWithoutNewTurn(t *testing.T) {
	d := &stubDiscussant{reply: "Happy to dig into that."}
	orch, store := newTestOrchestrator(t, &stubNews{}, d)

	store.AppendTurn("u1", models.RoleUser, "earlier question")
	store.AppendTurn("u1", models.RoleAssistant, "earlier answer")

	reply := orch.HandleUserMessage(context.Background(), "u1", "what do you think about that?")

	assert.Equal(t, "Happy to dig into that.", reply)
	assert.Equal(t, "what do you think about that?", d.userText)
	// History handed to the collaborator is the prior turns only; the new
	// message travels separately and must not appear twice.
	require.Len(t, d.history, 2)
	assert.Equal(t, "earlier question", d.history[0].Content)
	assert.Equal(t, "earlier answer", d.history[1].Content)
}

func TestHandleUserMessage_DiscussionFailureFallsBack(t *testing.T) {
	d := &stubDiscussant{err: errors.New("model unavailable")}
	orch, _ := newTestOrchestrator(t, &stubNews{}, d)

	reply := orch.HandleUserMessage(context.Background(), "u1", "what do you think?")

	assert.Contains(t, reply, "I'd be happy to discuss this topic.")
}

func TestHandleUserMessage_AppendsUserThenAssistant(t *testing.T) {
	ns := &stubNews{articles: articlesTitled("One")}
	orch, store := newTestOrchestrator(t, ns, &stubDiscussant{})

	orch.HandleUserMessage(context.Background(), "u1", "latest headlines")
	orch.HandleUserMessage(context.Background(), "u1", "top news")

	history := store.History("u1")
	require.Len(t, history, 4)
	assert.Equal(t, models.RoleUser, history[0].Role)
	assert.Equal(t, models.RoleAssistant, history[1].Role)
	assert.Equal(t, models.RoleUser, history[2].Role)
	assert.Equal(t, models.RoleAssistant, history[3].Role)
	assert.Equal(t, "latest headlines", history[0].Content)
	assert.Equal(t, "top news", history[2].Content)
}

func TestInitializeSession_WelcomeWithHeadlines(t *testing.T) {
	ns := &stubNews{articles: articlesTitled("One", "Two")}
	orch, store := newTestOrchestrator(t, ns, &stubDiscussant{})

	welcome := orch.InitializeSession(context.Background(), "u1", nil)

	assert.Equal(t, "Welcome to your News Agent! Here are today's top headlines:\nOne\nTwo", welcome)

	history := store.History("u1")
	require.Len(t, history, 1)
	assert.Equal(t, models.RoleAssistant, history[0].Role)
	assert.Equal(t, welcome, history[0].Content)
}

func TestInitializeSession_DegradedWelcome(t *testing.T) {
	tests := []struct {
		name string
		ns   *stubNews
	}{
		{name: "fetch error", ns: &stubNews{err: errors.New("boom")}},
		{name: "no articles", ns: &stubNews{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orch, _ := newTestOrchestrator(t, tt.ns, &stubDiscussant{})
			welcome := orch.InitializeSession(context.Background(), "u1", nil)
			assert.Equal(t, "Welcome to your News Agent! I'm ready to help you find and discuss the latest news.", welcome)
		})
	}
}

func TestInitializeSession_AppliesPreferences(t *testing.T) {
	ns := &stubNews{articles: articlesTitled("One")}
	orch, store := newTestOrchestrator(t, ns, &stubDiscussant{})

	orch.InitializeSession(context.Background(), "u1", &models.PreferencesUpdate{Region: "de"})

	assert.Equal(t, "de", store.Preferences("u1").Region)
	require.Len(t, ns.headlinesCalls, 1)
	assert.Equal(t, "de", ns.headlinesCalls[0], "welcome headlines should honor the supplied region")
}

func TestUpdatePreferences_ConfirmationNamesChanges(t *testing.T) {
	orch, store := newTestOrchestrator(t, &stubNews{}, &stubDiscussant{})

	reply := orch.UpdatePreferences("u1", models.PreferencesUpdate{
		FavoriteTopics: []string{"technology", "science"},
		Region:         "gb",
	})

	assert.Equal(t, "Your news preferences have been updated. I'll focus on favorite topics: technology, science, region: gb.", reply)

	prefs := store.Preferences("u1")
	assert.Equal(t, []string{"technology", "science"}, prefs.FavoriteTopics)
	assert.Equal(t, "gb", prefs.Region)
	assert.Equal(t, "daily", prefs.UpdateFrequency, "untouched keys keep their prior value")
}

func TestUpdatePreferences_EmptyUpdate(t *testing.T) {
	orch, _ := newTestOrchestrator(t, &stubNews{}, &stubDiscussant{})

	reply := orch.UpdatePreferences("u1", models.PreferencesUpdate{})

	assert.Equal(t, "Your news preferences have been updated.", reply)
}

func TestClearHistory_KeepsPreferences(t *testing.T) {
	orch, _ := newTestOrchestrator(t, &stubNews{articles: articlesTitled("One")}, &stubDiscussant{})

	orch.UpdatePreferences("u1", models.PreferencesUpdate{Region: "fr"})
	orch.HandleUserMessage(context.Background(), "u1", "latest headlines")
	require.NotEmpty(t, orch.History("u1"))

	orch.ClearHistory("u1")

	assert.Empty(t, orch.History("u1"))
	assert.Equal(t, "fr", orch.Preferences("u1").Region)
}
