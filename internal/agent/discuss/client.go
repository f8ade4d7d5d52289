// Package discuss calls the language-generation collaborator. The core
// treats replies as opaque strings; prompt content and wire format live
// entirely in this package.
package discuss

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"news-agent/internal/common/config"
	apperrors "news-agent/internal/common/errors"
	"news-agent/internal/common/logger"
	"news-agent/internal/models"
)

const systemPrompt = "You are News Agent, an AI assistant that helps users stay informed " +
	"about current events. Your goal is to provide accurate, helpful, and informative " +
	"responses about news and current events. You can search for news, summarize articles, " +
	"and discuss topics in a conversational way."

// Client talks to an OpenAI-compatible completions API.
type Client struct {
	cfg    config.OpenAIConfig
	client *http.Client
	logger logger.Logger
}

func NewClient(cfg config.OpenAIConfig, log logger.Logger) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.RequestTimeout()},
		logger: log.With(map[string]interface{}{"component": "discuss"}),
	}
}

func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Reply generates a conversational response from the full ordered history
// plus the new user turn.
func (c *Client) Reply(ctx context.Context, history []models.ConversationTurn, userText string) (string, error) {
	if !c.Configured() {
		return "", apperrors.NewGenerationNotConfiguredError()
	}

	messages := make([]chatMessage, 0, len(history)+2)
	messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	for _, turn := range history {
		messages = append(messages, chatMessage{Role: string(turn.Role), Content: turn.Content})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userText})

	reqBody := chatRequest{
		Model:       c.cfg.ChatModel,
		Messages:    messages,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	var payload chatResponse
	if err := c.post(ctx, "/chat/completions", reqBody, &payload); err != nil {
		return "", err
	}

	if len(payload.Choices) == 0 {
		return "", apperrors.NewGenerationError(errors.New("empty choices in response"))
	}
	return payload.Choices[0].Message.Content, nil
}

type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// Analyze generates an analysis of the given articles guided by prompt. The
// completion context is built from the first 5 articles.
func (c *Client) Analyze(ctx context.Context, articles []models.Article, prompt string) (string, error) {
	if !c.Configured() {
		return "", apperrors.NewGenerationNotConfiguredError()
	}

	var sb strings.Builder
	for i, article := range articles {
		if i == 5 {
			break
		}
		description := article.Description
		if description == "" {
			description = "No description available"
		}
		fmt.Fprintf(&sb, "TITLE: %s\nSOURCE: %s\nDESCRIPTION: %s\n\n", article.Title, article.Source, description)
	}

	reqBody := completionRequest{
		Model:       c.cfg.TextModel,
		Prompt:      fmt.Sprintf("%s\n\nContext from recent news articles:\n%s", prompt, sb.String()),
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	var payload completionResponse
	if err := c.post(ctx, "/completions", reqBody, &payload); err != nil {
		return "", err
	}

	if len(payload.Choices) == 0 {
		return "", apperrors.NewGenerationError(errors.New("empty choices in response"))
	}
	return strings.TrimSpace(payload.Choices[0].Text), nil
}

func (c *Client) post(ctx context.Context, path string, reqBody, out interface{}) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return apperrors.NewGenerationError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return apperrors.NewGenerationError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
			return apperrors.NewGenerationTimeoutError()
		}
		return apperrors.NewGenerationError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.NewGenerationError(fmt.Errorf("status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewGenerationError(fmt.Errorf("decode error: %w", err))
	}
	return nil
}
