package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"news-agent/internal/agent/orchestrator"
	apperrors "news-agent/internal/common/errors"
	"news-agent/internal/common/logger"
	"news-agent/internal/models"
)

// Analyzer generates a free-form analysis over a set of articles. Satisfied
// by *discuss.Client.
type Analyzer interface {
	Analyze(ctx context.Context, articles []models.Article, prompt string) (string, error)
}

// Router binds the agent API onto an echo instance.
type Router struct {
	e        *echo.Echo
	orch     *orchestrator.Orchestrator
	news     orchestrator.NewsSource
	analyzer Analyzer
	logger   logger.Logger
}

func NewRouter(e *echo.Echo, orch *orchestrator.Orchestrator, news orchestrator.NewsSource, analyzer Analyzer, log logger.Logger) *Router {
	return &Router{
		e:        e,
		orch:     orch,
		news:     news,
		analyzer: analyzer,
		logger:   log.With(map[string]interface{}{"component": "router"}),
	}
}

func (r *Router) Bind() {
	api := r.e.Group("/api")
	api.POST("/initialize", r.initializeHandler)
	api.POST("/request", r.requestHandler)
	api.GET("/headlines", r.headlinesHandler)
	api.GET("/publication/:publication", r.publicationHandler)
	api.GET("/topic/:topic", r.topicHandler)
	api.POST("/analyze", r.analyzeHandler)
	api.GET("/history/:userId", r.historyHandler)
	api.DELETE("/history/:userId", r.clearHistoryHandler)
	api.POST("/preferences/:userId", r.preferencesHandler)

	r.e.GET("/health", r.healthHandler)
	r.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func (r *Router) initializeHandler(c echo.Context) error {
	var req initializeRequest
	if err := decodeAndValidate(c, initializeSchema, &req); err != nil {
		return badRequest(c, "Missing userId", err)
	}

	welcome := r.orch.InitializeSession(c.Request().Context(), req.UserID, req.Preferences)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": welcome,
	})
}

func (r *Router) requestHandler(c echo.Context) error {
	var req userRequest
	if err := decodeAndValidate(c, userRequestSchema, &req); err != nil {
		return badRequest(c, "Missing required fields", err)
	}

	reply := r.orch.HandleUserMessage(c.Request().Context(), req.UserID, req.UserInput)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"response": reply,
	})
}

func (r *Router) headlinesHandler(c echo.Context) error {
	country := c.QueryParam("country")
	if country == "" {
		country = "us"
	}
	category := c.QueryParam("category")

	articles, err := r.news.Headlines(c.Request().Context(), country, category)
	if err != nil {
		r.logger.WithError(err).Error("headline fetch failed", nil)
		return c.JSON(http.StatusInternalServerError, newErrorResponse("Failed to fetch headlines"))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"headlines": articles,
	})
}

func (r *Router) publicationHandler(c echo.Context) error {
	publication := c.Param("publication")

	articles, err := r.news.ByPublication(c.Request().Context(), publication)
	if err != nil {
		r.logger.WithError(err).Error("publication fetch failed", map[string]interface{}{
			"publication": publication,
		})
		return c.JSON(http.StatusInternalServerError,
			newErrorResponse(fmt.Sprintf("Failed to fetch from %s", publication)))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"articles": articles,
	})
}

func (r *Router) topicHandler(c echo.Context) error {
	topic := c.Param("topic")
	language := c.QueryParam("language")
	if language == "" {
		language = "en"
	}

	articles, err := r.news.ByTopic(c.Request().Context(), topic, language)
	if err != nil {
		r.logger.WithError(err).Error("topic fetch failed", map[string]interface{}{
			"topic": topic,
		})
		return c.JSON(http.StatusInternalServerError,
			newErrorResponse(fmt.Sprintf("Failed to fetch news about %s", topic)))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"articles": articles,
	})
}

func (r *Router) analyzeHandler(c echo.Context) error {
	var req analyzeRequest
	if err := decodeAndValidate(c, analyzeSchema, &req); err != nil {
		return badRequest(c, "Missing required fields", err)
	}

	analysis, err := r.analyzer.Analyze(c.Request().Context(), req.Articles, req.Prompt)
	if err != nil {
		r.logger.WithError(err).Error("analysis generation failed", nil)
		return c.JSON(http.StatusInternalServerError, newErrorResponse("Failed to generate analysis"))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"analysis": analysis,
	})
}

func (r *Router) historyHandler(c echo.Context) error {
	userID := c.Param("userId")

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"history": r.orch.History(userID),
	})
}

func (r *Router) clearHistoryHandler(c echo.Context) error {
	userID := c.Param("userId")
	r.orch.ClearHistory(userID)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Conversation history cleared",
	})
}

func (r *Router) preferencesHandler(c echo.Context) error {
	userID := c.Param("userId")

	var req preferencesRequest
	if err := decodeAndValidate(c, preferencesSchema, &req); err != nil {
		return badRequest(c, "Missing required fields", err)
	}

	message := r.orch.UpdatePreferences(userID, req.Preferences)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

func (r *Router) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func badRequest(c echo.Context, message string, err error) error {
	var stdErr *apperrors.StandardError
	if errors.As(err, &stdErr) && stdErr.Details != "" {
		return c.JSON(http.StatusBadRequest, newErrorResponse(message, stdErr.Details))
	}
	return c.JSON(http.StatusBadRequest, newErrorResponse(message))
}
