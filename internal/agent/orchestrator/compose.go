package orchestrator

import (
	"fmt"
	"strings"

	"news-agent/internal/models"
)

// Fixed reply templates. These strings are behavior-visible to users and to
// tests; keep them stable.
const (
	headlinesPrefix       = "Here are today's top headlines:\n"
	headlinesEmptyReply   = "I'm sorry, I couldn't find any headlines at the moment. Please try again later."
	headlinesFailureReply = "I'm sorry, I couldn't fetch the latest headlines right now. Please try again later."

	welcomePrefix       = "Welcome to your News Agent! Here are today's top headlines:\n"
	welcomeDegradedText = "Welcome to your News Agent! I'm ready to help you find and discuss the latest news."

	discussionFallbackReply = "I'd be happy to discuss this topic. Based on recent news, there have been " +
		"several developments in this area. What specific aspect would you like to know more about?"

	preferencesUpdatedReply = "Your news preferences have been updated."
)

const maxTitles = 5

func composeHeadlinesReply(articles []models.Article, err error) string {
	if err != nil {
		return headlinesFailureReply
	}
	titles := models.Titles(articles, maxTitles)
	if len(titles) == 0 {
		return headlinesEmptyReply
	}
	return headlinesPrefix + strings.Join(titles, "\n")
}

func composePublicationReply(publication string, articles []models.Article, err error) string {
	if err != nil {
		return fmt.Sprintf("I'm sorry, I couldn't fetch articles from %s right now. Please try again later.", publication)
	}
	titles := models.Titles(articles, maxTitles)
	if len(titles) == 0 {
		return fmt.Sprintf("I'm sorry, I couldn't find any recent articles from %s. Please try another publication or try again later.", publication)
	}
	return fmt.Sprintf("Here are the latest articles from %s:\n%s", publication, strings.Join(titles, "\n"))
}

func composeTopicReply(topic string, articles []models.Article, err error) string {
	if err != nil {
		return fmt.Sprintf("I'm sorry, I couldn't fetch articles about %s right now. Please try again later.", topic)
	}
	titles := models.Titles(articles, maxTitles)
	if len(titles) == 0 {
		return fmt.Sprintf("I'm sorry, I couldn't find any recent articles about %s. Please try another topic or try again later.", topic)
	}
	return fmt.Sprintf("Here are the latest articles about %s:\n%s", topic, strings.Join(titles, "\n"))
}

func composePreferencesReply(update models.PreferencesUpdate) string {
	summary := update.Summary()
	if summary == "" {
		return preferencesUpdatedReply
	}
	return fmt.Sprintf("Your news preferences have been updated. I'll focus on %s.", summary)
}

func composeWelcome(articles []models.Article, err error) string {
	if err != nil {
		return welcomeDegradedText
	}
	titles := models.Titles(articles, maxTitles)
	if len(titles) == 0 {
		return welcomeDegradedText
	}
	return welcomePrefix + strings.Join(titles, "\n")
}
