package models

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one message in a user's conversation history.
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
