package api

import "time"

// SupportConversationID is the conversation every account has with support.
const SupportConversationID = "conv-support"

// ChatMessage is one message in a client/lawyer conversation.
type ChatMessage struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// SendMessageRequest is the body of a message post.
type SendMessageRequest struct {
	Body string `json:"body"`
}
