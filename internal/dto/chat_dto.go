package dto

import "time"

type SendChatRequest struct {
	Text      string `json:"text" validate:"required"`
	SessionId string `json:"session_id,omitempty"`
	// Image is an optional transient data URL consumed by the LLM call only.
	Image string `json:"image,omitempty"`
}

type SendChatResponse struct {
	SessionId   string `json:"session_id"`
	SessionName string `json:"session_name"`
	Response    string `json:"response"`
}

type SessionResponse struct {
	Id            string    `json:"id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"created_at"`
	LastMessageAt time.Time `json:"last_message_at"`
	MessageCount  int       `json:"message_count"`
}

type MessageResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type RenameSessionRequest struct {
	Name string `json:"name" validate:"required"`
}
