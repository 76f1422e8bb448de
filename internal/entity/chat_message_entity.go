package entity

// ChatMessage is one turn inside a session. Image payloads are consumed
// transiently by the LLM provider and are never part of this record.
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp Time   `json:"timestamp"`
}
