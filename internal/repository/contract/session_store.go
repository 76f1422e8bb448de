package contract

import (
	"context"

	"miku-chat-be/internal/entity"
)

// SessionStore is the authoritative, durable record of chat sessions, scoped
// per user. Every mutation flushes the owning user's whole collection to disk
// before returning (write-through).
type SessionStore interface {
	// CreateSession builds a session named from the first message (LLM title
	// with a deterministic fallback) and returns its id. It only fails on a
	// persistence write failure, never on a naming failure.
	CreateSession(ctx context.Context, firstMessage, username string) (string, error)

	// ListSessions reloads the user's collection from disk and returns it
	// ordered by last activity, most recent first.
	ListSessions(ctx context.Context, username string) ([]*entity.ChatSession, error)

	// GetSession looks up the in-memory working set only. The false case does
	// not distinguish "never existed" from "not loaded".
	GetSession(id, username string) (*entity.ChatSession, bool)

	// AddMessage appends to the session and flushes. An unknown id is a no-op.
	AddMessage(ctx context.Context, id string, msg entity.ChatMessage, username string) error

	// RenameSession truncates the new name to the display limit and flushes.
	// Returns false when the session is absent.
	RenameSession(ctx context.Context, id, newName, username string) (bool, error)

	// DeleteSession removes the session and flushes. Returns false when absent.
	DeleteSession(ctx context.Context, id, username string) (bool, error)

	// GetMessages returns the session's messages, or an empty slice when the
	// session is absent.
	GetMessages(id, username string) []entity.ChatMessage
}
