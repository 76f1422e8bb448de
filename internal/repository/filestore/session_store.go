package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"

	"miku-chat-be/internal/constant"
	"miku-chat-be/internal/entity"
	"miku-chat-be/internal/pkg/logger"
	"miku-chat-be/internal/repository/contract"
	"miku-chat-be/pkg/namer"
)

// SessionStore keeps one collection per user: an in-memory map guarded by a
// per-user mutex, mirrored to <dir>/<sanitized-username>_sessions.json on
// every mutation. The single-slot "current user" cache of older designs is
// gone; users never share state, so cross-user requests cannot clobber each
// other's files.
type SessionStore struct {
	dir         string
	namer       namer.Namer
	nameTimeout time.Duration
	log         logger.ILogger

	mu    sync.Mutex // guards users map shape only
	users map[string]*userCollection
}

// userCollection is the working set for one user. mu serializes every
// operation touching the collection or its file, which makes the
// read-modify-write flush safe without file locking.
type userCollection struct {
	mu       sync.Mutex
	loaded   bool
	sessions map[string]*entity.ChatSession
	order    []string // insertion order, breaks recency ties
}

var _ contract.SessionStore = &SessionStore{}

func NewSessionStore(dir string, n namer.Namer, nameTimeout time.Duration, log logger.ILogger) (*SessionStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sessions dir: %w", err)
	}
	return &SessionStore{
		dir:         dir,
		namer:       n,
		nameTimeout: nameTimeout,
		log:         log,
		users:       make(map[string]*userCollection),
	}, nil
}

// SanitizeUsername keeps letters and digits from any script plus '_' and '-',
// matching the on-disk naming scheme for user session files. CJK usernames
// must stay distinct after sanitization, so this is Unicode-aware rather than
// ASCII-only.
func SanitizeUsername(username string) string {
	var b strings.Builder
	for _, r := range username {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *SessionStore) userFilePath(username string) string {
	return filepath.Join(s.dir, SanitizeUsername(username)+"_sessions.json")
}

// collection returns the user's working set, loading it from disk on first
// touch. ListSessions forces a reload regardless. The map is keyed by the
// sanitized name: raw usernames that collapse to the same file must share one
// collection and one mutex, or their flushes would race on that file.
func (s *SessionStore) collection(username string) *userCollection {
	key := SanitizeUsername(username)
	s.mu.Lock()
	c, ok := s.users[key]
	if !ok {
		c = &userCollection{sessions: make(map[string]*entity.ChatSession)}
		s.users[key] = c
	}
	s.mu.Unlock()
	return c
}

// load replaces the collection with the file contents. Caller holds c.mu.
func (s *SessionStore) load(c *userCollection, username string) {
	c.sessions = make(map[string]*entity.ChatSession)
	c.order = nil
	c.loaded = true

	path := s.userFilePath(username)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Error("SessionStore", "Failed to read sessions file", map[string]interface{}{
				"user": username, "path": path, "error": err.Error(),
			})
		}
		return
	}

	var sessions []*entity.ChatSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		// Deliberate policy: a corrupt file yields an empty collection. The
		// original bytes are parked under .corrupt so the next flush does not
		// destroy the evidence.
		s.log.Error("SessionStore", "Corrupt sessions file, starting empty", map[string]interface{}{
			"user": username, "path": path, "error": err.Error(),
		})
		if renameErr := os.Rename(path, path+".corrupt"); renameErr != nil {
			s.log.Warn("SessionStore", "Could not preserve corrupt sessions file", map[string]interface{}{
				"user": username, "error": renameErr.Error(),
			})
		}
		return
	}

	for _, sess := range sessions {
		if sess == nil || sess.Id == "" {
			continue
		}
		if sess.Messages == nil {
			sess.Messages = []entity.ChatMessage{}
		}
		c.sessions[sess.Id] = sess
		c.order = append(c.order, sess.Id)
	}
}

func (s *SessionStore) ensureLoaded(c *userCollection, username string) {
	if !c.loaded {
		s.load(c, username)
	}
}

// flush serializes the whole collection, in insertion order, via a temp file
// and an atomic rename. Caller holds c.mu.
func (s *SessionStore) flush(c *userCollection, username string) error {
	sessions := make([]*entity.ChatSession, 0, len(c.order))
	for _, id := range c.order {
		if sess, ok := c.sessions[id]; ok {
			sessions = append(sessions, sess)
		}
	}

	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sessions for %s: %w", username, err)
	}

	path := s.userFilePath(username)
	tmp, err := os.CreateTemp(s.dir, SanitizeUsername(username)+"_sessions-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp sessions file for %s: %w", username, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write sessions for %s: %w", username, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close sessions file for %s: %w", username, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace sessions file for %s: %w", username, err)
	}
	return nil
}

func (s *SessionStore) CreateSession(ctx context.Context, firstMessage, username string) (string, error) {
	name := s.generateName(ctx, firstMessage)

	c := s.collection(username)
	c.mu.Lock()
	defer c.mu.Unlock()
	s.ensureLoaded(c, username)

	now := entity.Now()
	sess := &entity.ChatSession{
		Id:            uuid.New().String(),
		Name:          name,
		CreatedAt:     now,
		LastMessageAt: now,
		MessageCount:  0,
		Messages:      []entity.ChatMessage{},
	}

	c.sessions[sess.Id] = sess
	c.order = append(c.order, sess.Id)

	if err := s.flush(c, username); err != nil {
		// Memory and disk have diverged; the caller decides what to do.
		return "", err
	}
	return sess.Id, nil
}

// generateName asks the Namer with a bounded wait. Any failure degrades to the
// deterministic "Chat MM-DD HH:MM" fallback; creation never fails over naming.
func (s *SessionStore) generateName(ctx context.Context, firstMessage string) string {
	seed := firstMessage
	if runes := []rune(seed); len(runes) > constant.SessionNameSeedMaxLen {
		seed = string(runes[:constant.SessionNameSeedMaxLen])
	}

	nameCtx, cancel := context.WithTimeout(ctx, s.nameTimeout)
	defer cancel()

	title, err := s.namer.Name(nameCtx, seed)
	if err != nil {
		s.log.Warn("SessionStore", "Session naming failed, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Sprintf("Chat %s", time.Now().Format("01-02 15:04"))
	}

	title = strings.Trim(strings.TrimSpace(title), `"'`)
	if title == "" {
		return fmt.Sprintf("Chat %s", time.Now().Format("01-02 15:04"))
	}
	return entity.TruncateName(title)
}

func (s *SessionStore) ListSessions(ctx context.Context, username string) ([]*entity.ChatSession, error) {
	c := s.collection(username)
	c.mu.Lock()
	defer c.mu.Unlock()

	// Always re-read the file so the listing reflects durable state.
	s.load(c, username)

	sessions := make([]*entity.ChatSession, 0, len(c.order))
	for _, id := range c.order {
		if sess, ok := c.sessions[id]; ok {
			sessions = append(sessions, copySession(sess))
		}
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].LastMessageAt.After(sessions[j].LastMessageAt.Time)
	})
	return sessions, nil
}

func (s *SessionStore) GetSession(id, username string) (*entity.ChatSession, bool) {
	c := s.collection(username)
	c.mu.Lock()
	defer c.mu.Unlock()
	s.ensureLoaded(c, username)

	sess, ok := c.sessions[id]
	if !ok {
		return nil, false
	}
	return copySession(sess), true
}

func (s *SessionStore) AddMessage(ctx context.Context, id string, msg entity.ChatMessage, username string) error {
	c := s.collection(username)
	c.mu.Lock()
	defer c.mu.Unlock()
	s.ensureLoaded(c, username)

	sess, ok := c.sessions[id]
	if !ok {
		// Matches the observed contract: appending to an unknown session is
		// silently ignored.
		return nil
	}

	if msg.Timestamp.IsZero() {
		msg.Timestamp = entity.Now()
	}
	sess.Messages = append(sess.Messages, msg)
	sess.MessageCount = len(sess.Messages)
	sess.LastMessageAt = entity.Now()

	return s.flush(c, username)
}

func (s *SessionStore) RenameSession(ctx context.Context, id, newName, username string) (bool, error) {
	c := s.collection(username)
	c.mu.Lock()
	defer c.mu.Unlock()
	s.ensureLoaded(c, username)

	sess, ok := c.sessions[id]
	if !ok {
		return false, nil
	}

	sess.Name = entity.TruncateName(newName)
	if err := s.flush(c, username); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, id, username string) (bool, error) {
	c := s.collection(username)
	c.mu.Lock()
	defer c.mu.Unlock()
	s.ensureLoaded(c, username)

	if _, ok := c.sessions[id]; !ok {
		return false, nil
	}

	delete(c.sessions, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	if err := s.flush(c, username); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SessionStore) GetMessages(id, username string) []entity.ChatMessage {
	c := s.collection(username)
	c.mu.Lock()
	defer c.mu.Unlock()
	s.ensureLoaded(c, username)

	sess, ok := c.sessions[id]
	if !ok {
		return []entity.ChatMessage{}
	}
	msgs := make([]entity.ChatMessage, len(sess.Messages))
	copy(msgs, sess.Messages)
	return msgs
}

// copySession hands callers their own session value so later store mutations
// cannot race with whatever they do with it.
func copySession(sess *entity.ChatSession) *entity.ChatSession {
	cp := *sess
	cp.Messages = make([]entity.ChatMessage, len(sess.Messages))
	copy(cp.Messages, sess.Messages)
	return &cp
}
