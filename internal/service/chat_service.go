package service

import (
	"context"
	"errors"

	"miku-chat-be/internal/constant"
	"miku-chat-be/internal/dto"
	"miku-chat-be/internal/entity"
	"miku-chat-be/internal/pkg/logger"
	"miku-chat-be/internal/repository/contract"
	"miku-chat-be/pkg/events"
	"miku-chat-be/pkg/llm"
)

var ErrSessionNotFound = errors.New("session not found")

type IChatService interface {
	SendChat(ctx context.Context, username string, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	ListSessions(ctx context.Context, username string) ([]*dto.SessionResponse, error)
	GetMessages(ctx context.Context, username, sessionId string) ([]*dto.MessageResponse, error)
	RenameSession(ctx context.Context, username, sessionId, newName string) error
	DeleteSession(ctx context.Context, username, sessionId string) error
}

type chatService struct {
	store       contract.SessionStore
	llmProvider llm.LLMProvider
	publisher   IPublisherService
	log         logger.ILogger
}

func NewChatService(
	store contract.SessionStore,
	llmProvider llm.LLMProvider,
	publisher IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		store:       store,
		llmProvider: llmProvider,
		publisher:   publisher,
		log:         log,
	}
}

// SendChat drives one exchange: locate or create the session, generate the
// assistant reply from the persona plus history, then append both turns. The
// turns are persisted after generation so a failed LLM call leaves the
// session exactly as it was.
func (s *chatService) SendChat(ctx context.Context, username string, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	sessionId := req.SessionId
	created := false
	if sessionId == "" {
		id, err := s.store.CreateSession(ctx, req.Text, username)
		if err != nil {
			return nil, err
		}
		sessionId = id
		created = true
	}

	sess, ok := s.store.GetSession(sessionId, username)
	if !ok {
		return nil, ErrSessionNotFound
	}

	if created {
		s.publishEvent(ctx, events.NewSessionCreated(sessionId, username, sess.Name))
	}

	history := make([]llm.Message, 0, len(sess.Messages)+2)
	history = append(history, llm.Message{Role: "system", Content: constant.MikuSystemPromptV1})
	for _, m := range sess.Messages {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}
	history = append(history, llm.Message{
		Role:     constant.ChatMessageRoleUser,
		Content:  req.Text,
		ImageURL: req.Image, // transient; never stored
	})

	reply, err := s.llmProvider.Chat(ctx, history)
	if err != nil {
		s.log.Error("ChatService", "Generation failed", map[string]interface{}{
			"session_id": sessionId, "error": err.Error(),
		})
		return nil, err
	}

	if err := s.store.AddMessage(ctx, sessionId, entity.ChatMessage{
		Role:    constant.ChatMessageRoleUser,
		Content: req.Text,
	}, username); err != nil {
		return nil, err
	}
	if err := s.store.AddMessage(ctx, sessionId, entity.ChatMessage{
		Role:    constant.ChatMessageRoleAssistant,
		Content: reply,
	}, username); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.NewMessageAdded(sessionId, username, constant.ChatMessageRoleUser))
	s.publishEvent(ctx, events.NewMessageAdded(sessionId, username, constant.ChatMessageRoleAssistant))

	return &dto.SendChatResponse{
		SessionId:   sessionId,
		SessionName: sess.Name,
		Response:    reply,
	}, nil
}

func (s *chatService) ListSessions(ctx context.Context, username string) ([]*dto.SessionResponse, error) {
	sessions, err := s.store.ListSessions(ctx, username)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		response = append(response, &dto.SessionResponse{
			Id:            sess.Id,
			Name:          sess.Name,
			CreatedAt:     sess.CreatedAt.Time,
			LastMessageAt: sess.LastMessageAt.Time,
			MessageCount:  sess.MessageCount,
		})
	}
	return response, nil
}

func (s *chatService) GetMessages(ctx context.Context, username, sessionId string) ([]*dto.MessageResponse, error) {
	if _, ok := s.store.GetSession(sessionId, username); !ok {
		return nil, ErrSessionNotFound
	}

	msgs := s.store.GetMessages(sessionId, username)
	response := make([]*dto.MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		response = append(response, &dto.MessageResponse{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp.Time,
		})
	}
	return response, nil
}

func (s *chatService) RenameSession(ctx context.Context, username, sessionId, newName string) error {
	ok, err := s.store.RenameSession(ctx, sessionId, newName, username)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

func (s *chatService) DeleteSession(ctx context.Context, username, sessionId string) error {
	ok, err := s.store.DeleteSession(ctx, sessionId, username)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionNotFound
	}
	s.publishEvent(ctx, events.NewSessionDeleted(sessionId, username))
	return nil
}

// publishEvent logs instead of failing; eventing is auxiliary to the exchange.
func (s *chatService) publishEvent(ctx context.Context, evt events.BaseEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.log.Warn("ChatService", "Failed to publish event", map[string]interface{}{
			"type": evt.Type, "error": err.Error(),
		})
	}
}
