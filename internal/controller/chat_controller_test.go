package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miku-chat-be/internal/dto"
	"miku-chat-be/internal/pkg/serverutils"
	"miku-chat-be/internal/service"
)

type fakeChatService struct {
	lastUsername string
	sendResp     *dto.SendChatResponse
	err          error
}

func (f *fakeChatService) SendChat(ctx context.Context, username string, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	f.lastUsername = username
	return f.sendResp, f.err
}

func (f *fakeChatService) ListSessions(ctx context.Context, username string) ([]*dto.SessionResponse, error) {
	f.lastUsername = username
	return []*dto.SessionResponse{}, f.err
}

func (f *fakeChatService) GetMessages(ctx context.Context, username, sessionId string) ([]*dto.MessageResponse, error) {
	f.lastUsername = username
	return []*dto.MessageResponse{}, f.err
}

func (f *fakeChatService) RenameSession(ctx context.Context, username, sessionId, newName string) error {
	f.lastUsername = username
	return f.err
}

func (f *fakeChatService) DeleteSession(ctx context.Context, username, sessionId string) error {
	f.lastUsername = username
	return f.err
}

func newTestApp(svc service.IChatService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewChatController(svc).RegisterRoutes(api)
	return app
}

func bearerToken(t *testing.T, username string) string {
	t.Helper()
	t.Setenv("JWT_SECRET", "default_secret")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("default_secret"))
	require.NoError(t, err)
	return "Bearer " + signed
}

func TestSendRequiresToken(t *testing.T) {
	app := newTestApp(&fakeChatService{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat/v1", strings.NewReader(`{"text":"hi"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSendUsesUsernameFromToken(t *testing.T) {
	svc := &fakeChatService{sendResp: &dto.SendChatResponse{
		SessionId:   "s-1",
		SessionName: "Chat about rain",
		Response:    "hello!",
	}}
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/v1", strings.NewReader(`{"text":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, "alice"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", svc.lastUsername)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope struct {
		Message string               `json:"message"`
		Data    dto.SendChatResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "s-1", envelope.Data.SessionId)
	assert.Equal(t, "hello!", envelope.Data.Response)
}

func TestSendRejectsEmptyText(t *testing.T) {
	app := newTestApp(&fakeChatService{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat/v1", strings.NewReader(`{"text":""}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, "alice"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnknownSessionMapsToNotFound(t *testing.T) {
	app := newTestApp(&fakeChatService{err: service.ErrSessionNotFound})

	req := httptest.NewRequest(http.MethodDelete, "/api/chat/v1/sessions/missing", nil)
	req.Header.Set("Authorization", bearerToken(t, "alice"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
