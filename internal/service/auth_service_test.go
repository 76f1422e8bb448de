package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"miku-chat-be/internal/dto"
	"miku-chat-be/internal/repository/userfile"
)

const testJwtSecret = "test-secret"

func writeUsersFile(t *testing.T, content string) *userfile.Reader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return userfile.NewReader(path)
}

func TestLoginUnknownUserIsAccepted(t *testing.T) {
	users := writeUsersFile(t, `[]`)
	svc := NewAuthService(users, testJwtSecret)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "wanderer"})
	require.NoError(t, err)
	assert.Equal(t, "wanderer", resp.Username)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginChecksPasswordHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	users := writeUsersFile(t, `[{"username":"alice","display_name":"Alice","password_hash":"`+string(hash)+`"}]`)
	svc := NewAuthService(users, testJwtSecret)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", resp.DisplayName)
}

func TestLoginTokenCarriesUsernameClaim(t *testing.T) {
	users := writeUsersFile(t, `[]`)
	svc := NewAuthService(users, testJwtSecret)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice"})
	require.NoError(t, err)

	token, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJwtSecret), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "alice", claims["username"])
	assert.NotNil(t, claims["exp"])
}
