package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"miku-chat-be/internal/dto"
	"miku-chat-be/internal/repository/userfile"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	users     *userfile.Reader
	jwtSecret string
}

func NewAuthService(users *userfile.Reader, jwtSecret string) IAuthService {
	return &authService{
		users:     users,
		jwtSecret: jwtSecret,
	}
}

// Login resolves an identity from users.json. Usernames without a record are
// accepted as-is (the store trusts the identity it is handed); a record with a
// password hash requires a bcrypt match.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, found := s.users.Find(req.Username)
	if found && user.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			return nil, ErrInvalidCredentials
		}
	}

	claims := jwt.MapClaims{
		"username": req.Username,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:       signedToken,
		Username:    req.Username,
		DisplayName: user.DisplayName,
		NewsSource:  user.NewsSource,
	}, nil
}
