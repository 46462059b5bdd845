package auth

import (
	"context"
	"errors"
	"fmt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	credentials Credentials
	tokens      *Tokens
}

func NewService(credentials Credentials, tokens *Tokens) *Service {
	return &Service{
		credentials: credentials,
		tokens:      tokens,
	}
}

// Login checks the pair against the configured account and returns a signed
// token for it.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !s.credentials.Check(username, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}
	return token, nil
}
