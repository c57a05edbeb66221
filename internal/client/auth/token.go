package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clipers/clipers-cli/internal/client/storage"
)

// TokenExpiry читает срок действия сохраненного access token.
// Токен только декодируется, подпись не проверяется: проверка подписи —
// дело сервера, клиенту нужна лишь отметка времени для команды status.
func (s *Service) TokenExpiry(ctx context.Context) (time.Time, error) {
	tokens, err := s.tokens.GetTokens(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("no stored tokens: %w", err)
	}
	if tokens.AccessToken == "" {
		return time.Time{}, storage.ErrTokensNotFound
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokens.AccessToken, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse access token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("access token has no expiration claim")
	}

	return exp.Time, nil
}
