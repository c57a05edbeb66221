package storage

import "context"

// TokenStorage defines interface for durable client-side token storage.
// Tokens survive process restarts and are overwritten last-write-wins:
// no transactional guarantee is provided or required.
type TokenStorage interface {
	// SaveTokens stores the full token pair (login/register)
	SaveTokens(ctx context.Context, tokens *TokenPair) error

	// SaveAccessToken overwrites only the access token (refresh flow)
	SaveAccessToken(ctx context.Context, accessToken string) error

	// GetTokens retrieves the stored token pair.
	// Returns ErrTokensNotFound if no tokens exist.
	GetTokens(ctx context.Context) (*TokenPair, error)

	// DeleteTokens removes both tokens (logout, unrecoverable refresh failure).
	// Deleting absent tokens is not an error.
	DeleteTokens(ctx context.Context) error
}

// TokenPair представляет пару токенов текущей сессии.
// Access token короткоживущий, refresh token долгоживущий.
// Хранятся открытым текстом под фиксированными ключами
// accessToken / refreshToken.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
