package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/clipers/clipers-cli/internal/client/storage"
)

// Фиксированные ключи хранения токенов (см. контракт клиентского хранилища)
var (
	keyAccessToken  = []byte("accessToken")
	keyRefreshToken = []byte("refreshToken")
)

// Compile-time check that Storage implements storage.TokenStorage
var _ storage.TokenStorage = (*Storage)(nil)

// SaveTokens stores both tokens, overwriting any previous pair
func (s *Storage) SaveTokens(ctx context.Context, tokens *storage.TokenPair) error {
	if tokens == nil {
		return fmt.Errorf("tokens are nil")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		if err := bucket.Put(keyAccessToken, []byte(tokens.AccessToken)); err != nil {
			return fmt.Errorf("failed to save access token: %w", err)
		}
		if err := bucket.Put(keyRefreshToken, []byte(tokens.RefreshToken)); err != nil {
			return fmt.Errorf("failed to save refresh token: %w", err)
		}

		return nil
	})
}

// SaveAccessToken overwrites only the access token, keeping the refresh token.
// Используется протоколом восстановления после 401.
func (s *Storage) SaveAccessToken(ctx context.Context, accessToken string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		if err := bucket.Put(keyAccessToken, []byte(accessToken)); err != nil {
			return fmt.Errorf("failed to save access token: %w", err)
		}

		return nil
	})
}

// GetTokens retrieves the stored token pair
func (s *Storage) GetTokens(ctx context.Context) (*storage.TokenPair, error) {
	var tokens *storage.TokenPair

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		access := bucket.Get(keyAccessToken)
		if access == nil {
			return storage.ErrTokensNotFound
		}

		// Копируем значения: данные bolt валидны только внутри транзакции
		tokens = &storage.TokenPair{
			AccessToken:  string(access),
			RefreshToken: string(bucket.Get(keyRefreshToken)),
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// DeleteTokens removes both tokens (logout).
// Logout должен завершаться успешно безусловно, поэтому удаление
// отсутствующих токенов ошибкой не является.
func (s *Storage) DeleteTokens(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		if err := bucket.Delete(keyAccessToken); err != nil {
			return fmt.Errorf("failed to delete access token: %w", err)
		}
		if err := bucket.Delete(keyRefreshToken); err != nil {
			return fmt.Errorf("failed to delete refresh token: %w", err)
		}

		return nil
	})
}
