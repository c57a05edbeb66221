package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipers/clipers-cli/internal/client/storage"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

// TestStorage_SaveGetTokens проверяет сохранение и чтение пары токенов
func TestStorage_SaveGetTokens(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	pair := &storage.TokenPair{AccessToken: "tok1", RefreshToken: "ref1"}
	require.NoError(t, s.SaveTokens(ctx, pair))

	got, err := s.GetTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok1", got.AccessToken)
	assert.Equal(t, "ref1", got.RefreshToken)
}

// TestStorage_GetTokens_NotFound проверяет ошибку при пустом хранилище
func TestStorage_GetTokens_NotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetTokens(context.Background())
	assert.ErrorIs(t, err, storage.ErrTokensNotFound)
}

// TestStorage_SaveAccessToken проверяет, что обновление access token
// не трогает refresh token
func TestStorage_SaveAccessToken(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTokens(ctx, &storage.TokenPair{
		AccessToken: "tok1", RefreshToken: "ref1",
	}))

	require.NoError(t, s.SaveAccessToken(ctx, "tok2"))

	got, err := s.GetTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok2", got.AccessToken)
	assert.Equal(t, "ref1", got.RefreshToken)
}

// TestStorage_DeleteTokens проверяет удаление и идемпотентность
func TestStorage_DeleteTokens(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTokens(ctx, &storage.TokenPair{
		AccessToken: "tok1", RefreshToken: "ref1",
	}))

	require.NoError(t, s.DeleteTokens(ctx))

	_, err := s.GetTokens(ctx)
	assert.ErrorIs(t, err, storage.ErrTokensNotFound)

	// Повторное удаление не является ошибкой
	require.NoError(t, s.DeleteTokens(ctx))
}

// TestStorage_Persistence проверяет, что токены переживают
// переоткрытие базы
func TestStorage_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	s1, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, s1.SaveTokens(ctx, &storage.TokenPair{
		AccessToken: "tok1", RefreshToken: "ref1",
	}))
	require.NoError(t, s1.Close())

	s2, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer func() { require.NoError(t, s2.Close()) }()

	got, err := s2.GetTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok1", got.AccessToken)
	assert.Equal(t, "ref1", got.RefreshToken)
}
