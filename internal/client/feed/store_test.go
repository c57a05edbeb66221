package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipers/clipers-cli/internal/client/api"
	"github.com/clipers/clipers-cli/internal/models"
)

// mockAPI реализует api.ClientAPI с программируемыми ответами
type mockAPI struct {
	mu       sync.Mutex
	requests []string
	getFunc  func(path string, result any) error
	postFunc func(path string, body, result any) error
}

var _ api.ClientAPI = (*mockAPI)(nil)

func (m *mockAPI) record(req string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
}

func (m *mockAPI) Get(ctx context.Context, path string, result any) error {
	m.record("GET " + path)
	if m.getFunc != nil {
		return m.getFunc(path, result)
	}
	return nil
}

func (m *mockAPI) Post(ctx context.Context, path string, body, result any) error {
	m.record("POST " + path)
	if m.postFunc != nil {
		return m.postFunc(path, body, result)
	}
	return nil
}

func (m *mockAPI) Put(ctx context.Context, path string, body, result any) error {
	m.record("PUT " + path)
	return nil
}

func (m *mockAPI) Delete(ctx context.Context, path string) error {
	m.record("DELETE " + path)
	return nil
}

func (m *mockAPI) Upload(ctx context.Context, path string, form api.UploadForm, onProgress func(int), result any) error {
	m.record("UPLOAD " + path)
	return nil
}

// decodeInto кодирует value в JSON и декодирует в target,
// имитируя прохождение через сеть
func decodeInto(t *testing.T, value, target any) {
	t.Helper()
	raw, err := json.Marshal(value)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, target))
}

// TestStore_Load проверяет постраничную загрузку ленты
func TestStore_Load(t *testing.T) {
	apiClient := &mockAPI{
		getFunc: func(path string, result any) error {
			assert.True(t, strings.HasPrefix(path, "/posts?"))
			decodeInto(t, map[string]any{
				"posts":   []models.Post{{ID: "p1"}, {ID: "p2"}},
				"hasMore": false,
			}, result)
			return nil
		},
	}
	store := NewStore(apiClient, 10)

	require.NoError(t, store.Load(context.Background(), false))

	posts := store.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, "p1", posts[0].ID)
	assert.False(t, store.HasMore())
	assert.Equal(t, []string{"GET /posts?page=0&size=10"}, apiClient.requests)
}

// TestStore_Create проверяет вставку подтвержденной сервером публикации
// в начало ленты
func TestStore_Create(t *testing.T) {
	apiClient := &mockAPI{
		getFunc: func(path string, result any) error {
			decodeInto(t, map[string]any{
				"posts":   []models.Post{{ID: "old"}},
				"hasMore": false,
			}, result)
			return nil
		},
		postFunc: func(path string, body, result any) error {
			require.Equal(t, "/posts", path)
			input := body.(CreatePostInput)
			assert.Equal(t, "hello world", input.Content)
			assert.Equal(t, models.PostTypeText, input.Type)

			// Сервер возвращает запись с присвоенным id
			decodeInto(t, models.Post{ID: "new", Content: input.Content}, result)
			return nil
		},
	}
	store := NewStore(apiClient, 10)
	require.NoError(t, store.Load(context.Background(), false))

	created, err := store.Create(context.Background(), CreatePostInput{Content: "hello world"})
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)

	posts := store.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].ID)
	assert.Equal(t, "old", posts[1].ID)
}

// TestStore_CreateFailure проверяет, что неудачная публикация
// не меняет ленту
func TestStore_CreateFailure(t *testing.T) {
	apiClient := &mockAPI{
		postFunc: func(path string, body, result any) error {
			return &api.Error{StatusCode: 422, Message: "content required"}
		},
	}
	store := NewStore(apiClient, 10)

	_, err := store.Create(context.Background(), CreatePostInput{})
	require.Error(t, err)
	assert.Empty(t, store.Posts())
}

// TestStore_Like проверяет write-through переключение лайка:
// счетчик и флаг меняются только после успешного ответа сервера
func TestStore_Like(t *testing.T) {
	apiClient := &mockAPI{
		getFunc: func(path string, result any) error {
			decodeInto(t, map[string]any{
				"posts":   []models.Post{{ID: "p1", Likes: 5, IsLiked: false}},
				"hasMore": false,
			}, result)
			return nil
		},
	}
	store := NewStore(apiClient, 10)
	require.NoError(t, store.Load(context.Background(), false))

	// Лайк: 5 -> 6
	require.NoError(t, store.Like(context.Background(), "p1"))
	posts := store.Posts()
	assert.True(t, posts[0].IsLiked)
	assert.Equal(t, 6, posts[0].Likes)

	// Повторный вызов снимает лайк: 6 -> 5
	require.NoError(t, store.Like(context.Background(), "p1"))
	posts = store.Posts()
	assert.False(t, posts[0].IsLiked)
	assert.Equal(t, 5, posts[0].Likes)
}

// TestStore_LikeFailure проверяет, что при ошибке сервера
// лайк не применяется локально
func TestStore_LikeFailure(t *testing.T) {
	apiClient := &mockAPI{
		getFunc: func(path string, result any) error {
			decodeInto(t, map[string]any{
				"posts":   []models.Post{{ID: "p1", Likes: 5}},
				"hasMore": false,
			}, result)
			return nil
		},
		postFunc: func(path string, body, result any) error {
			return fmt.Errorf("server unavailable")
		},
	}
	store := NewStore(apiClient, 10)
	require.NoError(t, store.Load(context.Background(), false))

	err := store.Like(context.Background(), "p1")
	require.Error(t, err)

	posts := store.Posts()
	assert.False(t, posts[0].IsLiked)
	assert.Equal(t, 5, posts[0].Likes)
}

// TestStore_AddComment проверяет дописывание подтвержденного комментария
// к публикации в кеше
func TestStore_AddComment(t *testing.T) {
	apiClient := &mockAPI{
		getFunc: func(path string, result any) error {
			decodeInto(t, map[string]any{
				"posts":   []models.Post{{ID: "p1"}},
				"hasMore": false,
			}, result)
			return nil
		},
		postFunc: func(path string, body, result any) error {
			require.Equal(t, "/posts/p1/comments", path)
			decodeInto(t, models.Comment{ID: "c1", Content: "nice"}, result)
			return nil
		},
	}
	store := NewStore(apiClient, 10)
	require.NoError(t, store.Load(context.Background(), false))

	comment, err := store.AddComment(context.Background(), "p1", "nice")
	require.NoError(t, err)
	assert.Equal(t, "c1", comment.ID)

	posts := store.Posts()
	require.Len(t, posts[0].Comments, 1)
	assert.Equal(t, "nice", posts[0].Comments[0].Content)
}

// TestStore_Comments проверяет загрузку комментариев без кеширования
func TestStore_Comments(t *testing.T) {
	apiClient := &mockAPI{
		getFunc: func(path string, result any) error {
			require.Equal(t, "/posts/p1/comments", path)
			decodeInto(t, []models.Comment{{ID: "c1"}, {ID: "c2"}}, result)
			return nil
		},
	}
	store := NewStore(apiClient, 10)

	comments, err := store.Comments(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}
