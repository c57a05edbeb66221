package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
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
	mu         sync.Mutex
	requests   []string
	getFunc    func(path string, result any) error
	postFunc   func(path string, body, result any) error
	putFunc    func(path string, body, result any) error
	deleteFunc func(path string) error
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
	if m.putFunc != nil {
		return m.putFunc(path, body, result)
	}
	return nil
}

func (m *mockAPI) Delete(ctx context.Context, path string) error {
	m.record("DELETE " + path)
	if m.deleteFunc != nil {
		return m.deleteFunc(path)
	}
	return nil
}

func (m *mockAPI) Upload(ctx context.Context, path string, form api.UploadForm, onProgress func(int), result any) error {
	m.record("UPLOAD " + path)
	return nil
}

func decodeInto(t *testing.T, value, target any) {
	t.Helper()
	raw, err := json.Marshal(value)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, target))
}

func jobsResponse(t *testing.T, result any, jobs []models.Job, hasMore bool) {
	t.Helper()
	decodeInto(t, map[string]any{"jobs": jobs, "hasMore": hasMore}, result)
}

// TestStore_SearchParams проверяет сборку параметров запроса
// из query и фильтров
func TestStore_SearchParams(t *testing.T) {
	var gotPath string
	apiClient := &mockAPI{
		getFunc: func(path string, result any) error {
			gotPath = path
			jobsResponse(t, result, nil, false)
			return nil
		},
	}
	store := NewStore(apiClient, 20)

	filters := Filters{
		Location:  "Berlin",
		Type:      models.JobTypeFullTime,
		SalaryMin: 50000,
		SalaryMax: 90000,
		Skills:    []string{"go", "sql"},
		Industry:  "fintech",
	}
	require.NoError(t, store.Search(context.Background(), "backend", filters, true))

	require.True(t, strings.HasPrefix(gotPath, "/jobs/public?"))
	params, err := url.ParseQuery(strings.TrimPrefix(gotPath, "/jobs/public?"))
	require.NoError(t, err)

	assert.Equal(t, "backend", params.Get("search"))
	assert.Equal(t, "Berlin", params.Get("location"))
	assert.Equal(t, string(models.JobTypeFullTime), params.Get("type"))
	assert.Equal(t, "50000", params.Get("salaryMin"))
	assert.Equal(t, "90000", params.Get("salaryMax"))
	assert.Equal(t, "fintech", params.Get("industry"))
	assert.Equal(t, []string{"go", "sql"}, params["skills"])
	assert.Equal(t, "0", params.Get("page"))
	assert.Equal(t, "20", params.Get("size"))
}

// TestStore_SearchParams_Empty проверяет, что пустые фильтры
// не попадают в запрос
func TestStore_SearchParams_Empty(t *testing.T) {
	var gotPath string
	apiClient := &mockAPI{
		getFunc: func(path string, result any) error {
			gotPath = path
			jobsResponse(t, result, nil, false)
			return nil
		},
	}
	store := NewStore(apiClient, 10)

	require.NoError(t, store.Search(context.Background(), "", Filters{}, true))

	params, err := url.ParseQuery(strings.TrimPrefix(gotPath, "/jobs/public?"))
	require.NoError(t, err)
	assert.Len(t, params, 2) // только page и size
}

// TestStore_SearchPaging проверяет, что без refresh подгружается
// следующая страница текущего поиска
func TestStore_SearchPaging(t *testing.T) {
	var paths []string
	apiClient := &mockAPI{
		getFunc: func(path string, result any) error {
			paths = append(paths, path)
			jobsResponse(t, result, []models.Job{{ID: fmt.Sprintf("j%d", len(paths))}}, true)
			return nil
		},
	}
	store := NewStore(apiClient, 10)

	require.NoError(t, store.Search(context.Background(), "go", Filters{}, true))
	require.NoError(t, store.Search(context.Background(), "ignored", Filters{}, false))

	// query фиксируется только при refresh
	require.Len(t, paths, 2)
	assert.Contains(t, paths[0], "page=0")
	assert.Contains(t, paths[0], "search=go")
	assert.Contains(t, paths[1], "page=1")
	assert.Contains(t, paths[1], "search=go")

	assert.Len(t, store.Jobs(), 2)
}

// TestStore_Create проверяет вставку созданной вакансии в начало списка
func TestStore_Create(t *testing.T) {
	apiClient := &mockAPI{
		getFunc: func(path string, result any) error {
			jobsResponse(t, result, []models.Job{{ID: "old"}}, false)
			return nil
		},
		postFunc: func(path string, body, result any) error {
			require.Equal(t, "/jobs", path)
			input := body.(CreateJobInput)
			decodeInto(t, models.Job{ID: "new", Title: input.Title}, result)
			return nil
		},
	}
	store := NewStore(apiClient, 10)
	require.NoError(t, store.Search(context.Background(), "", Filters{}, true))

	created, err := store.Create(context.Background(), CreateJobInput{Title: "Go Developer"})
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)

	jobs := store.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "new", jobs[0].ID)
}

// TestStore_Update проверяет замену вакансии в кеше полным ответом сервера
func TestStore_Update(t *testing.T) {
	apiClient := &mockAPI{
		getFunc: func(path string, result any) error {
			jobsResponse(t, result, []models.Job{{ID: "j1", Title: "Old"}, {ID: "j2"}}, false)
			return nil
		},
		putFunc: func(path string, body, result any) error {
			require.Equal(t, "/jobs/j1", path)
			input := body.(UpdateJobInput)
			require.NotNil(t, input.Title)
			decodeInto(t, models.Job{ID: "j1", Title: *input.Title}, result)
			return nil
		},
	}
	store := NewStore(apiClient, 10)
	require.NoError(t, store.Search(context.Background(), "", Filters{}, true))

	title := "New Title"
	updated, err := store.Update(context.Background(), "j1", UpdateJobInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)

	jobs := store.Jobs()
	assert.Equal(t, "New Title", jobs[0].Title)
	assert.Equal(t, "j2", jobs[1].ID)
}

// TestStore_Delete проверяет удаление вакансии из кеша
func TestStore_Delete(t *testing.T) {
	apiClient := &mockAPI{
		getFunc: func(path string, result any) error {
			jobsResponse(t, result, []models.Job{{ID: "j1"}, {ID: "j2"}}, false)
			return nil
		},
	}
	store := NewStore(apiClient, 10)
	require.NoError(t, store.Search(context.Background(), "", Filters{}, true))

	require.NoError(t, store.Delete(context.Background(), "j1"))

	jobs := store.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "j2", jobs[0].ID)
}

// TestStore_DeleteFailure проверяет, что при ошибке сервера
// вакансия остается в кеше
func TestStore_DeleteFailure(t *testing.T) {
	apiClient := &mockAPI{
		getFunc: func(path string, result any) error {
			jobsResponse(t, result, []models.Job{{ID: "j1"}}, false)
			return nil
		},
		deleteFunc: func(path string) error {
			return &api.Error{StatusCode: 403, Message: "not your job"}
		},
	}
	store := NewStore(apiClient, 10)
	require.NoError(t, store.Search(context.Background(), "", Filters{}, true))

	err := store.Delete(context.Background(), "j1")
	require.Error(t, err)
	assert.Len(t, store.Jobs(), 1)
}

// TestStore_Apply проверяет отклик с гарантированным снятием флага
func TestStore_Apply(t *testing.T) {
	applyStarted := make(chan struct{})
	release := make(chan struct{})
	apiClient := &mockAPI{
		postFunc: func(path string, body, result any) error {
			require.Equal(t, "/jobs/j1/apply", path)
			close(applyStarted)
			<-release
			return nil
		},
	}
	store := NewStore(apiClient, 10)

	done := make(chan error)
	go func() {
		done <- store.Apply(context.Background(), "j1")
	}()

	<-applyStarted
	assert.True(t, store.Applying())

	close(release)
	require.NoError(t, <-done)
	assert.False(t, store.Applying())
}

// TestStore_ApplyFailure проверяет снятие флага и при ошибке
func TestStore_ApplyFailure(t *testing.T) {
	apiClient := &mockAPI{
		postFunc: func(path string, body, result any) error {
			return fmt.Errorf("already applied")
		},
	}
	store := NewStore(apiClient, 10)

	err := store.Apply(context.Background(), "j1")
	require.Error(t, err)
	assert.False(t, store.Applying())
}

// TestStore_LoadMatches проверяет загрузку и очистку результатов матчинга
func TestStore_LoadMatches(t *testing.T) {
	fail := false
	apiClient := &mockAPI{
		getFunc: func(path string, result any) error {
			require.Equal(t, "/jobs/j1/matches", path)
			if fail {
				return fmt.Errorf("matching unavailable")
			}
			decodeInto(t, []models.JobMatch{{Score: 0.92}}, result)
			return nil
		},
	}
	store := NewStore(apiClient, 10)

	require.NoError(t, store.LoadMatches(context.Background(), "j1"))
	matches := store.Matches()
	require.Len(t, matches, 1)
	assert.InDelta(t, 0.92, matches[0].Score, 0.001)

	// Ошибка очищает кеш матчей
	fail = true
	require.Error(t, store.LoadMatches(context.Background(), "j1"))
	assert.Empty(t, store.Matches())
}
