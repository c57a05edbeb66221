package collection

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string
	Value string
}

func itemID(i item) string { return i.ID }

// seed наполняет store без сетевого fetch
func seed(t *testing.T, store *Store[item], items ...item) {
	t.Helper()
	err := store.LoadAll(context.Background(), func(context.Context) ([]item, error) {
		return items, nil
	})
	require.NoError(t, err)
}

// TestStore_Load проверяет подгрузку страниц и продвижение курсора
func TestStore_Load(t *testing.T) {
	pages := [][]item{
		{{ID: "a"}, {ID: "b"}},
		{{ID: "c"}},
	}
	var calls []int
	fetch := func(ctx context.Context, page, size int) (Page[item], error) {
		calls = append(calls, page)
		return Page[item]{Items: pages[page], HasMore: page == 0}, nil
	}

	store := New(2, fetch, itemID)
	ctx := context.Background()

	// Первая страница
	require.NoError(t, store.Load(ctx, false))
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 1, store.Page())
	assert.True(t, store.HasMore())

	// Вторая страница дописывается в конец
	require.NoError(t, store.Load(ctx, false))
	assert.Equal(t, 3, store.Len())
	assert.Equal(t, 2, store.Page())
	assert.False(t, store.HasMore())
	assert.Equal(t, []string{"a", "b", "c"}, ids(store.Items()))

	// Страниц больше нет: повторный Load без refresh — no-op
	require.NoError(t, store.Load(ctx, false))
	assert.Equal(t, []int{0, 1}, calls)
}

// TestStore_LoadRefresh проверяет, что refresh заменяет список целиком
// и сбрасывает курсор на начало
func TestStore_LoadRefresh(t *testing.T) {
	responses := []Page[item]{
		{Items: []item{{ID: "a"}, {ID: "b"}}, HasMore: true},
		{Items: []item{{ID: "x"}}, HasMore: true},
	}
	call := 0
	var requestedPages []int
	fetch := func(ctx context.Context, page, size int) (Page[item], error) {
		requestedPages = append(requestedPages, page)
		resp := responses[call]
		call++
		return resp, nil
	}

	store := New(2, fetch, itemID)
	ctx := context.Background()

	require.NoError(t, store.Load(ctx, false))
	require.Equal(t, 2, store.Len())

	require.NoError(t, store.Load(ctx, true))

	// Заменено, не дописано; refresh запрашивает нулевую страницу
	assert.Equal(t, []string{"x"}, ids(store.Items()))
	assert.Equal(t, 1, store.Page())
	assert.Equal(t, []int{0, 0}, requestedPages)
}

// TestStore_LoadConcurrent проверяет, что пока загрузка выполняется,
// повторный Load игнорируется
func TestStore_LoadConcurrent(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	fetchCalls := 0

	fetch := func(ctx context.Context, page, size int) (Page[item], error) {
		mu.Lock()
		fetchCalls++
		mu.Unlock()
		close(started)
		<-release
		return Page[item]{Items: []item{{ID: "a"}}, HasMore: false}, nil
	}

	store := New(10, fetch, itemID)
	ctx := context.Background()

	done := make(chan error)
	go func() {
		done <- store.Load(ctx, false)
	}()

	<-started
	assert.True(t, store.Loading())

	// Второй Load во время первого должен выйти сразу без fetch
	require.NoError(t, store.Load(ctx, false))

	close(release)
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, fetchCalls)
	assert.False(t, store.Loading())
}

// TestStore_LoadError проверяет, что неудачная загрузка оставляет кеш
// нетронутым и снимает флаг загрузки
func TestStore_LoadError(t *testing.T) {
	fetchErr := errors.New("network down")
	fail := false
	fetch := func(ctx context.Context, page, size int) (Page[item], error) {
		if fail {
			return Page[item]{}, fetchErr
		}
		return Page[item]{Items: []item{{ID: "a"}}, HasMore: true}, nil
	}

	store := New(2, fetch, itemID)
	ctx := context.Background()

	require.NoError(t, store.Load(ctx, false))
	fail = true

	err := store.Load(ctx, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, fetchErr)

	assert.Equal(t, []string{"a"}, ids(store.Items()))
	assert.Equal(t, 1, store.Page())
	assert.False(t, store.Loading())

	// После ошибки загрузка снова возможна
	fail = false
	require.NoError(t, store.Load(ctx, false))
	assert.Equal(t, 2, store.Len())
}

// TestStore_LoadAll проверяет несписочную загрузку: замена кеша целиком,
// флаг загрузки на время запроса, подавление повторного входа
func TestStore_LoadAll(t *testing.T) {
	store := New[item](10, nil, itemID)
	seed(t, store, item{ID: "old"})
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	fetchCalls := 0

	fetch := func(ctx context.Context) ([]item, error) {
		mu.Lock()
		fetchCalls++
		mu.Unlock()
		close(started)
		<-release
		return []item{{ID: "a"}, {ID: "b"}}, nil
	}

	done := make(chan error)
	go func() {
		done <- store.LoadAll(ctx, fetch)
	}()

	<-started
	assert.True(t, store.Loading())

	// Повторный LoadAll во время первого должен выйти сразу без fetch
	require.NoError(t, store.LoadAll(ctx, func(context.Context) ([]item, error) {
		t.Fatal("fetch must not be called while another load is in flight")
		return nil, nil
	}))

	close(release)
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, fetchCalls)
	assert.False(t, store.Loading())
	assert.Equal(t, []string{"a", "b"}, ids(store.Items()))
}

// TestStore_LoadAllError проверяет, что неудачная несписочная загрузка
// оставляет кеш нетронутым и снимает флаг загрузки
func TestStore_LoadAllError(t *testing.T) {
	store := New[item](10, nil, itemID)
	seed(t, store, item{ID: "a"})

	fetchErr := errors.New("network down")
	err := store.LoadAll(context.Background(), func(context.Context) ([]item, error) {
		return nil, fetchErr
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, fetchErr)

	assert.Equal(t, []string{"a"}, ids(store.Items()))
	assert.False(t, store.Loading())
}

// TestStore_Mutations проверяет точечные write-through мутации кеша
func TestStore_Mutations(t *testing.T) {
	store := New[item](10, nil, itemID)
	seed(t, store, item{ID: "a", Value: "1"}, item{ID: "b", Value: "2"})

	store.Prepend(item{ID: "new"})
	assert.Equal(t, []string{"new", "a", "b"}, ids(store.Items()))

	store.Replace(item{ID: "b", Value: "updated"})
	got, ok := store.Get("b")
	require.True(t, ok)
	assert.Equal(t, "updated", got.Value)

	store.Update("a", func(i *item) { i.Value = "touched" })
	got, ok = store.Get("a")
	require.True(t, ok)
	assert.Equal(t, "touched", got.Value)

	// Замена несуществующего — no-op
	store.Replace(item{ID: "ghost", Value: "x"})
	assert.Equal(t, 3, store.Len())

	store.Remove("new")
	assert.Equal(t, []string{"a", "b"}, ids(store.Items()))

	_, ok = store.Get("new")
	assert.False(t, ok)
}

// TestStore_Reset проверяет возврат в исходное состояние
func TestStore_Reset(t *testing.T) {
	fetch := func(ctx context.Context, page, size int) (Page[item], error) {
		return Page[item]{Items: []item{{ID: "a"}}, HasMore: false}, nil
	}
	store := New(2, fetch, itemID)

	require.NoError(t, store.Load(context.Background(), false))
	require.False(t, store.HasMore())

	store.Reset()

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 0, store.Page())
	assert.True(t, store.HasMore())
}

// TestStore_ItemsSnapshot проверяет, что Items возвращает копию,
// а не внутренний срез
func TestStore_ItemsSnapshot(t *testing.T) {
	store := New[item](10, nil, itemID)
	seed(t, store, item{ID: "a", Value: "1"})

	snapshot := store.Items()
	snapshot[0].Value = "mutated"

	got, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", got.Value)
}

func ids(items []item) []string {
	result := make([]string, 0, len(items))
	for _, i := range items {
		result = append(result, i.ID)
	}
	return result
}
