// Package collection реализует клиентский кеш постраничного серверного
// списка: подгружаемая append-only последовательность элементов плюс
// точечные write-through мутации. Пакет не ходит в сеть сам — страницу
// приносит fetch callback конкретного ресурса.
package collection

import (
	"context"
	"fmt"
	"sync"
)

// Page представляет одну страницу серверного списка
type Page[T any] struct {
	Items   []T  // элементы в серверном порядке
	HasMore bool // есть ли следующие страницы
}

// FetchFunc загружает страницу с сервера.
// page — номер запрашиваемой страницы (с нуля), size — размер страницы.
type FetchFunc[T any] func(ctx context.Context, page, size int) (Page[T], error)

// Store хранит локальный кеш постраничного списка.
//
// Инварианты:
//   - пока Load выполняется, повторный Load игнорируется (не более
//     одного сетевого запроса списка одновременно);
//   - refresh заменяет список целиком и сбрасывает курсор,
//     обычная загрузка дописывает в конец и продвигает курсор;
//   - неудачная загрузка или мутация не оставляет кеш частично
//     измененным: либо полное применение после успеха, либо ничего.
type Store[T any] struct {
	mu      sync.Mutex
	items   []T
	page    int
	size    int
	hasMore bool
	loading bool
	fetch   FetchFunc[T]
	idOf    func(T) string
}

// New создает новый Store.
// size — размер страницы, idOf извлекает серверный идентификатор элемента.
func New[T any](size int, fetch FetchFunc[T], idOf func(T) string) *Store[T] {
	return &Store[T]{
		size:    size,
		hasMore: true,
		fetch:   fetch,
		idOf:    idOf,
	}
}

// Load подгружает следующую страницу или, при refresh, перечитывает
// список с начала. Пока предыдущая загрузка не завершена — no-op.
// No-op также когда страниц больше нет и refresh не запрошен.
// При ошибке кеш остается нетронутым, флаг загрузки снимается,
// ошибка возвращается вызывающему.
func (s *Store[T]) Load(ctx context.Context, refresh bool) error {
	s.mu.Lock()
	if s.loading || (!s.hasMore && !refresh) {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	reqPage := s.page
	if refresh {
		reqPage = 0
	}
	s.mu.Unlock()

	// Сетевой запрос идет без блокировки: мутации и чтение кеша
	// не должны ждать завершения загрузки
	result, err := s.fetch(ctx, reqPage, s.size)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		return fmt.Errorf("failed to load page %d: %w", reqPage, err)
	}

	if refresh {
		s.items = result.Items
		s.page = 1
	} else {
		s.items = append(s.items, result.Items...)
		s.page++
	}
	s.hasMore = result.HasMore

	return nil
}

// LoadAll заменяет кеш целиком результатом несписочной загрузки.
// Участвует в общем флаге загрузки: пока другая загрузка выполняется —
// no-op. Курсор не сдвигается; при ошибке кеш остается нетронутым.
func (s *Store[T]) LoadAll(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()

	items, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		return err
	}

	s.items = items
	return nil
}

// Reset очищает кеш и возвращает store в исходное состояние
func (s *Store[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.page = 0
	s.hasMore = true
}

// Items возвращает снимок кешированного списка в серверном порядке
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]T, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

// Len возвращает количество кешированных элементов
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Loading сообщает, выполняется ли сейчас загрузка списка
func (s *Store[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// HasMore сообщает, остались ли незагруженные страницы
func (s *Store[T]) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

// Page возвращает текущий курсор (номер следующей страницы)
func (s *Store[T]) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Prepend вставляет подтвержденный сервером элемент в начало списка.
// Используется после успешного create: список меняется без перечитывания.
func (s *Store[T]) Prepend(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]T{item}, s.items...)
}

// Replace заменяет элемент с совпадающим идентификатором.
// Остальные элементы не затрагиваются. Отсутствие элемента — no-op.
func (s *Store[T]) Replace(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.idOf(item)
	for i := range s.items {
		if s.idOf(s.items[i]) == id {
			s.items[i] = item
			return
		}
	}
}

// Update применяет fn к элементу с данным идентификатором.
// Вызывается только после подтверждения сервером (write-through).
func (s *Store[T]) Update(id string, fn func(*T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.idOf(s.items[i]) == id {
			fn(&s.items[i])
			return
		}
	}
}

// Remove удаляет элемент с данным идентификатором из кеша
func (s *Store[T]) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := s.items[:0:0]
	for _, item := range s.items {
		if s.idOf(item) != id {
			filtered = append(filtered, item)
		}
	}
	s.items = filtered
}

// Get возвращает элемент по идентификатору
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if s.idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
