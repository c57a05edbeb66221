// Package clipers реализует клиентский store видео-клиперов:
// постраничный список, загрузка с прогрессом и опрос статуса
// серверной обработки.
package clipers

import (
	"context"
	"fmt"
	"sync"

	"github.com/clipers/clipers-cli/internal/client/api"
	"github.com/clipers/clipers-cli/internal/client/collection"
	"github.com/clipers/clipers-cli/internal/models"
	"github.com/clipers/clipers-cli/internal/validation"
)

// clipersPage конверт ответа списочного endpoint клиперов
type clipersPage struct {
	Clipers    []models.Cliper `json:"clipers"`
	HasMore    bool            `json:"hasMore"`
	TotalPages int             `json:"totalPages"`
}

// UploadInput описывает загружаемый клипер
type UploadInput struct {
	FileName    string // имя видеофайла
	File        []byte // содержимое видеофайла
	Title       string // заголовок
	Description string // описание
}

// Store кеширует список клиперов и состояние текущей загрузки.
type Store struct {
	apiClient api.ClientAPI
	list      *collection.Store[models.Cliper]

	mu             sync.Mutex
	uploadProgress int
}

// NewStore создает store клиперов с заданным размером страницы
func NewStore(apiClient api.ClientAPI, pageSize int) *Store {
	s := &Store{apiClient: apiClient}
	s.list = collection.New(pageSize,
		func(ctx context.Context, page, size int) (collection.Page[models.Cliper], error) {
			var resp clipersPage
			path := fmt.Sprintf("/clipers?page=%d&size=%d", page, size)
			if err := apiClient.Get(ctx, path, &resp); err != nil {
				return collection.Page[models.Cliper]{}, err
			}
			return collection.Page[models.Cliper]{Items: resp.Clipers, HasMore: resp.HasMore}, nil
		},
		func(c models.Cliper) string { return c.ID },
	)
	return s
}

// Load подгружает общий список клиперов
func (s *Store) Load(ctx context.Context, refresh bool) error {
	return s.list.Load(ctx, refresh)
}

// LoadMine загружает клиперы текущего пользователя.
// Endpoint не постраничный: кеш заменяется целиком, на время запроса
// выставлен общий флаг загрузки списка.
func (s *Store) LoadMine(ctx context.Context) error {
	return s.list.LoadAll(ctx, func(ctx context.Context) ([]models.Cliper, error) {
		var mine []models.Cliper
		if err := s.apiClient.Get(ctx, "/clipers/my", &mine); err != nil {
			return nil, fmt.Errorf("failed to load my clipers: %w", err)
		}
		return mine, nil
	})
}

// Clipers возвращает снимок кешированного списка
func (s *Store) Clipers() []models.Cliper {
	return s.list.Items()
}

// Loading сообщает, идет ли загрузка списка
func (s *Store) Loading() bool {
	return s.list.Loading()
}

// HasMore сообщает, остались ли незагруженные страницы
func (s *Store) HasMore() bool {
	return s.list.HasMore()
}

// Upload загружает видео. Прогресс передачи наблюдаем через
// UploadProgress (0-100) и гарантированно сбрасывается в 0
// по завершении — и при успехе, и при ошибке.
// Подтвержденный сервером клипер вставляется в начало списка.
func (s *Store) Upload(ctx context.Context, input UploadInput) (*models.Cliper, error) {
	// Валидация до любого сетевого вызова
	if err := validation.ValidateVideoFile(input.FileName, int64(len(input.File))); err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}

	defer s.setProgress(0)

	form := api.UploadForm{
		Fields: map[string]string{
			"title":       input.Title,
			"description": input.Description,
		},
		FileField: "video",
		FileName:  input.FileName,
		File:      input.File,
	}

	var created models.Cliper
	err := s.apiClient.Upload(ctx, "/clipers/upload", form, s.setProgress, &created)
	if err != nil {
		return nil, fmt.Errorf("failed to upload cliper: %w", err)
	}

	s.list.Prepend(created)
	return &created, nil
}

// UploadProgress возвращает прогресс текущей загрузки (0-100)
func (s *Store) UploadProgress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploadProgress
}

func (s *Store) setProgress(pct int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploadProgress = pct
}

// Status запрашивает у сервера актуальное состояние клипера и заменяет
// в кеше ровно совпадающий элемент. Используется опросом обработки.
func (s *Store) Status(ctx context.Context, cliperID string) (*models.Cliper, error) {
	var cliper models.Cliper
	if err := s.apiClient.Get(ctx, "/clipers/"+cliperID, &cliper); err != nil {
		return nil, fmt.Errorf("failed to get cliper status: %w", err)
	}

	s.list.Replace(cliper)
	return &cliper, nil
}

// Delete удаляет клипер на сервере и выфильтровывает его из кеша
func (s *Store) Delete(ctx context.Context, cliperID string) error {
	if err := s.apiClient.Delete(ctx, "/clipers/"+cliperID); err != nil {
		return fmt.Errorf("failed to delete cliper: %w", err)
	}

	s.list.Remove(cliperID)
	return nil
}
