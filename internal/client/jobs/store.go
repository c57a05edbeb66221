// Package jobs реализует клиентский store вакансий: поиск с фильтрами,
// CRUD для компаний и отклики кандидатов.
package jobs

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/clipers/clipers-cli/internal/client/api"
	"github.com/clipers/clipers-cli/internal/client/collection"
	"github.com/clipers/clipers-cli/internal/models"
)

// jobsPage конверт ответа списочного endpoint вакансий
type jobsPage struct {
	Jobs       []models.Job `json:"jobs"`
	HasMore    bool         `json:"hasMore"`
	TotalPages int          `json:"totalPages"`
}

// Filters параметры поиска вакансий
type Filters struct {
	Location  string           // местоположение
	Type      models.JobType   // тип занятости
	SalaryMin int              // нижняя граница зарплаты
	SalaryMax int              // верхняя граница зарплаты
	Skills    []string         // требуемые навыки (повторяемый параметр)
	Industry  string           // отрасль
}

// CreateJobInput описывает новую вакансию
type CreateJobInput struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Requirements []string       `json:"requirements"`
	Skills       []string       `json:"skills"`
	Location     string         `json:"location"`
	Type         models.JobType `json:"type"`
	SalaryMin    int            `json:"salaryMin,omitempty"`
	SalaryMax    int            `json:"salaryMax,omitempty"`
}

// UpdateJobInput частичное обновление вакансии.
// nil-поля не отправляются: сервер меняет только присланные.
type UpdateJobInput struct {
	Title        *string         `json:"title,omitempty"`
	Description  *string         `json:"description,omitempty"`
	Requirements []string        `json:"requirements,omitempty"`
	Skills       []string        `json:"skills,omitempty"`
	Location     *string         `json:"location,omitempty"`
	Type         *models.JobType `json:"type,omitempty"`
	SalaryMin    *int            `json:"salaryMin,omitempty"`
	SalaryMax    *int            `json:"salaryMax,omitempty"`
}

// Store кеширует постраничный список вакансий плюс результаты матчинга.
type Store struct {
	apiClient api.ClientAPI
	list      *collection.Store[models.Job]

	mu       sync.Mutex
	query    string
	filters  Filters
	matches  []models.JobMatch
	applying bool
}

// NewStore создает store вакансий с заданным размером страницы
func NewStore(apiClient api.ClientAPI, pageSize int) *Store {
	s := &Store{apiClient: apiClient}
	s.list = collection.New(pageSize,
		func(ctx context.Context, page, size int) (collection.Page[models.Job], error) {
			var resp jobsPage
			path := "/jobs/public?" + s.searchParams(page, size).Encode()
			if err := apiClient.Get(ctx, path, &resp); err != nil {
				return collection.Page[models.Job]{}, err
			}
			return collection.Page[models.Job]{Items: resp.Jobs, HasMore: resp.HasMore}, nil
		},
		func(j models.Job) string { return j.ID },
	)
	return s
}

// searchParams собирает параметры запроса из текущих query и фильтров
func (s *Store) searchParams(page, size int) url.Values {
	s.mu.Lock()
	query, filters := s.query, s.filters
	s.mu.Unlock()

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	if query != "" {
		params.Set("search", query)
	}
	if filters.Location != "" {
		params.Set("location", filters.Location)
	}
	if filters.Type != "" {
		params.Set("type", string(filters.Type))
	}
	if filters.SalaryMin > 0 {
		params.Set("salaryMin", strconv.Itoa(filters.SalaryMin))
	}
	if filters.SalaryMax > 0 {
		params.Set("salaryMax", strconv.Itoa(filters.SalaryMax))
	}
	if filters.Industry != "" {
		params.Set("industry", filters.Industry)
	}
	for _, skill := range filters.Skills {
		params.Add("skills", skill)
	}
	return params
}

// Search ищет вакансии. refresh перечитывает список с первой страницы
// и фиксирует новые query и фильтры; без refresh подгружается следующая
// страница текущего поиска.
func (s *Store) Search(ctx context.Context, query string, filters Filters, refresh bool) error {
	if refresh {
		s.mu.Lock()
		s.query = query
		s.filters = filters
		s.mu.Unlock()
	}
	return s.list.Load(ctx, refresh)
}

// Jobs возвращает снимок кешированного списка вакансий
func (s *Store) Jobs() []models.Job {
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

// Create публикует вакансию и вставляет подтвержденную сервером
// запись в начало списка
func (s *Store) Create(ctx context.Context, input CreateJobInput) (*models.Job, error) {
	var created models.Job
	if err := s.apiClient.Post(ctx, "/jobs", input, &created); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.list.Prepend(created)
	return &created, nil
}

// Update обновляет вакансию и заменяет в кеше ровно совпадающий элемент
// полным ответом сервера
func (s *Store) Update(ctx context.Context, jobID string, input UpdateJobInput) (*models.Job, error) {
	var updated models.Job
	if err := s.apiClient.Put(ctx, "/jobs/"+jobID, input, &updated); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	s.list.Replace(updated)
	return &updated, nil
}

// Delete удаляет вакансию на сервере и выфильтровывает ее из кеша
func (s *Store) Delete(ctx context.Context, jobID string) error {
	if err := s.apiClient.Delete(ctx, "/jobs/"+jobID); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	s.list.Remove(jobID)
	return nil
}

// Apply отправляет отклик на вакансию. Флаг Applying выставлен на время
// запроса и гарантированно снимается и при успехе, и при ошибке.
func (s *Store) Apply(ctx context.Context, jobID string) error {
	s.mu.Lock()
	s.applying = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.applying = false
		s.mu.Unlock()
	}()

	if err := s.apiClient.Post(ctx, "/jobs/"+jobID+"/apply", nil, nil); err != nil {
		return fmt.Errorf("failed to apply to job: %w", err)
	}
	return nil
}

// Applying сообщает, отправляется ли сейчас отклик
func (s *Store) Applying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applying
}

// LoadMatches загружает результаты матчинга по вакансии.
// Кеш матчей заменяется целиком; при ошибке очищается.
func (s *Store) LoadMatches(ctx context.Context, jobID string) error {
	var matches []models.JobMatch
	if err := s.apiClient.Get(ctx, "/jobs/"+jobID+"/matches", &matches); err != nil {
		s.mu.Lock()
		s.matches = nil
		s.mu.Unlock()
		return fmt.Errorf("failed to load job matches: %w", err)
	}

	s.mu.Lock()
	s.matches = matches
	s.mu.Unlock()
	return nil
}

// Matches возвращает снимок загруженных матчей
func (s *Store) Matches() []models.JobMatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]models.JobMatch, len(s.matches))
	copy(snapshot, s.matches)
	return snapshot
}
