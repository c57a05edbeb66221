// Package profile реализует singleton store профиля: одна запись
// пользователя в текущем контексте просмотра (свой профиль или чужой)
// плюс вложенный ATS-профиль с дочерними коллекциями.
package profile

import (
	"context"
	"fmt"
	"sync"

	"github.com/clipers/clipers-cli/internal/client/api"
	"github.com/clipers/clipers-cli/internal/models"
)

// UpdateProfileInput частичное обновление профиля.
// Сервер валидирует и возвращает полную обновленную запись —
// кеш заменяется ею целиком, клиент никогда не мержит поля сам.
type UpdateProfileInput struct {
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	CompanyName  *string `json:"companyName,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// UpdateATSInput частичное обновление верхнего уровня ATS-профиля
type UpdateATSInput struct {
	Summary *string `json:"summary,omitempty"`
}

// Store держит ровно одну запись профиля активного контекста просмотра.
type Store struct {
	apiClient api.ClientAPI

	mu      sync.Mutex
	profile *models.User
	ats     *models.ATSProfile
	loading bool
}

// NewStore создает store профиля
func NewStore(apiClient api.ClientAPI) *Store {
	return &Store{apiClient: apiClient}
}

// Load загружает профиль. Пустой userID означает "мой профиль"
// (GET /auth/me); иначе загружается публичный профиль указанного
// пользователя (GET /users/{id}) — это разные endpoint'ы,
// а не параметризация одного.
func (s *Store) Load(ctx context.Context, userID string) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	endpoint := "/auth/me"
	if userID != "" {
		endpoint = "/users/" + userID
	}

	var user models.User
	if err := s.apiClient.Get(ctx, endpoint, &user); err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	s.mu.Lock()
	s.profile = &user
	s.mu.Unlock()
	return nil
}

// Profile возвращает загруженный профиль (nil, если не загружен)
func (s *Store) Profile() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	user := *s.profile
	return &user
}

// Loading сообщает, идет ли загрузка профиля
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Update обновляет профиль. Кеш заменяется полным ответом сервера.
func (s *Store) Update(ctx context.Context, input UpdateProfileInput) (*models.User, error) {
	var updated models.User
	if err := s.apiClient.Put(ctx, "/users/profile", input, &updated); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.mu.Lock()
	s.profile = &updated
	s.mu.Unlock()
	return &updated, nil
}

// LoadATS загружает ATS-профиль. У компаний ATS-профиля не существует
// по построению: для них загрузка молча пропускается (ats остается nil),
// это ранний выход, а не ошибка. Отсутствующий у кандидата профиль
// (еще не создан на сервере) тоже не ошибка.
func (s *Store) LoadATS(ctx context.Context, userID string) error {
	s.mu.Lock()
	profile := s.profile
	s.mu.Unlock()

	if profile == nil || profile.Role != models.RoleCandidate {
		s.mu.Lock()
		s.ats = nil
		s.mu.Unlock()
		return nil
	}

	endpoint := "/ats-profiles/me"
	if userID != "" {
		endpoint = "/ats-profiles/user/" + userID
	}

	var ats models.ATSProfile
	if err := s.apiClient.Get(ctx, endpoint, &ats); err != nil {
		// Профиль может быть еще не создан
		s.mu.Lock()
		s.ats = nil
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.ats = &ats
	s.mu.Unlock()
	return nil
}

// ATS возвращает загруженный ATS-профиль (nil, если отсутствует)
func (s *Store) ATS() *models.ATSProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ats == nil {
		return nil
	}
	ats := *s.ats
	return &ats
}

// UpdateATS обновляет верхний уровень ATS-профиля.
// Кеш заменяется полным ответом сервера.
func (s *Store) UpdateATS(ctx context.Context, input UpdateATSInput) (*models.ATSProfile, error) {
	var updated models.ATSProfile
	if err := s.apiClient.Put(ctx, "/ats-profiles", input, &updated); err != nil {
		return nil, fmt.Errorf("failed to update ats profile: %w", err)
	}

	s.mu.Lock()
	s.ats = &updated
	s.mu.Unlock()
	return &updated, nil
}

// mutateATS применяет fn к кешированному ATS-профилю, если он загружен.
// Вызывается только после подтверждения сервером; fn меняет ровно один
// дочерний срез, остальные поля агрегата не затрагиваются.
func (s *Store) mutateATS(fn func(*models.ATSProfile)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ats != nil {
		fn(s.ats)
	}
}
