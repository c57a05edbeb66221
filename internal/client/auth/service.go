// Package auth реализует контроллер сессии: владеет состоянием
// аутентификации, жизненным циклом токенов и защитой привилегированных
// операций. Машина состояний:
//
//	Anonymous -> Authenticating -> Authenticated -> Anonymous
//
// (logout или невосстановимая ошибка refresh возвращают в Anonymous).
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/clipers/clipers-cli/internal/client/api"
	"github.com/clipers/clipers-cli/internal/client/storage"
	"github.com/clipers/clipers-cli/internal/models"
	"github.com/clipers/clipers-cli/internal/validation"
)

// State состояние сессии
type State int

const (
	// StateAnonymous сессии нет
	StateAnonymous State = iota
	// StateAuthenticating выполняется вход или проверка сессии
	StateAuthenticating
	// StateAuthenticated сессия установлена
	StateAuthenticated
)

// Ошибки защиты привилегированных операций
var (
	// ErrUnauthenticated доступ без установленной сессии
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrForbidden роль пользователя не соответствует требуемой
	ErrForbidden = errors.New("access denied")
)

// authResponse конверт ответа auth endpoint'ов
type authResponse struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

// RegisterInput данные регистрации.
// Обязательные поля зависят от роли: кандидату нужны имя и фамилия,
// компании — название компании.
type RegisterInput struct {
	Role        models.Role `json:"role"`
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	FirstName   string      `json:"firstName,omitempty"`
	LastName    string      `json:"lastName,omitempty"`
	CompanyName string      `json:"companyName,omitempty"`
}

// Service предоставляет функции контроллера сессии
type Service struct {
	apiClient api.ClientAPI
	tokens    storage.TokenStorage
	logger    *slog.Logger

	mu    sync.Mutex
	state State
	user  *models.User
}

// NewService создает новый контроллер сессии
func NewService(apiClient api.ClientAPI, tokens storage.TokenStorage, logger *slog.Logger) *Service {
	return &Service{
		apiClient: apiClient,
		tokens:    tokens,
		logger:    logger,
		state:     StateAnonymous,
	}
}

// State возвращает текущее состояние сессии
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentUser возвращает аутентифицированного пользователя (nil вне сессии)
func (s *Service) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Login выполняет вход. При успехе оба токена сохраняются в durable
// storage и сессия переходит в Authenticated; при ошибке сессия
// остается Anonymous, ошибка возвращается для отображения.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	// Валидация до любого сетевого вызова
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}

	s.setState(StateAuthenticating, nil)

	var resp authResponse
	body := map[string]string{"email": email, "password": password}
	if err := s.apiClient.Post(ctx, "/auth/login", body, &resp); err != nil {
		s.setState(StateAnonymous, nil)
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := s.establishSession(ctx, &resp); err != nil {
		return nil, err
	}

	s.logger.Info("logged in", "user_id", resp.User.ID, "role", resp.User.Role)
	return &resp.User, nil
}

// Register регистрирует нового пользователя и сразу устанавливает сессию
func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	// Валидация до любого сетевого вызова
	err := validation.ValidateRegistration(
		input.Role, input.Email, input.Password,
		input.FirstName, input.LastName, input.CompanyName)
	if err != nil {
		return nil, err
	}

	s.setState(StateAuthenticating, nil)

	var resp authResponse
	if err := s.apiClient.Post(ctx, "/auth/register", input, &resp); err != nil {
		s.setState(StateAnonymous, nil)
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	if err := s.establishSession(ctx, &resp); err != nil {
		return nil, err
	}

	s.logger.Info("registered", "user_id", resp.User.ID, "role", resp.User.Role)
	return &resp.User, nil
}

// ForgotPassword запрашивает письмо для сброса пароля.
// Сессию не трогает: состояние и сохраненные токены остаются как были,
// сервер отвечает одинаково независимо от существования аккаунта.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	// Валидация до любого сетевого вызова
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	body := map[string]string{"email": email}
	if err := s.apiClient.Post(ctx, "/auth/forgot-password", body, nil); err != nil {
		return fmt.Errorf("failed to request password reset: %w", err)
	}

	s.logger.Info("password reset requested", "email", email)
	return nil
}

// establishSession сохраняет токены и переводит сессию в Authenticated
func (s *Service) establishSession(ctx context.Context, resp *authResponse) error {
	pair := &storage.TokenPair{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
	if err := s.tokens.SaveTokens(ctx, pair); err != nil {
		s.setState(StateAnonymous, nil)
		return fmt.Errorf("failed to save tokens: %w", err)
	}

	s.setState(StateAuthenticated, &resp.User)
	return nil
}

// CheckAuth проверяет сохраненную сессию. Без сохраненного access token
// сразу устанавливает Anonymous без единого сетевого вызова. Иначе
// спрашивает сервер "кто я"; любая ошибка удаляет токены и устанавливает
// Anonymous — это штатный исход, а не ошибка. Операция идемпотентна
// и безопасна перед каждой защищенной командой.
func (s *Service) CheckAuth(ctx context.Context) (*models.User, error) {
	tokens, err := s.tokens.GetTokens(ctx)
	if err != nil || tokens.AccessToken == "" {
		s.setState(StateAnonymous, nil)
		return nil, nil
	}

	s.setState(StateAuthenticating, nil)

	var user models.User
	if err := s.apiClient.Get(ctx, "/auth/me", &user); err != nil {
		s.logger.Debug("checkAuth failed, clearing session", "error", err)
		if delErr := s.tokens.DeleteTokens(ctx); delErr != nil {
			s.logger.Warn("failed to delete tokens", "error", delErr)
		}
		s.setState(StateAnonymous, nil)
		return nil, nil
	}

	s.setState(StateAuthenticated, &user)
	return &user, nil
}

// Logout удаляет оба токена и безусловно переводит сессию в Anonymous.
// Сетевой вызов для успеха не требуется.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.tokens.DeleteTokens(ctx); err != nil {
		return fmt.Errorf("failed to delete tokens: %w", err)
	}

	s.setState(StateAnonymous, nil)
	s.logger.Info("logged out")
	return nil
}

// Guard реализует контракт защищенного представления: разрешает
// сессию перед выполнением привилегированной операции и опционально
// проверяет роль. Возвращает ErrUnauthenticated для Anonymous и
// ErrForbidden при несовпадении роли (пустая requiredRole пропускает
// любую аутентифицированную роль).
func (s *Service) Guard(ctx context.Context, requiredRole models.Role) error {
	user, err := s.CheckAuth(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUnauthenticated
	}
	if requiredRole != "" && user.Role != requiredRole {
		return fmt.Errorf("%w: requires role %s", ErrForbidden, requiredRole)
	}
	return nil
}

func (s *Service) setState(state State, user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.user = user
}
