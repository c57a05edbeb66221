package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/clipers/clipers-cli/internal/models"
)

// EmailPattern определяет допустимый формат email.
// Упрощенная проверка: серверная валидация остается авторитетной.
var EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 8

	// MaxVideoSize максимальный размер видеофайла (100 MiB)
	MaxVideoSize = 100 * 1024 * 1024
)

// videoExtensions допустимые расширения видеофайлов
var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".webm": true,
}

// ValidateEmail проверяет формат email перед отправкой на сервер
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
// Минимум 8 символов
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}
	return nil
}

// ValidatePasswordConfirmation проверяет совпадение пароля и подтверждения
func ValidatePasswordConfirmation(password, confirmation string) error {
	if password != confirmation {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

// ValidateRegistration проверяет обязательные поля регистрации
// в зависимости от роли: кандидату нужны имя и фамилия,
// компании — название компании
func ValidateRegistration(role models.Role, email, password, firstName, lastName, companyName string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}

	switch role {
	case models.RoleCandidate:
		if firstName == "" || lastName == "" {
			return fmt.Errorf("first name and last name are required for candidates")
		}
	case models.RoleCompany:
		if companyName == "" {
			return fmt.Errorf("company name is required for companies")
		}
	default:
		return fmt.Errorf("unsupported role: %s", role)
	}

	return nil
}

// ValidateVideoFile проверяет видеофайл перед загрузкой:
// расширение из списка допустимых, размер не больше MaxVideoSize
func ValidateVideoFile(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !videoExtensions[ext] {
		return fmt.Errorf("unsupported video format %q: expected mp4, mov, avi or webm", ext)
	}
	if size <= 0 {
		return fmt.Errorf("video file is empty")
	}
	if size > MaxVideoSize {
		return fmt.Errorf("video file is too large: maximum size is 100MB")
	}
	return nil
}
