package models

import "time"

// Role определяет роль пользователя на платформе
type Role string

const (
	// RoleCandidate соискатель (кандидат)
	RoleCandidate Role = "CANDIDATE"
	// RoleCompany компания-работодатель
	RoleCompany Role = "COMPANY"
	// RoleAdmin администратор платформы
	RoleAdmin Role = "ADMIN"
)

// User представляет пользователя платформы.
// Сервер является единственным источником идентичности:
// клиент никогда не назначает ID самостоятельно.
type User struct {
	ID           string    `json:"id"`                     // UUID пользователя
	Email        string    `json:"email"`                  // email (логин)
	FirstName    string    `json:"firstName,omitempty"`    // имя (для кандидатов)
	LastName     string    `json:"lastName,omitempty"`     // фамилия (для кандидатов)
	CompanyName  string    `json:"companyName,omitempty"`  // название компании (для компаний)
	Role         Role      `json:"role"`                   // роль: CANDIDATE | COMPANY | ADMIN
	ProfileImage string    `json:"profileImage,omitempty"` // URL аватара
	CreatedAt    time.Time `json:"createdAt"`              // время создания
	UpdatedAt    time.Time `json:"updatedAt"`              // время последнего обновления
}

// Company представляет публичный профиль компании
type Company struct {
	ID          string    `json:"id"`                // UUID компании
	Name        string    `json:"name"`              // название
	Description string    `json:"description"`       // описание
	Industry    string    `json:"industry"`          // отрасль
	Size        string    `json:"size"`              // размер (например, "11-50")
	Website     string    `json:"website,omitempty"` // сайт
	Logo        string    `json:"logo,omitempty"`    // URL логотипа
	Location    string    `json:"location"`          // местоположение
	UserID      string    `json:"userId"`            // ID пользователя-владельца
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
