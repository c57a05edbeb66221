package models

import "time"

// JobType определяет тип занятости
type JobType string

const (
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeContract   JobType = "CONTRACT"
	JobTypeInternship JobType = "INTERNSHIP"
)

// Job представляет вакансию
type Job struct {
	ID           string    `json:"id"`                 // UUID вакансии
	Title        string    `json:"title"`              // название
	Description  string    `json:"description"`        // описание
	Requirements []string  `json:"requirements"`       // требования
	Skills       []string  `json:"skills"`             // требуемые навыки
	Location     string    `json:"location"`           // местоположение
	Type         JobType   `json:"type"`               // тип занятости
	SalaryMin    int       `json:"salaryMin,omitempty"` // нижняя граница зарплаты
	SalaryMax    int       `json:"salaryMax,omitempty"` // верхняя граница зарплаты
	CompanyID    string    `json:"companyId"`          // компания-владелец
	Company      *Company  `json:"company,omitempty"`  // развернутая компания (опционально)
	IsActive     bool      `json:"isActive"`           // активна ли вакансия
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// JobMatch представляет результат ML-матчинга кандидата и вакансии.
// Матчинг полностью на стороне сервера, клиент только отображает результат.
type JobMatch struct {
	ID            string    `json:"id"`             // UUID матча
	JobID         string    `json:"jobId"`          // вакансия
	Job           *Job      `json:"job,omitempty"`  // развернутая вакансия
	UserID        string    `json:"userId"`         // кандидат
	User          *User     `json:"user,omitempty"` // развернутый кандидат
	Score         float64   `json:"score"`          // оценка соответствия 0..1
	Explanation   string    `json:"explanation"`    // текстовое объяснение
	MatchedSkills []string  `json:"matchedSkills"`  // совпавшие навыки
	CreatedAt     time.Time `json:"createdAt"`
}
