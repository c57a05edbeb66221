package models

import "time"

// SkillLevel уровень владения навыком
type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "BEGINNER"
	SkillLevelIntermediate SkillLevel = "INTERMEDIATE"
	SkillLevelAdvanced     SkillLevel = "ADVANCED"
	SkillLevelExpert       SkillLevel = "EXPERT"
)

// SkillCategory категория навыка
type SkillCategory string

const (
	SkillCategoryTechnical SkillCategory = "TECHNICAL"
	SkillCategorySoft      SkillCategory = "SOFT"
	SkillCategoryLanguage  SkillCategory = "LANGUAGE"
)

// LanguageLevel уровень владения языком
type LanguageLevel string

const (
	LanguageLevelBasic        LanguageLevel = "BASIC"
	LanguageLevelIntermediate LanguageLevel = "INTERMEDIATE"
	LanguageLevelAdvanced     LanguageLevel = "ADVANCED"
	LanguageLevelNative       LanguageLevel = "NATIVE"
)

// ATSProfile представляет структурированное резюме кандидата
// (Applicant Tracking System). Принадлежит ровно одному кандидату;
// у компаний ATS-профиля не существует по построению — это не ошибка.
type ATSProfile struct {
	ID         string       `json:"id"`      // UUID профиля
	Summary    string       `json:"summary"` // краткое описание
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Skills     []Skill      `json:"skills"`
	Languages  []Language   `json:"languages"`
	UserID     string       `json:"userId"` // кандидат-владелец
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// Education запись об образовании.
// Даты хранятся строками в формате сервера (могут быть неполными, "2020-09").
type Education struct {
	ID          string `json:"id,omitempty"`
	Institution string `json:"institution"` // учебное заведение
	Degree      string `json:"degree"`      // степень
	Field       string `json:"field"`       // направление
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// Experience запись об опыте работы
type Experience struct {
	ID          string   `json:"id,omitempty"`
	Company     string   `json:"company"`  // работодатель
	Position    string   `json:"position"` // должность
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate,omitempty"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"` // использованные навыки
}

// Skill навык кандидата
type Skill struct {
	ID       string        `json:"id,omitempty"`
	Name     string        `json:"name"`
	Level    SkillLevel    `json:"level"`
	Category SkillCategory `json:"category"`
}

// Language язык кандидата
type Language struct {
	ID    string        `json:"id,omitempty"`
	Name  string        `json:"name"`
	Level LanguageLevel `json:"level"`
}
