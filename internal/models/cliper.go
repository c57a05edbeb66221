package models

import "time"

// CliperStatus описывает стадию серверной обработки видео.
// Машина состояний движется строго вперед:
// UPLOADED -> PROCESSING -> DONE | FAILED.
// Клиент только опрашивает статус, переходами управляет сервер.
type CliperStatus string

const (
	CliperStatusUploaded   CliperStatus = "UPLOADED"
	CliperStatusProcessing CliperStatus = "PROCESSING"
	CliperStatusDone       CliperStatus = "DONE"
	CliperStatusFailed     CliperStatus = "FAILED"
)

// Terminal сообщает, достигла ли обработка конечного состояния.
// Из DONE и FAILED возврата назад не бывает — опрос статуса можно прекращать.
func (s CliperStatus) Terminal() bool {
	return s == CliperStatusDone || s == CliperStatusFailed
}

// Cliper представляет короткое видео пользователя с асинхронным
// серверным пайплайном обработки (транскрипция, извлечение навыков)
type Cliper struct {
	ID            string       `json:"id"`                      // UUID клипера
	Title         string       `json:"title"`                   // заголовок
	Description   string       `json:"description"`             // описание
	VideoURL      string       `json:"videoUrl"`                // URL видео
	ThumbnailURL  string       `json:"thumbnailUrl,omitempty"`  // URL превью
	Duration      int          `json:"duration"`                // длительность в секундах
	Status        CliperStatus `json:"status"`                  // стадия обработки
	Transcription string       `json:"transcription,omitempty"` // транскрипция (после обработки)
	Skills        []string     `json:"skills"`                  // извлеченные навыки
	UserID        string       `json:"userId"`                  // владелец
	User          *User        `json:"user,omitempty"`          // развернутый владелец
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
