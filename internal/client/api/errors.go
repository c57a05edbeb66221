package api

import "fmt"

// ErrorResponse представляет тело ответа сервера с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}

// Error represents a non-2xx server response.
// Message carries the server-provided message when present,
// or a generic fallback derived from the raw body.
type Error struct {
	StatusCode int    // HTTP статус
	Message    string // сообщение сервера или fallback
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}
