package models

import "time"

// PostType определяет тип публикации в ленте
type PostType string

const (
	PostTypeText   PostType = "TEXT"
	PostTypeImage  PostType = "IMAGE"
	PostTypeVideo  PostType = "VIDEO"
	PostTypeCliper PostType = "CLIPER"
)

// Post представляет публикацию в социальной ленте.
// Поля Likes и IsLiked обновляются только после подтверждения сервером
// (write-through, см. feed.Store.Like).
type Post struct {
	ID        string    `json:"id"`                 // UUID публикации
	Content   string    `json:"content"`            // текст публикации
	ImageURL  string    `json:"imageUrl,omitempty"` // URL изображения
	VideoURL  string    `json:"videoUrl,omitempty"` // URL видео
	Type      PostType  `json:"type"`               // тип: TEXT | IMAGE | VIDEO | CLIPER
	UserID    string    `json:"userId"`             // автор
	User      *User     `json:"user,omitempty"`     // развернутый автор (опционально)
	Likes     int       `json:"likes"`              // счетчик лайков
	Comments  []Comment `json:"comments"`           // комментарии
	IsLiked   bool      `json:"isLiked"`            // лайкнул ли текущий пользователь
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment представляет комментарий к публикации
type Comment struct {
	ID        string    `json:"id"`             // UUID комментария
	Content   string    `json:"content"`        // текст
	UserID    string    `json:"userId"`         // автор
	User      *User     `json:"user,omitempty"` // развернутый автор (опционально)
	PostID    string    `json:"postId"`         // публикация
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
