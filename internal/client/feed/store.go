// Package feed реализует клиентский store социальной ленты.
package feed

import (
	"context"
	"fmt"

	"github.com/clipers/clipers-cli/internal/client/api"
	"github.com/clipers/clipers-cli/internal/client/collection"
	"github.com/clipers/clipers-cli/internal/models"
)

// feedPage конверт ответа списочного endpoint ленты
type feedPage struct {
	Posts      []models.Post `json:"posts"`
	HasMore    bool          `json:"hasMore"`
	TotalPages int           `json:"totalPages"`
}

// CreatePostInput описывает новую публикацию
type CreatePostInput struct {
	Content  string          `json:"content"`
	Type     models.PostType `json:"type"`
	ImageURL string          `json:"imageUrl,omitempty"`
}

// Store кеширует постраничную ленту публикаций.
// Все мутации write-through: локальный кеш меняется только после
// подтверждения сервером; неудачный вызов оставляет кеш нетронутым.
type Store struct {
	apiClient api.ClientAPI
	list      *collection.Store[models.Post]
}

// NewStore создает store ленты с заданным размером страницы
func NewStore(apiClient api.ClientAPI, pageSize int) *Store {
	s := &Store{apiClient: apiClient}
	s.list = collection.New(pageSize,
		func(ctx context.Context, page, size int) (collection.Page[models.Post], error) {
			var resp feedPage
			path := fmt.Sprintf("/posts?page=%d&size=%d", page, size)
			if err := apiClient.Get(ctx, path, &resp); err != nil {
				return collection.Page[models.Post]{}, err
			}
			return collection.Page[models.Post]{Items: resp.Posts, HasMore: resp.HasMore}, nil
		},
		func(p models.Post) string { return p.ID },
	)
	return s
}

// Load подгружает ленту. refresh перечитывает с первой страницы.
func (s *Store) Load(ctx context.Context, refresh bool) error {
	return s.list.Load(ctx, refresh)
}

// Posts возвращает снимок кешированной ленты
func (s *Store) Posts() []models.Post {
	return s.list.Items()
}

// Loading сообщает, идет ли загрузка ленты
func (s *Store) Loading() bool {
	return s.list.Loading()
}

// HasMore сообщает, остались ли незагруженные страницы
func (s *Store) HasMore() bool {
	return s.list.HasMore()
}

// Create публикует новую запись и вставляет подтвержденную сервером
// публикацию в начало ленты, не дожидаясь перечитывания списка
func (s *Store) Create(ctx context.Context, input CreatePostInput) (*models.Post, error) {
	if input.Type == "" {
		input.Type = models.PostTypeText
	}

	var created models.Post
	if err := s.apiClient.Post(ctx, "/posts", input, &created); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.list.Prepend(created)
	return &created, nil
}

// Like переключает лайк публикации. Локальный флаг и счетчик меняются
// только после успешного ответа сервера (write-through): при ошибке
// кеш не меняется, ошибка возвращается вызывающему.
func (s *Store) Like(ctx context.Context, postID string) error {
	if err := s.apiClient.Post(ctx, "/posts/"+postID+"/like", nil, nil); err != nil {
		return fmt.Errorf("failed to like post: %w", err)
	}

	s.list.Update(postID, func(p *models.Post) {
		if p.IsLiked {
			p.Likes--
		} else {
			p.Likes++
		}
		p.IsLiked = !p.IsLiked
	})

	return nil
}

// AddComment добавляет комментарий и дописывает подтвержденный сервером
// комментарий к соответствующей публикации в кеше
func (s *Store) AddComment(ctx context.Context, postID, content string) (*models.Comment, error) {
	body := map[string]string{"content": content}

	var created models.Comment
	if err := s.apiClient.Post(ctx, "/posts/"+postID+"/comments", body, &created); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	s.list.Update(postID, func(p *models.Post) {
		p.Comments = append(p.Comments, created)
	})

	return &created, nil
}

// Comments загружает комментарии публикации. Результат не кешируется.
func (s *Store) Comments(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.apiClient.Get(ctx, "/posts/"+postID+"/comments", &comments); err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	return comments, nil
}
