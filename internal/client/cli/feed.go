package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/clipers/clipers-cli/internal/client/feed"
	"github.com/clipers/clipers-cli/internal/models"
)

func (c *Cli) runFeed(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: clipers feed list|more|post|like|comment|comments")
	}

	if err := c.guard(ctx, ""); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return c.feedList(ctx, true)
	case "more":
		return c.feedList(ctx, false)
	case "post":
		return c.feedPost(ctx)
	case "like":
		if len(args) < 2 {
			return fmt.Errorf("usage: clipers feed like <post-id>")
		}
		return c.feedLike(ctx, args[1])
	case "comment":
		if len(args) < 2 {
			return fmt.Errorf("usage: clipers feed comment <post-id>")
		}
		return c.feedComment(ctx, args[1])
	case "comments":
		if len(args) < 2 {
			return fmt.Errorf("usage: clipers feed comments <post-id>")
		}
		return c.feedComments(ctx, args[1])
	default:
		return fmt.Errorf("unknown feed subcommand: %s", args[0])
	}
}

func (c *Cli) feedList(ctx context.Context, refresh bool) error {
	if err := c.feedStore.Load(ctx, refresh); err != nil {
		return fmt.Errorf("failed to load feed: %w", err)
	}

	posts := c.feedStore.Posts()
	if len(posts) == 0 {
		c.io.Println("The feed is empty.")
		return nil
	}

	for _, post := range posts {
		c.printPost(post)
	}

	if c.feedStore.HasMore() {
		c.io.Println("Run 'clipers feed more' to load the next page.")
	}
	return nil
}

func (c *Cli) printPost(post models.Post) {
	author := post.UserID
	if post.User != nil {
		author = displayName(post.User)
	}
	c.io.Printf("[%s] %s at %s\n", post.ID, author, post.CreatedAt.Format(time.DateTime))
	c.io.Printf("  %s\n", post.Content)
	liked := ""
	if post.IsLiked {
		liked = " (liked by you)"
	}
	c.io.Printf("  ♥ %d%s  comments: %d\n", post.Likes, liked, len(post.Comments))
	c.io.Println()
}

func (c *Cli) feedPost(ctx context.Context) error {
	content, err := c.io.ReadInput("Post content: ")
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}
	if content == "" {
		return fmt.Errorf("post content cannot be empty")
	}

	created, err := c.feedStore.Create(ctx, feed.CreatePostInput{
		Content: content,
		Type:    models.PostTypeText,
	})
	if err != nil {
		return err
	}

	c.io.Printf("✓ Posted (id: %s)\n", created.ID)
	return nil
}

func (c *Cli) feedLike(ctx context.Context, postID string) error {
	if err := c.feedStore.Like(ctx, postID); err != nil {
		return err
	}

	if post, ok := findPost(c.feedStore.Posts(), postID); ok {
		if post.IsLiked {
			c.io.Printf("✓ Liked (%d likes)\n", post.Likes)
		} else {
			c.io.Printf("✓ Unliked (%d likes)\n", post.Likes)
		}
		return nil
	}
	c.io.Println("✓ Done")
	return nil
}

func (c *Cli) feedComment(ctx context.Context, postID string) error {
	content, err := c.io.ReadInput("Comment: ")
	if err != nil {
		return fmt.Errorf("failed to read comment: %w", err)
	}
	if content == "" {
		return fmt.Errorf("comment cannot be empty")
	}

	created, err := c.feedStore.AddComment(ctx, postID, content)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Comment added (id: %s)\n", created.ID)
	return nil
}

func (c *Cli) feedComments(ctx context.Context, postID string) error {
	comments, err := c.feedStore.Comments(ctx, postID)
	if err != nil {
		return err
	}

	if len(comments) == 0 {
		c.io.Println("No comments yet.")
		return nil
	}

	for _, comment := range comments {
		author := comment.UserID
		if comment.User != nil {
			author = displayName(comment.User)
		}
		c.io.Printf("[%s] %s: %s\n", comment.CreatedAt.Format(time.DateTime), author, comment.Content)
	}
	return nil
}

func findPost(posts []models.Post, id string) (models.Post, bool) {
	for _, post := range posts {
		if post.ID == id {
			return post, true
		}
	}
	return models.Post{}, false
}
