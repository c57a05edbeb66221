package cli

import (
	"context"
	"time"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session Status ===")
	c.io.Println()

	// Проверяем сохраненную сессию у сервера
	user, err := c.authService.CheckAuth(ctx)
	if err != nil {
		return err
	}

	if user == nil {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'clipers login' to authenticate.")
		return nil
	}

	c.io.Println("Status: Authenticated")
	c.io.Printf("User:   %s (%s)\n", displayName(user), user.Role)
	c.io.Printf("Email:  %s\n", user.Email)

	// Срок действия access token — справочно: истекший токен
	// прозрачно обновится при следующем запросе
	if expiry, err := c.authService.TokenExpiry(ctx); err == nil {
		c.io.Printf("Access token expires: %s\n", expiry.Format(time.RFC3339))
		if remaining := time.Until(expiry); remaining > 0 {
			c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
		}
	}

	return nil
}
