package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	// Запрашиваем email
	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	// Запрашиваем пароль
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	user, err := c.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Logged in as: %s (%s)\n", displayName(user), user.Role)
	c.io.Println("Your session has been saved.")

	return nil
}
