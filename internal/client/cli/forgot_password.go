package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runForgotPassword(ctx context.Context) error {
	c.io.Println("=== Forgot Password ===")
	c.io.Println()

	// Запрашиваем email
	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	c.io.Println()
	c.io.Println("Requesting password reset...")

	if err := c.authService.ForgotPassword(ctx, email); err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Request sent!")
	c.io.Printf("If an account exists for %s, reset instructions are on their way.\n", email)
	c.io.Println("Check your spam folder if the email does not arrive.")

	return nil
}
