package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.authService.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Println("✓ Logged out. Local session cleared.")
	return nil
}
