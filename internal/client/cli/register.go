package cli

import (
	"context"
	"fmt"

	"github.com/clipers/clipers-cli/internal/client/auth"
	"github.com/clipers/clipers-cli/internal/models"
	"github.com/clipers/clipers-cli/internal/validation"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Register ===")
	c.io.Println()

	// 1. Выбираем роль
	roleInput, err := c.io.ReadInput("Role (candidate/company): ")
	if err != nil {
		return fmt.Errorf("failed to read role: %w", err)
	}

	var role models.Role
	switch roleInput {
	case "candidate":
		role = models.RoleCandidate
	case "company":
		role = models.RoleCompany
	default:
		return fmt.Errorf("unknown role %q: expected candidate or company", roleInput)
	}

	// 2. Общие поля
	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	confirmation, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}

	// Проверяем совпадение до любого сетевого вызова
	if err := validation.ValidatePasswordConfirmation(password, confirmation); err != nil {
		return err
	}

	// 3. Поля, зависящие от роли
	input := auth.RegisterInput{
		Role:     role,
		Email:    email,
		Password: password,
	}

	if role == models.RoleCandidate {
		if input.FirstName, err = c.io.ReadInput("First name: "); err != nil {
			return fmt.Errorf("failed to read first name: %w", err)
		}
		if input.LastName, err = c.io.ReadInput("Last name: "); err != nil {
			return fmt.Errorf("failed to read last name: %w", err)
		}
	} else {
		if input.CompanyName, err = c.io.ReadInput("Company name: "); err != nil {
			return fmt.Errorf("failed to read company name: %w", err)
		}
	}

	c.io.Println()
	c.io.Println("Creating account...")

	user, err := c.authService.Register(ctx, input)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("Logged in as: %s (%s)\n", displayName(user), user.Role)

	return nil
}
