package cli

import (
	"strings"

	"github.com/clipers/clipers-cli/internal/models"
)

func roleFromString(role string) models.Role {
	return models.Role(role)
}

// displayName возвращает отображаемое имя пользователя в зависимости от роли
func displayName(user *models.User) string {
	if user == nil {
		return ""
	}
	if user.Role == models.RoleCompany && user.CompanyName != "" {
		return user.CompanyName
	}
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		return user.Email
	}
	return name
}
