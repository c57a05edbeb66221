package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/clipers/clipers-cli/internal/client/profile"
	"github.com/clipers/clipers-cli/internal/models"
)

func (c *Cli) runProfile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: clipers profile show [user-id] | update")
	}

	if err := c.guard(ctx, ""); err != nil {
		return err
	}

	switch args[0] {
	case "show":
		userID := ""
		if len(args) > 1 {
			userID = args[1]
		}
		return c.profileShow(ctx, userID)
	case "update":
		return c.profileUpdate(ctx)
	default:
		return fmt.Errorf("unknown profile subcommand: %s", args[0])
	}
}

func (c *Cli) profileShow(ctx context.Context, userID string) error {
	if err := c.profileStore.Load(ctx, userID); err != nil {
		return err
	}

	user := c.profileStore.Profile()
	if user == nil {
		return fmt.Errorf("profile not found")
	}

	c.io.Printf("%s (%s)\n", displayName(user), user.Role)
	c.io.Printf("Email: %s\n", user.Email)

	// ATS-профиль есть только у кандидатов; для компаний загрузка
	// молча пропускается внутри store
	if err := c.profileStore.LoadATS(ctx, userID); err != nil {
		return err
	}
	if ats := c.profileStore.ATS(); ats != nil {
		c.io.Println()
		c.printATS(ats)
	}

	return nil
}

func (c *Cli) profileUpdate(ctx context.Context) error {
	c.io.Println("Leave a field empty to keep its current value.")

	firstName, err := c.io.ReadInput("First name: ")
	if err != nil {
		return err
	}
	lastName, err := c.io.ReadInput("Last name: ")
	if err != nil {
		return err
	}
	companyName, err := c.io.ReadInput("Company name: ")
	if err != nil {
		return err
	}

	var input profile.UpdateProfileInput
	if firstName != "" {
		input.FirstName = &firstName
	}
	if lastName != "" {
		input.LastName = &lastName
	}
	if companyName != "" {
		input.CompanyName = &companyName
	}

	updated, err := c.profileStore.Update(ctx, input)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Profile updated: %s\n", displayName(updated))
	return nil
}

func (c *Cli) printATS(ats *models.ATSProfile) {
	c.io.Println("=== ATS Profile ===")
	if ats.Summary != "" {
		c.io.Printf("Summary: %s\n", ats.Summary)
	}

	if len(ats.Education) > 0 {
		c.io.Println("Education:")
		for _, edu := range ats.Education {
			c.io.Printf("  [%s] %s, %s (%s)\n", edu.ID, edu.Institution, edu.Degree, edu.Field)
		}
	}
	if len(ats.Experience) > 0 {
		c.io.Println("Experience:")
		for _, exp := range ats.Experience {
			c.io.Printf("  [%s] %s @ %s (%s - %s)\n", exp.ID, exp.Position, exp.Company, exp.StartDate, exp.EndDate)
		}
	}
	if len(ats.Skills) > 0 {
		c.io.Println("Skills:")
		for _, skill := range ats.Skills {
			c.io.Printf("  [%s] %s (%s, %s)\n", skill.ID, skill.Name, skill.Level, skill.Category)
		}
	}
	if len(ats.Languages) > 0 {
		c.io.Println("Languages:")
		for _, lang := range ats.Languages {
			c.io.Printf("  [%s] %s (%s)\n", lang.ID, lang.Name, lang.Level)
		}
	}
}

func (c *Cli) runATS(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: clipers ats show | add|update|delete education|experience|skill|language")
	}

	// ATS-профиль существует только у кандидатов
	if err := c.guard(ctx, string(models.RoleCandidate)); err != nil {
		return err
	}

	switch args[0] {
	case "show":
		return c.atsShow(ctx)
	case "summary":
		return c.atsSummary(ctx)
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: clipers ats add education|experience|skill|language")
		}
		return c.atsAdd(ctx, args[1])
	case "update":
		if len(args) < 3 {
			return fmt.Errorf("usage: clipers ats update education|experience|skill|language <id>")
		}
		return c.atsUpdate(ctx, args[1], args[2])
	case "delete":
		if len(args) < 3 {
			return fmt.Errorf("usage: clipers ats delete education|experience|skill|language <id>")
		}
		return c.atsDelete(ctx, args[1], args[2])
	default:
		return fmt.Errorf("unknown ats subcommand: %s", args[0])
	}
}

// loadOwnATS загружает собственные профиль и ATS-профиль
func (c *Cli) loadOwnATS(ctx context.Context) error {
	if err := c.profileStore.Load(ctx, ""); err != nil {
		return err
	}
	return c.profileStore.LoadATS(ctx, "")
}

func (c *Cli) atsShow(ctx context.Context) error {
	if err := c.loadOwnATS(ctx); err != nil {
		return err
	}

	ats := c.profileStore.ATS()
	if ats == nil {
		c.io.Println("No ATS profile yet. Add entries with 'clipers ats add'.")
		return nil
	}
	c.printATS(ats)
	return nil
}

func (c *Cli) atsSummary(ctx context.Context) error {
	summary, err := c.io.ReadInput("Summary: ")
	if err != nil {
		return err
	}

	updated, err := c.profileStore.UpdateATS(ctx, profile.UpdateATSInput{Summary: &summary})
	if err != nil {
		return err
	}

	c.io.Printf("✓ Summary updated: %s\n", updated.Summary)
	return nil
}

func (c *Cli) atsAdd(ctx context.Context, kind string) error {
	if err := c.loadOwnATS(ctx); err != nil {
		return err
	}

	switch kind {
	case "education":
		edu, err := c.promptEducation()
		if err != nil {
			return err
		}
		created, err := c.profileStore.AddEducation(ctx, edu)
		if err != nil {
			return err
		}
		c.io.Printf("✓ Education added (id: %s)\n", created.ID)
	case "experience":
		exp, err := c.promptExperience()
		if err != nil {
			return err
		}
		created, err := c.profileStore.AddExperience(ctx, exp)
		if err != nil {
			return err
		}
		c.io.Printf("✓ Experience added (id: %s)\n", created.ID)
	case "skill":
		skill, err := c.promptSkill()
		if err != nil {
			return err
		}
		created, err := c.profileStore.AddSkill(ctx, skill)
		if err != nil {
			return err
		}
		c.io.Printf("✓ Skill added (id: %s)\n", created.ID)
	case "language":
		lang, err := c.promptLanguage()
		if err != nil {
			return err
		}
		created, err := c.profileStore.AddLanguage(ctx, lang)
		if err != nil {
			return err
		}
		c.io.Printf("✓ Language added (id: %s)\n", created.ID)
	default:
		return fmt.Errorf("unknown ats entry kind: %s", kind)
	}
	return nil
}

func (c *Cli) atsUpdate(ctx context.Context, kind, id string) error {
	if err := c.loadOwnATS(ctx); err != nil {
		return err
	}

	switch kind {
	case "education":
		edu, err := c.promptEducation()
		if err != nil {
			return err
		}
		if _, err := c.profileStore.UpdateEducation(ctx, id, edu); err != nil {
			return err
		}
	case "experience":
		exp, err := c.promptExperience()
		if err != nil {
			return err
		}
		if _, err := c.profileStore.UpdateExperience(ctx, id, exp); err != nil {
			return err
		}
	case "skill":
		skill, err := c.promptSkill()
		if err != nil {
			return err
		}
		if _, err := c.profileStore.UpdateSkill(ctx, id, skill); err != nil {
			return err
		}
	case "language":
		lang, err := c.promptLanguage()
		if err != nil {
			return err
		}
		if _, err := c.profileStore.UpdateLanguage(ctx, id, lang); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown ats entry kind: %s", kind)
	}

	c.io.Println("✓ Updated")
	return nil
}

func (c *Cli) atsDelete(ctx context.Context, kind, id string) error {
	if err := c.loadOwnATS(ctx); err != nil {
		return err
	}

	var err error
	switch kind {
	case "education":
		err = c.profileStore.DeleteEducation(ctx, id)
	case "experience":
		err = c.profileStore.DeleteExperience(ctx, id)
	case "skill":
		err = c.profileStore.DeleteSkill(ctx, id)
	case "language":
		err = c.profileStore.DeleteLanguage(ctx, id)
	default:
		return fmt.Errorf("unknown ats entry kind: %s", kind)
	}
	if err != nil {
		return err
	}

	c.io.Println("✓ Deleted")
	return nil
}

func (c *Cli) promptEducation() (models.Education, error) {
	var edu models.Education
	var err error
	if edu.Institution, err = c.io.ReadInput("Institution: "); err != nil {
		return edu, err
	}
	if edu.Degree, err = c.io.ReadInput("Degree: "); err != nil {
		return edu, err
	}
	if edu.Field, err = c.io.ReadInput("Field: "); err != nil {
		return edu, err
	}
	if edu.StartDate, err = c.io.ReadInput("Start date (YYYY-MM): "); err != nil {
		return edu, err
	}
	if edu.EndDate, err = c.io.ReadInput("End date (YYYY-MM, optional): "); err != nil {
		return edu, err
	}
	return edu, nil
}

func (c *Cli) promptExperience() (models.Experience, error) {
	var exp models.Experience
	var err error
	if exp.Company, err = c.io.ReadInput("Company: "); err != nil {
		return exp, err
	}
	if exp.Position, err = c.io.ReadInput("Position: "); err != nil {
		return exp, err
	}
	if exp.StartDate, err = c.io.ReadInput("Start date (YYYY-MM): "); err != nil {
		return exp, err
	}
	if exp.EndDate, err = c.io.ReadInput("End date (YYYY-MM, optional): "); err != nil {
		return exp, err
	}
	if exp.Description, err = c.io.ReadInput("Description: "); err != nil {
		return exp, err
	}
	skills, err := c.io.ReadInput("Skills (comma-separated): ")
	if err != nil {
		return exp, err
	}
	exp.Skills = splitList(skills)
	return exp, nil
}

func (c *Cli) promptSkill() (models.Skill, error) {
	var skill models.Skill
	name, err := c.io.ReadInput("Skill name: ")
	if err != nil {
		return skill, err
	}
	level, err := c.io.ReadInput("Level (BEGINNER/INTERMEDIATE/ADVANCED/EXPERT): ")
	if err != nil {
		return skill, err
	}
	category, err := c.io.ReadInput("Category (TECHNICAL/SOFT/LANGUAGE): ")
	if err != nil {
		return skill, err
	}
	skill.Name = name
	skill.Level = models.SkillLevel(strings.ToUpper(level))
	skill.Category = models.SkillCategory(strings.ToUpper(category))
	return skill, nil
}

func (c *Cli) promptLanguage() (models.Language, error) {
	var lang models.Language
	name, err := c.io.ReadInput("Language: ")
	if err != nil {
		return lang, err
	}
	level, err := c.io.ReadInput("Level (BASIC/INTERMEDIATE/ADVANCED/NATIVE): ")
	if err != nil {
		return lang, err
	}
	lang.Name = name
	lang.Level = models.LanguageLevel(strings.ToUpper(level))
	return lang, nil
}
