package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/clipers/clipers-cli/internal/client/jobs"
	"github.com/clipers/clipers-cli/internal/models"
)

func (c *Cli) runJobs(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: clipers jobs list|more|create|apply|update|delete|matches")
	}

	switch args[0] {
	case "list":
		if err := c.guard(ctx, ""); err != nil {
			return err
		}
		return c.jobsList(ctx, args[1:])
	case "more":
		if err := c.guard(ctx, ""); err != nil {
			return err
		}
		return c.jobsMore(ctx)
	case "create":
		// Вакансии публикуют только компании
		if err := c.guard(ctx, string(models.RoleCompany)); err != nil {
			return err
		}
		return c.jobsCreate(ctx)
	case "apply":
		// Откликаются только кандидаты
		if err := c.guard(ctx, string(models.RoleCandidate)); err != nil {
			return err
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: clipers jobs apply <job-id>")
		}
		return c.jobsApply(ctx, args[1])
	case "update":
		if err := c.guard(ctx, string(models.RoleCompany)); err != nil {
			return err
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: clipers jobs update <job-id>")
		}
		return c.jobsUpdate(ctx, args[1])
	case "delete":
		if err := c.guard(ctx, string(models.RoleCompany)); err != nil {
			return err
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: clipers jobs delete <job-id>")
		}
		return c.jobsDelete(ctx, args[1])
	case "matches":
		if err := c.guard(ctx, string(models.RoleCompany)); err != nil {
			return err
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: clipers jobs matches <job-id>")
		}
		return c.jobsMatches(ctx, args[1])
	default:
		return fmt.Errorf("unknown jobs subcommand: %s", args[0])
	}
}

// skillsFlag позволяет повторять --skill несколько раз
type skillsFlag []string

func (s *skillsFlag) String() string { return strings.Join(*s, ",") }

func (s *skillsFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func (c *Cli) jobsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("jobs list", flag.ContinueOnError)
	search := fs.String("search", "", "Free-text search query")
	location := fs.String("location", "", "Location filter")
	jobType := fs.String("type", "", "Job type: FULL_TIME, PART_TIME, CONTRACT, INTERNSHIP")
	salaryMin := fs.Int("salary-min", 0, "Minimum salary")
	salaryMax := fs.Int("salary-max", 0, "Maximum salary")
	industry := fs.String("industry", "", "Industry filter")
	var skills skillsFlag
	fs.Var(&skills, "skill", "Required skill (repeatable)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	filters := jobs.Filters{
		Location:  *location,
		Type:      models.JobType(*jobType),
		SalaryMin: *salaryMin,
		SalaryMax: *salaryMax,
		Skills:    skills,
		Industry:  *industry,
	}

	if err := c.jobStore.Search(ctx, *search, filters, true); err != nil {
		return fmt.Errorf("failed to search jobs: %w", err)
	}

	return c.printJobs()
}

func (c *Cli) jobsMore(ctx context.Context) error {
	if err := c.jobStore.Search(ctx, "", jobs.Filters{}, false); err != nil {
		return fmt.Errorf("failed to load more jobs: %w", err)
	}
	return c.printJobs()
}

func (c *Cli) printJobs() error {
	listings := c.jobStore.Jobs()
	if len(listings) == 0 {
		c.io.Println("No jobs found.")
		return nil
	}

	for _, job := range listings {
		company := job.CompanyID
		if job.Company != nil {
			company = job.Company.Name
		}
		c.io.Printf("[%s] %s at %s (%s, %s)\n", job.ID, job.Title, company, job.Location, job.Type)
		if job.SalaryMin > 0 || job.SalaryMax > 0 {
			c.io.Printf("  Salary: %d - %d\n", job.SalaryMin, job.SalaryMax)
		}
		if len(job.Skills) > 0 {
			c.io.Printf("  Skills: %s\n", strings.Join(job.Skills, ", "))
		}
		c.io.Println()
	}

	if c.jobStore.HasMore() {
		c.io.Println("Run 'clipers jobs more' to load the next page.")
	}
	return nil
}

func (c *Cli) jobsCreate(ctx context.Context) error {
	c.io.Println("=== New Job ===")

	title, err := c.io.ReadInput("Title: ")
	if err != nil {
		return err
	}
	description, err := c.io.ReadInput("Description: ")
	if err != nil {
		return err
	}
	location, err := c.io.ReadInput("Location: ")
	if err != nil {
		return err
	}
	jobType, err := c.io.ReadInput("Type (FULL_TIME/PART_TIME/CONTRACT/INTERNSHIP): ")
	if err != nil {
		return err
	}
	skillsInput, err := c.io.ReadInput("Skills (comma-separated): ")
	if err != nil {
		return err
	}
	salaryMinInput, err := c.io.ReadInput("Salary min (optional): ")
	if err != nil {
		return err
	}
	salaryMaxInput, err := c.io.ReadInput("Salary max (optional): ")
	if err != nil {
		return err
	}

	if title == "" || description == "" {
		return fmt.Errorf("title and description are required")
	}
	salaryMin, err := parseSalary(salaryMinInput)
	if err != nil {
		return err
	}
	salaryMax, err := parseSalary(salaryMaxInput)
	if err != nil {
		return err
	}

	created, err := c.jobStore.Create(ctx, jobs.CreateJobInput{
		Title:       title,
		Description: description,
		Location:    location,
		Type:        models.JobType(jobType),
		Skills:      splitList(skillsInput),
		SalaryMin:   salaryMin,
		SalaryMax:   salaryMax,
	})
	if err != nil {
		return err
	}

	c.io.Printf("✓ Job published (id: %s)\n", created.ID)
	return nil
}

func (c *Cli) jobsApply(ctx context.Context, jobID string) error {
	if err := c.jobStore.Apply(ctx, jobID); err != nil {
		return err
	}
	c.io.Println("✓ Application submitted")
	return nil
}

func (c *Cli) jobsUpdate(ctx context.Context, jobID string) error {
	c.io.Println("Leave a field empty to keep its current value.")

	title, err := c.io.ReadInput("New title: ")
	if err != nil {
		return err
	}
	description, err := c.io.ReadInput("New description: ")
	if err != nil {
		return err
	}

	var input jobs.UpdateJobInput
	if title != "" {
		input.Title = &title
	}
	if description != "" {
		input.Description = &description
	}

	updated, err := c.jobStore.Update(ctx, jobID, input)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Job updated: %s\n", updated.Title)
	return nil
}

func (c *Cli) jobsDelete(ctx context.Context, jobID string) error {
	if err := c.jobStore.Delete(ctx, jobID); err != nil {
		return err
	}
	c.io.Println("✓ Job deleted")
	return nil
}

func (c *Cli) jobsMatches(ctx context.Context, jobID string) error {
	if err := c.jobStore.LoadMatches(ctx, jobID); err != nil {
		return err
	}

	matches := c.jobStore.Matches()
	if len(matches) == 0 {
		c.io.Println("No matches yet.")
		return nil
	}

	for _, match := range matches {
		candidate := match.UserID
		if match.User != nil {
			candidate = displayName(match.User)
		}
		c.io.Printf("%.0f%%  %s\n", match.Score*100, candidate)
		if match.Explanation != "" {
			c.io.Printf("  %s\n", match.Explanation)
		}
		if len(match.MatchedSkills) > 0 {
			c.io.Printf("  Matched skills: %s\n", strings.Join(match.MatchedSkills, ", "))
		}
	}
	return nil
}

// splitList разбирает список, разделенный запятыми, отбрасывая пустые элементы
func splitList(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parseSalary разбирает числовое значение зарплаты
func parseSalary(input string) (int, error) {
	if input == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid salary %q: %w", input, err)
	}
	return value, nil
}
