// Package cli содержит команды клиента Clipers.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clipers/clipers-cli/internal/client/auth"
	"github.com/clipers/clipers-cli/internal/client/clipers"
	"github.com/clipers/clipers-cli/internal/client/feed"
	"github.com/clipers/clipers-cli/internal/client/iocli"
	"github.com/clipers/clipers-cli/internal/client/jobs"
	"github.com/clipers/clipers-cli/internal/client/profile"
)

// Cli связывает команды со stores. Stores создаются один раз на запуск
// и передаются по ссылке — одна разделяемая копия состояния на процесс.
type Cli struct {
	io           iocli.IO
	authService  *auth.Service
	feedStore    *feed.Store
	jobStore     *jobs.Store
	cliperStore  *clipers.Store
	profileStore *profile.Store
	logger       *slog.Logger
}

// New создает Cli со всеми зависимостями
func New(
	io iocli.IO,
	authService *auth.Service,
	feedStore *feed.Store,
	jobStore *jobs.Store,
	cliperStore *clipers.Store,
	profileStore *profile.Store,
	logger *slog.Logger,
) *Cli {
	return &Cli{
		io:           io,
		authService:  authService,
		feedStore:    feedStore,
		jobStore:     jobStore,
		cliperStore:  cliperStore,
		profileStore: profileStore,
		logger:       logger,
	}
}

// Run выполняет команду с аргументами
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "forgot-password":
		return c.runForgotPassword(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "feed":
		return c.runFeed(ctx, args)
	case "jobs":
		return c.runJobs(ctx, args)
	case "clipers":
		return c.runClipers(ctx, args)
	case "profile":
		return c.runProfile(ctx, args)
	case "ats":
		return c.runATS(ctx, args)
	default:
		PrintUsage(c.io)
		return fmt.Errorf("unknown command: %s", command)
	}
}

// guard разрешает сессию перед защищенной командой и переводит
// ошибки защиты в понятные пользователю сообщения
func (c *Cli) guard(ctx context.Context, requiredRole string) error {
	err := c.authService.Guard(ctx, roleFromString(requiredRole))
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return fmt.Errorf("not authenticated. Please run 'clipers login' first")
	case errors.Is(err, auth.ErrForbidden):
		return fmt.Errorf("access denied: this command requires the %s role", requiredRole)
	default:
		return err
	}
}

// PrintUsage печатает справку по командам
func PrintUsage(io iocli.IO) {
	io.Println("Clipers Client")
	io.Println()
	io.Println("Usage:")
	io.Println("  clipers [OPTIONS] COMMAND [ARGS]")
	io.Println()
	io.Println("Options:")
	io.Println("  --version      Show version information")
	io.Println("  --server URL   Server URL (overrides CLIPERS_SERVER_URL)")
	io.Println("  --db PATH      Path to local token database (default: clipers-client.db)")
	io.Println("  --verbose      Enable debug logging")
	io.Println()
	io.Println("Commands:")
	io.Println("  register                      Register a new account")
	io.Println("  login                         Login to the platform")
	io.Println("  forgot-password               Request a password reset email")
	io.Println("  logout                        Logout and clear the local session")
	io.Println("  status                        Show session status")
	io.Println("  feed list|more|post|like|comment|comments")
	io.Println("                                Social feed operations")
	io.Println("  jobs list|more|create|apply|update|delete|matches")
	io.Println("                                Job listing operations")
	io.Println("  clipers list|more|mine|upload|status|watch|delete")
	io.Println("                                Video cliper operations")
	io.Println("  profile show|update           Profile operations")
	io.Println("  ats show|summary|add|update|delete")
	io.Println("                                ATS profile operations")
	io.Println()
	io.Println("Examples:")
	io.Println("  clipers register")
	io.Println("  clipers feed list")
	io.Println("  clipers jobs list --search golang --location Madrid")
	io.Println("  clipers clipers upload --file intro.mp4 --title 'Who I am'")
	io.Println("  clipers clipers watch <cliper-id>")
	io.Println("  clipers ats add education")
}
