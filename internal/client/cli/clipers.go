package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/clipers/clipers-cli/internal/client/clipers"
	"github.com/clipers/clipers-cli/internal/models"
)

// pollInterval период опроса статуса обработки клипера
const pollInterval = 3 * time.Second

func (c *Cli) runClipers(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: clipers clipers list|more|mine|upload|status|watch|delete")
	}

	if err := c.guard(ctx, ""); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return c.clipersList(ctx, true)
	case "more":
		return c.clipersList(ctx, false)
	case "mine":
		return c.clipersMine(ctx)
	case "upload":
		return c.clipersUpload(ctx, args[1:])
	case "status":
		if len(args) < 2 {
			return fmt.Errorf("usage: clipers clipers status <cliper-id>")
		}
		return c.clipersStatus(ctx, args[1])
	case "watch":
		if len(args) < 2 {
			return fmt.Errorf("usage: clipers clipers watch <cliper-id>")
		}
		return c.clipersWatch(ctx, args[1])
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: clipers clipers delete <cliper-id>")
		}
		return c.clipersDelete(ctx, args[1])
	default:
		return fmt.Errorf("unknown clipers subcommand: %s", args[0])
	}
}

func (c *Cli) clipersList(ctx context.Context, refresh bool) error {
	if err := c.cliperStore.Load(ctx, refresh); err != nil {
		return fmt.Errorf("failed to load clipers: %w", err)
	}
	c.printClipers()

	if c.cliperStore.HasMore() {
		c.io.Println("Run 'clipers clipers more' to load the next page.")
	}
	return nil
}

func (c *Cli) clipersMine(ctx context.Context) error {
	if err := c.cliperStore.LoadMine(ctx); err != nil {
		return err
	}
	c.printClipers()
	return nil
}

func (c *Cli) printClipers() {
	items := c.cliperStore.Clipers()
	if len(items) == 0 {
		c.io.Println("No clipers found.")
		return
	}

	for _, cliper := range items {
		c.io.Printf("[%s] %s (%s, %ds)\n", cliper.ID, cliper.Title, cliper.Status, cliper.Duration)
		if len(cliper.Skills) > 0 {
			c.io.Printf("  Skills: %s\n", strings.Join(cliper.Skills, ", "))
		}
	}
	c.io.Println()
}

func (c *Cli) clipersUpload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("clipers upload", flag.ContinueOnError)
	file := fs.String("file", "", "Path to the video file")
	title := fs.String("title", "", "Cliper title")
	description := fs.String("description", "", "Cliper description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *file == "" || *title == "" {
		return fmt.Errorf("usage: clipers clipers upload --file <path> --title <title> [--description <text>]")
	}

	content, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("failed to read video file: %w", err)
	}

	c.io.Printf("Uploading %s...\n", filepath.Base(*file))

	created, err := c.cliperStore.Upload(ctx, clipers.UploadInput{
		FileName:    filepath.Base(*file),
		File:        content,
		Title:       *title,
		Description: *description,
	})
	if err != nil {
		return err
	}

	c.io.Printf("✓ Uploaded (id: %s, status: %s)\n", created.ID, created.Status)
	c.io.Printf("Run 'clipers clipers watch %s' to follow processing.\n", created.ID)
	return nil
}

func (c *Cli) clipersStatus(ctx context.Context, cliperID string) error {
	cliper, err := c.cliperStore.Status(ctx, cliperID)
	if err != nil {
		return err
	}

	c.printCliperStatus(*cliper)
	return nil
}

func (c *Cli) printCliperStatus(cliper models.Cliper) {
	c.io.Printf("%s: %s\n", cliper.Title, cliper.Status)
	if cliper.Status == models.CliperStatusDone {
		if cliper.Transcription != "" {
			c.io.Printf("Transcription: %s\n", cliper.Transcription)
		}
		if len(cliper.Skills) > 0 {
			c.io.Printf("Extracted skills: %s\n", strings.Join(cliper.Skills, ", "))
		}
	}
}

// clipersWatch опрашивает статус обработки до терминального состояния.
// Таймер опроса останавливается и по терминальному статусу,
// и по прерыванию пользователя.
func (c *Cli) clipersWatch(ctx context.Context, cliperID string) error {
	cliper, err := c.cliperStore.Status(ctx, cliperID)
	if err != nil {
		return err
	}
	if cliper.Status.Terminal() {
		c.printCliperStatus(*cliper)
		return nil
	}

	c.io.Printf("Waiting for processing of %q (Ctrl+C to stop)...\n", cliper.Title)

	watchCtx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	done := make(chan models.Cliper, 1)
	stop := c.cliperStore.PollStatus(watchCtx, cliperID, pollInterval, c.logger, func(updated models.Cliper) {
		c.io.Printf("  status: %s\n", updated.Status)
		if updated.Status.Terminal() {
			done <- updated
		}
	})
	defer stop()

	select {
	case final := <-done:
		c.io.Println()
		c.printCliperStatus(final)
		return nil
	case <-watchCtx.Done():
		c.io.Println("Stopped watching.")
		return nil
	}
}

func (c *Cli) clipersDelete(ctx context.Context, cliperID string) error {
	if err := c.cliperStore.Delete(ctx, cliperID); err != nil {
		return err
	}
	c.io.Println("✓ Cliper deleted")
	return nil
}
