package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/clipers/clipers-cli/internal/client/api"
	"github.com/clipers/clipers-cli/internal/client/auth"
	"github.com/clipers/clipers-cli/internal/client/cli"
	"github.com/clipers/clipers-cli/internal/client/clipers"
	"github.com/clipers/clipers-cli/internal/client/feed"
	"github.com/clipers/clipers-cli/internal/client/iocli"
	"github.com/clipers/clipers-cli/internal/client/jobs"
	"github.com/clipers/clipers-cli/internal/client/profile"
	"github.com/clipers/clipers-cli/internal/client/storage/boltdb"
	"github.com/clipers/clipers-cli/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги; пустое значение означает "взять из окружения"
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "", "Server URL (overrides CLIPERS_SERVER_URL)")
	dbPath := flag.String("db", "", "Path to local token database (overrides CLIPERS_DB_PATH)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	stdio := iocli.NewStdio()

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(stdio)
		os.Exit(1)
	}
	command := args[0]

	// Загружаем конфигурацию из .env и окружения
	cfg, err := config.Load()
	if err != nil {
		stdio.Errorf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	// Флаги имеют приоритет над окружением
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	ctx := context.Background()

	// Открываем durable хранилище токенов
	tokenStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		stdio.Errorf("Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := tokenStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Создаем API клиент с прозрачным восстановлением после 401
	apiClient := api.NewClient(cfg.ServerURL, tokenStorage, cfg.HTTPTimeout, logger)
	apiClient.SetAuthExpiredHandler(func() {
		// Клиентский эквивалент редиректа на страницу логина
		stdio.Errorf("Session expired. Please run 'clipers login' again.\n")
	})

	// Stores создаются один раз на запуск и разделяются командами
	authService := auth.NewService(apiClient, tokenStorage, logger)
	feedStore := feed.NewStore(apiClient, cfg.PageSize)
	jobStore := jobs.NewStore(apiClient, cfg.PageSize)
	cliperStore := clipers.NewStore(apiClient, cfg.PageSize)
	profileStore := profile.NewStore(apiClient)

	app := cli.New(stdio, authService, feedStore, jobStore, cliperStore, profileStore, logger)

	if err := app.Run(ctx, command, args[1:]); err != nil {
		stdio.Errorf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("Clipers Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
