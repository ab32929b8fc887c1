package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/ansuz/internal"
	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/mcpserver"
	"github.com/starford/ansuz/internal/pipeline"
	"github.com/starford/ansuz/internal/storage"
	pkgconfig "github.com/starford/ansuz/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// setup assembles the pipeline runner for one-shot commands. The returned
// cleanup closes the SQLite index.
func setup(ctx context.Context, cmd *cli.Command) (*pipeline.Runner, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init storage: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init index: %w", err)
	}

	runner, err := internal.BuildRunner(ctx, cfg, store, db, logger)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return runner, func() { db.Close() }, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// MCP talks on stdout, so logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	runner, err := internal.BuildRunner(ctx, cfg, store, db, logger)
	if err != nil {
		return err
	}

	return mcpserver.New(store, runner).ServeStdio()
}

func runDaily(ctx context.Context, cmd *cli.Command) error {
	date := cmd.Args().First()
	if date == "" {
		return fmt.Errorf("usage: daily <YYYY-MM-DD>")
	}
	runner, cleanup, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	return runner.RunDaily(ctx, date)
}

func runWeekly(ctx context.Context, cmd *cli.Command) error {
	week := cmd.Args().First()
	if week == "" {
		return fmt.Errorf("usage: weekly <YYYY-Www>")
	}
	runner, cleanup, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	return runner.RunWeekly(ctx, week)
}

func runFetchBody(ctx context.Context, cmd *cli.Command) error {
	runner, cleanup, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	return runner.FetchBodies(ctx, cmd.Args().First())
}

func runClassify(ctx context.Context, cmd *cli.Command) error {
	runner, cleanup, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	return runner.ClassifyBooks(ctx)
}

func runSummarize(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("usage: summarize <vault-relative path>")
	}
	runner, cleanup, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	return runner.Summarize(ctx, path)
}

func main() {
	cmd := &cli.Command{
		Name:  "ansuz",
		Usage: "Vault automation: OCR daily notes, AI coaching, weekly reviews, bookmark and book-highlight processing",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "daily",
				Usage:     "OCR a scanned daily PDF, merge it into the daily note, and add AI coaching",
				ArgsUsage: "<YYYY-MM-DD>",
				Action:    runDaily,
			},
			{
				Name:      "weekly",
				Usage:     "Generate the weekly review from a week of daily notes",
				ArgsUsage: "<YYYY-Www>",
				Action:    runWeekly,
			},
			{
				Name:      "fetch-body",
				Usage:     "Fetch article bodies for bookmark notes",
				ArgsUsage: "[start-date]",
				Action:    runFetchBody,
			},
			{
				Name:   "classify",
				Usage:  "Classify book-highlight notes from the inbox into theme folders",
				Action: runClassify,
			},
			{
				Name:      "summarize",
				Usage:     "Summarize a transcript file or directory into fleeting notes",
				ArgsUsage: "<vault-relative path>",
				Action:    runSummarize,
			},
			{
				Name:   "serve",
				Usage:  "Run the HTTP API, SSE stream, and vault watcher",
				Action: serve,
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP tool server on stdin/stdout",
				Action: serveMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
