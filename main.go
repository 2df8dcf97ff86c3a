package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"

	"github.com/example/linguaflow/internal/bot"
	"github.com/example/linguaflow/internal/config"
	"github.com/example/linguaflow/internal/database"
	"github.com/example/linguaflow/internal/excel"
	"github.com/example/linguaflow/internal/logger"
	"github.com/example/linguaflow/internal/scheduler"
)

func main() {
	importPath := flag.String("import", "", "import shared words from an Excel file and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logg.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		logg.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.InitSchema(db); err != nil {
		logg.Fatal("failed to initialize schema", "error", err)
	}
	if err := database.Seed(ctx, db); err != nil {
		logg.Fatal("failed to seed database", "error", err)
	}

	if *importPath != "" {
		runImport(ctx, db, logg, *importPath)
		return
	}

	b, err := bot.New(cfg, db, logg)
	if err != nil {
		logg.Fatal("failed to create bot", "error", err)
	}

	var sched *scheduler.Scheduler
	if cfg.SchedulerEnabled {
		sched = scheduler.New(cfg, db, b, logg)
		if err := sched.Start(); err != nil {
			logg.Fatal("failed to start scheduler", "error", err)
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logg.Info("received signal, shutting down", "signal", sig.String())
		cancel()
	}()

	logg.Info("starting bot")
	if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error("bot stopped with error", "error", err)
	}

	if sched != nil {
		sched.Stop()
	}
	b.Stop()
	logg.Info("shutdown complete")
}

func runImport(ctx context.Context, db *sqlx.DB, logg *logger.Logger, path string) {
	importer := excel.NewImporter(db)
	result, err := importer.ImportWords(ctx, excel.DefaultImportConfig(path))
	if err != nil {
		logg.Fatal("import failed", "error", err)
	}
	logg.Info("import finished",
		"processed", result.TotalProcessed,
		"created", result.Created,
		"skipped", result.Skipped,
		"errors", len(result.Errors))
	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, e)
	}
}
