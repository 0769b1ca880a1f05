// Command wait_for_db blocks until the configured database accepts connections. It is run
// before the API in container start-up scripts.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/pageza/recipe-api/backend/config"
	"github.com/pageza/recipe-api/backend/internal/database"
	"github.com/pageza/recipe-api/backend/internal/logging"
)

func main() {
	interval := flag.Duration("interval", time.Second, "delay between attempts")
	timeout := flag.Duration("timeout", 0, "give up after this long (0 waits forever)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.MustNew(cfg.Environment, cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	if cfg.DBDriver != config.DriverPostgres {
		logger.Info("nothing to wait for", zap.String("driver", cfg.DBDriver))
		return
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	if _, err := database.WaitForDB(ctx, db, *interval, logger); err != nil {
		logger.Fatal("database did not become available", zap.Error(err))
	}
}
