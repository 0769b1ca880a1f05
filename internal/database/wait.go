package database

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// WaitForDB pings db every interval until it answers or ctx is done. It returns the number
// of failed attempts before success.
func WaitForDB(ctx context.Context, db Pinger, interval time.Duration, log *zap.Logger) (int, error) {
	log.Info("waiting for database...")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	failures := 0
	for {
		attemptCtx, cancel := context.WithTimeout(ctx, interval)
		err := db.PingContext(attemptCtx)
		cancel()
		if err == nil {
			log.Info("database available", zap.Int("failed_attempts", failures))
			return failures, nil
		}

		failures++
		log.Info("database unavailable, waiting", zap.Duration("interval", interval), zap.Error(err))

		select {
		case <-ctx.Done():
			return failures, ctx.Err()
		case <-ticker.C:
		}
	}
}
