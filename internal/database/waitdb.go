package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sethvargo/go-retry"

	"github.com/recipebook/backend/config"
	"github.com/recipebook/backend/pkg/logger"
)

// WaitForDB blocks until the database accepts connections or the configured
// attempt budget runs out. The probe uses a plain database/sql connection so
// readiness means exactly "TCP plus authentication", nothing more.
//
// Retries back off exponentially from cfg.DBWaitInterval, capped at ten
// seconds, rather than polling forever: a database that never shows up is a
// configuration problem and should fail the process.
func WaitForDB(ctx context.Context, cfg *config.Config) error {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("error opening readiness probe connection: %w", err)
	}
	defer db.Close()

	log := logger.Get()
	log.Info().Msg("waiting for database...")

	backoff := retry.WithMaxRetries(
		uint64(cfg.DBWaitMaxAttempts),
		retry.WithCappedDuration(10*time.Second, retry.NewExponential(cfg.DBWaitInterval)),
	)

	attempt := 0
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := db.PingContext(ctx); err != nil {
			log.Info().Int("attempt", attempt).Msg("database unavailable, waiting...")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("database not reachable after %d attempts: %w", attempt, err)
	}

	log.Info().Msg("database available")
	return nil
}
