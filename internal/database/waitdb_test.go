package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/recipebook/backend/config"
	"github.com/recipebook/backend/internal/database"
)

func TestWaitForDBGivesUpAfterMaxAttempts(t *testing.T) {
	cfg := &config.Config{
		DBHost:            "127.0.0.1",
		DBPort:            "1", // nothing listens here
		DBUser:            "nobody",
		DBName:            "nowhere",
		DBSSLMode:         "disable",
		DBWaitInterval:    time.Millisecond,
		DBWaitMaxAttempts: 2,
	}

	start := time.Now()
	err := database.WaitForDB(context.Background(), cfg)

	assert.Error(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestWaitForDBHonorsContextCancellation(t *testing.T) {
	cfg := &config.Config{
		DBHost:            "127.0.0.1",
		DBPort:            "1",
		DBUser:            "nobody",
		DBName:            "nowhere",
		DBSSLMode:         "disable",
		DBWaitInterval:    time.Minute,
		DBWaitMaxAttempts: 100,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := database.WaitForDB(ctx, cfg)
	assert.Error(t, err)
}
