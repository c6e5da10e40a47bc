package database

import (
	"context"
	"testing"

	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

func TestOpen_SQLiteInMemory(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver:      "sqlite",
		Path:        ":memory:",
		LogLevel:    "silent",
		AutoMigrate: true,
	}}

	db, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)
	defer Close(db)

	assert.NoError(t, Ping(context.Background(), db))
	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("recipes"))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{Database: config.DatabaseConfig{Driver: "oracle"}}, zap.NewNop())
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, parseLogLevel("silent"))
	assert.Equal(t, logger.Info, parseLogLevel("info"))
	assert.Equal(t, logger.Warn, parseLogLevel(""))
}
