package main

import (
	"context"
	"path/filepath"
	"testing"

	"juris_dashboard_go/config"
	"juris_dashboard_go/db"
	"juris_dashboard_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestOpenDatabaseMigrates(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cfg := &config.Config{Environment: "production", DBPath: filepath.Join(t.TempDir(), "processos.db")}

	conn := openDatabase(cfg, zap.New(core).Sugar())
	require.NotNil(t, conn)
	t.Cleanup(func() { _ = db.Close(conn) })

	assert.True(t, conn.Migrator().HasTable(&models.RawProcessRow{}))
	assert.Zero(t, logs.Len())

	raws, err := db.ReadRawRecords(context.Background(), conn)
	require.NoError(t, err)
	assert.Empty(t, raws)
}

func TestOpenDatabaseUnavailable(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cfg := &config.Config{Environment: "production", DBPath: filepath.Join(t.TempDir(), "missing", "dir", "processos.db")}

	assert.Nil(t, openDatabase(cfg, zap.New(core).Sugar()))
	assert.Equal(t, 1, logs.FilterMessage("database unavailable, sqlite source will serve mock data").Len())
}
