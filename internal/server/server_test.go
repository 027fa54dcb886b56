package server

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashlands/server/internal/server/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.SaveDir = t.TempDir()
	cfg.GeneratorType = "flat"
	cfg.ViewRadius = 2
	cfg.AutosaveTurns = 0
	return cfg
}

func TestSessionRunSavesOnShutdown(t *testing.T) {
	cfg := testConfig(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := New(cfg, log)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()
	require.NoError(t, s.Run(ctx))

	// Shutdown evicted everything and left the session state behind.
	assert.Equal(t, 0, s.world.ResidentChunks())
	meta, err := s.storage.LoadMeta(cfg.WorldName)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, s.turn, meta.Turn)
}

func TestSessionResumesTurnCount(t *testing.T) {
	cfg := testConfig(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	first, err := New(cfg, log)
	require.NoError(t, err)
	first.turn = 41
	require.NoError(t, first.Shutdown())

	second, err := New(cfg, log)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	require.NoError(t, second.Run(ctx))
	assert.Greater(t, second.turn, int64(41), "turn count must resume, not restart")
}
