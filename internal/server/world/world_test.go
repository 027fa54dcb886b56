package world

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashlands/server/internal/server/world/chunk"
	"github.com/ashlands/server/internal/server/world/gen"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(t.TempDir(), gen.NewFlatGenerator(0), true, log)
}

func TestGetChunkGeneratesOnTotalMiss(t *testing.T) {
	w := newTestWorld(t)

	c := w.GetChunk(chunk.Pos{X: 3, Y: -2, Z: 0})
	require.NotNil(t, c)
	assert.Equal(t, chunk.TerGrass, c.TerAt(0, 0))
	assert.Equal(t, 1, w.ResidentChunks())

	// Second access hits memory and returns the same chunk.
	assert.Same(t, c, w.GetChunk(chunk.Pos{X: 3, Y: -2, Z: 0}))
}

func TestSaveRoundTripThroughDisk(t *testing.T) {
	w := newTestWorld(t)

	w.SetTer(5, 5, 0, chunk.TerAsh)
	require.NoError(t, w.Save(true))
	require.Equal(t, 0, w.ResidentChunks())

	// The edit comes back from the archive, not the generator.
	assert.Equal(t, chunk.TerAsh, w.Ter(5, 5, 0))
}

func TestResetDropsUnsavedEdits(t *testing.T) {
	w := newTestWorld(t)

	w.SetTer(0, 0, 0, chunk.TerAsh)
	w.Reset()
	require.Equal(t, 0, w.ResidentChunks())

	// Nothing was saved, so the generator's terrain is back.
	assert.Equal(t, chunk.TerGrass, w.Ter(0, 0, 0))
}

func TestTileMappingNegativeCoordinates(t *testing.T) {
	w := newTestWorld(t)

	// Tile (-1,-1) lives in chunk (-1,-1) at local (Width-1, Width-1).
	w.SetTer(-1, -1, 0, chunk.TerRubble)
	c := w.GetChunk(chunk.Pos{X: -1, Y: -1, Z: 0})
	require.NotNil(t, c)
	assert.Equal(t, chunk.TerRubble, c.TerAt(chunk.Width-1, chunk.Width-1))
	assert.Equal(t, chunk.TerRubble, w.Ter(-1, -1, 0))
}

func TestAddChunkInsertIfAbsent(t *testing.T) {
	w := newTestWorld(t)

	mine := chunk.New(chunk.TerSand)
	require.True(t, w.AddChunk(chunk.Pos{X: 0, Y: 0, Z: 0}, mine))
	assert.False(t, w.AddChunk(chunk.Pos{X: 0, Y: 0, Z: 0}, chunk.New(chunk.TerDirt)))
	assert.Same(t, mine, w.GetChunk(chunk.Pos{X: 0, Y: 0, Z: 0}))
}

func TestRemoveChunkForcesRegeneration(t *testing.T) {
	w := newTestWorld(t)

	w.SetTer(2, 2, 0, chunk.TerAsh)
	w.RemoveChunk(chunk.Pos{X: 0, Y: 0, Z: 0})

	// The edit was dropped without saving.
	assert.Equal(t, chunk.TerGrass, w.Ter(2, 2, 0))
}
