package store

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashlands/server/internal/server/world/chunk"
)

// newTestStore returns a store rooted in a temp dir and the buffer its
// diagnostics land in.
func newTestStore(t *testing.T) (*Store, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	return New(t.TempDir(), log), &buf
}

// testView is a fixed simulation view for save tests.
type testView struct {
	origin  chunk.Pos
	level   int
	zLevels bool
}

func (v testView) Origin() chunk.Pos { return v.origin }
func (v testView) ActiveLevel() int  { return v.level }
func (v testView) ZLevels() bool     { return v.zLevels }

func TestAddIsInsertIfAbsent(t *testing.T) {
	s, logs := newTestStore(t)

	first := chunk.New(chunk.TerGrass)
	second := chunk.New(chunk.TerSand)
	pos := chunk.Pos{X: 1, Y: 2, Z: 0}

	assert.True(t, s.Add(pos, first))
	assert.False(t, s.Add(pos, second), "second add must fail")
	assert.Same(t, first, s.Lookup(pos), "existing chunk wins")
	assert.Equal(t, 1, s.Count())
	assert.Contains(t, logs.String(), "duplicate chunk insert")
}

func TestRemoveMissingLogsAndKeepsState(t *testing.T) {
	s, logs := newTestStore(t)

	s.Add(chunk.Pos{X: 0, Y: 0, Z: 0}, chunk.New(chunk.TerGrass))
	s.Remove(chunk.Pos{X: 5, Y: 5, Z: 5})

	assert.Contains(t, logs.String(), "non-resident")
	assert.Equal(t, 1, s.Count(), "failed remove must not mutate")
}

func TestLookupMissIsSilent(t *testing.T) {
	s, logs := newTestStore(t)

	assert.Nil(t, s.Lookup(chunk.Pos{X: 9, Y: 9, Z: 9}))
	assert.Nil(t, s.Get(chunk.Pos{X: 9, Y: 9, Z: 9}), "no file on disk means plain miss")
	assert.Empty(t, logs.String(), "a never-generated chunk is not an error")
}

func TestClearDropsEverything(t *testing.T) {
	s, _ := newTestStore(t)

	for i := 0; i < 8; i++ {
		s.Add(chunk.Pos{X: i, Y: 0, Z: 0}, chunk.New(chunk.TerDirt))
	}
	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Nil(t, s.Lookup(chunk.Pos{X: 0, Y: 0, Z: 0}))
}
