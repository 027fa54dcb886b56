package world

import (
	"log/slog"

	"github.com/ashlands/server/internal/server/world/chunk"
	"github.com/ashlands/server/internal/server/world/gen"
	"github.com/ashlands/server/internal/server/world/store"
)

// World is the simulation's view of terrain: a chunk store backed by the
// on-disk archive, with a generator filling in chunks that exist nowhere.
// It also tracks the live region (origin, active level) that the store's
// eviction policy needs. One World owns one store; there is no global
// instance.
type World struct {
	log   *slog.Logger
	store *store.Store
	gen   gen.Generator

	origin  chunk.Pos
	level   int
	zLevels bool
}

// New creates a World archiving under root.
func New(root string, g gen.Generator, zLevels bool, log *slog.Logger) *World {
	return &World{
		log:     log,
		store:   store.New(root, log),
		gen:     g,
		zLevels: zLevels,
	}
}

// GetChunk returns the chunk at pos from memory, disk, or the generator, in
// that order. It only returns nil if generation itself is disabled (nil
// generator).
func (w *World) GetChunk(pos chunk.Pos) *chunk.Chunk {
	if c := w.store.Get(pos); c != nil {
		return c
	}
	if w.gen == nil {
		return nil
	}
	c := w.gen.Generate(pos)
	if !w.store.Add(pos, c) {
		// Get just missed, so this cannot happen single-threaded.
		w.log.Error("generated chunk collided with resident", "pos", pos)
		return w.store.Lookup(pos)
	}
	return c
}

// AddChunk inserts an externally created chunk. Returns false if pos is
// already resident; the caller keeps ownership in that case.
func (w *World) AddChunk(pos chunk.Pos, c *chunk.Chunk) bool {
	return w.store.Add(pos, c)
}

// RemoveChunk force-evicts the chunk at pos without saving it.
func (w *World) RemoveChunk(pos chunk.Pos) {
	w.store.Remove(pos)
}

// Save flushes all resident chunks. With evictAll (session end) everything
// is dropped from memory afterwards.
func (w *World) Save(evictAll bool) error {
	return w.store.Save(w, evictAll)
}

// Reset drops all in-memory terrain without saving, e.g. before loading a
// different session.
func (w *World) Reset() {
	w.store.Clear()
}

// ResidentChunks returns how many chunks are in memory.
func (w *World) ResidentChunks() int {
	return w.store.Count()
}

// OnSaveProgress installs a progress callback for large saves.
func (w *World) OnSaveProgress(fn func(saved, total int)) {
	w.store.OnProgress = fn
}

// SetOrigin moves the live region's corner; Origin and the rest of the View
// interface feed the store's eviction policy.
func (w *World) SetOrigin(pos chunk.Pos) { w.origin = pos }

// SetActiveLevel switches the vertical level the simulation runs on.
func (w *World) SetActiveLevel(z int) { w.level = z }

func (w *World) Origin() chunk.Pos { return w.origin }
func (w *World) ActiveLevel() int  { return w.level }
func (w *World) ZLevels() bool     { return w.zLevels }

// Ter returns the terrain at world tile (x, y) on level z.
func (w *World) Ter(x, y, z int) chunk.TerID {
	pos, lx, ly := tileChunk(x, y, z)
	c := w.GetChunk(pos)
	if c == nil {
		return chunk.TerNull
	}
	return c.TerAt(lx, ly)
}

// SetTer sets the terrain at world tile (x, y) on level z. Mutating a
// uniform chunk makes it archivable again.
func (w *World) SetTer(x, y, z int, id chunk.TerID) {
	pos, lx, ly := tileChunk(x, y, z)
	if c := w.GetChunk(pos); c != nil {
		c.SetTer(lx, ly, id)
	}
}

// tileChunk maps a world tile to its chunk and local offsets, flooring so
// negative tiles land in the right chunk.
func tileChunk(x, y, z int) (chunk.Pos, int, int) {
	pos := chunk.Pos{X: floorDiv(x, chunk.Width), Y: floorDiv(y, chunk.Width), Z: z}
	return pos, x - pos.X*chunk.Width, y - pos.Y*chunk.Width
}

func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}
