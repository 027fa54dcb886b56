package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ashlands/server/internal/server/world/chunk"
)

// View is what the live simulation tells the store about the region it still
// needs resident. It only drives eviction scope during Save.
type View interface {
	// Origin is the chunk position of the live region's corner.
	Origin() chunk.Pos
	// ActiveLevel is the vertical level the simulation is running on.
	ActiveLevel() int
	// ZLevels reports whether chunks on inactive levels stay live.
	ZLevels() bool
}

const (
	// retainQuads is the span of the live region in quads; quads beyond
	// origin+retainQuads on either axis are out of view and evictable.
	retainQuads = 5

	// progressMin is the resident-chunk count below which saves run silently.
	progressMin = 100
)

// Save flushes every resident chunk to the archive, one quad file at a time.
// Quads whose present members are all uniform are skipped: their content is
// reproducible and storing it would be pure overhead. With evictAll set
// (session end), every chunk is dropped from memory after its quad is
// handled; otherwise only chunks outside the view's retain region are
// dropped. A write failure aborts the save before any eviction happens, so
// everything stays resident for a retry.
func (s *Store) Save(view View, evictAll bool) error {
	originQuad := chunk.QuadOf(view.Origin())
	zLevels := view.ZLevels()
	level := view.ActiveLevel()

	total := s.Count()
	saved := 0
	nextReport := 0

	// The grouping pass iterates the chunk map, so evictions are collected
	// here and applied in a second pass. Deleting mid-iteration would skip
	// entries.
	var evict []chunk.Pos
	visited := make(map[chunk.QuadPos]struct{})

	for pos := range s.chunks {
		if s.OnProgress != nil && total > progressMin && saved >= nextReport {
			s.OnProgress(saved, total)
			nextReport += max(progressMin, total/20)
		}

		// Any member of a quad stands in for the whole quad.
		q := chunk.QuadOf(pos)
		if _, ok := visited[q]; ok {
			continue
		}
		visited[q] = struct{}{}

		// Chunks on inactive levels are dead weight unless z-level
		// persistence keeps them live.
		levelDrop := !zLevels && q.Z != level
		drop := evictAll || levelDrop ||
			q.X < originQuad.X || q.Y < originQuad.Y ||
			q.X > originQuad.X+retainQuads || q.Y > originQuad.Y+retainQuads

		if err := s.saveQuad(q, drop, &evict); err != nil {
			return err
		}
		saved += 4
	}

	for _, pos := range evict {
		s.Remove(pos)
	}
	return nil
}

// saveQuad writes one quad's file, or skips it when there is nothing worth
// storing. Present members land on evict when dropAfter is set.
func (s *Store) saveQuad(q chunk.QuadPos, dropAfter bool, evict *[]chunk.Pos) error {
	var present []chunk.Pos
	allUniform := true
	for _, pos := range q.Members() {
		c := s.chunks[pos]
		if c == nil {
			// Never generated; a quad may legitimately be partial.
			continue
		}
		present = append(present, pos)
		if !c.Uniform {
			allUniform = false
		}
	}

	if allUniform {
		// Nothing to store: regenerating these is cheaper than re-reading
		// them. No file, no directory.
		if dropAfter {
			*evict = append(*evict, present...)
		}
		return nil
	}

	records := make([]chunk.Record, 0, len(present))
	for _, pos := range present {
		c := s.chunks[pos]
		if c.Uniform {
			// Omission is the elision mechanism; no tombstone.
			continue
		}
		records = append(records, c.Record(pos))
	}

	if err := s.writeQuad(q, records); err != nil {
		return fmt.Errorf("save quad %d.%d.%d: %w", q.X, q.Y, q.Z, err)
	}

	if dropAfter {
		*evict = append(*evict, present...)
	}
	return nil
}

// writeQuad replaces the quad's file with the given records, creating the
// segment directory on first use. Whole-file temp+rename keeps a crash from
// leaving a torn file behind.
func (s *Store) writeQuad(q chunk.QuadPos, records []chunk.Record) error {
	if err := os.MkdirAll(s.segmentDir(q), 0o755); err != nil {
		return fmt.Errorf("create segment dir: %w", err)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	data = append(data, '\n')

	path := s.quadPath(q)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
