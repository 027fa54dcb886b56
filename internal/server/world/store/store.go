// Package store caches terrain chunks in memory and archives them on disk in
// quad files grouped under segment directories. It is the single owner of
// every resident chunk; callers that need concurrent access must serialize
// outside, the store itself takes no locks.
package store

import (
	"log/slog"

	"github.com/ashlands/server/internal/server/world/chunk"
)

// Store is the resident-chunk table plus its on-disk archive under
// <root>/maps. Lookups fall through to disk; Save flushes quads back out and
// optionally evicts.
type Store struct {
	root   string
	log    *slog.Logger
	chunks map[chunk.Pos]*chunk.Chunk

	// OnProgress, when set, is called with (saved, total) during saves large
	// enough to be worth reporting. Purely informational.
	OnProgress func(saved, total int)
}

// New creates an empty store archiving under root.
func New(root string, log *slog.Logger) *Store {
	return &Store{
		root:   root,
		log:    log,
		chunks: make(map[chunk.Pos]*chunk.Chunk),
	}
}

// Add inserts a chunk at pos, taking ownership. Returns false and leaves the
// store untouched if pos is already resident; the existing chunk wins. A
// collision means two parties think they created the same chunk, which is
// worth a diagnostic even though it is recoverable.
func (s *Store) Add(pos chunk.Pos, c *chunk.Chunk) bool {
	if _, ok := s.chunks[pos]; ok {
		s.log.Warn("duplicate chunk insert", "pos", pos)
		return false
	}
	s.chunks[pos] = c
	return true
}

// Lookup returns the resident chunk at pos, or nil. It never touches disk;
// Get layers the archive fallback on top.
func (s *Store) Lookup(pos chunk.Pos) *chunk.Chunk {
	return s.chunks[pos]
}

// Remove drops the chunk at pos. Removing a position that is not resident is
// a bookkeeping defect upstream; it is logged and otherwise ignored.
func (s *Store) Remove(pos chunk.Pos) {
	if _, ok := s.chunks[pos]; !ok {
		s.log.Error("remove of non-resident chunk", "pos", pos)
		return
	}
	delete(s.chunks, pos)
}

// Clear drops every resident chunk without saving.
func (s *Store) Clear() {
	clear(s.chunks)
}

// Count returns the number of resident chunks.
func (s *Store) Count() int {
	return len(s.chunks)
}
