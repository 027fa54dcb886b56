package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ashlands/server/internal/server/world/chunk"
)

// Get returns the chunk at pos, loading its quad from the archive on a cache
// miss. A nil return means the chunk does not exist anywhere and must be
// generated fresh by the caller. Archive problems (malformed file, file that
// omits the requested position) are logged and degrade to a miss; they never
// leave the store inconsistent.
func (s *Store) Get(pos chunk.Pos) *chunk.Chunk {
	if c := s.Lookup(pos); c != nil {
		return c
	}
	return s.loadQuad(pos)
}

// loadQuad reads the quad file owning pos and inserts every chunk it holds,
// not just the requested one, so sibling lookups stay in memory.
func (s *Store) loadQuad(pos chunk.Pos) *chunk.Chunk {
	path := s.quadPath(chunk.QuadOf(pos))

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error("open quad file", "path", path, "error", err)
		}
		// Never generated. The caller makes a fresh chunk.
		return nil
	}
	defer f.Close()

	members, err := decodeQuad(f)
	if err != nil {
		s.log.Error("decode quad file", "path", path, "pos", pos, "error", err)
		return nil
	}

	// Insert every decoded member; Add reports duplicates and keeps the
	// resident chunk, so one bad record cannot abort the batch.
	for _, m := range members {
		_ = s.Add(m.pos, m.c)
	}

	c := s.Lookup(pos)
	if c == nil {
		s.log.Error("quad file missing expected chunk", "path", path, "pos", pos)
	}
	return c
}

type member struct {
	pos chunk.Pos
	c   *chunk.Chunk
}

// decodeQuad streams a quad file: a JSON array of zero to four chunk records,
// in any order. Records older than the legacy format version get the upgrade
// flag passed down to the chunk's own load path. Any structural problem fails
// the whole file; partial results are never returned.
func decodeQuad(r io.Reader) ([]member, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read array start: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("expected array, got %v", tok)
	}

	var members []member
	for dec.More() {
		var rec chunk.Record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode record %d: %w", len(members), err)
		}
		pos, c, err := chunk.FromRecord(rec, rec.Version < chunk.LegacyVersion)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(members), err)
		}
		members = append(members, member{pos: pos, c: c})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read array end: %w", err)
	}
	return members, nil
}
