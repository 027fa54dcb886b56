package store

import (
	"fmt"
	"path/filepath"

	"github.com/ashlands/server/internal/server/world/chunk"
)

// Archive layout: <root>/maps/<segX>.<segY>.<segZ>/<quadX>.<quadY>.<quadZ>.map
// Segment directories bound the file count per directory; they are created
// lazily, only when a quad in them actually gets written.

func (s *Store) segmentDir(q chunk.QuadPos) string {
	seg := chunk.SegmentOf(q)
	return filepath.Join(s.root, "maps", fmt.Sprintf("%d.%d.%d", seg.X, seg.Y, seg.Z))
}

func (s *Store) quadPath(q chunk.QuadPos) string {
	return filepath.Join(s.segmentDir(q), fmt.Sprintf("%d.%d.%d.map", q.X, q.Y, q.Z))
}
