package chunk

import "fmt"

const (
	// FormatVersion is written into every archive record.
	FormatVersion = 12
	// LegacyVersion is the oldest version that uses current terrain ids.
	// Records below it need a remap pass on load (the great tile renumbering
	// that split rubble out of the rock ids).
	LegacyVersion = 9
)

// Record is the archive form of one chunk: a version tag, the chunk's
// absolute position, and the chunk's own payload fields. Quad files hold an
// array of up to four of these.
type Record struct {
	Version     int      `json:"version"`
	Coordinates [3]int   `json:"coordinates"`
	Terrain     [][2]int `json:"terrain"`
	Objects     []Object `json:"objects,omitempty"`
}

// legacyTer remaps terrain ids found in pre-LegacyVersion records.
var legacyTer = map[TerID]TerID{
	7: TerFloorStone, // old combined stone-floor id
	8: TerRubble,     // old rock-debris id, now its own tile
}

// Record produces the archive record for the chunk at pos. Terrain is
// run-length encoded as [id, count] pairs in tile order.
func (c *Chunk) Record(pos Pos) Record {
	rec := Record{
		Version:     FormatVersion,
		Coordinates: [3]int{pos.X, pos.Y, pos.Z},
		Objects:     c.Objects,
	}

	run := [2]int{int(c.Ter[0]), 0}
	for _, id := range c.Ter {
		if int(id) == run[0] {
			run[1]++
			continue
		}
		rec.Terrain = append(rec.Terrain, run)
		run = [2]int{int(id), 1}
	}
	rec.Terrain = append(rec.Terrain, run)
	return rec
}

// FromRecord rebuilds a chunk from its archive record. When legacy is set the
// record predates the current terrain numbering and tile ids are remapped
// through the chunk's own upgrade table.
func FromRecord(rec Record, legacy bool) (Pos, *Chunk, error) {
	pos := Pos{rec.Coordinates[0], rec.Coordinates[1], rec.Coordinates[2]}

	c := &Chunk{Objects: rec.Objects}
	i := 0
	for _, run := range rec.Terrain {
		id, count := TerID(run[0]), run[1]
		if count <= 0 {
			return Pos{}, nil, fmt.Errorf("chunk %v: terrain run with count %d", pos, count)
		}
		if legacy {
			if mapped, ok := legacyTer[id]; ok {
				id = mapped
			}
		}
		if i+count > Tiles {
			return Pos{}, nil, fmt.Errorf("chunk %v: terrain runs exceed %d tiles", pos, Tiles)
		}
		for n := 0; n < count; n++ {
			c.Ter[i] = id
			i++
		}
	}
	if i != Tiles {
		return Pos{}, nil, fmt.Errorf("chunk %v: terrain runs cover %d of %d tiles", pos, i, Tiles)
	}
	return pos, c, nil
}
