package gen

import "github.com/ashlands/server/internal/server/world/chunk"

// Generator produces terrain chunks deterministically from a seed. The same
// position always yields the same chunk, which is what lets the store throw
// uniform chunks away instead of archiving them.
type Generator interface {
	Generate(pos chunk.Pos) *chunk.Chunk
}

// finish marks a filled chunk uniform when it carries no information beyond
// its fill tile: regeneration reproduces it exactly, so it never needs a
// disk record.
func finish(c *chunk.Chunk) *chunk.Chunk {
	if len(c.Objects) > 0 {
		return c
	}
	first := c.Ter[0]
	for _, id := range c.Ter[1:] {
		if id != first {
			return c
		}
	}
	c.Uniform = true
	return c
}
