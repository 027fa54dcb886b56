package gen

import "github.com/ashlands/server/internal/server/world/chunk"

// FlatGenerator produces a featureless test world: grass at ground level,
// solid rock below, open air above. Every chunk it makes is uniform.
type FlatGenerator struct{}

// NewFlatGenerator creates a FlatGenerator. The seed is ignored.
func NewFlatGenerator(_ int64) *FlatGenerator {
	return &FlatGenerator{}
}

func (g *FlatGenerator) Generate(pos chunk.Pos) *chunk.Chunk {
	switch {
	case pos.Z < 0:
		return chunk.New(chunk.TerRock)
	case pos.Z > 0:
		return chunk.New(chunk.TerOpenAir)
	default:
		return chunk.New(chunk.TerGrass)
	}
}
