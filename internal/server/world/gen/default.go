package gen

import "github.com/ashlands/server/internal/server/world/chunk"

const (
	waterLevel  = -0.35
	beachLevel  = -0.25
	rockLevel   = 0.55
	boulderCut  = 0.8
	cavernLevel = 0.45
)

// DefaultGenerator produces rolling overworld terrain from layered noise,
// solid rock with noise-carved caverns below ground, and open air above.
type DefaultGenerator struct {
	elevation *NoiseGenerator
	moisture  *NoiseGenerator
	detail    *NoiseGenerator
}

// NewDefaultGenerator creates a DefaultGenerator from a seed.
func NewDefaultGenerator(seed int64) *DefaultGenerator {
	return &DefaultGenerator{
		elevation: NewNoiseGenerator(seed),
		moisture:  NewNoiseGenerator(seed + 100),
		detail:    NewNoiseGenerator(seed + 200),
	}
}

func (g *DefaultGenerator) Generate(pos chunk.Pos) *chunk.Chunk {
	switch {
	case pos.Z < 0:
		return finish(g.generateUnderground(pos))
	case pos.Z > 0:
		return chunk.New(chunk.TerOpenAir)
	default:
		return finish(g.generateSurface(pos))
	}
}

// generateSurface fills a ground-level chunk from elevation and moisture
// fields sampled at world tile coordinates, so chunk seams line up.
func (g *DefaultGenerator) generateSurface(pos chunk.Pos) *chunk.Chunk {
	c := &chunk.Chunk{}
	for y := 0; y < chunk.Width; y++ {
		for x := 0; x < chunk.Width; x++ {
			wx := float64(pos.X*chunk.Width+x) * 0.02
			wy := float64(pos.Y*chunk.Width+y) * 0.02

			elev := g.elevation.OctaveNoise2D(wx, wy, 4, 0.5)
			switch {
			case elev < waterLevel:
				c.SetTer(x, y, chunk.TerWater)
			case elev < beachLevel:
				c.SetTer(x, y, chunk.TerSand)
			case elev > rockLevel:
				c.SetTer(x, y, chunk.TerRock)
				if g.detail.Noise2D(wx*8, wy*8) > boulderCut {
					c.AddObject(chunk.Object{X: uint8(x), Y: uint8(y), Kind: objBoulder})
				}
			default:
				if g.moisture.OctaveNoise2D(wx+37, wy+71, 4, 0.5) > 0 {
					c.SetTer(x, y, chunk.TerGrass)
				} else {
					c.SetTer(x, y, chunk.TerDirt)
				}
			}
		}
	}
	return c
}

// generateUnderground is mostly solid rock; 3D noise opens caverns so deep
// levels are not all elidable.
func (g *DefaultGenerator) generateUnderground(pos chunk.Pos) *chunk.Chunk {
	c := chunk.New(chunk.TerRock)
	for y := 0; y < chunk.Width; y++ {
		for x := 0; x < chunk.Width; x++ {
			wx := float64(pos.X*chunk.Width+x) * 0.03
			wy := float64(pos.Y*chunk.Width+y) * 0.03

			if g.detail.Noise3D(wx, wy, float64(pos.Z)*0.5) > cavernLevel {
				c.SetTer(x, y, chunk.TerFloorStone)
			}
		}
	}
	return c
}

// Object kinds placed by generation.
const (
	objBoulder uint16 = iota + 1
)
