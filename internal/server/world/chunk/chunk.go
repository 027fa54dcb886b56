package chunk

const (
	// Width is the edge length of a chunk in tiles.
	Width = 12
	// Tiles is the number of tiles in a chunk.
	Tiles = Width * Width
)

// TerID identifies a terrain tile type.
type TerID uint16

// Terrain tile types. Ids have been stable since the format 9 renumbering;
// never reuse a value.
const (
	TerNull TerID = iota
	TerDirt
	TerGrass
	TerRock
	TerSand
	TerWater
	TerFloorStone
	TerAsh
	TerOpenAir
	TerRubble
)

// Object is a sparse placed object (a prop, wreck or fixture) at a local tile.
type Object struct {
	X    uint8  `json:"x"`
	Y    uint8  `json:"y"`
	Kind uint16 `json:"kind"`
}

// Chunk is one fixed-size terrain unit. It is owned by the store once added;
// callers keep no reference after a successful add.
//
// Uniform marks a chunk whose content is fully reproducible by the generator
// (every tile identical, no objects). Uniform chunks are never written to
// disk; their absence from an archive is expected on reload.
type Chunk struct {
	Ter     [Tiles]TerID
	Objects []Object
	Uniform bool
}

// New returns a chunk with every tile set to fill, marked uniform.
func New(fill TerID) *Chunk {
	c := &Chunk{Uniform: true}
	for i := range c.Ter {
		c.Ter[i] = fill
	}
	return c
}

// TerAt returns the terrain at local tile (x, y).
func (c *Chunk) TerAt(x, y int) TerID {
	return c.Ter[y*Width+x]
}

// SetTer sets the terrain at local tile (x, y). Changing any tile away from
// the rest invalidates uniformity; the chunk then owes the archive a record.
func (c *Chunk) SetTer(x, y int, id TerID) {
	i := y*Width + x
	if c.Ter[i] == id {
		return
	}
	c.Ter[i] = id
	c.Uniform = false
}

// AddObject places an object in the chunk. Objects always carry information,
// so the chunk stops being uniform.
func (c *Chunk) AddObject(o Object) {
	c.Objects = append(c.Objects, o)
	c.Uniform = false
}
