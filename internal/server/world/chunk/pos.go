package chunk

const (
	// QuadSpan is the edge length of a quad in chunks.
	QuadSpan = 2
	// SegmentSpan is the edge length of a segment directory in quads.
	SegmentSpan = 32
)

// Pos identifies a chunk by its X, Y and vertical level Z. Any axis can be
// negative.
type Pos struct{ X, Y, Z int }

// QuadPos identifies a 2×2 group of chunks, the unit of on-disk storage.
type QuadPos struct{ X, Y, Z int }

// SegmentPos identifies a 32×32 group of quads, the unit of directory grouping.
type SegmentPos struct{ X, Y, Z int }

// QuadOf returns the quad that stores the given chunk. Negative coordinates
// use floor division so that e.g. chunks -1 and -2 share quad -1.
func QuadOf(p Pos) QuadPos {
	return QuadPos{divFloor(p.X, QuadSpan), divFloor(p.Y, QuadSpan), p.Z}
}

// SegmentOf returns the segment directory holding the given quad.
func SegmentOf(q QuadPos) SegmentPos {
	return SegmentPos{divFloor(q.X, SegmentSpan), divFloor(q.Y, SegmentSpan), q.Z}
}

// Origin returns the quad's (0,0) member chunk.
func (q QuadPos) Origin() Pos {
	return Pos{q.X * QuadSpan, q.Y * QuadSpan, q.Z}
}

// Members returns the quad's four member chunk positions in fixed order:
// (0,0), (0,1), (1,0), (1,1) relative to the origin.
func (q QuadPos) Members() [4]Pos {
	o := q.Origin()
	return [4]Pos{
		{o.X, o.Y, o.Z},
		{o.X, o.Y + 1, o.Z},
		{o.X + 1, o.Y, o.Z},
		{o.X + 1, o.Y + 1, o.Z},
	}
}

// divFloor divides rounding toward negative infinity. Integer division in Go
// truncates toward zero, which maps -1/2 to 0 instead of -1.
func divFloor(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}
