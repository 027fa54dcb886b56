package storage

// WorldMeta is the serializable per-world session state kept beside the
// maps/ archive.
type WorldMeta struct {
	Origin      [3]int `json:"origin"`       // live-region corner, chunk coordinates
	ActiveLevel int    `json:"active_level"` // vertical level the session left off on
	Turn        int64  `json:"turn"`         // elapsed simulation turns
	Seed        int64  `json:"seed"`         // generator seed the world was created with
}
