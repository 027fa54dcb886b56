package config

// Config holds the server configuration.
type Config struct {
	SaveDir       string `json:"save_dir"`
	WorldName     string `json:"world_name"`
	Seed          int64  `json:"seed"`
	GeneratorType string `json:"generator_type"` // "default" or "flat"
	ViewRadius    int    `json:"view_radius"`    // live region half-span in chunks
	ZLevels       bool   `json:"z_levels"`       // keep inactive levels resident across saves
	AutosaveTurns int    `json:"autosave_turns"` // full flush every N turns (0 = only on exit)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SaveDir:       "saves",
		WorldName:     "world",
		GeneratorType: "default",
		ViewRadius:    10,
		AutosaveTurns: 500,
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["save-dir"] {
		cfg.SaveDir = fromFile.SaveDir
	}
	if !explicitFlags["world"] {
		cfg.WorldName = fromFile.WorldName
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["generator"] {
		cfg.GeneratorType = fromFile.GeneratorType
	}
	if !explicitFlags["view-radius"] {
		cfg.ViewRadius = fromFile.ViewRadius
	}
	if !explicitFlags["z-levels"] {
		cfg.ZLevels = fromFile.ZLevels
	}
	if !explicitFlags["autosave-turns"] {
		cfg.AutosaveTurns = fromFile.AutosaveTurns
	}
}
