package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ashlands/server/internal/server/config"
)

// Storage handles file-based persistence for everything around the terrain
// archive: config and per-world session metadata. The maps/ tree itself is
// owned by the chunk store, which creates it lazily on first write.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a Storage rooted at dir.
func New(dir string, log *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}
	return &Storage{dir: dir, log: log}, nil
}

// WorldRoot returns the directory a world's archive and metadata live under.
func (s *Storage) WorldRoot(world string) string {
	return filepath.Join(s.dir, world)
}

// LoadConfig reads config.json into cfg. If the file does not exist, cfg is unchanged.
func (s *Storage) LoadConfig(cfg *config.Config) error {
	path := filepath.Join(s.dir, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	s.log.Info("loaded config from file", "path", path)
	return nil
}

// SaveConfig writes cfg to config.json atomically.
func (s *Storage) SaveConfig(cfg *config.Config) error {
	path := filepath.Join(s.dir, "config.json")
	return s.atomicWriteJSON(path, cfg)
}

// LoadMeta reads a world's meta.json, or returns nil if the world is new.
func (s *Storage) LoadMeta(world string) (*WorldMeta, error) {
	path := filepath.Join(s.WorldRoot(world), "meta.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read world meta: %w", err)
	}

	var meta WorldMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse world meta: %w", err)
	}
	s.log.Info("loaded world meta", "world", world, "turn", meta.Turn)
	return &meta, nil
}

// SaveMeta writes a world's meta.json atomically, creating the world
// directory if needed.
func (s *Storage) SaveMeta(world string, meta *WorldMeta) error {
	root := s.WorldRoot(world)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create world dir: %w", err)
	}
	return s.atomicWriteJSON(filepath.Join(root, "meta.json"), meta)
}

// atomicWriteJSON marshals v to JSON and writes it atomically using a temp file + rename.
func (s *Storage) atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
