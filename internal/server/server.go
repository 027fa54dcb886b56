package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ashlands/server/internal/server/config"
	"github.com/ashlands/server/internal/server/storage"
	"github.com/ashlands/server/internal/server/world"
	"github.com/ashlands/server/internal/server/world/chunk"
	"github.com/ashlands/server/internal/server/world/gen"
)

// turnInterval is the wall-clock length of one simulation turn.
const turnInterval = 50 * time.Millisecond

// Session is one run of the simulation against one world: it owns the
// config, the storage root and the world, and is torn down completely when
// Run returns. Loading a different world means building a new Session.
type Session struct {
	cfg     *config.Config
	log     *slog.Logger
	storage *storage.Storage
	world   *world.World

	turn int64
}

// New creates a Session for the configured world.
func New(cfg *config.Config, log *slog.Logger) (*Session, error) {
	store, err := storage.New(cfg.SaveDir, log)
	if err != nil {
		return nil, fmt.Errorf("open save dir: %w", err)
	}

	var generator gen.Generator
	switch cfg.GeneratorType {
	case "flat":
		generator = gen.NewFlatGenerator(cfg.Seed)
	default:
		generator = gen.NewDefaultGenerator(cfg.Seed)
	}

	s := &Session{
		cfg:     cfg,
		log:     log,
		storage: store,
		world:   world.New(store.WorldRoot(cfg.WorldName), generator, cfg.ZLevels, log),
	}
	s.world.OnSaveProgress(func(saved, total int) {
		log.Info("saving map", "saved", saved, "total", total)
	})
	return s, nil
}

// Run restores session state, simulates until the context is cancelled, then
// saves everything with full eviction.
func (s *Session) Run(ctx context.Context) error {
	meta, err := s.storage.LoadMeta(s.cfg.WorldName)
	if err != nil {
		return fmt.Errorf("load world meta: %w", err)
	}
	if meta != nil {
		s.turn = meta.Turn
		s.world.SetOrigin(chunk.Pos{X: meta.Origin[0], Y: meta.Origin[1], Z: meta.Origin[2]})
		s.world.SetActiveLevel(meta.ActiveLevel)
	}

	s.loadLiveRegion()
	s.log.Info("session started",
		"world", s.cfg.WorldName,
		"generator", s.cfg.GeneratorType,
		"seed", s.cfg.Seed,
		"turn", s.turn,
		"resident", s.world.ResidentChunks(),
	)

	ticker := time.NewTicker(turnInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("session shutting down", "turn", s.turn)
			return s.Shutdown()
		case <-ticker.C:
			s.tick()
		}
	}
}

// Shutdown saves the world with full eviction and persists session state.
func (s *Session) Shutdown() error {
	if err := s.world.Save(true); err != nil {
		return fmt.Errorf("save world: %w", err)
	}
	origin := s.world.Origin()
	meta := &storage.WorldMeta{
		Origin:      [3]int{origin.X, origin.Y, origin.Z},
		ActiveLevel: s.world.ActiveLevel(),
		Turn:        s.turn,
		Seed:        s.cfg.Seed,
	}
	if err := s.storage.SaveMeta(s.cfg.WorldName, meta); err != nil {
		return fmt.Errorf("save world meta: %w", err)
	}
	return nil
}

// tick advances the simulation one turn.
func (s *Session) tick() {
	s.turn++

	// Weathering: grass near the origin slowly turns to ash. A stand-in for
	// the real simulation systems, but enough to dirty chunks organically.
	tx := int(s.turn % int64(chunk.Width*4))
	ty := int((s.turn / 7) % int64(chunk.Width*4))
	if s.world.Ter(tx, ty, s.world.ActiveLevel()) == chunk.TerGrass {
		s.world.SetTer(tx, ty, s.world.ActiveLevel(), chunk.TerAsh)
	}

	if s.cfg.AutosaveTurns > 0 && s.turn%int64(s.cfg.AutosaveTurns) == 0 {
		if err := s.world.Save(false); err != nil {
			s.log.Error("autosave failed", "turn", s.turn, "error", err)
			return
		}
		s.log.Info("autosave complete", "turn", s.turn, "resident", s.world.ResidentChunks())
	}
}

// loadLiveRegion pulls the chunks around the origin into memory, loading from
// the archive where they were saved and generating the rest.
func (s *Session) loadLiveRegion() {
	origin := s.world.Origin()
	level := s.world.ActiveLevel()
	for dy := -s.cfg.ViewRadius; dy <= s.cfg.ViewRadius; dy++ {
		for dx := -s.cfg.ViewRadius; dx <= s.cfg.ViewRadius; dx++ {
			s.world.GetChunk(chunk.Pos{X: origin.X + dx, Y: origin.Y + dy, Z: level})
		}
	}
}
