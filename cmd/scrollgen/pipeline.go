package main

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/scrollgen/internal/config"
	"github.com/vovakirdan/scrollgen/internal/core"
	"github.com/vovakirdan/scrollgen/internal/gfx"
	"github.com/vovakirdan/scrollgen/internal/level"
	"github.com/vovakirdan/scrollgen/internal/storage"
)

// pipeline turns the global flags into generated, recorded levels.
type pipeline struct {
	params level.Params
	preset config.Preset
	store  *storage.Store // nil when history is unavailable
	logger *log.Logger
}

// newPipeline loads the config and applies the preset. The history
// database is optional: when it cannot be opened runs are not recorded.
func newPipeline(logger *log.Logger) (*pipeline, error) {
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagPreset != "" {
		config.ApplyPreset(&cfg, preset)
	}
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("run history disabled", "db", flagDBPath, "err", err)
		store = nil
	}
	return &pipeline{params: params, preset: preset, store: store, logger: logger}, nil
}

// Close releases the history database.
func (p *pipeline) Close() {
	if p.store != nil {
		p.store.Close()
	}
}

// resolveSeed replaces the "random" seed with a concrete one so it can be
// reported and replayed.
func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// build generates one level without recording it.
func (p *pipeline) build(b gfx.Backend, seed int64) (*level.Level, time.Duration, error) {
	start := time.Now()
	lvl, err := level.Generate(p.params, b, core.NewRand(seed), p.logger.With("seed", seed))
	return lvl, time.Since(start), err
}

// Generate builds and records a level; it is safe for concurrent use.
func (p *pipeline) Generate(b gfx.Backend, seed int64) (*level.Level, error) {
	lvl, took, err := p.build(b, seed)
	if err != nil {
		return nil, err
	}
	p.record(lvl, seed, took, "")
	return lvl, nil
}

// record stores a run in the history. Failures are logged, not returned.
func (p *pipeline) record(lvl *level.Level, seed int64, took time.Duration, output string) {
	if p.store == nil {
		return
	}
	_, err := p.store.SaveRun(storage.Run{
		Seed:       seed,
		Preset:     string(p.preset),
		Cols:       lvl.Grid.Cols,
		Rows:       lvl.Grid.Rows,
		TileDim:    lvl.TileDim,
		Tiles:      lvl.Tileset.Count,
		Trees:      lvl.Stats.Trees,
		BackTrees:  lvl.Stats.BackTrees,
		Sloped:     lvl.Stats.SlopedTiles,
		Skipped:    lvl.Stats.Skipped,
		DurationMs: took.Milliseconds(),
		Output:     output,
	})
	if err != nil {
		p.logger.Warn("cannot record run", "seed", seed, "err", err)
	}
}
