// Package pipeline drives matched triplets through conversion, tagging,
// cover embedding and staging cleanup, one triplet at a time.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sunoproc/internal/config"
	"sunoproc/internal/encoder"
	"sunoproc/internal/logger"
	"sunoproc/internal/metadata"
	"sunoproc/internal/tagger"
	"sunoproc/internal/triplet"
)

// Converter normalizes an audio file into the target format.
type Converter interface {
	Convert(ctx context.Context, input, output string) error
}

// Hooks let callers observe batch progress. OnUnitStart receives the
// triplet's base name; OnUnitDone reports whether the triplet succeeded.
type Hooks struct {
	OnMatched   func(total int)
	OnUnitStart func(name string)
	OnUnitDone  func(ok bool)
}

// Stats contains the aggregate outcome of one batch run.
type Stats struct {
	Total     int
	Succeeded int
	Failed    int
}

// Result is the outcome of processing a single triplet.
type Result struct {
	OK        bool
	FinalPath string
}

// Processor processes triplets found in a directory.
type Processor struct {
	cfg config.Config
	log *logger.Logger
	enc Converter
}

// New creates a new Processor instance
func New(cfg config.Config, log *logger.Logger, enc Converter) *Processor {
	return &Processor{
		cfg: cfg,
		log: log,
		enc: enc,
	}
}

// Run matches triplets in the target directory and processes each one.
// A triplet's failure never aborts the batch; the only errors returned are a
// missing target directory or a target path that is not a directory.
func (p *Processor) Run(ctx context.Context, hooks Hooks) (Stats, error) {
	info, err := os.Stat(p.cfg.Directory)
	if err != nil {
		return Stats{}, fmt.Errorf("directory not found: %s", p.cfg.Directory)
	}
	if !info.IsDir() {
		return Stats{}, fmt.Errorf("not a directory: %s", p.cfg.Directory)
	}

	p.log.Info("Scanning directory: %s", p.cfg.Directory)

	units, err := triplet.Find(p.cfg.Directory, p.log)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Total: len(units)}
	if len(units) == 0 {
		p.log.Info("No triplets found")
		p.log.Info("A triplet consists of:")
		p.log.Info("  - Audio file (*.m4a, *.mp4, *.mp3, *.flac)")
		p.log.Info("  - Tags file (*_tags.json)")
		p.log.Info("  - Cover art (*_cover.jpeg/jpg/png/webp) [optional]")
		return stats, nil
	}

	if hooks.OnMatched != nil {
		hooks.OnMatched(len(units))
	}

	p.log.Info("Found %d triplet(s)", len(units))

	if p.cfg.DryRun {
		p.log.Info("Dry run: no files were processed")
		return stats, nil
	}

	var finished []string
	for _, u := range units {
		select {
		case <-ctx.Done():
			remaining := stats.Total - stats.Succeeded - stats.Failed
			p.log.Warn("Processing cancelled, %d triplet(s) not attempted", remaining)
			return stats, nil
		default:
		}

		if hooks.OnUnitStart != nil {
			hooks.OnUnitStart(u.BaseName())
		}

		res := p.processUnit(ctx, u)
		if res.OK {
			stats.Succeeded++
			finished = append(finished, res.FinalPath)
		} else {
			stats.Failed++
		}

		if hooks.OnUnitDone != nil {
			hooks.OnUnitDone(res.OK)
		}
	}

	if p.cfg.OutputDir != "" {
		p.moveToOutput(finished)
	}

	p.log.Info("Successfully processed: %d/%d triplets", stats.Succeeded, stats.Total)
	return stats, nil
}

// processUnit runs one triplet through the full sequence. Tag-read,
// conversion and tagging failures abort the triplet with its staging files
// intact; a cover embedding failure is only a warning.
func (p *Processor) processUnit(ctx context.Context, u triplet.Triplet) Result {
	p.log.Info("Processing: %s", filepath.Base(u.AudioPath))

	rec, err := metadata.ReadSidecar(u.TagsPath)
	if err != nil {
		p.log.Error("  Error reading tags file: %v", err)
		return Result{}
	}

	finalPath := u.AudioPath
	if strings.EqualFold(filepath.Ext(u.AudioPath), encoder.TargetExt) {
		p.log.Info("  Already in MP3 format")
	} else {
		finalPath = strings.TrimSuffix(u.AudioPath, filepath.Ext(u.AudioPath)) + encoder.TargetExt
		p.log.Info("  Converting %s to MP3...", filepath.Base(u.AudioPath))
		if err := p.enc.Convert(ctx, u.AudioPath, finalPath); err != nil {
			p.log.Error("  Error converting file: %v", err)
			return Result{}
		}
	}

	if err := tagger.Apply(finalPath, rec); err != nil {
		p.log.Error("  Error applying tags: %v", err)
		return Result{FinalPath: finalPath}
	}
	p.log.Info("  Tags applied successfully")

	if u.CoverPath != "" {
		if err := tagger.EmbedCover(finalPath, u.CoverPath); err != nil {
			p.log.Warn("  Failed to embed cover art, continuing: %v", err)
		} else {
			p.log.Info("  Cover art embedded successfully")
		}
	}

	if p.cfg.KeepStaging {
		p.log.Debug("  Keeping staging files for %s", u.BaseName())
	} else {
		p.cleanupStaging(u, finalPath)
	}

	p.log.Info("  Successfully processed: %s", filepath.Base(finalPath))
	return Result{OK: true, FinalPath: finalPath}
}
