package pipeline

import (
	"os"
	"path/filepath"

	"sunoproc/internal/metadata"
	"sunoproc/internal/triplet"
	"sunoproc/pkg/utils"
)

// cleanupStaging removes the staging files of a successfully tagged triplet:
// the sidecar, the cover when present, and the original audio file when
// conversion produced a distinct path. Failures here are warnings only; the
// triplet's success is decided by tagging, not by cleanup.
func (p *Processor) cleanupStaging(u triplet.Triplet, finalPath string) {
	if err := os.Remove(u.TagsPath); err != nil {
		p.log.Warn("  Could not remove tags file %s: %v", filepath.Base(u.TagsPath), err)
	} else {
		p.log.Info("  Removed tags file: %s", filepath.Base(u.TagsPath))
	}

	if u.CoverPath != "" {
		if err := os.Remove(u.CoverPath); err != nil {
			p.log.Warn("  Could not remove cover file %s: %v", filepath.Base(u.CoverPath), err)
		} else {
			p.log.Info("  Removed cover file: %s", filepath.Base(u.CoverPath))
		}
	}

	// When conversion was skipped the original and the final file are the
	// same path; only a distinct original is removed.
	if u.AudioPath != finalPath {
		if _, err := os.Stat(u.AudioPath); err == nil {
			if err := os.Remove(u.AudioPath); err != nil {
				p.log.Warn("  Could not remove original file %s: %v", filepath.Base(u.AudioPath), err)
			} else {
				p.log.Info("  Removed original file: %s", filepath.Base(u.AudioPath))
			}
		}
	}
}

// moveToOutput moves finished files into the configured output directory,
// optionally organized into Artist/Album subdirectories read back from their
// tags. Move failures are warnings; the batch outcome is already decided.
func (p *Processor) moveToOutput(files []string) {
	p.log.Info("=== Moving files to %s ===", p.cfg.OutputDir)

	moved, failed := 0, 0
	for _, file := range files {
		destDir := p.cfg.OutputDir
		if p.cfg.OrganizeByTags {
			if sub := metadata.SubDirFromTags(file); sub != "" {
				destDir = filepath.Join(destDir, sub)
			}
		}
		dst := filepath.Join(destDir, filepath.Base(file))
		if err := utils.MoveFile(file, dst); err != nil {
			p.log.Warn("Error moving %s: %v", file, err)
			failed++
		} else {
			moved++
		}
	}

	if failed > 0 {
		p.log.Warn("%d files could not be moved", failed)
	}
	p.log.Info("Moved %d files to %s", moved, p.cfg.OutputDir)
}
