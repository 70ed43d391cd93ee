package triplet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sunoproc/internal/logger"
)

// TagsSuffix is the filename suffix that identifies a sidecar tags file.
const TagsSuffix = "_tags.json"

// Audio extensions probed for each base name, in priority order.
var audioExtensions = []string{".m4a", ".mp4", ".mp3", ".flac"}

// Cover art extensions probed for each base name, in priority order.
var coverExtensions = []string{".jpeg", ".jpg", ".png", ".webp"}

// Triplet is one logical processing unit: an audio file, its tags sidecar,
// and an optional cover image, all sharing a base name.
type Triplet struct {
	AudioPath string
	TagsPath  string
	CoverPath string // empty when no cover art was found
}

// BaseName returns the shared base name of the triplet's files.
func (t Triplet) BaseName() string {
	name := filepath.Base(t.TagsPath)
	return strings.TrimSuffix(name, TagsSuffix)
}

// Find scans a directory for complete triplets. Every sidecar tags file
// defines a candidate; a candidate becomes a triplet only if a matching
// audio file exists. Missing cover art is not an error. Sidecars without a
// matching audio file are dropped with a warning. An unreadable directory
// is an error, distinct from a readable directory with no matches.
func Find(dir string, log *logger.Logger) ([]Triplet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", dir, err)
	}

	var triplets []Triplet
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, TagsSuffix) {
			continue
		}
		sidecar := filepath.Join(dir, name)
		base := strings.TrimSuffix(name, TagsSuffix)

		audio := firstExisting(dir, base, audioExtensions)
		if audio == "" {
			log.Warn("No audio file found for %s", filepath.Base(sidecar))
			continue
		}

		cover := firstExisting(dir, base+"_cover", coverExtensions)

		t := Triplet{
			AudioPath: audio,
			TagsPath:  sidecar,
			CoverPath: cover,
		}
		triplets = append(triplets, t)

		log.Info("Found triplet: %s", filepath.Base(audio))
		if cover != "" {
			log.Info("  - Cover: %s", filepath.Base(cover))
		} else {
			log.Info("  - No cover art found")
		}
	}

	return triplets, nil
}

// firstExisting probes name+ext for each extension in order and returns the
// first path that exists. Remaining extensions are not checked.
func firstExisting(dir, name string, exts []string) string {
	for _, ext := range exts {
		candidate := filepath.Join(dir, name+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
