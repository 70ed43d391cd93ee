// Package encoder wraps the external ffmpeg tool used to normalize audio
// files to the target format.
package encoder

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"sunoproc/internal/logger"
)

// TargetExt is the extension of the target container; files already carrying
// it skip conversion entirely.
const TargetExt = ".mp3"

// FFmpeg converts audio files to MP3 by shelling out to ffmpeg.
type FFmpeg struct {
	Logger *logger.Logger
}

// New creates a new FFmpeg encoder.
func New(log *logger.Logger) *FFmpeg {
	return &FFmpeg{Logger: log}
}

// Convert transcodes input to an MP3 at output using libmp3lame at the
// highest VBR quality, overwriting any existing output file. ffmpeg's stderr
// is folded into the returned error on failure.
func (f *FFmpeg) Convert(ctx context.Context, input, output string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", input,
		"-codec:a", "libmp3lame",
		"-q:a", "0",
		"-y",
		output,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("conversion cancelled")
		}
		if _, lookErr := exec.LookPath("ffmpeg"); lookErr != nil {
			return fmt.Errorf("ffmpeg not found in PATH. Install ffmpeg to convert audio files")
		}
		return fmt.Errorf("ffmpeg failed to convert %s: %w\nDetails: %s", input, err, stderr.String())
	}

	return nil
}
