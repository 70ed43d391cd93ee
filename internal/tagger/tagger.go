package tagger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"

	"sunoproc/internal/metadata"
)

// Apply writes the record's fields to the audio file as ID3v2 frames, one
// frame per present field. Empty fields produce no frame, so re-applying the
// same record yields the same tag set.
func Apply(path string, rec metadata.Record) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open %s for tagging: %w", path, err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if rec.Title != "" {
		tag.SetTitle(rec.Title)
	}
	if rec.Artist != "" {
		tag.SetArtist(rec.Artist)
	}
	if rec.Album != "" {
		tag.SetAlbum(rec.Album)
	}
	if rec.Year != "" {
		tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, rec.Year)
	}
	if rec.Genre != "" {
		tag.SetGenre(rec.Genre)
	}
	if rec.Comment != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "",
			Text:        rec.Comment,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to write tags to %s: %w", path, err)
	}
	return nil
}

// EmbedCover embeds an image file as the front cover of the audio file,
// replacing any previously attached pictures.
func EmbedCover(path, coverPath string) error {
	data, err := os.ReadFile(coverPath)
	if err != nil {
		return fmt.Errorf("failed to read cover %s: %w", coverPath, err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open %s for cover embedding: %w", path, err)
	}
	defer tag.Close()

	tag.DeleteFrames(tag.CommonID("Attached picture"))
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    mimeTypeFor(coverPath),
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     data,
	})

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to write cover to %s: %w", path, err)
	}
	return nil
}

// mimeTypeFor maps a cover file extension to its MIME type, defaulting to jpeg.
func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
