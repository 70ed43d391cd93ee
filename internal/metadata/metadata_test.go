package metadata

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSidecar(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "song_tags.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadSidecar(t *testing.T) {
	dir := t.TempDir()
	path := writeSidecar(t, dir, `[{"title":"A","artist":"B","album":"C","year":"2024","genre":"Pop","comment":"hi"}]`)

	rec, err := ReadSidecar(path)
	if err != nil {
		t.Fatalf("ReadSidecar() error: %v", err)
	}

	want := Record{Title: "A", Artist: "B", Album: "C", Year: "2024", Genre: "Pop", Comment: "hi"}
	if rec != want {
		t.Errorf("ReadSidecar() = %+v, want %+v", rec, want)
	}
}

func TestReadSidecarFirstElementWins(t *testing.T) {
	dir := t.TempDir()
	path := writeSidecar(t, dir, `[{"title":"first"},{"title":"second"}]`)

	rec, err := ReadSidecar(path)
	if err != nil {
		t.Fatalf("ReadSidecar() error: %v", err)
	}
	if rec.Title != "first" {
		t.Errorf("expected first element, got title %q", rec.Title)
	}
}

func TestReadSidecarPartialFields(t *testing.T) {
	dir := t.TempDir()
	path := writeSidecar(t, dir, `[{"title":"only title"}]`)

	rec, err := ReadSidecar(path)
	if err != nil {
		t.Fatalf("ReadSidecar() error: %v", err)
	}
	if rec.Title != "only title" {
		t.Errorf("title = %q", rec.Title)
	}
	if rec.Artist != "" || rec.Comment != "" {
		t.Errorf("absent fields should be empty, got %+v", rec)
	}
}

func TestReadSidecarUnknownFieldsIgnored(t *testing.T) {
	dir := t.TempDir()
	path := writeSidecar(t, dir, `[{"title":"x","bpm":"120","mood":"calm"}]`)

	rec, err := ReadSidecar(path)
	if err != nil {
		t.Fatalf("ReadSidecar() error: %v", err)
	}
	if rec.Title != "x" {
		t.Errorf("title = %q", rec.Title)
	}
}

func TestReadSidecarEmptyArray(t *testing.T) {
	dir := t.TempDir()
	path := writeSidecar(t, dir, `[]`)

	if _, err := ReadSidecar(path); err == nil {
		t.Error("expected error for empty array")
	}
}

func TestReadSidecarInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeSidecar(t, dir, `{not json`)

	if _, err := ReadSidecar(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestReadSidecarNotAnArray(t *testing.T) {
	dir := t.TempDir()
	path := writeSidecar(t, dir, `{"title":"A"}`)

	if _, err := ReadSidecar(path); err == nil {
		t.Error("expected error when sidecar is not an array")
	}
}

func TestReadSidecarNullRecord(t *testing.T) {
	dir := t.TempDir()
	path := writeSidecar(t, dir, `[null]`)

	if _, err := ReadSidecar(path); err == nil {
		t.Error("expected error when the first record is null")
	}
}

func TestReadSidecarNonObjectRecord(t *testing.T) {
	dir := t.TempDir()
	path := writeSidecar(t, dir, `["just a string"]`)

	if _, err := ReadSidecar(path); err == nil {
		t.Error("expected error when the first record is not an object")
	}
}

func TestReadSidecarMissingFile(t *testing.T) {
	if _, err := ReadSidecar("/nonexistent/song_tags.json"); err == nil {
		t.Error("expected error for missing file")
	}
}
