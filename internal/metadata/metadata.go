package metadata

import (
	"encoding/json"
	"fmt"
	"os"
)

// Record contains the tags for a single audio file, as read from its
// sidecar JSON. Empty fields are not written to the file.
type Record struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Album   string `json:"album"`
	Year    string `json:"year"`
	Genre   string `json:"genre"`
	Comment string `json:"comment"`
}

// ReadSidecar loads a Record from a sidecar JSON file. The sidecar must
// decode to a non-empty JSON array whose first element is an object; any
// further elements are ignored. A null or non-object first element is an
// error, not an empty record.
func ReadSidecar(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("failed to read tags file %s: %w", path, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return Record{}, fmt.Errorf("failed to parse tags file %s: %w", path, err)
	}

	if len(records) == 0 {
		return Record{}, fmt.Errorf("tags file %s contains no records", path)
	}

	first := records[0]
	if len(first) == 0 || first[0] != '{' {
		return Record{}, fmt.Errorf("tags file %s: first record is not an object", path)
	}

	var rec Record
	if err := json.Unmarshal(first, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to parse tags file %s: %w", path, err)
	}

	return rec, nil
}
