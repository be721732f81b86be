package profile

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source produces a profiles Record from some backing store. The engine does
// not care where profiles live; it only consumes the validated model built
// from the record.
type Source interface {
	// Load reads the profiles record. Implementations return errors matching
	// ErrConfigInvalid for malformed content; any error fails the attempt
	// closed.
	Load(ctx context.Context) (Record, error)
}

// FileSource loads profiles from a YAML file.
//
// File layout:
//
//	users:
//	  - login: alice
//	    devices:
//	      - vid: 0x1234
//	        pid: 0x0001
//	        serial: "SN42"
//
// All three device keys must be present; a zero id or empty serial is a
// wildcard. The file is re-read on every Load so profile edits take effect on
// the next authentication attempt without a restart.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed profiles source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the profiles file path.
func (s *FileSource) Path() string {
	return s.path
}

// Load reads and parses the profiles file.
func (s *FileSource) Load(_ context.Context) (Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Record{}, fmt.Errorf("reading profiles file: %w", err)
	}

	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("%w: parsing profiles file: %v", ErrConfigInvalid, err)
	}
	return rec, nil
}
