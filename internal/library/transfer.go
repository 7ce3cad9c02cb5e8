package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sant0-9/promptmaster/internal/intent"
)

var (
	ErrNotArray         = errors.New("invalid JSON format: not an array")
	ErrInvalidStructure = errors.New("invalid prompt structure in JSON file")
)

// ImportError wraps any reason an import file was rejected. Its message is
// the text shown in the import alert.
type ImportError struct {
	Err error
}

func (e *ImportError) Error() string {
	switch {
	case errors.Is(e.Err, ErrNotArray):
		return "Failed to import prompts: Invalid JSON format: Not an array."
	case errors.Is(e.Err, ErrInvalidStructure):
		return "Failed to import prompts: Invalid prompt structure in JSON file."
	default:
		return "Failed to import prompts: " + e.Err.Error()
	}
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// importedPrompt keeps the raw fields so presence can be checked before
// decoding.
type importedPrompt struct {
	ID     *json.RawMessage `json:"id"`
	Inputs *json.RawMessage `json:"inputs"`
	Output *string          `json:"output"`
}

// Import merges a JSON export into the library. Every element must carry
// id, inputs, inputs.goal and output, otherwise nothing is merged. Entries
// whose output is already present are skipped; the rest get fresh IDs and
// are prepended in file order. It returns the number of entries added.
func (l *Library) Import(data []byte) (int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return 0, &ImportError{Err: ErrNotArray}
		}
		return 0, &ImportError{Err: err}
	}
	if raw == nil {
		return 0, &ImportError{Err: ErrNotArray}
	}

	parsed := make([]SavedPrompt, 0, len(raw))
	for i, elem := range raw {
		p, err := decodeImported(elem)
		if err != nil {
			return 0, &ImportError{Err: fmt.Errorf("%w (entry %d: %v)", ErrInvalidStructure, i, err)}
		}
		parsed = append(parsed, p)
	}

	seen := make(map[string]bool, len(l.prompts)+len(parsed))
	taken := make(map[ID]bool, len(l.prompts)+len(parsed))
	for _, p := range l.prompts {
		seen[p.Output] = true
		taken[p.ID] = true
	}

	var fresh []SavedPrompt
	for _, p := range parsed {
		if seen[p.Output] {
			continue
		}
		seen[p.Output] = true
		p.ID = l.importID(taken)
		taken[p.ID] = true
		fresh = append(fresh, p)
	}

	l.prompts = append(fresh, l.prompts...)
	return len(fresh), nil
}

func decodeImported(elem json.RawMessage) (SavedPrompt, error) {
	var ip importedPrompt
	if err := json.Unmarshal(elem, &ip); err != nil {
		return SavedPrompt{}, err
	}
	if ip.ID == nil || ip.Inputs == nil || ip.Output == nil {
		return SavedPrompt{}, errors.New("missing id, inputs or output")
	}
	var partial intent.Partial
	if err := json.Unmarshal(*ip.Inputs, &partial); err != nil {
		return SavedPrompt{}, err
	}
	if partial.Goal == nil {
		return SavedPrompt{}, errors.New("missing inputs.goal")
	}
	return SavedPrompt{Inputs: intent.Merge(partial), Output: *ip.Output}, nil
}

func (l *Library) importID(taken map[ID]bool) ID {
	for {
		id := ID(float64(l.now().UnixMilli()) + l.rand.Float64())
		if id != NoID && !taken[id] {
			return id
		}
	}
}

// Export serializes the whole library as indented JSON. It returns nil
// when the library is empty.
func (l *Library) Export() ([]byte, error) {
	if len(l.prompts) == 0 {
		return nil, nil
	}
	return json.MarshalIndent(l.prompts, "", "  ")
}

// ExportFileName is the backup file name for the given day (UTC).
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("prompt-master-backup-%s.json", t.UTC().Format("2006-01-02"))
}

// ExportFileName names a backup taken now.
func (l *Library) ExportFileName() string {
	return ExportFileName(l.now())
}
