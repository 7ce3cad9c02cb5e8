package store

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sant0-9/promptmaster/internal/intent"
	"github.com/sant0-9/promptmaster/internal/library"
)

// Keys used in the KV.
const (
	KeyInputs  = "promptFormState"
	KeyLibrary = "savedPrompts"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the KV for a configured backend.
func Open(backend, path string) (KV, error) {
	switch backend {
	case "", BackendFile:
		return NewFileKV(path)
	case BackendSQLite:
		return NewSQLiteKV(path)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

// Store reads and writes the two persisted blobs. Loads never fail: the
// data is a local cache, so anything unreadable is logged and replaced by
// defaults.
type Store struct {
	kv  KV
	log *slog.Logger
}

func New(kv KV) *Store {
	return &Store{kv: kv, log: slog.Default().With("component", "store")}
}

// LoadInputs returns the persisted form state merged over the defaults.
func (s *Store) LoadInputs() intent.Inputs {
	raw, ok := s.get(KeyInputs)
	if !ok {
		return intent.Defaults()
	}
	var p intent.Partial
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.log.Warn("discarding unreadable form state", "error", err)
		return intent.Defaults()
	}
	return intent.Merge(p)
}

func (s *Store) SaveInputs(in intent.Inputs) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return s.kv.Set(KeyInputs, string(data))
}

type storedPrompt struct {
	ID     library.ID     `json:"id"`
	Inputs intent.Partial `json:"inputs"`
	Output string         `json:"output"`
}

// LoadLibrary returns the persisted saved prompts, newest first. Each
// entry's inputs are merged over the defaults.
func (s *Store) LoadLibrary() []library.SavedPrompt {
	raw, ok := s.get(KeyLibrary)
	if !ok {
		return nil
	}
	var stored []storedPrompt
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.log.Warn("discarding unreadable saved prompts", "error", err)
		return nil
	}
	prompts := make([]library.SavedPrompt, len(stored))
	for i, p := range stored {
		prompts[i] = library.SavedPrompt{
			ID:     p.ID,
			Inputs: intent.Merge(p.Inputs),
			Output: p.Output,
		}
	}
	return prompts
}

func (s *Store) SaveLibrary(prompts []library.SavedPrompt) error {
	if prompts == nil {
		prompts = []library.SavedPrompt{}
	}
	data, err := json.Marshal(prompts)
	if err != nil {
		return err
	}
	return s.kv.Set(KeyLibrary, string(data))
}

func (s *Store) Close() error {
	return s.kv.Close()
}

func (s *Store) get(key string) (string, bool) {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		s.log.Warn("read failed", "key", key, "error", err)
		return "", false
	}
	return raw, ok
}
