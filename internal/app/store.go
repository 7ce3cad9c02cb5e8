package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sant0-9/promptmaster/internal/intent"
	"github.com/sant0-9/promptmaster/internal/library"
	"github.com/sant0-9/promptmaster/internal/llm"
	"github.com/sant0-9/promptmaster/internal/prompts"
)

// MsgEmptyGoal is shown when submitting without a goal.
const MsgEmptyGoal = "Please enter a goal for your prompt."

// ErrBusy is returned by BeginSubmit while a generation is in flight.
var ErrBusy = errors.New("a generation is already in progress")

// Persister is the storage the store writes through to.
type Persister interface {
	LoadInputs() intent.Inputs
	SaveInputs(intent.Inputs) error
	LoadLibrary() []library.SavedPrompt
	SaveLibrary([]library.SavedPrompt) error
}

// Store serializes every state transition behind one mutex and notifies
// subscribers with a fresh Snapshot after each completed transition.
type Store struct {
	mu      sync.Mutex
	state   State
	lib     *library.Library
	persist Persister
	gen     llm.Generator

	subMu  sync.Mutex
	subs   map[int]func(State)
	nextID int

	log *slog.Logger
}

// New loads persisted inputs and library and returns a Store in the Idle
// state.
func New(persist Persister, gen llm.Generator, opts ...library.Option) *Store {
	s := &Store{
		persist: persist,
		gen:     gen,
		subs:    make(map[int]func(State)),
		log:     slog.Default().With("component", "app"),
	}
	s.lib = library.New(persist.LoadLibrary(), opts...)
	s.state.Inputs = persist.LoadInputs()
	s.state.SavedPrompts = s.lib.All()
	return s
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() State {
	st := s.state
	st.SavedPrompts = s.lib.All()
	return st
}

// Subscribe registers fn to receive a snapshot after every transition.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// update runs fn under the state lock and, when it reports a change,
// notifies subscribers outside the lock.
func (s *Store) update(fn func() bool) bool {
	s.mu.Lock()
	changed := fn()
	st := s.snapshot()
	s.mu.Unlock()

	if changed {
		s.notify(st)
	}
	return changed
}

func (s *Store) notify(st State) {
	s.subMu.Lock()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}

func (s *Store) saveInputs() {
	if err := s.persist.SaveInputs(s.state.Inputs); err != nil {
		s.log.Error("failed to persist form state", "error", err)
	}
}

func (s *Store) saveLibrary() {
	if err := s.persist.SaveLibrary(s.lib.All()); err != nil {
		s.log.Error("failed to persist library", "error", err)
	}
}

// SetField records one form edit and persists the form immediately.
func (s *Store) SetField(f intent.Field, value string) {
	s.update(func() bool {
		s.state.Inputs = s.state.Inputs.Set(f, value)
		s.saveInputs()
		return true
	})
}

// BeginSubmit validates the goal and moves to Loading, returning the
// request to send. An empty goal sets the inline error and returns
// intent.ErrEmptyGoal; a second submit while loading returns ErrBusy.
func (s *Store) BeginSubmit() (string, error) {
	var request string
	var err error
	s.update(func() bool {
		if s.state.IsLoading {
			err = ErrBusy
			return false
		}
		if verr := s.state.Inputs.Validate(); verr != nil {
			err = verr
			s.state.Error = MsgEmptyGoal
			return true
		}
		s.state.IsLoading = true
		s.state.Output = ""
		s.state.Error = ""
		request = prompts.Build(s.state.Inputs)
		return true
	})
	return request, err
}

// FinishSubmit resolves a generation started by BeginSubmit. Exactly one
// of Output or Error is set, and loading always ends.
func (s *Store) FinishSubmit(output string, genErr error) {
	s.update(func() bool {
		s.state.IsLoading = false
		if genErr != nil {
			s.state.Output = ""
			s.state.Error = llm.DisplayError(genErr)
			return true
		}
		s.state.Output = output
		s.state.Error = ""
		return true
	})
}

// SetGenerator replaces the generation client, for example after the
// provider was changed in settings.
func (s *Store) SetGenerator(gen llm.Generator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen = gen
}

// Generate calls the generation client without touching state. It is the
// suspension point between BeginSubmit and FinishSubmit.
func (s *Store) Generate(ctx context.Context, request string) (string, error) {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()
	if gen == nil {
		return "", errors.New("no generation provider configured")
	}
	return gen.Generate(ctx, request)
}

// Submit runs a whole submission: BeginSubmit, Generate and FinishSubmit.
func (s *Store) Submit(ctx context.Context) error {
	request, err := s.BeginSubmit()
	if err != nil {
		return err
	}
	output, err := s.Generate(ctx, request)
	s.FinishSubmit(output, err)
	return err
}

// Save adds the current output to the library. It returns false when
// there is no output or it is already saved.
func (s *Store) Save() bool {
	return s.update(func() bool {
		if _, ok := s.lib.Save(s.state.Inputs, s.state.Output); !ok {
			return false
		}
		s.saveLibrary()
		return true
	})
}

// Delete removes a saved entry. Unknown ids are a no-op.
func (s *Store) Delete(id library.ID) bool {
	return s.update(func() bool {
		if !s.lib.Delete(id) {
			return false
		}
		if s.state.EditingPromptID == id {
			s.state.EditingPromptID = library.NoID
		}
		s.saveLibrary()
		return true
	})
}

// StartEdit puts one entry into inline-edit mode, leaving any other.
func (s *Store) StartEdit(id library.ID) bool {
	return s.update(func() bool {
		if _, ok := s.lib.Find(id); !ok {
			return false
		}
		s.state.EditingPromptID = id
		return true
	})
}

// CommitEdit replaces the goal of an entry and leaves edit mode. A goal
// that trims to empty leaves the entry unchanged and nothing is persisted.
func (s *Store) CommitEdit(id library.ID, goal string) bool {
	return s.update(func() bool {
		if strings.TrimSpace(goal) == "" {
			if s.state.EditingPromptID == library.NoID {
				return false
			}
			s.state.EditingPromptID = library.NoID
			return true
		}
		if s.lib.UpdateGoal(id, goal) {
			s.saveLibrary()
		}
		s.state.EditingPromptID = library.NoID
		return true
	})
}

// CancelEdit leaves edit mode without changes.
func (s *Store) CancelEdit() {
	s.update(func() bool {
		if s.state.EditingPromptID == library.NoID {
			return false
		}
		s.state.EditingPromptID = library.NoID
		return true
	})
}

// Use loads a saved entry back into the form and output. The returned
// flag tells the caller to scroll the view to the top.
func (s *Store) Use(id library.ID) bool {
	return s.update(func() bool {
		p, ok := s.lib.Find(id)
		if !ok {
			return false
		}
		in := p.Inputs
		if in.RefinementDepth == "" {
			in.RefinementDepth = intent.DepthTierOne
		}
		s.state.Inputs = in
		s.state.Output = p.Output
		s.state.Error = ""
		s.state.EditingPromptID = library.NoID
		s.saveInputs()
		return true
	})
}

// Import merges an exported file into the library. On any validation
// error nothing is merged and the error is returned for a blocking alert.
func (s *Store) Import(data []byte) (int, error) {
	var n int
	var err error
	s.update(func() bool {
		n, err = s.lib.Import(data)
		if err != nil {
			s.log.Warn("import rejected", "error", err)
			return false
		}
		s.saveLibrary()
		return true
	})
	return n, err
}

// Export returns the library as indented JSON and the backup file name.
// data is nil when the library is empty.
func (s *Store) Export() (data []byte, name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err = s.lib.Export()
	if err != nil || data == nil {
		return nil, "", err
	}
	return data, s.lib.ExportFileName(), nil
}

// ExportTo writes the backup file into dir and returns its path, or ""
// when the library is empty.
func (s *Store) ExportTo(dir string) (string, error) {
	data, name, err := s.Export()
	if err != nil {
		return "", fmt.Errorf("failed to export prompts: %w", err)
	}
	if data == nil {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", err
	}
	s.log.Info("library exported", "path", path)
	return path, nil
}
