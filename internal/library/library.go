// Package library manages the user's saved prompts: newest first, unique
// by generated output.
package library

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/sant0-9/promptmaster/internal/intent"
)

// ID identifies a saved prompt. It is a millisecond timestamp, with a
// random fraction added for imported entries.
type ID float64

// NoID is the zero ID, never assigned to an entry.
const NoID ID = 0

func (id ID) String() string {
	return strconv.FormatFloat(float64(id), 'f', -1, 64)
}

// ParseID parses the textual form produced by ID.String.
func ParseID(s string) (ID, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return NoID, err
	}
	return ID(f), nil
}

// SavedPrompt is one library entry.
type SavedPrompt struct {
	ID     ID            `json:"id"`
	Inputs intent.Inputs `json:"inputs"`
	Output string        `json:"output"`
}

// Title is the text shown for the entry in lists.
func (p SavedPrompt) Title() string {
	return p.Inputs.Goal
}

// Library is an ordered set of saved prompts. It is not safe for
// concurrent use; the application store serializes access.
type Library struct {
	prompts []SavedPrompt
	now     func() time.Time
	rand    *rand.Rand
}

// Option configures a Library.
type Option func(*Library)

// WithClock sets the time source used for new IDs and export names.
func WithClock(now func() time.Time) Option {
	return func(l *Library) { l.now = now }
}

// WithRand sets the random source used for imported IDs.
func WithRand(r *rand.Rand) Option {
	return func(l *Library) { l.rand = r }
}

// New creates a library holding prompts in the given order.
func New(prompts []SavedPrompt, opts ...Option) *Library {
	l := &Library{
		prompts: append([]SavedPrompt(nil), prompts...),
		now:     time.Now,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// All returns a copy of the entries, newest first.
func (l *Library) All() []SavedPrompt {
	return append([]SavedPrompt(nil), l.prompts...)
}

// Len returns the number of entries.
func (l *Library) Len() int {
	return len(l.prompts)
}

// Contains reports whether an entry with exactly this output exists.
func (l *Library) Contains(output string) bool {
	for _, p := range l.prompts {
		if p.Output == output {
			return true
		}
	}
	return false
}

// Find returns the entry with the given id.
func (l *Library) Find(id ID) (SavedPrompt, bool) {
	if i := l.index(id); i >= 0 {
		return l.prompts[i], true
	}
	return SavedPrompt{}, false
}

// Save prepends a new entry. It does nothing and returns false when output
// is empty or already saved.
func (l *Library) Save(inputs intent.Inputs, output string) (SavedPrompt, bool) {
	if output == "" || l.Contains(output) {
		return SavedPrompt{}, false
	}
	id := ID(l.now().UnixMilli())
	for l.index(id) >= 0 {
		id++
	}
	p := SavedPrompt{ID: id, Inputs: inputs, Output: output}
	l.prompts = append([]SavedPrompt{p}, l.prompts...)
	return p, true
}

// Delete removes the entry with the given id. Unknown ids are ignored.
func (l *Library) Delete(id ID) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.prompts = append(l.prompts[:i:i], l.prompts[i+1:]...)
	return true
}

// UpdateGoal replaces the goal of an entry. A goal that trims to empty is
// rejected. The stored goal is trimmed.
func (l *Library) UpdateGoal(id ID, goal string) bool {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return false
	}
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.prompts[i].Inputs.Goal = goal
	return true
}

func (l *Library) index(id ID) int {
	for i, p := range l.prompts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
