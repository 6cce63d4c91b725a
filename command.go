package spritedit

import (
	"fmt"
	"sort"
	"strings"
)

// Action tags a command's effect. Effects are a closed set rather than
// arbitrary closures so enablement rules and tests can enumerate them.
type Action uint8

const (
	ActionNewSprite Action = iota
	ActionOpenFile
	ActionSaveFile
	ActionLoadURL
	ActionGenerate
	ActionShowPalette
	ActionToggleGrid
	ActionToggleProjection
	ActionSelectPencil
	ActionSelectEraser
	ActionSelectFill
	ActionSelectPicker
	ActionZoomIn
	ActionZoomOut
	ActionResetView
)

// Command is one named, invokable editor action, reachable by keyboard
// shortcut or palette search. Immutable once registered.
type Command struct {
	ID       string
	Name     string
	Shortcut KeyCombo // zero value = no shortcut
	Action   Action
}

// Registry is the command table built once at startup. Invocation routes
// through a dispatch function and an enablement predicate supplied by the
// owner (normally the [Editor]).
type Registry struct {
	byID     map[string]*Command
	order    []*Command
	dispatch func(Action) error
	enabled  func(Action) bool
}

// NewRegistry creates an empty registry. dispatch executes a command's
// effect; a nil enabled predicate means every command is always enabled.
func NewRegistry(dispatch func(Action) error, enabled func(Action) bool) *Registry {
	return &Registry{
		byID:     make(map[string]*Command),
		dispatch: dispatch,
		enabled:  enabled,
	}
}

// Register adds a command. Fails with ErrDuplicateID if the ID is taken.
func (r *Registry) Register(cmd Command) error {
	if _, ok := r.byID[cmd.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateID, cmd.ID)
	}
	c := cmd
	r.byID[cmd.ID] = &c
	r.order = append(r.order, &c)
	return nil
}

// Commands returns every registered command in registration order.
func (r *Registry) Commands() []*Command {
	return append([]*Command(nil), r.order...)
}

// LookupByShortcut returns the command bound to an exact key combo.
func (r *Registry) LookupByShortcut(combo KeyCombo) (*Command, bool) {
	if combo.IsZero() {
		return nil, false
	}
	for _, c := range r.order {
		if c.Shortcut == combo {
			return c, true
		}
	}
	return nil, false
}

// Search returns the commands whose display name contains the query,
// case-insensitively, ranked by earliest match position and then by
// shortest name. An empty query lists everything in registration order.
// The result is recomputed on every call.
func (r *Registry) Search(query string) []*Command {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return r.Commands()
	}

	type match struct {
		cmd *Command
		pos int
	}
	var matches []match
	for _, c := range r.order {
		pos := strings.Index(strings.ToLower(c.Name), q)
		if pos < 0 {
			continue
		}
		matches = append(matches, match{cmd: c, pos: pos})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].pos != matches[j].pos {
			return matches[i].pos < matches[j].pos
		}
		return len(matches[i].cmd.Name) < len(matches[j].cmd.Name)
	})

	out := make([]*Command, len(matches))
	for i, m := range matches {
		out[i] = m.cmd
	}
	return out
}

// Enabled reports whether a command's effect may currently run.
func (r *Registry) Enabled(cmd *Command) bool {
	return r.enabled == nil || r.enabled(cmd.Action)
}

// Invoke executes a command's effect. Fails with ErrNotFound for an unknown
// ID and ErrDisabled when the enablement predicate rejects it; both leave
// all state untouched.
func (r *Registry) Invoke(id string) error {
	cmd, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if !r.Enabled(cmd) {
		return fmt.Errorf("%w: %q", ErrDisabled, id)
	}
	return r.dispatch(cmd.Action)
}
