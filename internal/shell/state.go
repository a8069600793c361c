package shell

import (
	"maps"

	"legal_dashboard/internal/nav"
)

// Mode is the rail state of a Shell. Expanded is initial; ToggleCollapse is the only
// transition and it is its own inverse.
type Mode int

const (
	Expanded Mode = iota
	Collapsed
)

func (m Mode) String() string {
	if m == Collapsed {
		return "collapsed"
	}
	return "expanded"
}

// ToggleResult reports what a ToggleGroup call did.
type ToggleResult int

const (
	Toggled ToggleResult = iota
	IgnoredCollapsed
	IgnoredUnknownGroup
)

func (r ToggleResult) String() string {
	switch r {
	case Toggled:
		return "toggled"
	case IgnoredCollapsed:
		return "collapsed"
	case IgnoredUnknownGroup:
		return "unknown_group"
	default:
		return "unknown"
	}
}

// State is the state owned by one Shell instance: the collapse flag and the per-group
// expansion state. The key set of Open is always exactly the registry's group ids.
type State struct {
	Collapsed bool            `json:"collapsed"`
	Open      map[string]bool `json:"open"`
}

// NewState returns the initial state for reg: expanded rail, every group closed.
func NewState(reg *nav.Registry) *State {
	ids := reg.GroupIDs()
	s := &State{Open: make(map[string]bool, len(ids))}
	for _, id := range ids {
		s.Open[id] = false
	}
	return s
}

// Mode returns the rail state.
func (s *State) Mode() Mode {
	if s.Collapsed {
		return Collapsed
	}
	return Expanded
}

// ToggleCollapse flips the collapse flag. Group expansion is left untouched.
func (s *State) ToggleCollapse() {
	s.Collapsed = !s.Collapsed
}

// ToggleGroup flips the open flag of one group. It is a no-op while the rail is collapsed
// and for ids outside the group set; unknown ids are never added.
func (s *State) ToggleGroup(id string) ToggleResult {
	if s.Collapsed {
		return IgnoredCollapsed
	}
	open, ok := s.Open[id]
	if !ok {
		return IgnoredUnknownGroup
	}
	s.Open[id] = !open
	return Toggled
}

// IsOpen reports whether the group is expanded. Unknown ids are closed.
func (s *State) IsOpen(id string) bool {
	return s.Open[id]
}

// Normalize restores the key-set invariant against reg: stale keys are dropped and
// missing keys are added as closed.
func (s *State) Normalize(reg *nav.Registry) {
	ids := reg.GroupIDs()
	normalized := make(map[string]bool, len(ids))
	for _, id := range ids {
		normalized[id] = s.Open[id]
	}
	s.Open = normalized
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	return &State{Collapsed: s.Collapsed, Open: maps.Clone(s.Open)}
}

// View returns a read-only snapshot for renderers.
func (s *State) View() View {
	return View{Collapsed: s.Collapsed, open: maps.Clone(s.Open)}
}

// View is an immutable snapshot of State handed to render functions.
type View struct {
	Collapsed bool
	open      map[string]bool
}

// IsOpen reports whether the group was expanded when the snapshot was taken.
func (v View) IsOpen(id string) bool {
	return v.open[id]
}

// Mode returns the rail state of the snapshot.
func (v View) Mode() Mode {
	if v.Collapsed {
		return Collapsed
	}
	return Expanded
}
