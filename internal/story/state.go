package story

import "fmt"

// Fear meter bounds.
const (
	MinFear = 0
	MaxFear = 100
)

// State is the complete game state of one player session.
type State struct {
	Scene     Scene    `json:"scene"`
	Fear      int      `json:"fear"`
	HasTorch  bool     `json:"has_torch"`
	FoundNote bool     `json:"found_note"`
	Alive     bool     `json:"alive"`
	Log       []string `json:"log"`
}

// New returns the initial state of a session.
func New() State {
	return State{
		Scene: SceneIntro,
		Alive: true,
		Log:   []string{},
	}
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	c := s
	c.Log = make([]string, len(s.Log))
	copy(c.Log, s.Log)
	return c
}

// Terminal reports whether the session has reached an ending.
func (s State) Terminal() bool {
	return s.Scene.IsTerminal()
}

// Validate checks the invariants of a state restored from outside the engine.
func (s State) Validate() error {
	if !s.Scene.Valid() {
		return fmt.Errorf("story: unknown scene %q", s.Scene)
	}
	if s.Fear < MinFear || s.Fear > MaxFear {
		return fmt.Errorf("story: fear %d outside [%d, %d]", s.Fear, MinFear, MaxFear)
	}
	if !s.Alive && s.Scene != SceneEndBad {
		return fmt.Errorf("story: dead player in scene %q", s.Scene)
	}
	return nil
}
