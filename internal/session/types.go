// Package session owns one player's run through the story.
//
// A Session wraps an immutable story.State with the bookkeeping a host needs:
// identity, seed, move count, timing and result reporting. The story package
// stays free of all of it.
package session

import (
	"time"

	"github.com/vovakirdan/whispers/internal/story"
)

// RunResult is reported once when a session reaches an ending.
type RunResult struct {
	SessionID string
	Player    string
	Seed      int64
	Ending    story.Scene
	Fear      int
	Moves     int
	HasTorch  bool
	FoundNote bool
	Alive     bool
	Log       []string
	Duration  time.Duration
}

// Escaped reports whether the run reached the good ending.
func (r RunResult) Escaped() bool {
	return r.Ending == story.SceneEndGood
}

// RunRecorder persists finished runs.
// This allows sessions to report results without depending on the storage package.
type RunRecorder interface {
	RecordRun(result RunResult) error
}

// Snapshot is the resumable form of an unfinished session.
type Snapshot struct {
	Player string
	Seed   int64
	Moves  int
	Draws  int // values consumed from the seeded source
	State  story.State
}
