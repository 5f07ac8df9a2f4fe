package session

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/vovakirdan/whispers/internal/config"
	"github.com/vovakirdan/whispers/internal/story"
)

type fakeRecorder struct {
	mu      sync.Mutex
	results []RunResult
	err     error
}

func (f *fakeRecorder) RecordRun(r RunResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, r)
	return f.err
}

func newEngine() *story.Engine {
	return story.NewEngine(config.DefaultStoryConfig())
}

func secretSnapshot(fear int) Snapshot {
	st := story.New()
	st.Scene = story.SceneSecret
	st.Fear = fear
	st.HasTorch = true
	st.FoundNote = true
	st.Log = []string{story.LogEntered, story.LogHiddenDoor}
	return Snapshot{Player: "alice", Seed: 7, Moves: 6, State: st}
}

func TestNew(t *testing.T) {
	s, err := New(newEngine(), Options{Seed: 42})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if s.ID() == "" {
		t.Error("expected a generated ID")
	}
	if s.Player() != "local" {
		t.Errorf("Player() = %q, expected local", s.Player())
	}
	if s.Seed() != 42 {
		t.Errorf("Seed() = %d, expected 42", s.Seed())
	}
	if !reflect.DeepEqual(s.State(), story.New()) {
		t.Errorf("State() = %+v, expected initial state", s.State())
	}
	if s.Moves() != 0 {
		t.Errorf("Moves() = %d, expected 0", s.Moves())
	}
}

func TestNewGeneratesSeed(t *testing.T) {
	s, err := New(newEngine(), Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if s.Seed() == 0 {
		t.Error("expected a non-zero seed")
	}
}

func TestNewNilEngine(t *testing.T) {
	if _, err := New(nil, Options{}); err == nil {
		t.Error("expected error for nil engine")
	}
}

func TestChoose(t *testing.T) {
	s, _ := New(newEngine(), Options{Seed: 1})

	out, err := s.Choose(story.SceneIntro, story.ChoiceEnter)
	if err != nil {
		t.Fatalf("Choose() failed: %v", err)
	}
	if out.To != story.SceneFoyer {
		t.Errorf("Outcome.To = %s, expected foyer", out.To)
	}
	if s.Moves() != 1 {
		t.Errorf("Moves() = %d, expected 1", s.Moves())
	}
	if s.View().Scene != story.SceneFoyer {
		t.Errorf("View().Scene = %s, expected foyer", s.View().Scene)
	}
	if !reflect.DeepEqual(s.Last(), out) {
		t.Error("Last() should return the latest outcome")
	}
}

func TestChooseRejected(t *testing.T) {
	s, _ := New(newEngine(), Options{Seed: 1})
	before := s.State()

	tests := []struct {
		name   string
		scene  story.Scene
		choice story.Choice
	}{
		{"unknown choice", story.SceneIntro, story.Choice("fly")},
		{"stale scene", story.SceneFoyer, story.ChoiceTakeTorch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Choose(tc.scene, tc.choice)
			if !errors.Is(err, story.ErrInvalidChoice) {
				t.Errorf("expected ErrInvalidChoice, got %v", err)
			}
			if s.Moves() != 0 {
				t.Errorf("Moves() = %d after rejected choice", s.Moves())
			}
			if !reflect.DeepEqual(s.State(), before) {
				t.Error("state changed after rejected choice")
			}
		})
	}
}

func TestEndingIsRecordedOnce(t *testing.T) {
	rec := &fakeRecorder{}
	s, err := Resume(newEngine(), secretSnapshot(10), Options{ID: "s1", Recorder: rec})
	if err != nil {
		t.Fatalf("Resume() failed: %v", err)
	}

	if _, err := s.Choose(story.SceneSecret, story.ChoiceOpenDoor); err != nil {
		t.Fatalf("Choose() failed: %v", err)
	}
	if len(rec.results) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(rec.results))
	}

	r := rec.results[0]
	if r.Ending != story.SceneEndGood || !r.Escaped() {
		t.Errorf("Ending = %s, expected end_good", r.Ending)
	}
	if r.Player != "alice" || r.SessionID != "s1" || r.Seed != 7 {
		t.Errorf("unexpected identity in result: %+v", r)
	}
	if r.Moves != 7 {
		t.Errorf("Moves = %d, expected 7", r.Moves)
	}
	if r.Fear != 10 || !r.HasTorch || !r.FoundNote || !r.Alive {
		t.Errorf("unexpected flags in result: %+v", r)
	}
	if len(r.Log) != 3 {
		t.Errorf("Log = %v, expected 3 entries", r.Log)
	}

	// Only restart is allowed now and it must not record again.
	if _, err := s.Choose(story.SceneEndGood, story.ChoiceOpenDoor); !errors.Is(err, story.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	if _, err := s.Choose(story.SceneEndGood, story.ChoiceRestart); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if len(rec.results) != 1 {
		t.Errorf("restart should not record, got %d results", len(rec.results))
	}
	if s.Moves() != 0 || !reflect.DeepEqual(s.State(), story.New()) {
		t.Errorf("restart should reset the run, got moves=%d state=%+v", s.Moves(), s.State())
	}
}

func TestBadEndingThroughDoor(t *testing.T) {
	rec := &fakeRecorder{}
	s, _ := Resume(newEngine(), secretSnapshot(75), Options{Recorder: rec})

	if _, err := s.Choose(story.SceneSecret, story.ChoiceOpenDoor); err != nil {
		t.Fatalf("Choose() failed: %v", err)
	}
	if len(rec.results) != 1 || rec.results[0].Ending != story.SceneEndBad {
		t.Fatalf("expected one bad ending, got %+v", rec.results)
	}
	if rec.results[0].Escaped() {
		t.Error("bad ending should not count as escaped")
	}
}

func TestRecorderErrorDoesNotFailChoice(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	s, _ := Resume(newEngine(), secretSnapshot(10), Options{Recorder: rec})

	if _, err := s.Choose(story.SceneSecret, story.ChoiceOpenDoor); err != nil {
		t.Errorf("recorder failure leaked into Choose: %v", err)
	}
	if s.State().Scene != story.SceneEndGood {
		t.Errorf("Scene = %s, expected end_good", s.State().Scene)
	}
}

func TestRestart(t *testing.T) {
	s, _ := New(newEngine(), Options{Seed: 3})
	s.Choose(story.SceneIntro, story.ChoiceEnter)
	s.Choose(story.SceneFoyer, story.ChoiceTakeTorch)

	s.Restart()
	if !reflect.DeepEqual(s.State(), story.New()) {
		t.Errorf("State() = %+v after restart", s.State())
	}
	if s.Moves() != 0 {
		t.Errorf("Moves() = %d after restart", s.Moves())
	}
}

func TestSnapshotResumeContinuesSequence(t *testing.T) {
	path := []story.Choice{story.ChoiceEnter, story.ChoiceTakeTorch, story.ChoiceGoUpstairs}
	tail := []story.Choice{story.ChoiceLeftRoom, story.ChoiceLeftRoom, story.ChoiceLeftRoom}

	play := func(s *Session, choices []story.Choice) {
		for _, c := range choices {
			st := s.State()
			if !story.Offers(st.Scene, c) {
				return
			}
			if _, err := s.Choose(st.Scene, c); err != nil {
				t.Fatalf("Choose(%q) failed: %v", c, err)
			}
		}
	}

	a, _ := New(newEngine(), Options{Seed: 1234})
	play(a, path)
	snap := a.Snapshot()

	b, err := Resume(newEngine(), snap, Options{})
	if err != nil {
		t.Fatalf("Resume() failed: %v", err)
	}
	if b.Moves() != a.Moves() {
		t.Errorf("resumed Moves() = %d, expected %d", b.Moves(), a.Moves())
	}

	play(a, tail)
	play(b, tail)
	if !reflect.DeepEqual(a.State(), b.State()) {
		t.Errorf("resumed session diverged:\n%+v\n%+v", a.State(), b.State())
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s, _ := New(newEngine(), Options{Seed: 5})
	s.Choose(story.SceneIntro, story.ChoiceEnter)

	snap := s.Snapshot()
	snap.State.Log[0] = "changed"

	if s.State().Log[0] == "changed" {
		t.Error("Snapshot shares the log with the session")
	}
}

func TestResumeRejectsInvalidSnapshot(t *testing.T) {
	bad := secretSnapshot(10)
	bad.State.Fear = 150
	if _, err := Resume(newEngine(), bad, Options{}); err == nil {
		t.Error("expected error for out-of-range fear")
	}

	noSeed := secretSnapshot(10)
	noSeed.Seed = 0
	if _, err := Resume(newEngine(), noSeed, Options{}); err == nil {
		t.Error("expected error for missing seed")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	e := newEngine()
	var wg sync.WaitGroup
	sessions := make([]*Session, 16)

	for i := range sessions {
		s, err := New(e, Options{Seed: int64(i + 1)})
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		sessions[i] = s

		wg.Add(1)
		go func() {
			defer wg.Done()
			for step := 0; step < 50; step++ {
				v := s.View()
				s.Choose(v.Scene, v.Options[step%len(v.Options)].Choice)
			}
		}()
	}
	wg.Wait()

	for _, s := range sessions {
		if err := s.State().Validate(); err != nil {
			t.Errorf("session %s: %v", s.ID(), err)
		}
	}
}
