package session

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/whispers/internal/random"
	"github.com/vovakirdan/whispers/internal/story"
)

// Options configures a new session.
type Options struct {
	ID       string      // generated when empty
	Player   string      // "local" when empty
	Seed     int64       // drawn from crypto/rand when zero
	Recorder RunRecorder // optional
	Logger   *log.Logger // optional
}

// Session is one player's run. It is safe for concurrent use, but sessions
// never share state with each other.
type Session struct {
	mu sync.Mutex

	id     string
	player string
	seed   int64

	engine   *story.Engine
	src      *random.Seeded
	recorder RunRecorder
	logger   *log.Logger
	now      func() time.Time

	state    story.State
	last     story.Outcome
	moves    int
	started  time.Time
	recorded bool
}

// New starts a fresh session at the intro.
func New(engine *story.Engine, opts Options) (*Session, error) {
	s, err := newSession(engine, opts)
	if err != nil {
		return nil, err
	}
	s.state = engine.Restart()
	return s, nil
}

// Resume restores a session from a snapshot taken by Snapshot.
func Resume(engine *story.Engine, snap Snapshot, opts Options) (*Session, error) {
	if err := snap.State.Validate(); err != nil {
		return nil, fmt.Errorf("session: invalid snapshot: %w", err)
	}
	if snap.Seed == 0 {
		return nil, fmt.Errorf("session: snapshot has no seed")
	}

	opts.Seed = snap.Seed
	if opts.Player == "" {
		opts.Player = snap.Player
	}
	s, err := newSession(engine, opts)
	if err != nil {
		return nil, err
	}
	s.src.Skip(snap.Draws)
	s.state = snap.State.Clone()
	s.moves = snap.Moves
	s.recorded = snap.State.Terminal()

	s.logger.Debug("session resumed", "scene", s.state.Scene, "moves", s.moves)
	return s, nil
}

func newSession(engine *story.Engine, opts Options) (*Session, error) {
	if engine == nil {
		return nil, fmt.Errorf("session: nil engine")
	}

	seed := opts.Seed
	if seed == 0 {
		var err error
		if seed, err = random.NewSeed(); err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
	}

	id := opts.ID
	if id == "" {
		n, err := random.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		id = fmt.Sprintf("%016x", uint64(n))
	}

	player := opts.Player
	if player == "" {
		player = "local"
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Session{
		id:       id,
		player:   player,
		seed:     seed,
		engine:   engine,
		src:      random.NewSeeded(seed),
		recorder: opts.Recorder,
		logger:   logger.With("session", id, "player", player),
		now:      time.Now,
		started:  time.Now(),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Player returns the player name.
func (s *Session) Player() string { return s.player }

// Seed returns the seed driving this session's rolls.
func (s *Session) Seed() int64 { return s.seed }

// Moves returns the number of choices made in the current run.
func (s *Session) Moves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moves
}

// State returns a copy of the current state.
func (s *Session) State() story.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Last returns the outcome of the most recent choice.
func (s *Session) Last() story.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// View renders the current state.
func (s *Session) View() story.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Render(s.state)
}

// Choose applies choice at scene, which must be the scene the caller last
// rendered. Errors from the engine are returned unchanged.
func (s *Session) Choose(scene story.Scene, choice story.Choice) (story.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, out, err := s.engine.Apply(s.state, scene, choice, s.src)
	if err != nil {
		s.logger.Debug("choice rejected", "scene", scene, "choice", choice, "error", err)
		return out, err
	}

	if choice == story.ChoiceRestart {
		s.resetLocked(next)
		s.last = out
		s.logger.Info("run restarted")
		return out, nil
	}

	s.state = next
	s.last = out
	s.moves++
	s.logger.Debug("choice applied", "from", out.From, "to", out.To, "choice", choice, "fear", next.Fear)

	if next.Terminal() && !s.recorded {
		s.recorded = true
		s.report()
	}
	return out, nil
}

// Restart abandons the current run and starts over at the intro.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked(s.engine.Restart())
	s.last = story.Outcome{}
}

func (s *Session) resetLocked(st story.State) {
	s.state = st
	s.moves = 0
	s.started = s.now()
	s.recorded = false
}

// Snapshot captures everything needed to Resume this session later.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Player: s.player,
		Seed:   s.seed,
		Moves:  s.moves,
		Draws:  s.src.Draws(),
		State:  s.state.Clone(),
	}
}

// Result builds the run summary for the current state.
func (s *Session) Result() RunResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultLocked()
}

func (s *Session) resultLocked() RunResult {
	return RunResult{
		SessionID: s.id,
		Player:    s.player,
		Seed:      s.seed,
		Ending:    s.state.Scene,
		Fear:      s.state.Fear,
		Moves:     s.moves,
		HasTorch:  s.state.HasTorch,
		FoundNote: s.state.FoundNote,
		Alive:     s.state.Alive,
		Log:       append([]string(nil), s.state.Log...),
		Duration:  s.now().Sub(s.started),
	}
}

func (s *Session) report() {
	result := s.resultLocked()
	s.logger.Info("run finished", "ending", result.Ending, "fear", result.Fear, "moves", result.Moves)

	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordRun(result); err != nil {
		s.logger.Warn("could not record run", "error", err)
	}
}
