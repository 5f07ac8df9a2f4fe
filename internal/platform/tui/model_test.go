package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/whispers/internal/config"
	"github.com/vovakirdan/whispers/internal/core"
	"github.com/vovakirdan/whispers/internal/locale"
	"github.com/vovakirdan/whispers/internal/session"
	"github.com/vovakirdan/whispers/internal/story"
)

type fakeProgress struct {
	saved   []session.Snapshot
	cleared []string
	err     error
}

func (f *fakeProgress) SaveProgress(snap session.Snapshot) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, snap)
	return nil
}

func (f *fakeProgress) ClearProgress(player string) error {
	f.cleared = append(f.cleared, player)
	return nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	sess, err := session.New(story.NewEngine(config.DefaultStoryConfig()), session.Options{Player: "amy", Seed: 42})
	if err != nil {
		t.Fatalf("session.New() failed: %v", err)
	}
	return sess
}

// sessionAt resumes a session parked in scene with the given fear.
func sessionAt(t *testing.T, scene story.Scene, fear int) *session.Session {
	t.Helper()
	st := story.New()
	st.Scene = scene
	st.Fear = fear
	st.HasTorch = true
	st.FoundNote = true
	sess, err := session.Resume(story.NewEngine(config.DefaultStoryConfig()),
		session.Snapshot{Player: "amy", Seed: 7, Moves: 6, State: st}, session.Options{})
	if err != nil {
		t.Fatalf("session.Resume() failed: %v", err)
	}
	return sess
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return model, cmd
}

func TestModelPickByNumber(t *testing.T) {
	m := NewModel(newTestSession(t), nil, locale.MustNew("en"), core.DefaultConfig())

	m, _ = update(t, m, runes("1"))
	if got := m.Session().State().Scene; got != story.SceneFoyer {
		t.Fatalf("scene = %s, expected foyer", got)
	}

	m, _ = update(t, m, runes("1"))
	if !m.Session().State().HasTorch {
		t.Error("expected torch after picking option 1 in the foyer")
	}
	if len(m.narrative) == 0 || m.narrative[0] != story.SayTorchLit {
		t.Errorf("narrative = %v", m.narrative)
	}
}

func TestModelCursorAndConfirm(t *testing.T) {
	m := NewModel(sessionAt(t, story.SceneFoyer, 20), nil, locale.MustNew("en"), core.DefaultConfig())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor moved above the first option: %d", m.cursor)
	}
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != 2 {
		t.Errorf("cursor = %d, expected it to stop at the last option", m.cursor)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	st := m.Session().State()
	if st.Scene != story.SceneUpstairs && st.Scene != story.SceneSecret {
		t.Errorf("scene = %s, expected upstairs (or the hidden door)", st.Scene)
	}
	if m.cursor != 0 {
		t.Error("cursor should reset after a choice")
	}
}

func TestModelPickOutOfRangeIgnored(t *testing.T) {
	m := NewModel(newTestSession(t), nil, locale.MustNew("en"), core.DefaultConfig())

	m, _ = update(t, m, runes("9"))
	if m.Session().Moves() != 0 {
		t.Error("picking a missing option should not move")
	}
	if m.status != "" {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestModelEndingClearsProgress(t *testing.T) {
	progress := &fakeProgress{}
	m := NewModel(sessionAt(t, story.SceneSecret, 10), progress, locale.MustNew("en"), core.DefaultConfig())

	m, _ = update(t, m, runes("1"))
	if got := m.Session().State().Scene; got != story.SceneEndGood {
		t.Fatalf("scene = %s, expected end_good", got)
	}
	if len(progress.cleared) != 1 || progress.cleared[0] != "amy" {
		t.Errorf("cleared = %v, expected [amy]", progress.cleared)
	}

	// Restart is only accepted at an ending.
	m, _ = update(t, m, runes("r"))
	if got := m.Session().State().Scene; got != story.SceneIntro {
		t.Errorf("scene after restart = %s, expected intro", got)
	}
	m, _ = update(t, m, runes("r"))
	if got := m.Session().State().Scene; got != story.SceneIntro {
		t.Errorf("restart outside an ending changed scene to %s", got)
	}
}

func TestModelSave(t *testing.T) {
	progress := &fakeProgress{}
	m := NewModel(sessionAt(t, story.SceneUpstairs, 30), progress, locale.MustNew("en"), core.DefaultConfig())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !m.Saved() || !m.IsQuitting() {
		t.Error("save should mark the model saved and quit")
	}
	if cmd == nil {
		t.Error("expected tea.Quit after saving standalone")
	}
	if len(progress.saved) != 1 || progress.saved[0].State.Scene != story.SceneUpstairs {
		t.Errorf("saved = %+v", progress.saved)
	}
}

func TestModelSaveErrors(t *testing.T) {
	t.Run("no store", func(t *testing.T) {
		m := NewModel(newTestSession(t), nil, locale.MustNew("en"), core.DefaultConfig())
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
		if m.Saved() || m.status == "" {
			t.Errorf("saved=%v status=%q", m.Saved(), m.status)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		progress := &fakeProgress{err: errors.New("disk full")}
		m := NewModel(newTestSession(t), progress, locale.MustNew("en"), core.DefaultConfig())
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
		if m.Saved() || !strings.Contains(m.status, "disk full") {
			t.Errorf("saved=%v status=%q", m.Saved(), m.status)
		}
	})

	t.Run("finished run", func(t *testing.T) {
		progress := &fakeProgress{}
		m := NewModel(sessionAt(t, story.SceneEndBad, 90), progress, locale.MustNew("en"), core.DefaultConfig())
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
		if m.Saved() || len(progress.saved) != 0 {
			t.Error("a finished run should not be saved")
		}
	})
}

func TestModelBackEmbedded(t *testing.T) {
	m := NewModel(newTestSession(t), nil, locale.MustNew("en"), core.DefaultConfig())
	m.embedded = true

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("backToMenu=%v quitting=%v", m.BackToMenu(), m.IsQuitting())
	}
	if cmd != nil {
		t.Error("embedded model should not quit the program")
	}
	if m.View() != "" {
		t.Error("view should be empty after leaving")
	}
}

func TestModelJournalToggle(t *testing.T) {
	m := NewModel(newTestSession(t), nil, locale.MustNew("en"), core.DefaultConfig())

	if !strings.Contains(m.journal(), story.LabelJournalEmpty) {
		t.Errorf("empty journal = %q", m.journal())
	}

	m, _ = update(t, m, runes("1"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.showJournal {
		t.Fatal("tab should open the journal")
	}
	if !strings.Contains(m.journal(), "1. "+story.LogEntered) {
		t.Errorf("journal = %q", m.journal())
	}
	if !strings.Contains(m.View(), story.LabelJournal) {
		t.Error("view should include the journal")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.showJournal {
		t.Error("tab should close the journal")
	}
}

func TestModelViewTranslates(t *testing.T) {
	cat := locale.MustNew("ko")
	m := NewModel(newTestSession(t), nil, cat, core.DefaultConfig())

	view := m.View()
	for _, want := range []string{cat.T(story.TitleIntro), cat.T(story.LabelEnter), cat.T(story.LabelFear)} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelResize(t *testing.T) {
	m := NewModel(newTestSession(t), nil, locale.MustNew("en"), core.DefaultConfig())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 50})
	if m.config.ScreenW != 200 || m.config.ScreenH != 50 {
		t.Errorf("config = %+v", m.config)
	}
	if m.meter.Width != 40 {
		t.Errorf("meter width = %d, expected the 40 cap", m.meter.Width)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	if m.meter.Width != 10 {
		t.Errorf("meter width = %d, expected the 10 floor", m.meter.Width)
	}
}

func TestModelTickAdvancesFrame(t *testing.T) {
	m := NewModel(newTestSession(t), nil, locale.MustNew("en"), core.DefaultConfig())

	m, cmd := update(t, m, TickMsg{})
	if m.frame != 1 {
		t.Errorf("frame = %d, expected 1", m.frame)
	}
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
}
