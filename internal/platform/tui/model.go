package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/whispers/internal/core"
	"github.com/vovakirdan/whispers/internal/locale"
	"github.com/vovakirdan/whispers/internal/session"
	"github.com/vovakirdan/whispers/internal/story"
)

// ProgressStore persists unfinished sessions. *storage.Store implements it.
type ProgressStore interface {
	SaveProgress(snap session.Snapshot) error
	ClearProgress(player string) error
}

// Model is the Bubble Tea model for playing one story session.
type Model struct {
	sess      *session.Session
	progress  ProgressStore // optional
	cat       *locale.Catalog
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model
	meter     progress.Model

	cursor      int
	frame       int
	showJournal bool
	narrative   []string // translated lines of the last outcome
	status      string

	embedded   bool // running inside SessionModel; leaving returns to the menu
	saved      bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a story model for sess. progress may be nil.
func NewModel(sess *session.Session, progress ProgressStore, cat *locale.Catalog, cfg core.RuntimeConfig) Model {
	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	return Model{
		sess:      sess,
		progress:  progress,
		cat:       cat,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      h,
		meter:     newFearMeter(cfg.ScreenW),
	}
}

func newFearMeter(screenW int) progress.Model {
	meter := progress.New(
		progress.WithGradient("#3A0A0A", "#FF2A2A"),
		progress.WithoutPercentage(),
	)
	meter.Width = meterWidth(screenW)
	return meter
}

func meterWidth(screenW int) int {
	w := screenW - 30
	if w > 40 {
		w = 40
	}
	if w < 10 {
		w = 10
	}
	return w
}

// Init starts the title animation.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.meter.Width = meterWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.frame++
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if idx, ok := m.keyMapper.MapPick(msg); ok {
		return m.choose(idx)
	}

	options := m.sess.View().Options

	switch m.keyMapper.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionSave:
		return m.save()

	case core.ActionBack:
		return m.leave()

	case core.ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case core.ActionDown:
		if m.cursor < len(options)-1 {
			m.cursor++
		}

	case core.ActionConfirm:
		return m.choose(m.cursor)

	case core.ActionJournal:
		m.showJournal = !m.showJournal

	case core.ActionRestart:
		if m.sess.State().Terminal() {
			return m.choose(0)
		}
	}

	return m, nil
}

// choose applies the option at index i of the current view.
func (m Model) choose(i int) (Model, tea.Cmd) {
	view := m.sess.View()
	if i < 0 || i >= len(view.Options) {
		return m, nil
	}

	out, err := m.sess.Choose(view.Scene, view.Options[i].Choice)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	m.narrative = m.cat.TAll(out.Lines)
	m.cursor = 0
	m.status = ""

	// A finished run can no longer be resumed.
	if out.To.IsTerminal() && m.progress != nil {
		if err := m.progress.ClearProgress(m.sess.Player()); err != nil {
			m.status = fmt.Sprintf("could not clear saved progress: %v", err)
		}
	}
	return m, nil
}

// save stores the session and leaves the story screen.
func (m Model) save() (Model, tea.Cmd) {
	if m.progress == nil {
		m.status = "Progress cannot be saved without a database."
		return m, nil
	}
	if m.sess.State().Terminal() {
		m.status = "This run is over. Nothing to save."
		return m, nil
	}
	if err := m.progress.SaveProgress(m.sess.Snapshot()); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	m.saved = true
	return m.leave()
}

func (m Model) leave() (Model, tea.Cmd) {
	if m.embedded {
		m.backToMenu = true
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	v := m.sess.View()
	width := m.config.ScreenW
	wrap := wrapWidth(width)

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(renderTitle(m.cat.T(story.Title), m.frame), width))
	b.WriteString("\n\n")

	meter := fmt.Sprintf("%s  %s  %d/%d",
		m.cat.T(story.LabelFear),
		m.meter.ViewAs(core.Percent(v.Fear, story.MaxFear)),
		v.Fear, story.MaxFear,
	)
	b.WriteString(centerText(meter, width))
	b.WriteString("\n")

	var card strings.Builder
	card.WriteString(sceneStyle.Render(m.cat.T(v.Title)))
	card.WriteString("\n\n")
	for _, line := range v.Lines {
		card.WriteString(textStyle.Width(wrap).Render(m.cat.T(line)))
		card.WriteString("\n")
	}
	if len(m.narrative) > 0 {
		card.WriteString("\n")
		for _, line := range m.narrative {
			card.WriteString(narrativeStyle.Width(wrap).Render(line))
			card.WriteString("\n")
		}
	}
	card.WriteString("\n")
	for i, opt := range v.Options {
		line := fmt.Sprintf(" %d. %s ", i+1, m.cat.T(opt.Label))
		if i == m.cursor {
			card.WriteString(selectedStyle.Render("> " + line))
		} else {
			card.WriteString(optionStyle.Render("  " + line))
		}
		card.WriteString("\n")
	}
	b.WriteString(cardStyle.Render(card.String()))
	b.WriteString("\n")

	if m.showJournal {
		b.WriteString(journalStyle.Width(wrap).Render(m.journal()))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keyMapper.Keys())))
	return b.String()
}

// journal renders the numbered journey log.
func (m Model) journal() string {
	st := m.sess.State()

	var b strings.Builder
	b.WriteString(m.cat.T(story.LabelJournal))
	b.WriteString("\n")
	if len(st.Log) == 0 {
		b.WriteString(m.cat.T(story.LabelJournalEmpty))
		return b.String()
	}
	for i, entry := range st.Log {
		fmt.Fprintf(&b, "%d. %s\n", i+1, m.cat.T(entry))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Saved returns true if the session was saved before leaving.
func (m Model) Saved() bool {
	return m.saved
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Session returns the session being played.
func (m Model) Session() *session.Session {
	return m.sess
}

// Run starts the Bubble Tea program for sess and reports whether the
// player saved before leaving.
func Run(sess *session.Session, progress ProgressStore, cat *locale.Catalog, cfg core.RuntimeConfig) (saved bool, err error) {
	model := NewModel(sess, progress, cat, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.Saved(), nil
}
