package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/whispers/internal/core"
	"github.com/vovakirdan/whispers/internal/locale"
	"github.com/vovakirdan/whispers/internal/story"
)

// MenuChoice is an entry of the main menu.
type MenuChoice int

const (
	MenuNone MenuChoice = iota
	MenuNewGame
	MenuContinue
	MenuHistory
	MenuQuit
)

// String returns the menu label.
func (c MenuChoice) String() string {
	switch c {
	case MenuNewGame:
		return "New game"
	case MenuContinue:
		return "Continue"
	case MenuHistory:
		return "History"
	case MenuQuit:
		return "Quit"
	default:
		return ""
	}
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuChoice
	cursor    int
	frame     int
	config    core.RuntimeConfig
	cat       *locale.Catalog
	keyMapper *KeyMapper
	quitting  bool
	selected  MenuChoice
	embedded  bool
}

// NewMenuModel creates a new menu model. Continue is offered only when a
// saved session exists.
func NewMenuModel(cat *locale.Catalog, cfg core.RuntimeConfig, hasSave bool) MenuModel {
	items := []MenuChoice{MenuNewGame}
	if hasSave {
		items = []MenuChoice{MenuContinue, MenuNewGame}
	}
	items = append(items, MenuHistory, MenuQuit)

	return MenuModel{
		items:     items,
		config:    cfg,
		cat:       cat,
		keyMapper: NewKeyMapper(),
	}
}

// Init starts the title animation.
func (m MenuModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil

	case TickMsg:
		m.frame++
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.selected = m.items[m.cursor]
		if m.selected == MenuQuit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.exitCmd()

	case MenuActionHistory:
		m.selected = MenuHistory
		return m, m.exitCmd()
	}

	return m, nil
}

func (m MenuModel) exitCmd() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	width := m.config.ScreenW
	var b strings.Builder

	b.WriteString("\n\n")
	b.WriteString(centerText(renderTitle(m.cat.T(story.Title), m.frame), width))
	b.WriteString("\n\n\n")

	for i, item := range m.items {
		line := "  " + item.String() + "  "
		if i == m.cursor {
			line = selectedStyle.Render("> " + item.String() + "  ")
		} else {
			line = optionStyle.Render(line)
		}
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: History  |  Q: Quit"
	b.WriteString(helpStyle.Render(centerText(controls, width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen entry, or MenuNone.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Config core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cat *locale.Catalog, cfg core.RuntimeConfig, hasSave bool) (MenuResult, error) {
	model := NewMenuModel(cat, cfg, hasSave)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: MenuQuit, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.IsQuitting() || m.Selected() == MenuNone {
		return MenuResult{Choice: MenuQuit, Config: cfg}, nil
	}

	return MenuResult{Choice: m.Selected(), Config: m.Config()}, nil
}
