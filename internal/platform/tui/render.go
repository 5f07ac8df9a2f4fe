package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	colorBlood  = lipgloss.Color("124")
	colorEmber  = lipgloss.Color("203")
	colorBone   = lipgloss.Color("252")
	colorAsh    = lipgloss.Color("241")
	colorShadow = lipgloss.Color("236")
	colorMoon   = lipgloss.Color("229")
)

var (
	titleBright = lipgloss.NewStyle().Bold(true).Foreground(colorBone)
	titleDim    = lipgloss.NewStyle().Foreground(colorAsh)
	titleRed    = lipgloss.NewStyle().Bold(true).Foreground(colorBlood)

	sceneStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorMoon).MarginTop(1)
	textStyle      = lipgloss.NewStyle().Foreground(colorBone)
	narrativeStyle = lipgloss.NewStyle().Italic(true).Foreground(colorEmber)

	optionStyle   = lipgloss.NewStyle().Foreground(colorBone)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorMoon).Background(colorShadow)

	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorShadow).Padding(1, 2)
	journalStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorAsh).Padding(0, 1)

	statusStyle = lipgloss.NewStyle().Foreground(colorEmber)
	helpStyle   = lipgloss.NewStyle().Foreground(colorAsh)
)

// flickerPattern drives the title animation; each entry lasts one tick.
var flickerPattern = []int{2, 2, 2, 1, 2, 2, 0, 2, 2, 2, 2, 1, 0, 1, 2, 2}

// renderTitle draws the title for the given animation frame.
func renderTitle(title string, frame int) string {
	switch flickerPattern[frame%len(flickerPattern)] {
	case 0:
		return titleRed.Render(title)
	case 1:
		return titleDim.Render(title)
	default:
		return titleBright.Render(title)
	}
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// wrapWidth returns the width available for prose inside the card.
func wrapWidth(screenW int) int {
	w := screenW - 8
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}
