package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuChoice is what the player picked on the start screen.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceWallet
	ChoiceQuit
)

// MenuItem is one entry of the start screen.
type MenuItem struct {
	Label  string
	Choice MenuChoice
}

var menuItems = []MenuItem{
	{"Play", ChoicePlay},
	{"Scores", ChoiceScores},
	{"Wallet", ChoiceWallet},
	{"Quit", ChoiceQuit},
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the start screen.
type MenuModel struct {
	title     string
	player    string
	cursor    int
	width     int
	height    int
	status    string
	keyMapper *KeyMapper
	choice    MenuChoice
}

// NewMenuModel creates the start screen for a game title and player.
func NewMenuModel(title, player string, width, height int) MenuModel {
	return MenuModel{
		title:     title,
		player:    player,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (MenuModel, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.choice = ChoiceQuit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.choice = menuItems[m.cursor].Choice
		m.status = ""
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	top := max((m.height-len(menuItems)-10)/2, 1)
	b.WriteString(strings.Repeat("\n", top))
	b.WriteString(centerText(titleStyle.Render(strings.ToUpper(spaced(m.title))), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("Slice fruit, dodge bombs"), m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		line := "  " + item.Label + "  "
		if i == m.cursor {
			line = cursorStyle.Render("> " + item.Label + " <")
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(centerText(statusStyle.Render(m.status), m.width))
		b.WriteString("\n")
	}
	if m.player != "" {
		b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("Player: %s", shortID(m.player))), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns the pending menu selection.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Consume clears the pending selection.
func (m MenuModel) Consume() MenuModel {
	m.choice = ChoiceNone
	return m
}

// WithStatus shows a message under the menu.
func (m MenuModel) WithStatus(status string) MenuModel {
	m.status = status
	return m
}

// Status returns the message shown under the menu.
func (m MenuModel) Status() string {
	return m.status
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// spaced puts a space between the letters of a title.
func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}
