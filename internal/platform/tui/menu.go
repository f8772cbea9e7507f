package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aestallon/minesweeper/internal/config"
	"github.com/aestallon/minesweeper/internal/core"
)

// MenuItem represents a selectable difficulty in the menu.
type MenuItem struct {
	Difficulty string
	Preset     config.Preset
}

// Title returns the capitalized difficulty name.
func (i MenuItem) Title() string {
	if i.Difficulty == "" {
		return ""
	}
	return strings.ToUpper(i.Difficulty[:1]) + i.Difficulty[1:]
}

// MenuModel is the Bubble Tea model for the difficulty picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	player         string
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a difficulty
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a menu over the presets in appCfg, with the cursor on
// the configured default difficulty.
func NewMenuModel(appCfg config.Config, cfg core.RuntimeConfig) MenuModel {
	names := appCfg.PresetNames()
	items := make([]MenuItem, 0, len(names))
	for _, name := range names {
		items = append(items, MenuItem{Difficulty: name, Preset: appCfg.Presets[name]})
	}

	cursor := slices.IndexFunc(items, func(it MenuItem) bool {
		return it.Difficulty == appCfg.Difficulty
	})

	return MenuModel{
		items:     items,
		cursor:    max(cursor, 0),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		player:    cfg.Player,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
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
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerStyled(menuTitleStyle, "M I N E S W E E P E R", m.width))
	b.WriteString("\n\n")

	subtitle := "Select a difficulty"
	if m.player != "" {
		subtitle = fmt.Sprintf("Playing as %s. Select a difficulty", m.player)
	}
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-8s %s", item.Title(), item.Preset)
		style := lipgloss.NewStyle()
		if i == m.cursor {
			line = fmt.Sprintf("> %-8s %s", item.Title(), item.Preset)
			style = menuSelectedStyle
		}
		b.WriteString(centerStyled(style, line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerStyled(menuDimStyle, controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// centerStyled centers text by its unstyled width, then applies style.
func centerStyled(style lipgloss.Style, text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return style.Render(text)
	}
	return strings.Repeat(" ", (width-w)/2) + style.Render(text)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Difficulty      string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(appCfg config.Config, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(appCfg, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting():
		result.Quit = true
	case m.Selected() != nil:
		result.Difficulty = m.Selected().Difficulty
	default:
		result.Quit = true
	}

	return result, nil
}
