package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/carrot-jump/internal/config"
	"github.com/vovakirdan/carrot-jump/internal/core"
)

// MenuItem is one launcher entry.
type MenuItem struct {
	Title      string
	Difficulty config.DifficultyPreset // Empty for non-play entries
	Scoreboard bool
	Quit       bool
}

// DefaultMenuItems returns the launcher entries.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{Title: "Play", Difficulty: config.DifficultyNormal},
		{Title: "Play (easy)", Difficulty: config.DifficultyEasy},
		{Title: "Play (hard)", Difficulty: config.DifficultyHard},
		{Title: "High Scores", Scoreboard: true},
		{Title: "Quit", Quit: true},
	}
}

// MenuModel is the Bubble Tea model for the launcher.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	highScore int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig, highScore int) MenuModel {
	return MenuModel{
		items:     DefaultMenuItems(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		highScore: highScore,
		config:    cfg,
		keyMapper: NewKeyMapper(DefaultKeyMap()),
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

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
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
		selected := m.items[m.cursor]
		if selected.Quit {
			m.quitting = true
			return m, tea.Quit
		}
		m.selected = &selected
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("C A R R O T   J U M P", m.width)))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(centerText(fmt.Sprintf("High score: %d", m.highScore), m.width)))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			b.WriteString(accentStyle.Render(centerText("> "+item.Title, m.width)))
		} else {
			b.WriteString(centerText(line, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(centerText("Up/Down: Navigate  |  Enter: Select  |  Q: Quit", m.width)))
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

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result converts the final menu state into a MenuResult.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.config}
	switch {
	case m.quitting || m.selected == nil:
		result.Quit = true
	case m.selected.Scoreboard:
		result.WantsScoreboard = true
	default:
		result.Difficulty = m.selected.Difficulty
	}
	return result
}

// RunMenu runs the launcher and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, highScore int) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg, highScore),
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
	return m.Result(), nil
}
