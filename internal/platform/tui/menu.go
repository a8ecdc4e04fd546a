package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// MenuItem represents a selectable game variant in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Best   int // Best stored score, 0 if none
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	preset         int // Index into config.Presets
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a new menu model. The preset starts at initial.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, initial config.DifficultyPreset) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			if best, err := store.HighScore(g.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}

	preset := 0
	for i, p := range config.Presets {
		if p == initial {
			preset = i
		}
	}

	return MenuModel{
		items:     items,
		preset:    preset,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
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
	}
	return m, nil
}

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

	case MenuActionLeft:
		m.preset = (m.preset + len(config.Presets) - 1) % len(config.Presets)

	case MenuActionRight:
		m.preset = (m.preset + 1) % len(config.Presets)

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("●  M A T C H - 3  ●"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := item.Title
		if item.Best > 0 {
			line = fmt.Sprintf("%-18s best %d", item.Title, item.Best)
		}
		if i == m.cursor {
			line = menuActiveStyle.Render("> " + line + " ")
		} else {
			line = "  " + line + " "
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Difficulty: ◀ %s ▶", m.Preset()), m.width))
	b.WriteString("\n\n")

	controls := "↑/↓: Game  |  ←/→: Difficulty  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Preset returns the currently chosen difficulty preset.
func (m MenuModel) Preset() config.DifficultyPreset {
	return config.Presets[m.preset]
}

// centerText centers text within the given width, ignoring ANSI escapes.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Preset          config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result converts the final menu state into a MenuResult.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.config, Preset: m.Preset()}
	switch {
	case m.openScoreboard:
		result.WantsScoreboard = true
	case m.selected != nil:
		result.GameID = m.selected.GameID
	default:
		result.Quit = true
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg, preset), tea.WithAltScreen())

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
