package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/embercore/engine"
	"github.com/nathoo/embercore/engine/save"
	"github.com/nathoo/embercore/parser"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the Embercore TUI.
type Model struct {
	engine *engine.Engine

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	width    int
	height   int
	ready    bool
	quitting bool
	lastCmd  string
	saveDir  string
}

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	home, _ := os.UserHomeDir()
	return Model{
		engine:  eng,
		input:   ti,
		history: NewHistory(100),
		saveDir: filepath.Join(home, ".embercore", "saves"),
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine) error {
	m := New(eng)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces intro text and first look.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		var lines []string

		lines = append(lines, m.engine.Game.Title+" v"+m.engine.Game.Version+" by "+m.engine.Game.Author)
		lines = append(lines, "")

		if m.engine.Game.Intro != "" {
			lines = append(lines, m.engine.Game.Intro)
			lines = append(lines, "")
		}

		lines = append(lines, m.execute(parser.Command{Verb: "look"})...)

		return gameOutputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Handle "again" / "g".
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(gameOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Game command.
	output := m.execute(parser.Parse(input))
	m = m.appendOutput(gameOutputMsg{input: input, lines: output})
	return m, nil
}

// execute routes a parsed command to the matching engine operation and
// returns the output lines. Engine errors are game messages, not failures.
func (m *Model) execute(cmd parser.Command) []string {
	var out string
	var err error

	switch cmd.Verb {
	case "look":
		// Bare "look" describes the room; "look <item>" inspects it.
		if cmd.Arg == "" {
			out, err = m.engine.Look()
		} else {
			out, err = m.engine.Examine(cmd.Arg)
		}
	case "go":
		out, err = m.engine.Move(cmd.Arg)
	case "take":
		out, err = m.engine.Take(cmd.Arg)
	case "drop":
		out, err = m.engine.Drop(cmd.Arg)
	case "inventory":
		out, err = m.engine.Inventory()
	case "status":
		out, err = m.engine.Status()
	case "equipment":
		out, err = m.engine.EquipmentList()
	case "equip":
		out, err = m.engine.Equip(cmd.Arg)
	case "unequip":
		out, err = m.engine.Unequip(cmd.Arg)
	case "attack":
		if m.engine.State.Combat == nil {
			out, err = m.engine.StartCombat(cmd.Arg)
		} else {
			out, err = m.engine.Attack(cmd.Arg)
		}
	case "flee":
		out, err = m.engine.Flee()
	case "use":
		out, err = m.engine.UseItem(cmd.Arg)
	case "craft":
		out, err = m.engine.CraftItem(cmd.Arg)
	case "recipes":
		out, err = m.engine.KnownRecipes()
	case "recipe":
		out, err = m.engine.RecipeInfo(cmd.Arg)
	case "learn":
		out, err = m.engine.LearnRecipe(cmd.Arg)
	case "quests":
		out, err = m.engine.QuestLog()
	case "accept":
		out, err = m.engine.AcceptQuest(cmd.Arg)
	case "progress":
		out, err = m.engine.CheckQuestProgress()
	case "turnin":
		out, err = m.engine.TurnInQuest(cmd.Arg)
	case "talk":
		out, err = m.engine.Talk(cmd.Arg)
	case "shop":
		out, err = m.engine.ShopList(cmd.Arg)
	case "buy":
		out, err = m.engine.Buy(cmd.Arg)
	case "sell":
		out, err = m.engine.Sell(cmd.Arg)
	case "help":
		return m.cmdHelp()
	case "":
		return nil
	default:
		return []string{fmt.Sprintf("I don't understand %q. Type help for commands.", cmd.Verb)}
	}

	if err != nil {
		return []string{capitalize(stripSentinel(err.Error()))}
	}
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindYouSee:
		return styledYouSee(line)
	case kindExits:
		return styleExits.Render(line)
	case kindDialogue:
		return styleDialogue.Render(line)
	case kindCombat:
		return styleCombat.Render(line)
	case kindReward:
		return styleReward.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	default:
		return styleRoomDesc.Render(line)
	}
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Callers pass single lines; embedded whitespace collapses.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/save":
		return m.cmdSave(arg), false

	case "/load":
		return m.cmdLoad(arg), false

	case "/help":
		return m.cmdHelp(), false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdSave(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Save(m.engine.State, m.engine.Game)
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	if err := os.MkdirAll(m.saveDir, 0o755); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	path := filepath.Join(m.saveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	return []string{fmt.Sprintf("Game saved to %s.", name)}
}

func (m *Model) cmdLoad(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(m.saveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	sd, err := save.Load(data)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	save.Apply(m.engine.State, sd)
	m.engine.RestoreRNG(sd.State.RNGSeed, sd.State.RNGPosition)

	output := []string{fmt.Sprintf("Game loaded from %s (turn %d).", name, sd.State.TurnCount)}
	output = append(output, m.execute(parser.Command{Verb: "look"})...)
	return output
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /save [name]  — Save game (default: quicksave)",
		"  /load [name]  — Load game (default: quicksave)",
		"  /quit         — Exit game",
		"  /help         — Show this help",
		"",
		"World:",
		"  look (l)            — Describe the room, or examine an item",
		"  go/walk <dir>       — Move (or just type n/s/e/w/u/d)",
		"  take/get <item>     — Pick something up",
		"  drop <item>         — Put something down",
		"  talk/speak <npc>    — Talk to someone",
		"  inventory (i)       — Check what you're carrying",
		"  status (stats)      — Your vitals and attributes",
		"",
		"Combat:",
		"  attack/fight <foe>  — Start or continue a fight",
		"  flee                — Try to escape",
		"  use <item>          — Quick-use a consumable in combat",
		"",
		"Equipment:",
		"  equip/wield <item>  — Equip a weapon or armor",
		"  unequip <slot>      — Return an item to your pack",
		"  equipment           — Show equipped items",
		"",
		"Crafting:",
		"  craft/make <recipe> — Craft an item",
		"  recipes             — List known recipes",
		"  recipe <name>       — Show a recipe's materials",
		"  learn <recipe>      — Learn a recipe",
		"",
		"Trade:",
		"  shop                — Browse a merchant's wares",
		"  buy <item>          — Buy from a merchant",
		"  sell <item>         — Sell to a merchant",
		"",
		"Quests:",
		"  quests (journal)    — Show your quest log",
		"  accept <quest>      — Accept a quest from its giver",
		"  progress            — Check active quest progress",
		"  turn in <quest>     — Report a completed quest",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

// stripSentinel removes the wrapped sentinel prefix ("not found: ...") so
// player-facing messages read naturally.
func stripSentinel(msg string) string {
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
