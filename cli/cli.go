// Package cli provides terminal I/O, command dispatch, and meta-command
// handling for the Embercore game engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/embercore/engine"
	"github.com/nathoo/embercore/engine/save"
	"github.com/nathoo/embercore/parser"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	home, _ := os.UserHomeDir()
	saveDir := filepath.Join(home, ".embercore", "saves")
	return &CLI{
		Engine:  eng,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: saveDir,
	}
}

// Run starts the game loop. It shows the intro, describes the starting room,
// then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if c.Engine.Game.Intro != "" {
		c.printLine(c.Engine.Game.Intro)
		c.printLine("")
	}

	c.dispatch(parser.Command{Verb: "look"})

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		c.dispatch(parser.Parse(input))
	}
}

// dispatch routes a parsed command to the matching engine operation and
// prints the outcome. Engine errors are game messages, not failures.
func (c *CLI) dispatch(cmd parser.Command) {
	var out string
	var err error

	switch cmd.Verb {
	case "look":
		// Bare "look" describes the room; "look <item>" inspects it.
		if cmd.Arg == "" {
			out, err = c.Engine.Look()
		} else {
			out, err = c.Engine.Examine(cmd.Arg)
		}
	case "go":
		out, err = c.Engine.Move(cmd.Arg)
	case "take":
		out, err = c.Engine.Take(cmd.Arg)
	case "drop":
		out, err = c.Engine.Drop(cmd.Arg)
	case "inventory":
		out, err = c.Engine.Inventory()
	case "status":
		out, err = c.Engine.Status()
	case "equipment":
		out, err = c.Engine.EquipmentList()
	case "equip":
		out, err = c.Engine.Equip(cmd.Arg)
	case "unequip":
		out, err = c.Engine.Unequip(cmd.Arg)
	case "attack":
		// Out of combat, "attack goblin" opens the encounter; in combat
		// it swings at the locked target.
		if c.Engine.State.Combat == nil {
			out, err = c.Engine.StartCombat(cmd.Arg)
		} else {
			out, err = c.Engine.Attack(cmd.Arg)
		}
	case "flee":
		out, err = c.Engine.Flee()
	case "use":
		out, err = c.Engine.UseItem(cmd.Arg)
	case "craft":
		out, err = c.Engine.CraftItem(cmd.Arg)
	case "recipes":
		out, err = c.Engine.KnownRecipes()
	case "recipe":
		out, err = c.Engine.RecipeInfo(cmd.Arg)
	case "learn":
		out, err = c.Engine.LearnRecipe(cmd.Arg)
	case "quests":
		out, err = c.Engine.QuestLog()
	case "accept":
		out, err = c.Engine.AcceptQuest(cmd.Arg)
	case "progress":
		out, err = c.Engine.CheckQuestProgress()
	case "turnin":
		out, err = c.Engine.TurnInQuest(cmd.Arg)
	case "talk":
		out, err = c.Engine.Talk(cmd.Arg)
	case "shop":
		out, err = c.Engine.ShopList(cmd.Arg)
	case "buy":
		out, err = c.Engine.Buy(cmd.Arg)
	case "sell":
		out, err = c.Engine.Sell(cmd.Arg)
	case "help":
		c.cmdHelp()
		return
	case "":
		return
	default:
		c.printLine(fmt.Sprintf("I don't understand %q. Type help for commands.", cmd.Verb))
		return
	}

	if err != nil {
		c.printLine(capitalize(stripSentinel(err.Error())))
		return
	}
	if out != "" {
		c.printLine(out)
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Save(c.Engine.State, c.Engine.Game)
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	path := filepath.Join(c.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Game saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(c.SaveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	sd, err := save.Load(data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	save.Apply(c.Engine.State, sd)
	c.Engine.RestoreRNG(sd.State.RNGSeed, sd.State.RNGPosition)
	c.printSystem(fmt.Sprintf("Game loaded from %s (turn %d).", name, sd.State.TurnCount))

	c.dispatch(parser.Command{Verb: "look"})
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]  — Save game (default: quicksave)",
		"  /load [name]  — Load game (default: quicksave)",
		"  /quit         — Exit game",
		"  /help         — Show this help",
		"  /state        — Debug: dump current state",
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
		"  flee               — Try to escape",
		"  use <item>         — Quick-use a consumable in combat",
		"",
		"Equipment:",
		"  equip/wield <item> — Equip a weapon or armor",
		"  unequip <slot>     — Return an item to your pack",
		"  equipment          — Show equipped items",
		"",
		"Crafting:",
		"  craft/make <recipe> — Craft an item",
		"  recipes            — List known recipes",
		"  recipe <name>      — Show a recipe's materials",
		"  learn <recipe>     — Learn a recipe",
		"",
		"Trade:",
		"  shop               — Browse a merchant's wares",
		"  buy <item>         — Buy from a merchant",
		"  sell <item>        — Sell to a merchant",
		"",
		"Quests:",
		"  quests (journal)   — Show your quest log",
		"  accept <quest>     — Accept a quest from its giver",
		"  progress           — Check active quest progress",
		"  turn in <quest>    — Report a completed quest",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.State
	c.printSystem(fmt.Sprintf("Turn: %d", s.TurnCount))
	c.printSystem(fmt.Sprintf("Location: %s", s.Player.Location))
	c.printSystem(fmt.Sprintf("Health: %d/%d  Level: %d  XP: %d/%d  Gold: %d",
		s.Player.Health, s.Player.MaxHealth, s.Player.Level,
		s.Player.Experience, s.Player.ExperienceToNext, s.Player.Gold))
	c.printSystem(fmt.Sprintf("Inventory: %v", s.Player.Inventory))
	if s.Combat != nil {
		c.printSystem(fmt.Sprintf("Combat: %s (round %d)", s.Combat.EnemyID, s.Combat.Round))
	}
	if len(s.Defeated) > 0 {
		c.printSystem(fmt.Sprintf("Defeated: %v", s.Defeated))
	}
	if len(s.Crafted) > 0 {
		c.printSystem(fmt.Sprintf("Crafted: %v", s.Crafted))
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

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
