// Package parser converts command strings into a verb and an argument.
// Intentionally dumb: no NLP, just aliases and article stripping.
package parser

import "strings"

// Command is the parsed representation of a player command.
type Command struct {
	Verb string
	Arg  string
}

var directionExpansions = map[string]string{
	"n": "north", "s": "south", "e": "east", "w": "west",
	"u": "up", "d": "down",
}

var directionNames = map[string]bool{
	"north": true, "south": true, "east": true, "west": true,
	"up": true, "down": true,
}

var verbAliases = map[string]string{
	// Look
	"l":       "look",
	"examine": "look",
	"x":       "look",

	// Movement
	"walk": "go",
	"run":  "go",
	"move": "go",

	// Take / Drop
	"get":  "take",
	"grab": "take",

	// Combat
	"fight":  "attack", // out of combat this opens the encounter
	"hit":    "attack",
	"strike": "attack",
	"kill":   "attack",
	"run!":   "flee",
	"escape": "flee",

	// Items
	"inv":   "inventory",
	"i":     "inventory",
	"wear":  "equip",
	"wield": "equip",
	"drink": "use",
	"quaff": "use",

	// Crafting
	"make":  "craft",
	"forge": "craft",

	// Trade
	"purchase": "buy",
	"browse":   "shop",

	// Quests
	"journal": "quests",
	"report":  "turnin",

	// NPCs
	"speak": "talk",
	"chat":  "talk",

	// Status
	"stats": "status",
	"hp":    "status",
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command string into a Command. The verb is
// normalized through aliases; the remaining words become the argument
// with articles stripped.
func Parse(input string) Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return Command{}
	}

	words := strings.Fields(strings.ToLower(input))

	// Direction shortcut: bare "n", "south", etc. → go <direction>.
	if len(words) == 1 {
		if dir, ok := directionExpansions[words[0]]; ok {
			return Command{Verb: "go", Arg: dir}
		}
		if directionNames[words[0]] {
			return Command{Verb: "go", Arg: words[0]}
		}
	}

	// Multi-word phrases before alias lookup.
	words = expandPhrases(words)

	verb := words[0]
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}

	rest := make([]string, 0, len(words)-1)
	for _, w := range words[1:] {
		if !articles[w] {
			rest = append(rest, w)
		}
	}

	return Command{Verb: verb, Arg: strings.Join(rest, " ")}
}

// expandPhrases handles "pick up", "talk to", "turn in", and similar.
func expandPhrases(words []string) []string {
	if len(words) < 2 {
		return words
	}
	switch words[0] {
	case "pick":
		if words[1] == "up" {
			return append([]string{"take"}, words[2:]...)
		}
	case "look":
		if words[1] == "at" {
			return append([]string{"look"}, words[2:]...)
		}
	case "talk", "speak":
		if words[1] == "to" || words[1] == "with" {
			return append([]string{"talk"}, words[2:]...)
		}
	case "turn":
		if words[1] == "in" {
			return append([]string{"turnin"}, words[2:]...)
		}
	case "check":
		if words[1] == "progress" || words[1] == "quests" {
			return append([]string{"progress"}, words[2:]...)
		}
	case "accept":
		if words[1] == "quest" {
			return append([]string{"accept"}, words[2:]...)
		}
	case "learn":
		if words[1] == "recipe" {
			return append([]string{"learn"}, words[2:]...)
		}
	}
	return words
}
