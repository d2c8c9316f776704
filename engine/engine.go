// Package engine implements the player progression and rules engine:
// equipment resolution, combat, crafting, and quest tracking over one
// shared state store. Every operation is synchronous and validate-then-
// commit: a returned error means the state is unchanged.
package engine

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/embercore/engine/state"
	"github.com/nathoo/embercore/types"
)

// Engine holds the game definitions and the single mutable state store.
// The state reference is set once at construction and never reassigned.
type Engine struct {
	Game  types.GameDef
	State *types.GameState
	RNG   *RNG

	log *logrus.Logger
}

// New creates an engine around an initial state built by the world loader.
// A nil logger disables logging.
func New(game types.GameDef, s *types.GameState, log *logrus.Logger) *Engine {
	state.Normalize(s)
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	if s.Player.Location == "" {
		s.Player.Location = game.Start
	}
	if room := state.CurrentRoom(s); room != nil {
		room.Visited = true
	}
	return &Engine{
		Game:  game,
		State: s,
		RNG:   NewRNG(s.RNGSeed),
		log:   log,
	}
}

// RestoreRNG re-creates the RNG from seed and advances to the saved position.
func (e *Engine) RestoreRNG(seed, position int64) {
	e.RNG = RestoreRNG(seed, position)
}

// syncRNG records the RNG position so a save taken now replays identically.
func (e *Engine) syncRNG() {
	e.State.RNGPosition = e.RNG.Position()
}

// itemName returns the display name for an item ID.
func (e *Engine) itemName(id string) string {
	if item, ok := e.State.Items[id]; ok {
		return item.Name
	}
	return id
}

// Look describes the current room: description, items, NPCs, enemies, exits.
func (e *Engine) Look() (string, error) {
	room := state.CurrentRoom(e.State)
	if room == nil {
		return "", fmt.Errorf("%w: you are nowhere recognizable", ErrNotFound)
	}

	var out []string
	out = append(out, room.Name)
	out = append(out, room.Description)

	if len(room.Items) > 0 {
		var names []string
		for _, id := range room.Items {
			names = append(names, e.itemName(id))
		}
		out = append(out, "You see: "+strings.Join(names, ", ")+".")
	}
	for _, id := range room.NPCs {
		if npc, ok := e.State.NPCs[id]; ok {
			out = append(out, npc.Name+" is here.")
		}
	}
	for _, id := range room.Enemies {
		if enemy, ok := e.State.Enemies[id]; ok && enemy.Alive {
			out = append(out, "A hostile "+enemy.Name+" is here!")
		}
	}
	if len(room.Exits) > 0 {
		dirs := make([]string, 0, len(room.Exits))
		for dir := range room.Exits {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs) // deterministic order
		out = append(out, "Exits: "+strings.Join(dirs, ", ")+".")
	}
	return strings.Join(out, "\n"), nil
}

// Move walks the player through an exit. Movement is blocked during combat;
// leaving a fight goes through Flee.
func (e *Engine) Move(direction string) (string, error) {
	if state.InCombat(e.State) {
		return "", fmt.Errorf("%w: you can't walk away from a fight (try flee)", ErrInvalidState)
	}
	room := state.CurrentRoom(e.State)
	if room == nil {
		return "", fmt.Errorf("%w: you are nowhere recognizable", ErrNotFound)
	}
	dest, ok := room.Exits[strings.ToLower(strings.TrimSpace(direction))]
	if !ok {
		return "", fmt.Errorf("%w: you can't go that way", ErrNotFound)
	}
	e.State.Player.Location = dest
	if next := state.CurrentRoom(e.State); next != nil {
		next.Visited = true
	}
	e.State.TurnCount++
	return e.Look()
}

// Take picks up an item from the current room.
func (e *Engine) Take(name string) (string, error) {
	room := state.CurrentRoom(e.State)
	if room == nil {
		return "", fmt.Errorf("%w: you are nowhere recognizable", ErrNotFound)
	}
	for i, id := range room.Items {
		item, ok := e.State.Items[id]
		if !ok {
			continue
		}
		if !matchesItem(name, item) {
			continue
		}
		if !item.Takeable {
			return "", fmt.Errorf("%w: you can't take the %s", ErrInvalidState, item.Name)
		}
		room.Items = append(room.Items[:i], room.Items[i+1:]...)
		state.AddItem(e.State, id)
		e.State.TurnCount++
		return fmt.Sprintf("You take the %s.", item.Name), nil
	}
	return "", fmt.Errorf("%w: there is no %q here", ErrNotFound, name)
}

// Drop puts an inventory item down in the current room.
func (e *Engine) Drop(name string) (string, error) {
	id := state.FindItemInInventory(e.State, name)
	if id == "" {
		return "", fmt.Errorf("%w: you don't have a %q", ErrNotFound, name)
	}
	room := state.CurrentRoom(e.State)
	if room == nil {
		return "", fmt.Errorf("%w: you are nowhere recognizable", ErrNotFound)
	}
	state.RemoveItem(e.State, id)
	room.Items = append(room.Items, id)
	e.State.TurnCount++
	return fmt.Sprintf("You drop the %s.", e.itemName(id)), nil
}

// Examine inspects an item by name, checking the inventory first and then
// the current room, and reports its description and combat-relevant stats.
func (e *Engine) Examine(name string) (string, error) {
	var item *types.Item
	if id := state.FindItemInInventory(e.State, name); id != "" {
		item = e.State.Items[id]
	} else if room := state.CurrentRoom(e.State); room != nil {
		for _, id := range room.Items {
			if it, ok := e.State.Items[id]; ok && matchesItem(name, it) {
				item = it
				break
			}
		}
	}
	if item == nil {
		return "", fmt.Errorf("%w: there is no %q to examine", ErrNotFound, name)
	}

	out := []string{item.Name}
	if item.Description != "" {
		out = append(out, item.Description)
	}
	var stats []string
	if item.Damage > 0 {
		stats = append(stats, fmt.Sprintf("damage %d", item.Damage))
	}
	if item.ArmorValue > 0 {
		stats = append(stats, fmt.Sprintf("armor %d", item.ArmorValue))
	}
	if item.HealingValue > 0 {
		stats = append(stats, fmt.Sprintf("heals %d", item.HealingValue))
	}
	if item.MaxDurability > 0 {
		stats = append(stats, fmt.Sprintf("durability %d/%d", item.Durability, item.MaxDurability))
	}
	if item.Value > 0 {
		stats = append(stats, fmt.Sprintf("worth %dg", item.Value))
	}
	if len(stats) > 0 {
		out = append(out, strings.Join(stats, ", "))
	}
	return strings.Join(out, "\n"), nil
}

// Inventory lists carried items with counts, marking equipment separately.
func (e *Engine) Inventory() (string, error) {
	p := &e.State.Player
	if len(p.Inventory) == 0 && len(p.Equipment) == 0 {
		return "You are carrying nothing.", nil
	}

	counts := map[string]int{}
	var order []string
	for _, id := range p.Inventory {
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}

	var out []string
	out = append(out, "You are carrying:")
	for _, id := range order {
		line := "  " + e.itemName(id)
		if counts[id] > 1 {
			line = fmt.Sprintf("%s x%d", line, counts[id])
		}
		out = append(out, line)
	}

	slots := make([]string, 0, len(p.Equipment))
	for slot := range p.Equipment {
		slots = append(slots, string(slot))
	}
	sort.Strings(slots)
	for _, slot := range slots {
		out = append(out, fmt.Sprintf("  %s (equipped: %s)", e.itemName(p.Equipment[types.Slot(slot)]), slot))
	}
	return strings.Join(out, "\n"), nil
}

// Status reports the player's vitals, attributes, and status effects.
func (e *Engine) Status() (string, error) {
	p := &e.State.Player
	out := []string{
		fmt.Sprintf("%s — Level %d", p.Name, p.Level),
		fmt.Sprintf("Health: %d/%d", p.Health, p.MaxHealth),
		fmt.Sprintf("Experience: %d/%d", p.Experience, p.ExperienceToNext),
		fmt.Sprintf("Gold: %d", p.Gold),
		fmt.Sprintf("STR %d  DEX %d  INT %d  CON %d", p.Strength, p.Dexterity, p.Intelligence, p.Constitution),
	}
	if len(p.StatusEffects) > 0 {
		var effects []string
		for effect, rounds := range p.StatusEffects {
			effects = append(effects, fmt.Sprintf("%s (%d)", effect, rounds))
		}
		sort.Strings(effects)
		out = append(out, "Afflicted: "+strings.Join(effects, ", "))
	}
	return strings.Join(out, "\n"), nil
}

// Talk addresses an NPC in the current room. NPCs mention the quests they
// offer so the player knows what to accept.
func (e *Engine) Talk(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: talk to whom?", ErrNotFound)
	}
	npc := state.FindNPCInRoom(e.State, name)
	if npc == nil {
		return "", fmt.Errorf("%w: there is no %q here", ErrNotFound, name)
	}

	var out []string
	if len(npc.Dialogue) > 0 {
		// Cycle dialogue lines by turn so repeat conversations vary.
		line := npc.Dialogue[e.State.TurnCount%len(npc.Dialogue)]
		out = append(out, fmt.Sprintf("%s says: %q", npc.Name, line))
	} else {
		out = append(out, fmt.Sprintf("%s has nothing to say.", npc.Name))
	}
	for _, qid := range npc.Quests {
		q, ok := e.State.Quests[qid]
		if !ok {
			continue
		}
		switch q.Status {
		case types.QuestAvailable:
			out = append(out, fmt.Sprintf("%s offers a quest: %s.", npc.Name, q.Name))
		case types.QuestCompleted:
			out = append(out, fmt.Sprintf("%s awaits your report on: %s.", npc.Name, q.Name))
		}
	}
	e.State.TurnCount++
	return strings.Join(out, "\n"), nil
}

// matchesItem is the engine-side name check for items found by iteration
// rather than through a state helper.
func matchesItem(query string, item *types.Item) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return false
	}
	nameLower := strings.ToLower(item.Name)
	if query == nameLower || query == strings.ToLower(item.ID) {
		return true
	}
	for _, word := range strings.Fields(nameLower) {
		if word == query {
			return true
		}
	}
	return strings.ReplaceAll(query, " ", "_") == strings.ToLower(item.ID)
}
