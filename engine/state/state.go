// Package state provides lookup and mutation helpers over the shared game
// state. All name resolution is case-insensitive and scoped: combat targets
// resolve against the current room, items and recipes against the player.
package state

import (
	"strings"

	"github.com/nathoo/embercore/types"
)

// Normalize ensures every map and slice in a freshly built or loaded state
// is non-nil, so engine code never has to guard against nil collections.
func Normalize(s *types.GameState) {
	if s.Rooms == nil {
		s.Rooms = map[string]*types.Room{}
	}
	if s.Items == nil {
		s.Items = map[string]*types.Item{}
	}
	if s.NPCs == nil {
		s.NPCs = map[string]*types.NPC{}
	}
	if s.Enemies == nil {
		s.Enemies = map[string]*types.Enemy{}
	}
	if s.Quests == nil {
		s.Quests = map[string]*types.Quest{}
	}
	if s.Recipes == nil {
		s.Recipes = map[string]*types.Recipe{}
	}
	if s.Defeated == nil {
		s.Defeated = map[string]int{}
	}
	if s.Crafted == nil {
		s.Crafted = map[string]int{}
	}
	if s.Player.Inventory == nil {
		s.Player.Inventory = []string{}
	}
	if s.Player.Equipment == nil {
		s.Player.Equipment = map[types.Slot]string{}
	}
	if s.Player.KnownRecipes == nil {
		s.Player.KnownRecipes = map[string]bool{}
	}
	if s.Player.ActiveQuests == nil {
		s.Player.ActiveQuests = []string{}
	}
	if s.Player.StatusEffects == nil {
		s.Player.StatusEffects = map[types.StatusEffect]int{}
	}
}

// CurrentRoom returns the room the player is in, or nil if the location is
// unknown (only possible with corrupted state).
func CurrentRoom(s *types.GameState) *types.Room {
	return s.Rooms[s.Player.Location]
}

// matchesName reports whether a query matches a display name or an ID.
// Supports exact match, word match ("sword" matches "iron sword"), and
// underscore normalization ("iron sword" matches ID "iron_sword").
func matchesName(query, name, id string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return false
	}
	nameLower := strings.ToLower(name)
	if query == nameLower || query == strings.ToLower(id) {
		return true
	}
	for _, word := range strings.Fields(nameLower) {
		if word == query {
			return true
		}
	}
	return strings.ReplaceAll(query, " ", "_") == strings.ToLower(id)
}

// FindItemInInventory resolves an item name against the player's inventory.
// Returns the item ID, or "" if nothing matches.
func FindItemInInventory(s *types.GameState, name string) string {
	for _, id := range s.Player.Inventory {
		item, ok := s.Items[id]
		if !ok {
			continue
		}
		if matchesName(name, item.Name, item.ID) {
			return id
		}
	}
	return ""
}

// FindEnemyInRoom resolves an enemy name against living enemies in the
// player's current room. An empty name matches the first living enemy.
func FindEnemyInRoom(s *types.GameState, name string) *types.Enemy {
	room := CurrentRoom(s)
	if room == nil {
		return nil
	}
	for _, id := range room.Enemies {
		enemy, ok := s.Enemies[id]
		if !ok || !enemy.Alive {
			continue
		}
		if name == "" || matchesName(name, enemy.Name, enemy.ID) || matchesName(name, enemy.Type, enemy.ID) {
			return enemy
		}
	}
	return nil
}

// FindNPCInRoom resolves an NPC name against the player's current room.
func FindNPCInRoom(s *types.GameState, name string) *types.NPC {
	room := CurrentRoom(s)
	if room == nil {
		return nil
	}
	for _, id := range room.NPCs {
		npc, ok := s.NPCs[id]
		if !ok {
			continue
		}
		if matchesName(name, npc.Name, npc.ID) {
			return npc
		}
	}
	return nil
}

// FindRecipe resolves a recipe name against all recipes in the world.
func FindRecipe(s *types.GameState, name string) *types.Recipe {
	for _, r := range s.Recipes {
		if matchesName(name, r.Name, r.ID) {
			return r
		}
	}
	return nil
}

// FindQuest resolves a quest name against all quests in the world.
func FindQuest(s *types.GameState, name string) *types.Quest {
	for _, q := range s.Quests {
		if matchesName(name, q.Name, q.ID) {
			return q
		}
	}
	return nil
}

// CountInInventory returns how many copies of an item ID the player carries.
// Equipped items are not counted: they left the inventory when equipped.
func CountInInventory(s *types.GameState, itemID string) int {
	n := 0
	for _, id := range s.Player.Inventory {
		if id == itemID {
			n++
		}
	}
	return n
}

// HasItem reports whether at least one copy of the item ID is carried.
func HasItem(s *types.GameState, itemID string) bool {
	return CountInInventory(s, itemID) > 0
}

// AddItem appends an item ID to the inventory multiset.
func AddItem(s *types.GameState, itemID string) {
	s.Player.Inventory = append(s.Player.Inventory, itemID)
}

// RemoveItem removes one copy of an item ID from the inventory. Returns
// false if no copy was present (state unchanged).
func RemoveItem(s *types.GameState, itemID string) bool {
	for i, id := range s.Player.Inventory {
		if id == itemID {
			s.Player.Inventory = append(s.Player.Inventory[:i], s.Player.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveItems removes n copies of an item ID. Returns false without
// mutating if fewer than n copies are carried.
func RemoveItems(s *types.GameState, itemID string, n int) bool {
	if CountInInventory(s, itemID) < n {
		return false
	}
	for i := 0; i < n; i++ {
		RemoveItem(s, itemID)
	}
	return true
}

// RemoveEnemyFromRoom detaches a defeated enemy from its room.
func RemoveEnemyFromRoom(s *types.GameState, enemy *types.Enemy) {
	room, ok := s.Rooms[enemy.Room]
	if !ok {
		return
	}
	for i, id := range room.Enemies {
		if id == enemy.ID {
			room.Enemies = append(room.Enemies[:i], room.Enemies[i+1:]...)
			return
		}
	}
}

// VisitedRooms returns the set of room IDs the player has visited.
func VisitedRooms(s *types.GameState) map[string]bool {
	visited := map[string]bool{}
	for id, room := range s.Rooms {
		if room.Visited {
			visited[id] = true
		}
	}
	return visited
}

// InCombat reports whether a combat session is active.
func InCombat(s *types.GameState) bool {
	return s.Combat != nil
}
