package loader

import (
	"fmt"

	"github.com/nathoo/embercore/types"
)

// Validate checks the data-model invariants of a freshly compiled world:
// every referenced ID resolves, quantities are positive, and numeric
// ranges make sense. A world that fails here never reaches the engine.
func Validate(game types.GameDef, s *types.GameState) error {
	if _, ok := s.Rooms[game.Start]; !ok {
		return fmt.Errorf("start room %q does not exist", game.Start)
	}

	for id, room := range s.Rooms {
		for dir, dest := range room.Exits {
			if _, ok := s.Rooms[dest]; !ok {
				return fmt.Errorf("room %q: exit %s leads to unknown room %q", id, dir, dest)
			}
		}
		for _, itemID := range room.Items {
			if _, ok := s.Items[itemID]; !ok {
				return fmt.Errorf("room %q: unknown item %q", id, itemID)
			}
		}
	}

	for id, item := range s.Items {
		if item.Durability < 0 || item.MaxDurability < 0 {
			return fmt.Errorf("item %q: negative durability", id)
		}
		if item.Durability > item.MaxDurability {
			return fmt.Errorf("item %q: durability %d exceeds max %d", id, item.Durability, item.MaxDurability)
		}
	}

	for id, enemy := range s.Enemies {
		if enemy.Room != "" {
			if _, ok := s.Rooms[enemy.Room]; !ok {
				return fmt.Errorf("enemy %q: unknown room %q", id, enemy.Room)
			}
		}
		if enemy.MaxHealth <= 0 {
			return fmt.Errorf("enemy %q: max health must be positive", id)
		}
		if enemy.Health > enemy.MaxHealth {
			return fmt.Errorf("enemy %q: health %d exceeds max %d", id, enemy.Health, enemy.MaxHealth)
		}
		if enemy.AggressionLevel < 1 || enemy.AggressionLevel > 10 {
			return fmt.Errorf("enemy %q: aggression %d outside 1..10", id, enemy.AggressionLevel)
		}
		switch enemy.Ability {
		case types.AbilityNone, types.AbilityPoison, types.AbilityStun, types.AbilityHeal:
		default:
			return fmt.Errorf("enemy %q: unknown ability %q", id, enemy.Ability)
		}
		for _, itemID := range enemy.Loot {
			if _, ok := s.Items[itemID]; !ok {
				return fmt.Errorf("enemy %q: unknown loot item %q", id, itemID)
			}
		}
	}

	for id, npc := range s.NPCs {
		if npc.Room != "" {
			if _, ok := s.Rooms[npc.Room]; !ok {
				return fmt.Errorf("npc %q: unknown room %q", id, npc.Room)
			}
		}
		for _, questID := range npc.Quests {
			if _, ok := s.Quests[questID]; !ok {
				return fmt.Errorf("npc %q: unknown quest %q", id, questID)
			}
		}
		for _, itemID := range npc.Shop {
			if _, ok := s.Items[itemID]; !ok {
				return fmt.Errorf("npc %q: unknown shop item %q", id, itemID)
			}
		}
	}

	for id, recipe := range s.Recipes {
		if len(recipe.Materials) == 0 {
			return fmt.Errorf("recipe %q: no materials", id)
		}
		for matID, qty := range recipe.Materials {
			if qty <= 0 {
				return fmt.Errorf("recipe %q: material %q quantity must be positive", id, matID)
			}
			if _, ok := s.Items[matID]; !ok {
				return fmt.Errorf("recipe %q: unknown material %q", id, matID)
			}
		}
		if recipe.Tool != "" {
			if _, ok := s.Items[recipe.Tool]; !ok {
				return fmt.Errorf("recipe %q: unknown tool %q", id, recipe.Tool)
			}
		}
		if _, ok := s.Items[recipe.Output]; !ok {
			return fmt.Errorf("recipe %q: unknown output %q", id, recipe.Output)
		}
	}

	for id, quest := range s.Quests {
		switch quest.Type {
		case types.QuestCollect, types.QuestDefeat, types.QuestCraft, types.QuestExplore:
		default:
			return fmt.Errorf("quest %q: unknown type %q", id, quest.Type)
		}
		if quest.Giver != "" {
			if _, ok := s.NPCs[quest.Giver]; !ok {
				return fmt.Errorf("quest %q: unknown giver %q", id, quest.Giver)
			}
		}
		if len(quest.Requirements) == 0 {
			return fmt.Errorf("quest %q: no requirements", id)
		}
		for target, count := range quest.Requirements {
			if count <= 0 {
				return fmt.Errorf("quest %q: requirement %q count must be positive", id, target)
			}
			switch quest.Type {
			case types.QuestCollect, types.QuestCraft:
				if _, ok := s.Items[target]; !ok {
					return fmt.Errorf("quest %q: unknown item %q", id, target)
				}
			case types.QuestExplore:
				// A room is visited or not; higher counts can never be met.
				if count != 1 {
					return fmt.Errorf("quest %q: explore requirement %q count must be 1", id, target)
				}
				if _, ok := s.Rooms[target]; !ok {
					return fmt.Errorf("quest %q: unknown room %q", id, target)
				}
			}
		}
		for itemID, qty := range quest.RewardItems {
			if qty <= 0 {
				return fmt.Errorf("quest %q: reward item %q quantity must be positive", id, itemID)
			}
			if _, ok := s.Items[itemID]; !ok {
				return fmt.Errorf("quest %q: unknown reward item %q", id, itemID)
			}
		}
	}

	p := &s.Player
	if p.Health > p.MaxHealth {
		return fmt.Errorf("player: health %d exceeds max %d", p.Health, p.MaxHealth)
	}
	if p.Gold < 0 {
		return fmt.Errorf("player: negative gold")
	}
	for _, itemID := range p.Inventory {
		if _, ok := s.Items[itemID]; !ok {
			return fmt.Errorf("player: unknown inventory item %q", itemID)
		}
	}
	for recipeID := range p.KnownRecipes {
		if _, ok := s.Recipes[recipeID]; !ok {
			return fmt.Errorf("player: unknown recipe %q", recipeID)
		}
	}

	return nil
}
