package loader

import (
	"strings"
	"testing"

	"github.com/nathoo/embercore/types"
)

// validState builds a small world that passes validation; each test
// mutates one invariant and checks the error message.
func validState() (types.GameDef, *types.GameState) {
	game := types.GameDef{Title: "Test", Start: "hall"}
	s := &types.GameState{
		Player: types.Player{
			Health: 50, MaxHealth: 50,
			Inventory:    []string{"rope"},
			KnownRecipes: map[string]bool{"ladder": true},
		},
		Rooms: map[string]*types.Room{
			"hall":   {ID: "hall", Exits: map[string]string{"north": "garden"}, Items: []string{"rope"}},
			"garden": {ID: "garden", Exits: map[string]string{"south": "hall"}},
		},
		Items: map[string]*types.Item{
			"rope":   {ID: "rope", Name: "rope"},
			"plank":  {ID: "plank", Name: "plank"},
			"ladder": {ID: "ladder", Name: "ladder"},
			"saw":    {ID: "saw", Name: "saw"},
		},
		Enemies: map[string]*types.Enemy{
			"rat_1": {
				ID: "rat_1", Type: "rat", Room: "garden",
				Health: 5, MaxHealth: 5, AggressionLevel: 3,
				Loot: []string{"rope"},
			},
		},
		NPCs: map[string]*types.NPC{
			"keeper": {ID: "keeper", Room: "hall", Quests: []string{"gather"}},
		},
		Recipes: map[string]*types.Recipe{
			"ladder": {
				ID: "ladder", Materials: map[string]int{"plank": 2, "rope": 1},
				Tool: "saw", Output: "ladder",
			},
		},
		Quests: map[string]*types.Quest{
			"gather": {
				ID: "gather", Type: types.QuestCollect, Giver: "keeper",
				Requirements: map[string]int{"plank": 3},
				RewardItems:  map[string]int{"rope": 1},
			},
		},
	}
	return game, s
}

func TestValidate_Passes(t *testing.T) {
	game, s := validState()
	if err := Validate(game, s); err != nil {
		t.Fatalf("valid world rejected: %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.GameDef, *types.GameState)
		wantErr string
	}{
		{
			"missing start room",
			func(g *types.GameDef, s *types.GameState) { g.Start = "void" },
			"start room",
		},
		{
			"dangling exit",
			func(g *types.GameDef, s *types.GameState) { s.Rooms["hall"].Exits["west"] = "void" },
			"unknown room",
		},
		{
			"unknown room item",
			func(g *types.GameDef, s *types.GameState) { s.Rooms["hall"].Items = []string{"ghost"} },
			"unknown item",
		},
		{
			"durability over max",
			func(g *types.GameDef, s *types.GameState) {
				s.Items["rope"].Durability = 5
				s.Items["rope"].MaxDurability = 3
			},
			"exceeds max",
		},
		{
			"enemy in unknown room",
			func(g *types.GameDef, s *types.GameState) { s.Enemies["rat_1"].Room = "void" },
			"unknown room",
		},
		{
			"enemy zero max health",
			func(g *types.GameDef, s *types.GameState) { s.Enemies["rat_1"].MaxHealth = 0 },
			"max health",
		},
		{
			"enemy health over max",
			func(g *types.GameDef, s *types.GameState) { s.Enemies["rat_1"].Health = 9 },
			"exceeds max",
		},
		{
			"aggression out of range",
			func(g *types.GameDef, s *types.GameState) { s.Enemies["rat_1"].AggressionLevel = 11 },
			"aggression",
		},
		{
			"unknown ability",
			func(g *types.GameDef, s *types.GameState) { s.Enemies["rat_1"].Ability = "fireball" },
			"unknown ability",
		},
		{
			"unknown loot",
			func(g *types.GameDef, s *types.GameState) { s.Enemies["rat_1"].Loot = []string{"ghost"} },
			"unknown loot",
		},
		{
			"npc unknown shop item",
			func(g *types.GameDef, s *types.GameState) { s.NPCs["keeper"].Shop = []string{"ghost"} },
			"unknown shop item",
		},
		{
			"npc unknown quest",
			func(g *types.GameDef, s *types.GameState) { s.NPCs["keeper"].Quests = []string{"ghost"} },
			"unknown quest",
		},
		{
			"recipe no materials",
			func(g *types.GameDef, s *types.GameState) { s.Recipes["ladder"].Materials = nil },
			"no materials",
		},
		{
			"recipe zero quantity",
			func(g *types.GameDef, s *types.GameState) { s.Recipes["ladder"].Materials["plank"] = 0 },
			"must be positive",
		},
		{
			"recipe unknown material",
			func(g *types.GameDef, s *types.GameState) { s.Recipes["ladder"].Materials["ghost"] = 1 },
			"unknown material",
		},
		{
			"recipe unknown tool",
			func(g *types.GameDef, s *types.GameState) { s.Recipes["ladder"].Tool = "ghost" },
			"unknown tool",
		},
		{
			"recipe unknown output",
			func(g *types.GameDef, s *types.GameState) { s.Recipes["ladder"].Output = "ghost" },
			"unknown output",
		},
		{
			"quest unknown type",
			func(g *types.GameDef, s *types.GameState) { s.Quests["gather"].Type = "fetch" },
			"unknown type",
		},
		{
			"quest unknown giver",
			func(g *types.GameDef, s *types.GameState) { s.Quests["gather"].Giver = "ghost" },
			"unknown giver",
		},
		{
			"quest no requirements",
			func(g *types.GameDef, s *types.GameState) { s.Quests["gather"].Requirements = nil },
			"no requirements",
		},
		{
			"quest zero requirement",
			func(g *types.GameDef, s *types.GameState) { s.Quests["gather"].Requirements["plank"] = 0 },
			"must be positive",
		},
		{
			"collect quest unknown item",
			func(g *types.GameDef, s *types.GameState) {
				s.Quests["gather"].Requirements = map[string]int{"ghost": 1}
			},
			"unknown item",
		},
		{
			"explore quest unknown room",
			func(g *types.GameDef, s *types.GameState) {
				s.Quests["gather"].Type = types.QuestExplore
				s.Quests["gather"].Requirements = map[string]int{"void": 1}
			},
			"unknown room",
		},
		{
			"explore quest count above one",
			func(g *types.GameDef, s *types.GameState) {
				s.Quests["gather"].Type = types.QuestExplore
				s.Quests["gather"].Requirements = map[string]int{"garden": 2}
			},
			"count must be 1",
		},
		{
			"quest unknown reward item",
			func(g *types.GameDef, s *types.GameState) { s.Quests["gather"].RewardItems = map[string]int{"ghost": 1} },
			"unknown reward",
		},
		{
			"player health over max",
			func(g *types.GameDef, s *types.GameState) { s.Player.Health = 99 },
			"exceeds max",
		},
		{
			"player negative gold",
			func(g *types.GameDef, s *types.GameState) { s.Player.Gold = -5 },
			"negative gold",
		},
		{
			"player unknown inventory item",
			func(g *types.GameDef, s *types.GameState) { s.Player.Inventory = []string{"ghost"} },
			"unknown inventory",
		},
		{
			"player unknown recipe",
			func(g *types.GameDef, s *types.GameState) { s.Player.KnownRecipes = map[string]bool{"ghost": true} },
			"unknown recipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game, s := validState()
			tt.mutate(&game, s)
			err := Validate(game, s)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// Defeat quests target enemy types, not IDs, and types are free-form
// strings; they are deliberately not cross-checked.
func TestValidate_DefeatTargetsUnchecked(t *testing.T) {
	game, s := validState()
	s.Quests["gather"].Type = types.QuestDefeat
	s.Quests["gather"].Requirements = map[string]int{"dragon": 1}

	if err := Validate(game, s); err != nil {
		t.Fatalf("defeat quest with unseen type rejected: %v", err)
	}
}
