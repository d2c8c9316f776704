package engine

import (
	"errors"
	"strings"
	"testing"
)

func TestCraftItem_Success(t *testing.T) {
	e := newTestEngine(t)
	e.State.Player.KnownRecipes["iron_ingot"] = true
	e.State.Player.Inventory = []string{"iron_ore", "iron_ore", "iron_ore", "hammer"}

	out, err := e.CraftItem("iron ingot")
	if err != nil {
		t.Fatalf("CraftItem failed: %v", err)
	}
	if !strings.Contains(out, "You craft iron ingot.") {
		t.Errorf("unexpected output %q", out)
	}

	// All three ore consumed, tool kept, output added.
	inv := e.State.Player.Inventory
	ore, hammer, ingot := 0, 0, 0
	for _, id := range inv {
		switch id {
		case "iron_ore":
			ore++
		case "hammer":
			hammer++
		case "iron_ingot":
			ingot++
		}
	}
	if ore != 0 {
		t.Errorf("ore left = %d, want 0", ore)
	}
	if hammer != 1 {
		t.Error("tool must not be consumed")
	}
	if ingot != 1 {
		t.Errorf("ingot count = %d, want exactly 1", ingot)
	}
	if e.State.Crafted["iron_ingot"] != 1 {
		t.Errorf("Crafted counter = %d, want 1", e.State.Crafted["iron_ingot"])
	}
}

func TestCraftItem_InsufficientMaterialsAtomic(t *testing.T) {
	e := newTestEngine(t)
	e.State.Player.KnownRecipes["iron_ingot"] = true
	// Two ore and the hammer: one ore short of the recipe's three.
	e.State.Player.Inventory = []string{"iron_ore", "iron_ore", "hammer"}

	_, err := e.CraftItem("iron ingot")
	if !errors.Is(err, ErrUnmetRequirement) {
		t.Fatalf("expected ErrUnmetRequirement, got %v", err)
	}

	// Nothing consumed, nothing produced.
	if len(e.State.Player.Inventory) != 3 {
		t.Errorf("inventory = %v, want untouched", e.State.Player.Inventory)
	}
	for _, id := range e.State.Player.Inventory {
		if id == "iron_ingot" {
			t.Error("failed craft must not produce output")
		}
	}
	if e.State.Crafted["iron_ingot"] != 0 {
		t.Error("failed craft must not bump the counter")
	}
}

func TestCraftItem_UnknownRecipeName(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.CraftItem("philosopher stone")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCraftItem_RecipeNotLearned(t *testing.T) {
	e := newTestEngine(t)
	e.State.Player.Inventory = []string{"iron_ore", "iron_ore", "iron_ore", "hammer"}

	_, err := e.CraftItem("iron ingot")
	if !errors.Is(err, ErrUnmetRequirement) {
		t.Errorf("expected ErrUnmetRequirement, got %v", err)
	}
}

func TestCraftItem_LevelTooLow(t *testing.T) {
	e := newTestEngine(t)
	e.State.Player.KnownRecipes["iron_ingot"] = true
	e.State.Player.Inventory = []string{"iron_ore", "iron_ore", "iron_ore", "hammer"}
	e.State.Recipes["iron_ingot"].RequiredLevel = 10

	_, err := e.CraftItem("iron ingot")
	if !errors.Is(err, ErrUnmetRequirement) {
		t.Errorf("expected ErrUnmetRequirement, got %v", err)
	}
	if len(e.State.Player.Inventory) != 4 {
		t.Error("failed craft must not touch the inventory")
	}
}

func TestCraftItem_MissingTool(t *testing.T) {
	e := newTestEngine(t)
	e.State.Player.KnownRecipes["iron_ingot"] = true
	e.State.Player.Inventory = []string{"iron_ore", "iron_ore", "iron_ore"}

	_, err := e.CraftItem("iron ingot")
	if !errors.Is(err, ErrUnmetRequirement) {
		t.Errorf("expected ErrUnmetRequirement, got %v", err)
	}
}

func TestLearnRecipe_Basic(t *testing.T) {
	e := newTestEngine(t)

	out, err := e.LearnRecipe("iron ingot")
	if err != nil {
		t.Fatalf("LearnRecipe failed: %v", err)
	}
	if !strings.Contains(out, "You learn how to craft iron ingot!") {
		t.Errorf("unexpected output %q", out)
	}
	if !e.State.Player.KnownRecipes["iron_ingot"] {
		t.Error("recipe should be known")
	}
}

func TestLearnRecipe_Twice(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.LearnRecipe("iron ingot"); err != nil {
		t.Fatalf("LearnRecipe failed: %v", err)
	}

	_, err := e.LearnRecipe("iron ingot")
	if !errors.Is(err, ErrAlreadyInState) {
		t.Errorf("expected ErrAlreadyInState, got %v", err)
	}
}

func TestLearnRecipe_Unknown(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.LearnRecipe("dragon saddle")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestKnownRecipes_CraftableMarker(t *testing.T) {
	e := newTestEngine(t)
	e.State.Player.KnownRecipes["iron_ingot"] = true

	out, err := e.KnownRecipes()
	if err != nil {
		t.Fatalf("KnownRecipes failed: %v", err)
	}
	if !strings.Contains(out, "  iron ingot (level 1)") {
		t.Errorf("expected uncraftable listing, got %q", out)
	}

	e.State.Player.Inventory = []string{"iron_ore", "iron_ore", "iron_ore", "hammer"}
	out, err = e.KnownRecipes()
	if err != nil {
		t.Fatalf("KnownRecipes failed: %v", err)
	}
	if !strings.Contains(out, "* iron ingot (level 1)") {
		t.Errorf("expected craftable marker, got %q", out)
	}
}

func TestKnownRecipes_Empty(t *testing.T) {
	e := newTestEngine(t)
	out, err := e.KnownRecipes()
	if err != nil {
		t.Fatalf("KnownRecipes failed: %v", err)
	}
	if !strings.Contains(out, "don't know any") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRecipeInfo_ShowsMaterialCounts(t *testing.T) {
	e := newTestEngine(t)
	e.State.Player.Inventory = []string{"iron_ore"}

	out, err := e.RecipeInfo("iron ingot")
	if err != nil {
		t.Fatalf("RecipeInfo failed: %v", err)
	}
	if !strings.Contains(out, "iron ore: 1/3") {
		t.Errorf("expected material progress, got %q", out)
	}
	if !strings.Contains(out, "smithing hammer (missing)") {
		t.Errorf("expected missing tool, got %q", out)
	}
}
