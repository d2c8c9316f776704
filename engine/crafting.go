package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/embercore/engine/state"
	"github.com/nathoo/embercore/types"
)

// CraftItem validates a recipe against the player's knowledge, level,
// tools, and materials, then commits atomically: all materials are
// deducted and exactly one output item is added, or nothing changes.
func (e *Engine) CraftItem(recipeName string) (string, error) {
	recipe := state.FindRecipe(e.State, recipeName)
	if recipe == nil {
		return "", fmt.Errorf("%w: no recipe called %q", ErrNotFound, recipeName)
	}
	if !e.State.Player.KnownRecipes[recipe.ID] {
		return "", fmt.Errorf("%w: you don't know how to craft %s", ErrUnmetRequirement, recipe.Name)
	}
	if e.State.Player.Level < recipe.RequiredLevel {
		return "", fmt.Errorf("%w: crafting %s requires level %d", ErrUnmetRequirement, recipe.Name, recipe.RequiredLevel)
	}
	if recipe.Tool != "" && !state.HasItem(e.State, recipe.Tool) {
		return "", fmt.Errorf("%w: you need a %s to craft %s", ErrUnmetRequirement, e.itemName(recipe.Tool), recipe.Name)
	}

	// Validate every material before touching the inventory.
	for materialID, quantity := range recipe.Materials {
		if state.CountInInventory(e.State, materialID) < quantity {
			return "", fmt.Errorf("%w: you need %d %s to craft %s",
				ErrUnmetRequirement, quantity, e.itemName(materialID), recipe.Name)
		}
	}

	// Commit. Checks above guarantee every removal succeeds.
	for materialID, quantity := range recipe.Materials {
		state.RemoveItems(e.State, materialID, quantity)
	}
	state.AddItem(e.State, recipe.Output)
	e.State.Crafted[recipe.Output]++
	e.State.TurnCount++

	e.log.WithFields(logrus.Fields{
		"component": "crafting",
		"recipe":    recipe.ID,
		"output":    recipe.Output,
	}).Info("item crafted")

	return fmt.Sprintf("You craft %s. (%d min of work)", recipe.Name, recipe.Duration), nil
}

// LearnRecipe adds a recipe to the player's known set.
func (e *Engine) LearnRecipe(recipeName string) (string, error) {
	recipe := state.FindRecipe(e.State, recipeName)
	if recipe == nil {
		return "", fmt.Errorf("%w: no recipe called %q", ErrNotFound, recipeName)
	}
	if e.State.Player.KnownRecipes[recipe.ID] {
		return "", fmt.Errorf("%w: you already know the %s recipe", ErrAlreadyInState, recipe.Name)
	}
	e.State.Player.KnownRecipes[recipe.ID] = true

	e.log.WithFields(logrus.Fields{
		"component": "crafting",
		"recipe":    recipe.ID,
	}).Info("recipe learned")

	return fmt.Sprintf("You learn how to craft %s!", recipe.Name), nil
}

// KnownRecipes lists the recipes the player knows, flagging which are
// currently craftable. Read-only.
func (e *Engine) KnownRecipes() (string, error) {
	known := make([]string, 0, len(e.State.Player.KnownRecipes))
	for id := range e.State.Player.KnownRecipes {
		known = append(known, id)
	}
	if len(known) == 0 {
		return "You don't know any crafting recipes.", nil
	}
	sort.Strings(known)

	var out []string
	out = append(out, "Known recipes:")
	for _, id := range known {
		recipe, ok := e.State.Recipes[id]
		if !ok {
			continue
		}
		mark := " "
		if e.canCraft(recipe) {
			mark = "*"
		}
		out = append(out, fmt.Sprintf("%s %s (level %d)", mark, recipe.Name, recipe.RequiredLevel))
	}
	out = append(out, "* = craftable now")
	return strings.Join(out, "\n"), nil
}

// RecipeInfo shows a recipe's materials against current inventory.
// Read-only.
func (e *Engine) RecipeInfo(recipeName string) (string, error) {
	recipe := state.FindRecipe(e.State, recipeName)
	if recipe == nil {
		return "", fmt.Errorf("%w: no recipe called %q", ErrNotFound, recipeName)
	}

	var out []string
	out = append(out, fmt.Sprintf("Recipe: %s", recipe.Name))
	out = append(out, recipe.Description)
	out = append(out, fmt.Sprintf("Required level: %d", recipe.RequiredLevel))
	out = append(out, fmt.Sprintf("Crafting time: %d minutes", recipe.Duration))
	if recipe.Tool != "" {
		have := "missing"
		if state.HasItem(e.State, recipe.Tool) {
			have = "in pack"
		}
		out = append(out, fmt.Sprintf("Tool: %s (%s)", e.itemName(recipe.Tool), have))
	}

	materials := make([]string, 0, len(recipe.Materials))
	for id := range recipe.Materials {
		materials = append(materials, id)
	}
	sort.Strings(materials)
	out = append(out, "Materials:")
	for _, id := range materials {
		out = append(out, fmt.Sprintf("  %s: %d/%d",
			e.itemName(id), state.CountInInventory(e.State, id), recipe.Materials[id]))
	}
	return strings.Join(out, "\n"), nil
}

// canCraft mirrors CraftItem's validation without committing.
func (e *Engine) canCraft(recipe *types.Recipe) bool {
	if !e.State.Player.KnownRecipes[recipe.ID] {
		return false
	}
	if e.State.Player.Level < recipe.RequiredLevel {
		return false
	}
	if recipe.Tool != "" && !state.HasItem(e.State, recipe.Tool) {
		return false
	}
	for materialID, quantity := range recipe.Materials {
		if state.CountInInventory(e.State, materialID) < quantity {
			return false
		}
	}
	return true
}
