package engine

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/embercore/engine/state"
	"github.com/nathoo/embercore/types"
)

// slotFor maps an item type to its equipment slot. Items of other types
// have no slot and cannot be equipped.
func slotFor(item *types.Item) (types.Slot, bool) {
	switch item.Type {
	case types.ItemWeapon:
		return types.SlotWeapon, true
	case types.ItemArmor:
		return types.SlotArmor, true
	default:
		return "", false
	}
}

// DamageBonus sums the damage of all equipped items. A weapon worn down to
// zero durability contributes nothing.
func (e *Engine) DamageBonus() int {
	total := 0
	for _, id := range e.State.Player.Equipment {
		item, ok := e.State.Items[id]
		if !ok {
			continue
		}
		if item.MaxDurability > 0 && item.Durability <= 0 {
			continue
		}
		total += item.Damage
	}
	return total
}

// ArmorValue sums the armor value of all equipped items.
func (e *Engine) ArmorValue() int {
	total := 0
	for _, id := range e.State.Player.Equipment {
		item, ok := e.State.Items[id]
		if !ok {
			continue
		}
		if item.MaxDurability > 0 && item.Durability <= 0 {
			continue
		}
		total += item.ArmorValue
	}
	return total
}

// Equip moves an inventory item into its equipment slot. A previously
// equipped item in that slot is displaced back into the inventory, so the
// total item count is conserved and each slot holds at most one item.
func (e *Engine) Equip(name string) (string, error) {
	id := state.FindItemInInventory(e.State, name)
	if id == "" {
		return "", fmt.Errorf("%w: you don't have a %q", ErrNotFound, name)
	}
	item := e.State.Items[id]

	slot, ok := slotFor(item)
	if !ok {
		return "", fmt.Errorf("%w: you can't equip the %s", ErrInvalidState, item.Name)
	}
	if item.MaxDurability > 0 && item.Durability <= 0 {
		return "", fmt.Errorf("%w: the %s is broken", ErrUnmetRequirement, item.Name)
	}

	var displaced string
	if prev, occupied := e.State.Player.Equipment[slot]; occupied {
		state.AddItem(e.State, prev)
		displaced = prev
	}
	state.RemoveItem(e.State, id)
	e.State.Player.Equipment[slot] = id

	e.log.WithFields(logrus.Fields{
		"component": "equipment",
		"item":      id,
		"slot":      slot,
		"displaced": displaced,
	}).Info("item equipped")

	msg := fmt.Sprintf("You equip the %s.", item.Name)
	if displaced != "" {
		msg += fmt.Sprintf(" You stow the %s.", e.itemName(displaced))
	}
	return msg, nil
}

// Unequip returns the item in the named slot to the inventory.
func (e *Engine) Unequip(slotName string) (string, error) {
	slot := types.Slot(strings.ToLower(strings.TrimSpace(slotName)))
	id, ok := e.State.Player.Equipment[slot]
	if !ok {
		return "", fmt.Errorf("%w: nothing is equipped in the %s slot", ErrNotFound, slot)
	}
	delete(e.State.Player.Equipment, slot)
	state.AddItem(e.State, id)

	e.log.WithFields(logrus.Fields{
		"component": "equipment",
		"item":      id,
		"slot":      slot,
	}).Info("item unequipped")

	return fmt.Sprintf("You unequip the %s.", e.itemName(id)), nil
}

// EquipmentList shows all slots and their contents.
func (e *Engine) EquipmentList() (string, error) {
	slots := []types.Slot{
		types.SlotWeapon, types.SlotArmor, types.SlotHelmet,
		types.SlotBoots, types.SlotGloves, types.SlotRing, types.SlotAmulet,
	}
	var out []string
	out = append(out, "Equipped:")
	for _, slot := range slots {
		if id, ok := e.State.Player.Equipment[slot]; ok {
			line := fmt.Sprintf("  %s: %s", slot, e.itemName(id))
			if item, found := e.State.Items[id]; found && item.MaxDurability > 0 {
				line += fmt.Sprintf(" (%d/%d)", item.Durability, item.MaxDurability)
			}
			out = append(out, line)
		} else {
			out = append(out, fmt.Sprintf("  %s: nothing", slot))
		}
	}
	return strings.Join(out, "\n"), nil
}
