package engine

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/embercore/engine/state"
	"github.com/nathoo/embercore/types"
)

// Vendors buy at half an item's listed value, floored at one gold, so
// selling is always worth something but never a round trip.
const sellPriceDivisor = 2

// vendorInRoom finds a vendor NPC in the current room. With a name, the
// named NPC must be a vendor; without one, the first vendor wins.
func (e *Engine) vendorInRoom(name string) (*types.NPC, error) {
	room := state.CurrentRoom(e.State)
	if room == nil {
		return nil, fmt.Errorf("%w: you are nowhere recognizable", ErrNotFound)
	}
	if name != "" {
		npc := state.FindNPCInRoom(e.State, name)
		if npc == nil {
			return nil, fmt.Errorf("%w: there is no %q here", ErrNotFound, name)
		}
		if len(npc.Shop) == 0 {
			return nil, fmt.Errorf("%w: %s has nothing to sell", ErrInvalidState, npc.Name)
		}
		return npc, nil
	}
	for _, id := range room.NPCs {
		if npc, ok := e.State.NPCs[id]; ok && len(npc.Shop) > 0 {
			return npc, nil
		}
	}
	return nil, fmt.Errorf("%w: there is no merchant here", ErrNotFound)
}

// ShopList shows a vendor's stock with prices. Read-only.
func (e *Engine) ShopList(vendorName string) (string, error) {
	npc, err := e.vendorInRoom(vendorName)
	if err != nil {
		return "", err
	}

	var out []string
	out = append(out, fmt.Sprintf("%s offers:", npc.Name))
	for _, id := range npc.Shop {
		item, ok := e.State.Items[id]
		if !ok {
			continue
		}
		out = append(out, fmt.Sprintf("  %s: %dg", item.Name, item.Value))
	}
	out = append(out, fmt.Sprintf("You have %dg.", e.State.Player.Gold))
	return strings.Join(out, "\n"), nil
}

// Buy purchases an item from a vendor in the current room at its listed
// value. The gold check happens before any mutation.
func (e *Engine) Buy(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: buy what?", ErrNotFound)
	}
	npc, err := e.vendorInRoom("")
	if err != nil {
		return "", err
	}

	for _, id := range npc.Shop {
		item, ok := e.State.Items[id]
		if !ok || !matchesItem(name, item) {
			continue
		}
		if e.State.Player.Gold < item.Value {
			return "", fmt.Errorf("%w: you need %dg for the %s", ErrUnmetRequirement, item.Value, item.Name)
		}
		e.State.Player.Gold -= item.Value
		state.AddItem(e.State, id)
		e.State.TurnCount++

		e.log.WithFields(logrus.Fields{
			"component": "shop",
			"vendor":    npc.ID,
			"item":      id,
			"price":     item.Value,
		}).Info("item bought")

		return fmt.Sprintf("You buy the %s for %dg.", item.Name, item.Value), nil
	}
	return "", fmt.Errorf("%w: %s doesn't sell %q", ErrNotFound, npc.Name, name)
}

// Sell trades an inventory item to a vendor in the current room. Worthless
// items are refused.
func (e *Engine) Sell(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: sell what?", ErrNotFound)
	}
	npc, err := e.vendorInRoom("")
	if err != nil {
		return "", err
	}
	id := state.FindItemInInventory(e.State, name)
	if id == "" {
		return "", fmt.Errorf("%w: you don't have a %q", ErrNotFound, name)
	}
	item := e.State.Items[id]
	if item.Value <= 0 {
		return "", fmt.Errorf("%w: %s won't pay for the %s", ErrInvalidState, npc.Name, item.Name)
	}

	price := item.Value / sellPriceDivisor
	if price < 1 {
		price = 1
	}
	state.RemoveItem(e.State, id)
	e.State.Player.Gold += price
	e.State.TurnCount++

	e.log.WithFields(logrus.Fields{
		"component": "shop",
		"vendor":    npc.ID,
		"item":      id,
		"price":     price,
	}).Info("item sold")

	return fmt.Sprintf("You sell the %s for %dg.", item.Name, price), nil
}
