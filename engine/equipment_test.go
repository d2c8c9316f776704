package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/nathoo/embercore/types"
)

func TestEquip_MovesItemOutOfInventory(t *testing.T) {
	e := newTestEngine(t)
	e.State.Player.Inventory = []string{"iron_sword"}

	out, err := e.Equip("iron sword")
	if err != nil {
		t.Fatalf("Equip failed: %v", err)
	}
	if !strings.Contains(out, "You equip the iron sword.") {
		t.Errorf("unexpected output %q", out)
	}
	if len(e.State.Player.Inventory) != 0 {
		t.Error("equipped item should leave the inventory")
	}
	if e.State.Player.Equipment[types.SlotWeapon] != "iron_sword" {
		t.Error("weapon slot should hold the sword")
	}
}

func TestEquip_DisplacementConservesItems(t *testing.T) {
	e := newTestEngine(t)
	e.State.Items["bronze_sword"] = &types.Item{
		ID: "bronze_sword", Name: "bronze sword", Type: types.ItemWeapon,
		Damage: 3, Takeable: true,
	}
	e.State.Player.Inventory = []string{"iron_sword", "bronze_sword"}

	if _, err := e.Equip("bronze sword"); err != nil {
		t.Fatalf("Equip failed: %v", err)
	}
	out, err := e.Equip("iron sword")
	if err != nil {
		t.Fatalf("Equip failed: %v", err)
	}
	if !strings.Contains(out, "You stow the bronze sword.") {
		t.Errorf("expected displacement message, got %q", out)
	}

	// One item in the slot, one back in the pack: total conserved.
	if e.State.Player.Equipment[types.SlotWeapon] != "iron_sword" {
		t.Error("slot should hold the iron sword")
	}
	if len(e.State.Player.Inventory) != 1 || e.State.Player.Inventory[0] != "bronze_sword" {
		t.Errorf("inventory = %v, want displaced bronze_sword", e.State.Player.Inventory)
	}
}

func TestEquip_NotCarried(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Equip("iron sword")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEquip_NotEquippable(t *testing.T) {
	e := newTestEngine(t)
	e.State.Player.Inventory = []string{"iron_ore"}

	_, err := e.Equip("iron ore")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
	if len(e.State.Player.Inventory) != 1 {
		t.Error("failed equip must not consume the item")
	}
}

func TestEquip_BrokenItemRejected(t *testing.T) {
	e := newTestEngine(t)
	e.State.Items["iron_sword"].Durability = 0
	e.State.Player.Inventory = []string{"iron_sword"}

	_, err := e.Equip("iron sword")
	if !errors.Is(err, ErrUnmetRequirement) {
		t.Errorf("expected ErrUnmetRequirement, got %v", err)
	}
}

func TestUnequip_ReturnsToInventory(t *testing.T) {
	e := newTestEngine(t)
	e.State.Player.Inventory = []string{"iron_sword"}
	if _, err := e.Equip("iron sword"); err != nil {
		t.Fatalf("Equip failed: %v", err)
	}

	out, err := e.Unequip("weapon")
	if err != nil {
		t.Fatalf("Unequip failed: %v", err)
	}
	if !strings.Contains(out, "You unequip the iron sword.") {
		t.Errorf("unexpected output %q", out)
	}
	if _, held := e.State.Player.Equipment[types.SlotWeapon]; held {
		t.Error("slot should be empty after unequip")
	}
	if len(e.State.Player.Inventory) != 1 {
		t.Error("unequipped item should return to the inventory")
	}
}

func TestUnequip_EmptySlot(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Unequip("weapon")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDamageBonus_SumsEquippedSkipsBroken(t *testing.T) {
	e := newTestEngine(t)
	e.State.Player.Equipment[types.SlotWeapon] = "iron_sword"

	if got := e.DamageBonus(); got != 5 {
		t.Errorf("DamageBonus = %d, want 5", got)
	}

	e.State.Items["iron_sword"].Durability = 0
	if got := e.DamageBonus(); got != 0 {
		t.Errorf("broken weapon DamageBonus = %d, want 0", got)
	}
}

func TestArmorValue_SumsEquipped(t *testing.T) {
	e := newTestEngine(t)
	if got := e.ArmorValue(); got != 0 {
		t.Errorf("bare ArmorValue = %d, want 0", got)
	}

	e.State.Player.Equipment[types.SlotArmor] = "leather_armor"
	if got := e.ArmorValue(); got != 3 {
		t.Errorf("ArmorValue = %d, want 3", got)
	}
}

func TestEquipmentList_ShowsSlotsAndDurability(t *testing.T) {
	e := newTestEngine(t)
	e.State.Player.Inventory = []string{"iron_sword"}
	if _, err := e.Equip("iron sword"); err != nil {
		t.Fatalf("Equip failed: %v", err)
	}

	out, err := e.EquipmentList()
	if err != nil {
		t.Fatalf("EquipmentList failed: %v", err)
	}
	if !strings.Contains(out, "weapon: iron sword (20/20)") {
		t.Errorf("expected weapon line with durability, got %q", out)
	}
	if !strings.Contains(out, "armor: nothing") {
		t.Errorf("expected empty armor slot, got %q", out)
	}
}

func TestSlotFor_Mapping(t *testing.T) {
	tests := []struct {
		itemType types.ItemType
		slot     types.Slot
		ok       bool
	}{
		{types.ItemWeapon, types.SlotWeapon, true},
		{types.ItemArmor, types.SlotArmor, true},
		{types.ItemTool, "", false},
		{types.ItemConsumable, "", false},
		{types.ItemMaterial, "", false},
	}
	for _, tt := range tests {
		slot, ok := slotFor(&types.Item{Type: tt.itemType})
		if slot != tt.slot || ok != tt.ok {
			t.Errorf("slotFor(%s) = (%q, %v), want (%q, %v)", tt.itemType, slot, ok, tt.slot, tt.ok)
		}
	}
}
