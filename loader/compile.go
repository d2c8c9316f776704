package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/embercore/types"
)

// compile turns collected Lua tables into a typed state store and builds
// the starting player from the manifest.
func compile(m Manifest, coll *collector) (*types.GameState, error) {
	s := &types.GameState{
		Rooms:   map[string]*types.Room{},
		Items:   map[string]*types.Item{},
		NPCs:    map[string]*types.NPC{},
		Enemies: map[string]*types.Enemy{},
		Quests:  map[string]*types.Quest{},
		Recipes: map[string]*types.Recipe{},
	}

	for _, decl := range coll.rooms {
		if _, dup := s.Rooms[decl.id]; dup {
			return nil, fmt.Errorf("duplicate room %q", decl.id)
		}
		s.Rooms[decl.id] = compileRoom(decl)
	}
	for _, decl := range coll.items {
		if _, dup := s.Items[decl.id]; dup {
			return nil, fmt.Errorf("duplicate item %q", decl.id)
		}
		s.Items[decl.id] = compileItem(decl)
	}
	for _, decl := range coll.enemies {
		if _, dup := s.Enemies[decl.id]; dup {
			return nil, fmt.Errorf("duplicate enemy %q", decl.id)
		}
		s.Enemies[decl.id] = compileEnemy(decl)
	}
	for _, decl := range coll.npcs {
		if _, dup := s.NPCs[decl.id]; dup {
			return nil, fmt.Errorf("duplicate npc %q", decl.id)
		}
		s.NPCs[decl.id] = compileNPC(decl)
	}
	for _, decl := range coll.recipes {
		if _, dup := s.Recipes[decl.id]; dup {
			return nil, fmt.Errorf("duplicate recipe %q", decl.id)
		}
		s.Recipes[decl.id] = compileRecipe(decl)
	}
	for _, decl := range coll.quests {
		if _, dup := s.Quests[decl.id]; dup {
			return nil, fmt.Errorf("duplicate quest %q", decl.id)
		}
		s.Quests[decl.id] = compileQuest(decl)
	}

	// Cross-link: enemies and NPCs declare their room; rooms get the
	// back-references so room scans stay cheap.
	for _, enemy := range s.Enemies {
		if room, ok := s.Rooms[enemy.Room]; ok {
			room.Enemies = append(room.Enemies, enemy.ID)
		}
	}
	for _, npc := range s.NPCs {
		if room, ok := s.Rooms[npc.Room]; ok {
			room.NPCs = append(room.NPCs, npc.ID)
		}
	}

	s.Player = buildPlayer(m)
	return s, nil
}

func buildPlayer(m Manifest) types.Player {
	p := types.Player{
		Name:             m.Player.Name,
		MaxHealth:        m.Player.MaxHealth,
		Level:            1,
		ExperienceToNext: 100,
		Gold:             m.Player.Gold,
		Strength:         m.Player.Strength,
		Dexterity:        m.Player.Dexterity,
		Intelligence:     m.Player.Intelligence,
		Constitution:     m.Player.Constitution,
		Location:         m.Start,
		Inventory:        []string{},
		Equipment:        map[types.Slot]string{},
		KnownRecipes:     map[string]bool{},
		ActiveQuests:     []string{},
		StatusEffects:    map[types.StatusEffect]int{},
	}
	if p.Name == "" {
		p.Name = "Adventurer"
	}
	if p.MaxHealth <= 0 {
		p.MaxHealth = 100
	}
	p.Health = p.MaxHealth
	for _, id := range m.Player.KnownRecipes {
		p.KnownRecipes[id] = true
	}
	p.Inventory = append(p.Inventory, m.Player.Inventory...)
	return p
}

func compileRoom(decl rawDecl) *types.Room {
	return &types.Room{
		ID:          decl.id,
		Name:        tableString(decl.table, "name", decl.id),
		Description: tableString(decl.table, "description", ""),
		Exits:       tableStringMap(decl.table, "exits"),
		Items:       tableStringSlice(decl.table, "items"),
		SafeZone:    tableBool(decl.table, "safe_zone"),
	}
}

func compileItem(decl rawDecl) *types.Item {
	item := &types.Item{
		ID:            decl.id,
		Name:          tableString(decl.table, "name", decl.id),
		Description:   tableString(decl.table, "description", ""),
		Type:          types.ItemType(tableString(decl.table, "type", string(types.ItemMisc))),
		Damage:        tableInt(decl.table, "damage", 0),
		ArmorValue:    tableInt(decl.table, "armor", 0),
		HealingValue:  tableInt(decl.table, "healing", 0),
		Durability:    tableInt(decl.table, "durability", 0),
		MaxDurability: tableInt(decl.table, "max_durability", 0),
		Value:         tableInt(decl.table, "value", 0),
		Takeable:      tableBoolDefault(decl.table, "takeable", true),
	}
	// A declared durability without an explicit max implies a full item.
	if item.Durability > 0 && item.MaxDurability == 0 {
		item.MaxDurability = item.Durability
	}
	return item
}

func compileEnemy(decl rawDecl) *types.Enemy {
	enemy := &types.Enemy{
		ID:               decl.id,
		Name:             tableString(decl.table, "name", decl.id),
		Type:             tableString(decl.table, "type", decl.id),
		Description:      tableString(decl.table, "description", ""),
		MaxHealth:        tableInt(decl.table, "max_health", tableInt(decl.table, "health", 10)),
		Damage:           tableInt(decl.table, "damage", 1),
		Armor:            tableInt(decl.table, "armor", 0),
		Ability:          types.Ability(tableString(decl.table, "ability", "")),
		AggressionLevel:  tableInt(decl.table, "aggression", 5),
		ExperienceReward: tableInt(decl.table, "experience", 0),
		GoldReward:       tableInt(decl.table, "gold", 0),
		Loot:             tableStringSlice(decl.table, "loot"),
		Room:             tableString(decl.table, "room", ""),
		Alive:            true,
	}
	enemy.Health = tableInt(decl.table, "health", enemy.MaxHealth)
	return enemy
}

func compileNPC(decl rawDecl) *types.NPC {
	return &types.NPC{
		ID:          decl.id,
		Name:        tableString(decl.table, "name", decl.id),
		Description: tableString(decl.table, "description", ""),
		Room:        tableString(decl.table, "room", ""),
		Dialogue:    tableStringSlice(decl.table, "dialogue"),
		Quests:      tableStringSlice(decl.table, "quests"),
		Shop:        tableStringSlice(decl.table, "shop"),
	}
}

func compileRecipe(decl rawDecl) *types.Recipe {
	return &types.Recipe{
		ID:            decl.id,
		Name:          tableString(decl.table, "name", decl.id),
		Description:   tableString(decl.table, "description", ""),
		Materials:     tableIntMap(decl.table, "materials"),
		Tool:          tableString(decl.table, "tool", ""),
		RequiredLevel: tableInt(decl.table, "level", 1),
		Output:        tableString(decl.table, "output", decl.id),
		Duration:      tableInt(decl.table, "duration", 1),
	}
}

func compileQuest(decl rawDecl) *types.Quest {
	quest := &types.Quest{
		ID:               decl.id,
		Name:             tableString(decl.table, "name", decl.id),
		Description:      tableString(decl.table, "description", ""),
		Type:             types.QuestType(tableString(decl.table, "type", string(types.QuestCollect))),
		Giver:            tableString(decl.table, "giver", ""),
		Requirements:     tableIntMap(decl.table, "requirements"),
		RequiredLevel:    tableInt(decl.table, "level", 1),
		Repeatable:       tableBool(decl.table, "repeatable"),
		Status:           types.QuestAvailable,
	}
	if rewards, ok := decl.table.RawGetString("rewards").(*lua.LTable); ok {
		quest.ExperienceReward = tableInt(rewards, "experience", 0)
		quest.GoldReward = tableInt(rewards, "gold", 0)
		quest.RewardItems = tableIntMap(rewards, "items")
	}
	return quest
}

// --- Lua table accessors ---

func tableString(tbl *lua.LTable, key, fallback string) string {
	if v, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(v)
	}
	return fallback
}

func tableInt(tbl *lua.LTable, key string, fallback int) int {
	if v, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(v)
	}
	return fallback
}

func tableBool(tbl *lua.LTable, key string) bool {
	if v, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(v)
	}
	return false
}

func tableBoolDefault(tbl *lua.LTable, key string, fallback bool) bool {
	if v, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(v)
	}
	return fallback
}

func tableStringSlice(tbl *lua.LTable, key string) []string {
	inner, ok := tbl.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}
	var result []string
	inner.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			result = append(result, string(s))
		}
	})
	return result
}

func tableStringMap(tbl *lua.LTable, key string) map[string]string {
	inner, ok := tbl.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}
	result := map[string]string{}
	inner.ForEach(func(k, v lua.LValue) {
		ks, kok := k.(lua.LString)
		vs, vok := v.(lua.LString)
		if kok && vok {
			result[string(ks)] = string(vs)
		}
	})
	return result
}

func tableIntMap(tbl *lua.LTable, key string) map[string]int {
	inner, ok := tbl.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}
	result := map[string]int{}
	inner.ForEach(func(k, v lua.LValue) {
		ks, kok := k.(lua.LString)
		vn, vok := v.(lua.LNumber)
		if kok && vok {
			result[string(ks)] = int(vn)
		}
	})
	return result
}
