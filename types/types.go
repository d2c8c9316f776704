// Package types defines the shared data structures for the Embercore engine.
// This package contains only type definitions, no logic and no methods.
package types

// ItemType classifies an item template.
type ItemType string

const (
	ItemWeapon     ItemType = "weapon"
	ItemArmor      ItemType = "armor"
	ItemTool       ItemType = "tool"
	ItemMaterial   ItemType = "material"
	ItemConsumable ItemType = "consumable"
	ItemKey        ItemType = "key"
	ItemTreasure   ItemType = "treasure"
	ItemMisc       ItemType = "misc"
)

// Slot is an equipment slot name. A slot holds at most one item.
type Slot string

const (
	SlotWeapon Slot = "weapon"
	SlotArmor  Slot = "armor"
	SlotHelmet Slot = "helmet"
	SlotBoots  Slot = "boots"
	SlotGloves Slot = "gloves"
	SlotRing   Slot = "ring"
	SlotAmulet Slot = "amulet"
)

// Ability is an enemy special ability. At most one fires per enemy turn,
// dispatched by a single switch in the combat engine.
type Ability string

const (
	AbilityNone   Ability = ""
	AbilityPoison Ability = "poison"
	AbilityStun   Ability = "stun"
	AbilityHeal   Ability = "heal"
)

// StatusEffect is a lingering condition on the player.
type StatusEffect string

const (
	EffectPoisoned StatusEffect = "poisoned"
)

// QuestType determines which counter a quest's requirements track.
type QuestType string

const (
	QuestCollect QuestType = "collect"
	QuestDefeat  QuestType = "defeat"
	QuestCraft   QuestType = "craft"
	QuestExplore QuestType = "explore"
)

// QuestStatus is the lifecycle state of a quest. Transitions are monotonic
// (Available → Active → Completed → TurnedIn) except that repeatable quests
// reset to Available after turn-in.
type QuestStatus string

const (
	QuestAvailable QuestStatus = "available"
	QuestActive    QuestStatus = "active"
	QuestCompleted QuestStatus = "completed"
	QuestTurnedIn  QuestStatus = "turned_in"
)

// Item is a static item template with optional durability. A MaxDurability
// of zero means the item does not degrade. Durability is clamped to
// [0, MaxDurability]; an item at zero durability cannot be used or equipped.
type Item struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Type          ItemType `json:"type"`
	Damage        int      `json:"damage,omitempty"`
	ArmorValue    int      `json:"armor_value,omitempty"`
	HealingValue  int      `json:"healing_value,omitempty"`
	Durability    int      `json:"durability,omitempty"`
	MaxDurability int      `json:"max_durability,omitempty"`
	Value         int      `json:"value,omitempty"`
	Takeable      bool     `json:"takeable"`
}

// Enemy is a hostile encounter target. Health 0 is terminal: the enemy is
// removed from its room and its loot granted.
type Enemy struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Description      string   `json:"description"`
	Health           int      `json:"health"`
	MaxHealth        int      `json:"max_health"`
	Damage           int      `json:"damage"`
	Armor            int      `json:"armor"`
	Ability          Ability  `json:"ability,omitempty"`
	AggressionLevel  int      `json:"aggression_level"` // 1..10
	ExperienceReward int      `json:"experience_reward"`
	GoldReward       int      `json:"gold_reward"`
	Loot             []string `json:"loot,omitempty"` // item IDs dropped on defeat
	Room             string   `json:"room"`
	Alive            bool     `json:"alive"`
}

// Recipe is a crafting transformation. Materials maps item ID to required
// quantity; the map never holds zero or negative quantities.
type Recipe struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Materials     map[string]int `json:"materials"`
	Tool          string         `json:"tool,omitempty"` // required in inventory, not consumed
	RequiredLevel int            `json:"required_level"`
	Output        string         `json:"output"`
	Duration      int            `json:"duration"` // minutes, display only
}

// Quest is a trackable objective. Requirements maps a target ID (item,
// enemy type, crafted item, or room) to a count.
type Quest struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	Type             QuestType      `json:"type"`
	Giver            string         `json:"giver"` // NPC ID for accept and turn-in
	Requirements     map[string]int `json:"requirements"`
	RewardItems      map[string]int `json:"reward_items,omitempty"`
	ExperienceReward int            `json:"experience_reward"`
	GoldReward       int            `json:"gold_reward"`
	RequiredLevel    int            `json:"required_level"`
	Repeatable       bool           `json:"repeatable"`
	Status           QuestStatus    `json:"status"`
}

// NPC is a friendly character that can give quests, talk, and trade.
// A non-empty Shop makes the NPC a vendor.
type NPC struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Room        string   `json:"room"`
	Dialogue    []string `json:"dialogue,omitempty"`
	Quests      []string `json:"quests,omitempty"` // quest IDs offered
	Shop        []string `json:"shop,omitempty"`   // item IDs for sale
}

// Room is a location in the world.
type Room struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Exits       map[string]string `json:"exits,omitempty"` // direction → room ID
	Items       []string          `json:"items,omitempty"`
	NPCs        []string          `json:"npcs,omitempty"`
	Enemies     []string          `json:"enemies,omitempty"`
	SafeZone    bool              `json:"safe_zone,omitempty"`
	Visited     bool              `json:"visited,omitempty"`
}

// Player is the controlled character. Inventory is a multiset of item IDs;
// an item occupying an equipment slot is removed from Inventory while
// equipped, so it is never counted twice.
type Player struct {
	Name             string               `json:"name"`
	Health           int                  `json:"health"`
	MaxHealth        int                  `json:"max_health"`
	Level            int                  `json:"level"`
	Experience       int                  `json:"experience"`
	ExperienceToNext int                  `json:"experience_to_next"`
	Gold             int                  `json:"gold"`
	Strength         int                  `json:"strength"`
	Dexterity        int                  `json:"dexterity"`
	Intelligence     int                  `json:"intelligence"`
	Constitution     int                  `json:"constitution"`
	Location         string               `json:"location"`
	Inventory        []string             `json:"inventory"`
	Equipment        map[Slot]string      `json:"equipment"`
	KnownRecipes     map[string]bool      `json:"known_recipes"`
	ActiveQuests     []string             `json:"active_quests"`
	StatusEffects    map[StatusEffect]int `json:"status_effects"` // effect → remaining rounds
}

// CombatSession is the transient state of one active encounter. It exists
// only between StartCombat and victory, defeat, or a successful flee. The
// player always acts first; the enemy's turn resolves synchronously inside
// the same call.
type CombatSession struct {
	EnemyID      string `json:"enemy_id"`
	Round        int    `json:"round"`
	EnemyStunned bool   `json:"enemy_stunned"` // enemy skips its next retaliation
}

// GameState is the complete mutable state store. The engine owns it
// exclusively; combat, crafting, and quest operations borrow it for the
// duration of one call and leave it consistent before returning.
type GameState struct {
	Player  Player             `json:"player"`
	Rooms   map[string]*Room   `json:"rooms"`
	Items   map[string]*Item   `json:"items"`
	NPCs    map[string]*NPC    `json:"npcs"`
	Enemies map[string]*Enemy  `json:"enemies"`
	Quests  map[string]*Quest  `json:"quests"`
	Recipes map[string]*Recipe `json:"recipes"`

	Combat *CombatSession `json:"combat,omitempty"`

	// Running counters consulted by pull-based quest tracking.
	Defeated map[string]int `json:"defeated"` // enemy type → kill count
	Crafted  map[string]int `json:"crafted"`  // item ID → craft count

	TurnCount   int   `json:"turn_count"`
	RNGSeed     int64 `json:"rng_seed"`
	RNGPosition int64 `json:"rng_position"`
}

// GameDef holds game metadata from the manifest.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Start   string // starting room ID
	Intro   string
}
