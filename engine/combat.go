package engine

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/embercore/engine/state"
	"github.com/nathoo/embercore/types"
)

// Combat balance constants. Damage is floored at 1 so every exchange makes
// progress; respawn health keeps defeat non-permanent.
const (
	minDamage            = 1
	damageVariance       = 2 // attack damage jitters by ±damageVariance
	poisonTickDamage     = 2 // per player action while poisoned
	poisonDuration       = 3 // rounds
	levelUpHealthGain    = 10
	respawnHealthDivisor = 4 // respawn with max_health / 4, at least 1
)

// StartCombat opens an encounter with an enemy in the current room and
// creates the session with the player acting first.
func (e *Engine) StartCombat(targetName string) (string, error) {
	if state.InCombat(e.State) {
		return "", fmt.Errorf("%w: you are already fighting", ErrInvalidState)
	}
	room := state.CurrentRoom(e.State)
	if room == nil {
		return "", fmt.Errorf("%w: you are nowhere recognizable", ErrNotFound)
	}
	enemy := state.FindEnemyInRoom(e.State, targetName)
	if enemy == nil {
		if targetName == "" {
			return "", fmt.Errorf("%w: there is nothing here to fight", ErrNotFound)
		}
		return "", fmt.Errorf("%w: there is no %q here", ErrNotFound, targetName)
	}
	if room.SafeZone {
		return "", fmt.Errorf("%w: combat is not allowed here", ErrInvalidState)
	}

	e.State.Combat = &types.CombatSession{EnemyID: enemy.ID}

	e.log.WithFields(logrus.Fields{
		"component": "combat",
		"enemy":     enemy.ID,
		"room":      room.ID,
	}).Info("combat started")

	e.syncRNG()
	return fmt.Sprintf("Combat begins! You face the %s (%d/%d HP).",
		enemy.Name, enemy.Health, enemy.MaxHealth), nil
}

// Attack resolves one full combat round: the player strikes, and if the
// enemy survives it retaliates in the same call. All outcome transitions
// (Victory, Defeat) happen here, exactly once.
func (e *Engine) Attack(targetName string) (string, error) {
	session := e.State.Combat
	if session == nil {
		return "", fmt.Errorf("%w: you are not in combat", ErrInvalidState)
	}
	enemy := e.State.Enemies[session.EnemyID]
	if targetName != "" && state.FindEnemyInRoom(e.State, targetName) != enemy {
		return "", fmt.Errorf("%w: you are locked in combat with the %s", ErrInvalidState, enemy.Name)
	}

	var out []string

	// Lingering effects bite before the player acts.
	if lines, dead := e.tickStatusEffects(); len(lines) > 0 {
		out = append(out, lines...)
		if dead {
			out = append(out, e.resolveDefeat(enemy)...)
			e.syncRNG()
			return strings.Join(out, "\n"), nil
		}
	}

	// Player strike: weapon + strength-derived bonus vs enemy armor.
	attack := e.DamageBonus() + strengthBonus(e.State.Player.Strength)
	damage := e.rollDamage(attack, enemy.Armor)
	enemy.Health -= damage
	if enemy.Health < 0 {
		enemy.Health = 0
	}
	out = append(out, fmt.Sprintf("You hit the %s with %s for %d damage. (%d/%d HP)",
		enemy.Name, e.weaponLabel(), damage, enemy.Health, enemy.MaxHealth))

	e.wearWeapon(&out)

	e.log.WithFields(logrus.Fields{
		"component":    "combat",
		"enemy":        enemy.ID,
		"damage":       damage,
		"enemy_health": enemy.Health,
		"round":        session.Round,
	}).Info("attack resolved")

	if enemy.Health == 0 {
		out = append(out, e.resolveVictory(enemy)...)
		e.syncRNG()
		return strings.Join(out, "\n"), nil
	}

	// Enemy retaliates synchronously.
	out = append(out, e.enemyTurn(enemy)...)
	if e.State.Player.Health == 0 {
		out = append(out, e.resolveDefeat(enemy)...)
	} else {
		session.Round++
	}
	e.State.TurnCount++
	e.syncRNG()
	return strings.Join(out, "\n"), nil
}

// Flee attempts to escape. Success odds follow the dexterity/aggression
// differential. Fleeing never transfers experience, gold, or items.
func (e *Engine) Flee() (string, error) {
	session := e.State.Combat
	if session == nil {
		return "", fmt.Errorf("%w: you are not in combat", ErrInvalidState)
	}
	enemy := e.State.Enemies[session.EnemyID]

	var out []string
	if lines, dead := e.tickStatusEffects(); len(lines) > 0 {
		out = append(out, lines...)
		if dead {
			out = append(out, e.resolveDefeat(enemy)...)
			e.syncRNG()
			return strings.Join(out, "\n"), nil
		}
	}

	if e.RNG.Chance(e.fleeChance(enemy)) {
		e.State.Combat = nil
		e.log.WithFields(logrus.Fields{
			"component": "combat",
			"enemy":     enemy.ID,
		}).Info("player fled")
		out = append(out, "You break away and escape!")
		e.State.TurnCount++
		e.syncRNG()
		return strings.Join(out, "\n"), nil
	}

	out = append(out, "You try to run but can't get away!")
	out = append(out, e.enemyTurn(enemy)...)
	if e.State.Player.Health == 0 {
		out = append(out, e.resolveDefeat(enemy)...)
	} else {
		session.Round++
	}
	e.State.TurnCount++
	e.syncRNG()
	return strings.Join(out, "\n"), nil
}

// UseItem consumes a consumable during combat. Quick item use is a free
// action: the enemy does not retaliate and lingering effects do not tick.
func (e *Engine) UseItem(name string) (string, error) {
	if e.State.Combat == nil {
		return "", fmt.Errorf("%w: you are not in combat", ErrInvalidState)
	}
	id := state.FindItemInInventory(e.State, name)
	if id == "" {
		return "", fmt.Errorf("%w: you don't have a %q", ErrNotFound, name)
	}
	item := e.State.Items[id]
	if item.Type != types.ItemConsumable || item.HealingValue <= 0 {
		return "", fmt.Errorf("%w: the %s is of no use in a fight", ErrInvalidState, item.Name)
	}

	p := &e.State.Player
	before := p.Health
	p.Health += item.HealingValue
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
	state.RemoveItem(e.State, id)

	e.log.WithFields(logrus.Fields{
		"component": "combat",
		"item":      id,
		"healed":    p.Health - before,
	}).Info("consumable used")

	e.syncRNG()
	return fmt.Sprintf("You use the %s and recover %d health. (%d/%d HP)",
		item.Name, p.Health-before, p.Health, p.MaxHealth), nil
}

// enemyTurn resolves the enemy's retaliation, including the special
// ability roll. Exactly one special effect can fire per enemy turn.
func (e *Engine) enemyTurn(enemy *types.Enemy) []string {
	session := e.State.Combat
	if session.EnemyStunned {
		session.EnemyStunned = false
		return []string{fmt.Sprintf("The %s is stunned and cannot act!", enemy.Name)}
	}

	var out []string
	p := &e.State.Player

	// Special ability chance scales with aggression (1..10 → 5%..50%).
	// Poison and stun land alongside the base attack; heal replaces it.
	if enemy.Ability != types.AbilityNone && e.RNG.Chance(enemy.AggressionLevel*5) {
		switch enemy.Ability {
		case types.AbilityPoison:
			p.StatusEffects[types.EffectPoisoned] = poisonDuration
			out = append(out, fmt.Sprintf("The %s poisons you!", enemy.Name))
		case types.AbilityStun:
			// The reckless blow leaves the enemy off balance: it must
			// skip its next retaliation to recover.
			session.EnemyStunned = true
			out = append(out, fmt.Sprintf("The %s throws itself at you in a frenzy!", enemy.Name))
		case types.AbilityHeal:
			heal := enemy.MaxHealth / 4
			enemy.Health += heal
			if enemy.Health > enemy.MaxHealth {
				enemy.Health = enemy.MaxHealth
			}
			out = append(out, fmt.Sprintf("The %s knits its wounds, recovering %d health. (%d/%d HP)",
				enemy.Name, heal, enemy.Health, enemy.MaxHealth))
			return out
		}
	}

	damage := e.rollDamage(enemy.Damage, e.ArmorValue())
	p.Health -= damage
	if p.Health < 0 {
		p.Health = 0
	}
	out = append(out, fmt.Sprintf("The %s attacks you for %d damage. (%d/%d HP)",
		enemy.Name, damage, p.Health, p.MaxHealth))

	e.log.WithFields(logrus.Fields{
		"component":     "combat",
		"enemy":         enemy.ID,
		"damage":        damage,
		"player_health": p.Health,
	}).Info("retaliation resolved")

	return out
}

// resolveVictory ends the session in the player's favor: rewards, loot,
// enemy removal, and level checks, all applied exactly once.
func (e *Engine) resolveVictory(enemy *types.Enemy) []string {
	p := &e.State.Player

	enemy.Alive = false
	state.RemoveEnemyFromRoom(e.State, enemy)
	e.State.Combat = nil
	e.State.Defeated[enemy.Type]++

	p.Experience += enemy.ExperienceReward
	p.Gold += enemy.GoldReward

	out := []string{
		fmt.Sprintf("You have defeated the %s!", enemy.Name),
		fmt.Sprintf("You gain %d experience and %d gold.", enemy.ExperienceReward, enemy.GoldReward),
	}

	for _, itemID := range enemy.Loot {
		state.AddItem(e.State, itemID)
		out = append(out, fmt.Sprintf("You found: %s!", e.itemName(itemID)))
	}

	for p.Experience >= p.ExperienceToNext {
		out = append(out, e.levelUp())
	}

	e.log.WithFields(logrus.Fields{
		"component": "combat",
		"enemy":     enemy.ID,
		"xp":        enemy.ExperienceReward,
		"gold":      enemy.GoldReward,
		"loot":      enemy.Loot,
	}).Info("enemy defeated")

	return out
}

// resolveDefeat ends the session against the player. Defeat is
// non-permanent: no inventory loss, respawn at the start room with a
// minimum health threshold.
func (e *Engine) resolveDefeat(enemy *types.Enemy) []string {
	p := &e.State.Player
	e.State.Combat = nil

	p.Health = p.MaxHealth / respawnHealthDivisor
	if p.Health < 1 {
		p.Health = 1
	}
	for effect := range p.StatusEffects {
		delete(p.StatusEffects, effect)
	}
	p.Location = e.Game.Start
	if room := state.CurrentRoom(e.State); room != nil {
		room.Visited = true
	}

	e.log.WithFields(logrus.Fields{
		"component": "combat",
		"enemy":     enemy.ID,
	}).Warn("player defeated")

	return []string{
		fmt.Sprintf("The %s strikes you down!", enemy.Name),
		"You wake up later, battered but alive.",
	}
}

// levelUp advances one level: threshold grows 1.5x, max health rises,
// attributes increase, and health refills.
func (e *Engine) levelUp() string {
	p := &e.State.Player
	p.Experience -= p.ExperienceToNext
	p.Level++
	p.ExperienceToNext = p.ExperienceToNext * 3 / 2
	p.MaxHealth += levelUpHealthGain
	p.Health = p.MaxHealth
	p.Strength++
	p.Dexterity++
	p.Intelligence++
	p.Constitution++

	e.log.WithFields(logrus.Fields{
		"component": "combat",
		"level":     p.Level,
	}).Info("level up")

	return fmt.Sprintf("Level up! You are now level %d. Your wounds close and your strength grows.", p.Level)
}

// tickStatusEffects applies damage-over-time at the start of a player
// combat action. Returns output lines and whether the player dropped to 0.
func (e *Engine) tickStatusEffects() ([]string, bool) {
	p := &e.State.Player
	rounds, poisoned := p.StatusEffects[types.EffectPoisoned]
	if !poisoned {
		return nil, false
	}

	p.Health -= poisonTickDamage
	if p.Health < 0 {
		p.Health = 0
	}
	if rounds <= 1 {
		delete(p.StatusEffects, types.EffectPoisoned)
	} else {
		p.StatusEffects[types.EffectPoisoned] = rounds - 1
	}

	lines := []string{fmt.Sprintf("Poison burns through you for %d damage. (%d/%d HP)",
		poisonTickDamage, p.Health, p.MaxHealth)}
	return lines, p.Health == 0
}

// rollDamage computes max(minDamage, attack - defense ± variance).
func (e *Engine) rollDamage(attack, defense int) int {
	damage := attack - defense
	if damage < minDamage {
		damage = minDamage
	}
	damage += e.RNG.Range(-damageVariance, damageVariance)
	if damage < minDamage {
		damage = minDamage
	}
	return damage
}

// fleeChance derives escape odds from the speed differential between the
// player and the enemy, clamped to keep both outcomes possible.
func (e *Engine) fleeChance(enemy *types.Enemy) int {
	chance := 40 + (e.State.Player.Dexterity+e.State.Player.Level-enemy.AggressionLevel)*4
	if chance < 5 {
		chance = 5
	}
	if chance > 90 {
		chance = 90
	}
	return chance
}

// strengthBonus converts raw strength into attack damage.
func strengthBonus(strength int) int {
	bonus := strength / 3
	if bonus < 1 {
		bonus = 1
	}
	return bonus
}

// wearWeapon degrades the equipped weapon by one point per swing and
// reports when it breaks.
func (e *Engine) wearWeapon(out *[]string) {
	id, ok := e.State.Player.Equipment[types.SlotWeapon]
	if !ok {
		return
	}
	item, ok := e.State.Items[id]
	if !ok || item.MaxDurability == 0 || item.Durability <= 0 {
		return
	}
	item.Durability--
	if item.Durability == 0 {
		*out = append(*out, fmt.Sprintf("Your %s breaks!", item.Name))
	}
}

// weaponLabel names what the player is attacking with.
func (e *Engine) weaponLabel() string {
	if id, ok := e.State.Player.Equipment[types.SlotWeapon]; ok {
		if item, found := e.State.Items[id]; found {
			if item.MaxDurability == 0 || item.Durability > 0 {
				return "your " + item.Name
			}
		}
	}
	return "your fists"
}
