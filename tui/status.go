package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/embercore/engine/state"
	"github.com/nathoo/embercore/types"
)

// renderStatusBar produces a full-width inverted status line showing the
// player's vitals on the left and room, exits, and turn count on the right.
func (m Model) renderStatusBar() string {
	s := m.engine.State
	p := s.Player

	left := fmt.Sprintf(" HP %d/%d | Lv %d (%d/%d XP) | %dg",
		p.Health, p.MaxHealth, p.Level, p.Experience, p.ExperienceToNext, p.Gold)
	if len(p.StatusEffects) > 0 {
		var effects []string
		for effect := range p.StatusEffects {
			effects = append(effects, string(effect))
		}
		sort.Strings(effects)
		left += " | " + strings.Join(effects, ",")
	}
	if s.Combat != nil {
		if enemy, ok := s.Enemies[s.Combat.EnemyID]; ok {
			left += fmt.Sprintf(" | FIGHTING %s %d/%d", enemy.Name, enemy.Health, enemy.MaxHealth)
		}
	}

	right := fmt.Sprintf("%s | Exits: %s | T:%d ",
		roomName(s), exitList(s), s.TurnCount)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

func roomName(s *types.GameState) string {
	if room := state.CurrentRoom(s); room != nil {
		return room.Name
	}
	return s.Player.Location
}

func exitList(s *types.GameState) string {
	room := state.CurrentRoom(s)
	if room == nil {
		return ""
	}
	dirs := make([]string, 0, len(room.Exits))
	for dir := range room.Exits {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return strings.Join(dirs, ",")
}
