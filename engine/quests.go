package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/embercore/engine/state"
	"github.com/nathoo/embercore/types"
)

// AcceptQuest transitions an available quest to active. The quest giver
// must be in the current room.
func (e *Engine) AcceptQuest(questName string) (string, error) {
	quest := state.FindQuest(e.State, questName)
	if quest == nil {
		return "", fmt.Errorf("%w: no quest called %q", ErrNotFound, questName)
	}
	if quest.Status == types.QuestActive {
		return "", fmt.Errorf("%w: you already accepted %s", ErrAlreadyInState, quest.Name)
	}
	if quest.Status != types.QuestAvailable {
		return "", fmt.Errorf("%w: %s is not available right now", ErrInvalidState, quest.Name)
	}
	if e.State.Player.Level < quest.RequiredLevel {
		return "", fmt.Errorf("%w: %s requires level %d", ErrUnmetRequirement, quest.Name, quest.RequiredLevel)
	}
	if giver, ok := e.State.NPCs[quest.Giver]; !ok || giver.Room != e.State.Player.Location {
		return "", fmt.Errorf("%w: the quest giver is not here", ErrInvalidState)
	}

	quest.Status = types.QuestActive
	e.State.Player.ActiveQuests = append(e.State.Player.ActiveQuests, quest.ID)

	e.log.WithFields(logrus.Fields{
		"component": "quests",
		"quest":     quest.ID,
	}).Info("quest accepted")

	return fmt.Sprintf("You accept the quest: %s\n%s", quest.Name, quest.Description), nil
}

// CheckQuestProgress recomputes every active quest's requirements from
// current state (inventory counts, defeat counters, craft counters, and
// visited rooms) and promotes fully met quests to completed. Rewards are
// NOT paid here; completed quests must still be turned in to their giver.
// Pull-based recomputation makes this idempotent: calling it twice without
// intervening changes yields the same statuses.
func (e *Engine) CheckQuestProgress() (string, error) {
	if len(e.State.Player.ActiveQuests) == 0 {
		return "You have no active quests.", nil
	}

	var out []string
	ids := append([]string(nil), e.State.Player.ActiveQuests...)
	sort.Strings(ids)
	for _, id := range ids {
		quest, ok := e.State.Quests[id]
		if !ok || quest.Status != types.QuestActive {
			continue
		}
		if e.questMet(quest) {
			quest.Status = types.QuestCompleted
			out = append(out, fmt.Sprintf("Quest complete: %s! Report to %s for your reward.",
				quest.Name, e.npcName(quest.Giver)))
			e.log.WithFields(logrus.Fields{
				"component": "quests",
				"quest":     quest.ID,
			}).Info("quest objectives met")
			continue
		}
		out = append(out, e.questProgressLine(quest))
	}
	if len(out) == 0 {
		return "All active quests are complete — turn them in!", nil
	}
	return strings.Join(out, "\n"), nil
}

// TurnInQuest reports a completed quest to its giver and pays out rewards
// exactly once. Repeatable quests reset to available; others become
// terminal. Collect-quest items are handed over on turn-in.
func (e *Engine) TurnInQuest(questName string) (string, error) {
	quest := state.FindQuest(e.State, questName)
	if quest == nil {
		return "", fmt.Errorf("%w: no quest called %q", ErrNotFound, questName)
	}
	if quest.Status != types.QuestCompleted {
		return "", fmt.Errorf("%w: %s is not ready to turn in", ErrInvalidState, quest.Name)
	}
	giver, ok := e.State.NPCs[quest.Giver]
	if !ok || giver.Room != e.State.Player.Location {
		return "", fmt.Errorf("%w: report to %s to turn this in", ErrInvalidState, e.npcName(quest.Giver))
	}
	// Collect quests hand the gathered items over; validate before commit.
	if quest.Type == types.QuestCollect {
		for itemID, count := range quest.Requirements {
			if state.CountInInventory(e.State, itemID) < count {
				return "", fmt.Errorf("%w: you no longer have %d %s",
					ErrUnmetRequirement, count, e.itemName(itemID))
			}
		}
	}

	p := &e.State.Player
	if quest.Type == types.QuestCollect {
		for itemID, count := range quest.Requirements {
			state.RemoveItems(e.State, itemID, count)
		}
	}
	p.Experience += quest.ExperienceReward
	p.Gold += quest.GoldReward
	for itemID, count := range quest.RewardItems {
		for i := 0; i < count; i++ {
			state.AddItem(e.State, itemID)
		}
	}
	e.removeActiveQuest(quest.ID)
	if quest.Repeatable {
		quest.Status = types.QuestAvailable
	} else {
		quest.Status = types.QuestTurnedIn
	}

	out := []string{
		fmt.Sprintf("%s thanks you for completing %s.", giver.Name, quest.Name),
		fmt.Sprintf("You receive %d experience and %d gold.", quest.ExperienceReward, quest.GoldReward),
	}
	rewardIDs := make([]string, 0, len(quest.RewardItems))
	for id := range quest.RewardItems {
		rewardIDs = append(rewardIDs, id)
	}
	sort.Strings(rewardIDs)
	for _, id := range rewardIDs {
		out = append(out, fmt.Sprintf("You receive: %s x%d.", e.itemName(id), quest.RewardItems[id]))
	}
	for p.Experience >= p.ExperienceToNext {
		out = append(out, e.levelUp())
	}

	e.log.WithFields(logrus.Fields{
		"component": "quests",
		"quest":     quest.ID,
		"xp":        quest.ExperienceReward,
		"gold":      quest.GoldReward,
	}).Info("quest turned in")

	return strings.Join(out, "\n"), nil
}

// QuestLog lists quests by status. Read-only.
func (e *Engine) QuestLog() (string, error) {
	ids := make([]string, 0, len(e.State.Quests))
	for id := range e.State.Quests {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return "There are no quests in this world.", nil
	}
	sort.Strings(ids)

	var out []string
	for _, status := range []types.QuestStatus{
		types.QuestActive, types.QuestCompleted, types.QuestAvailable, types.QuestTurnedIn,
	} {
		for _, id := range ids {
			quest := e.State.Quests[id]
			if quest.Status != status {
				continue
			}
			out = append(out, fmt.Sprintf("[%s] %s — %s", strings.ToUpper(string(status)), quest.Name, quest.Description))
		}
	}
	return strings.Join(out, "\n"), nil
}

// questMet reports whether every requirement of a quest is currently
// satisfied, reading only from the state store.
func (e *Engine) questMet(quest *types.Quest) bool {
	for target, count := range quest.Requirements {
		if e.requirementProgress(quest.Type, target) < count {
			return false
		}
	}
	return true
}

// requirementProgress returns the current count for one requirement
// target, interpreted by quest type.
func (e *Engine) requirementProgress(questType types.QuestType, target string) int {
	switch questType {
	case types.QuestDefeat:
		return e.State.Defeated[target]
	case types.QuestCraft:
		return e.State.Crafted[target]
	case types.QuestExplore:
		if room, ok := e.State.Rooms[target]; ok && room.Visited {
			return 1
		}
		return 0
	default: // collect
		return state.CountInInventory(e.State, target)
	}
}

func (e *Engine) questProgressLine(quest *types.Quest) string {
	targets := make([]string, 0, len(quest.Requirements))
	for target := range quest.Requirements {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	var parts []string
	for _, target := range targets {
		parts = append(parts, fmt.Sprintf("%s %d/%d",
			target, e.requirementProgress(quest.Type, target), quest.Requirements[target]))
	}
	return fmt.Sprintf("%s: %s", quest.Name, strings.Join(parts, ", "))
}

func (e *Engine) removeActiveQuest(questID string) {
	for i, id := range e.State.Player.ActiveQuests {
		if id == questID {
			e.State.Player.ActiveQuests = append(e.State.Player.ActiveQuests[:i], e.State.Player.ActiveQuests[i+1:]...)
			return
		}
	}
}

func (e *Engine) npcName(id string) string {
	if npc, ok := e.State.NPCs[id]; ok {
		return npc.Name
	}
	return id
}
