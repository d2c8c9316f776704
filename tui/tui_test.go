package tui

import (
	"strings"
	"testing"

	"github.com/nathoo/embercore/engine"
	"github.com/nathoo/embercore/parser"
	"github.com/nathoo/embercore/types"
)

// testState builds a minimal world for TUI testing.
func testState() *types.GameState {
	return &types.GameState{
		Player: types.Player{
			Name: "Tester", Health: 30, MaxHealth: 30,
			Level: 1, ExperienceToNext: 100,
			Strength: 6, Dexterity: 5,
		},
		Rooms: map[string]*types.Room{
			"hall": {
				ID: "hall", Name: "Grand Hall",
				Description: "A grand hall.",
				Exits:       map[string]string{"north": "garden"},
				SafeZone:    true,
			},
			"garden": {
				ID: "garden", Name: "Garden",
				Description: "A peaceful garden.",
				Exits:       map[string]string{"south": "hall"},
			},
		},
		RNGSeed: 42,
	}
}

func testGame() types.GameDef {
	return types.GameDef{
		Title: "Test Game", Author: "Test", Version: "1.0",
		Start: "hall", Intro: "Welcome to the test.",
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	eng := engine.New(testGame(), testState(), nil)
	return New(eng)
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"You see: iron ore, wolf pelt.", kindYouSee},
		{"Exits: north, south.", kindExits},
		{"[Game saved to test.]", kindSystem},
		{"You don't have a \"sword\"", kindError},
		{"You can't go that way", kindError},
		{"A grand hall with stone walls.", kindRoomDesc},
		{"Elder Maren says: \"Welcome, traveler.\"", kindDialogue},
		{"You hit the gray wolf with your fists for 3 damage. (7/10 HP)", kindCombat},
		{"Combat begins! You face the gray wolf (10/10 HP).", kindCombat},
		{"Poison burns through you for 2 damage. (28/50 HP)", kindCombat},
		{"Level up! You are now level 4. Your wounds close and your strength grows.", kindReward},
		{"You gain 15 experience and 2 gold.", kindReward},
		{"You found: wolf pelt!", kindReward},
		{"Quest complete: Pelts for Winter! Report to Elder Maren for your reward.", kindReward},
		{"", kindRoomDesc},
	}
	for _, tt := range tests {
		got := classifyLine(tt.line)
		if got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 80, "short"},
		{"hello world", 5, "hello\nworld"},
		{"The great hall stretches before you with its vaulted ceiling.", 30,
			"The great hall stretches\nbefore you with its vaulted\nceiling."},
		{"", 80, ""},
		{"a b c d e", 3, "a b\nc d\ne"},
	}
	for _, tt := range tests {
		got := wordWrap(tt.text, tt.width)
		if got != tt.want {
			t.Errorf("wordWrap(%q, %d) =\n  %q\nwant:\n  %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestExecute_Look(t *testing.T) {
	m := newTestModel(t)

	lines := m.execute(parser.Command{Verb: "look"})
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "A grand hall.") {
		t.Errorf("expected room description, got %q", joined)
	}
}

func TestExecute_ErrorBecomesGameText(t *testing.T) {
	m := newTestModel(t)

	lines := m.execute(parser.Command{Verb: "go", Arg: "west"})
	joined := strings.Join(lines, "\n")
	if strings.Contains(joined, "not found:") {
		t.Error("sentinel prefix should not leak into player output")
	}
	if !strings.Contains(joined, "You can't go that way") {
		t.Errorf("expected friendly error, got %q", joined)
	}
}

func TestExecute_UnknownVerb(t *testing.T) {
	m := newTestModel(t)

	lines := m.execute(parser.Command{Verb: "dance"})
	if len(lines) == 0 || !strings.Contains(lines[0], "I don't understand") {
		t.Errorf("expected unknown verb message, got %v", lines)
	}
}

func TestHistory_PushAndPrev(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("go north")
	h.Push("take key")

	prev, ok := h.Prev()
	if !ok || prev != "take key" {
		t.Errorf("expected 'take key', got %q (ok=%v)", prev, ok)
	}

	prev, ok = h.Prev()
	if !ok || prev != "go north" {
		t.Errorf("expected 'go north', got %q (ok=%v)", prev, ok)
	}

	prev, ok = h.Prev()
	if !ok || prev != "look" {
		t.Errorf("expected 'look', got %q (ok=%v)", prev, ok)
	}

	// At oldest, stays there.
	prev, ok = h.Prev()
	if !ok || prev != "look" {
		t.Errorf("expected 'look' at boundary, got %q (ok=%v)", prev, ok)
	}
}

func TestHistory_Next(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("go north")

	h.Prev() // "go north"
	h.Prev() // "look"

	next, ok := h.Next()
	if !ok || next != "go north" {
		t.Errorf("expected 'go north', got %q (ok=%v)", next, ok)
	}

	_, ok = h.Next()
	if ok {
		t.Error("expected false when past newest entry")
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(5)
	if _, ok := h.Prev(); ok {
		t.Error("expected false on empty history")
	}
	if _, ok := h.Next(); ok {
		t.Error("expected false on empty history")
	}
}

func TestHistory_MaxSize(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c") // "a" evicted

	prev, _ := h.Prev()
	if prev != "c" {
		t.Errorf("expected 'c', got %q", prev)
	}
	prev, _ = h.Prev()
	if prev != "b" {
		t.Errorf("expected 'b', got %q", prev)
	}
	// "a" is gone.
	prev, _ = h.Prev()
	if prev != "b" {
		t.Errorf("expected 'b' at boundary, got %q", prev)
	}
}

func TestHistory_NoDuplicates(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("look") // skipped
	h.Push("look") // skipped

	if len(h.cmds) != 1 {
		t.Errorf("expected 1 entry, got %d", len(h.cmds))
	}
}

func TestHandleMeta_Quit(t *testing.T) {
	m := newTestModel(t)

	_, quit := m.handleMeta("/quit")
	if !quit {
		t.Error("expected quit=true for /quit")
	}

	_, quit = m.handleMeta("/exit")
	if !quit {
		t.Error("expected quit=true for /exit")
	}
}

func TestHandleMeta_Save(t *testing.T) {
	m := newTestModel(t)
	m.saveDir = t.TempDir()

	output, quit := m.handleMeta("/save test")
	if quit {
		t.Error("save should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Game saved") {
		t.Errorf("expected save confirmation, got %v", output)
	}
}

func TestHandleMeta_LoadNonexistent(t *testing.T) {
	m := newTestModel(t)
	m.saveDir = t.TempDir()

	output, quit := m.handleMeta("/load nonexistent")
	if quit {
		t.Error("load should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Load failed") {
		t.Errorf("expected load failure, got %v", output)
	}
}

func TestHandleMeta_Help(t *testing.T) {
	m := newTestModel(t)

	output, quit := m.handleMeta("/help")
	if quit {
		t.Error("help should not quit")
	}

	joined := strings.Join(output, "\n")
	for _, expected := range []string{"/save", "/load", "/quit", "attack", "craft", "quests"} {
		if !strings.Contains(joined, expected) {
			t.Errorf("expected %q in help output", expected)
		}
	}
}

func TestHandleMeta_Unknown(t *testing.T) {
	m := newTestModel(t)

	output, quit := m.handleMeta("/bogus")
	if quit {
		t.Error("unknown command should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Unknown command") {
		t.Errorf("expected unknown command message, got %v", output)
	}
}
