// Package tui provides a Bubble Tea terminal UI for the Embercore game engine.
package tui

// History keeps recently entered commands for up/down recall. A cursor of
// -1 means fresh input; browsing walks backward through cmds and snaps
// back to fresh input past the newest entry.
type History struct {
	cmds   []string
	limit  int
	cursor int
}

// NewHistory creates a history buffer holding at most limit commands.
func NewHistory(limit int) *History {
	return &History{limit: limit, cursor: -1}
}

// Push records a submitted command. Repeating the previous command adds
// nothing; exceeding the limit drops the oldest entries.
func (h *History) Push(cmd string) {
	if n := len(h.cmds); n > 0 && h.cmds[n-1] == cmd {
		return
	}
	h.cmds = append(h.cmds, cmd)
	if len(h.cmds) > h.limit {
		h.cmds = h.cmds[len(h.cmds)-h.limit:]
	}
}

// Prev steps to the previous (older) entry, sticking at the oldest.
// Returns ("", false) when there is no history.
func (h *History) Prev() (string, bool) {
	if len(h.cmds) == 0 {
		return "", false
	}
	switch {
	case h.cursor < 0:
		h.cursor = len(h.cmds) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.cmds[h.cursor], true
}

// Next steps toward the newest entry. Past it, the cursor resets and
// ("", false) signals fresh input.
func (h *History) Next() (string, bool) {
	if h.cursor < 0 {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.cmds) {
		h.cursor = -1
		return "", false
	}
	return h.cmds[h.cursor], true
}

// ResetCursor returns to fresh input after a command is submitted.
func (h *History) ResetCursor() {
	h.cursor = -1
}
