package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/helixfall/internal/core"
)

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	RotateCW    key.Binding
	RotateCCW   key.Binding
	Start       key.Binding
	ToggleColor key.Binding
	Pause       key.Binding
	Restart     key.Binding
	Scores      key.Binding
	Screenshot  key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.RotateCCW, k.RotateCW, k.Start, k.ToggleColor, k.Pause, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.RotateCCW, k.RotateCW, k.Start, k.ToggleColor},
		{k.Pause, k.Restart, k.Scores, k.Screenshot, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		RotateCW: key.NewBinding(
			key.WithKeys("right", "d", "v"),
			key.WithHelp("→/d", "cw"),
		),
		RotateCCW: key.NewBinding(
			key.WithKeys("left", "a", "b"),
			key.WithHelp("←/a", "ccw"),
		),
		Start: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start"),
		),
		ToggleColor: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "color"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the bindings, for help rendering.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.keys.RotateCW):
		return core.ActionRotateCW, false
	case key.Matches(msg, km.keys.RotateCCW):
		return core.ActionRotateCCW, false
	case key.Matches(msg, km.keys.Start):
		return core.ActionStart, false
	case key.Matches(msg, km.keys.ToggleColor):
		return core.ActionToggleColor, false
	case key.Matches(msg, km.keys.Pause):
		return core.ActionPause, false
	case key.Matches(msg, km.keys.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, km.keys.Scores):
		return core.ActionScores, false
	}

	return core.ActionNone, false
}

// holdTicks is how long a rotation key counts as held after one press.
// Terminals report repeats but never releases, so holding is emulated.
const holdTicks = 8

// HeldKeys turns repeated key presses into level-triggered actions.
//
// The game accepts both rotation directions held at once (they cancel),
// but a terminal only auto-repeats the most recently pressed key, so
// there is no way to tell that the other one is still down. The latch
// therefore keeps a single direction: the last one pressed.
type HeldKeys struct {
	remaining map[core.Action]int
}

// NewHeldKeys creates an empty latch.
func NewHeldKeys() *HeldKeys {
	return &HeldKeys{remaining: make(map[core.Action]int)}
}

// Press marks a level action as held. Pressing one rotation direction
// releases the other, see HeldKeys.
func (h *HeldKeys) Press(a core.Action) {
	switch a {
	case core.ActionRotateCW:
		delete(h.remaining, core.ActionRotateCCW)
	case core.ActionRotateCCW:
		delete(h.remaining, core.ActionRotateCW)
	}
	h.remaining[a] = holdTicks
}

// Apply sets every held action on frame and ages the latch by one tick.
func (h *HeldKeys) Apply(frame *core.InputFrame) {
	for a, n := range h.remaining {
		frame.Set(a)
		if n <= 1 {
			delete(h.remaining, a)
		} else {
			h.remaining[a] = n - 1
		}
	}
}

// Release drops all held actions.
func (h *HeldKeys) Release() {
	clear(h.remaining)
}

// isLevelAction reports whether an action is held rather than pressed.
func isLevelAction(a core.Action) bool {
	return a == core.ActionRotateCW || a == core.ActionRotateCCW
}
