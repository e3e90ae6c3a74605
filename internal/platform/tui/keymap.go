package tui

import (
	"math/bits"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/faststack/internal/config"
	"github.com/vovakirdan/faststack/internal/control"
)

// KeyMapper translates Bubble Tea key messages to virtual keys using the
// configured bindings.
type KeyMapper struct {
	table    map[string]control.Key
	bindings config.KeyBindings
}

// NewKeyMapper builds a mapper from kb.
// Returns an error if a key is unbound or bound twice.
func NewKeyMapper(kb config.KeyBindings) (*KeyMapper, error) {
	table, err := kb.Lookup()
	if err != nil {
		return nil, err
	}
	return &KeyMapper{table: table, bindings: kb}, nil
}

// MapKey translates a key message to a virtual key.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (control.Key, bool) {
	k, ok := km.table[msg.String()]
	return k, ok
}

// GameHelp is the help line shown under the playfield.
type GameHelp struct {
	Move    key.Binding
	Drop    key.Binding
	Rotate  key.Binding
	Hold    key.Binding
	Restart key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (h GameHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.Move, h.Drop, h.Rotate, h.Hold, h.Restart, h.Quit}
}

// FullHelp returns key bindings for the full help view.
func (h GameHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.Move, h.Drop, h.Rotate},
		{h.Hold, h.Restart, h.Quit},
	}
}

// Help describes the bound keys for the bubbles help component.
func (km *KeyMapper) Help() GameHelp {
	kb := km.bindings
	binding := func(desc string, groups ...[]string) key.Binding {
		var keys, labels []string
		for _, g := range groups {
			keys = append(keys, g...)
			if len(g) > 0 {
				labels = append(labels, keyLabel(g[0]))
			}
		}
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(labels, "/"), desc))
	}

	return GameHelp{
		Move:    binding("move", kb.Left, kb.Right, kb.Down),
		Drop:    binding("drop", kb.Up),
		Rotate:  binding("rotate", kb.RotL, kb.RotR, kb.RotH),
		Hold:    binding("hold", kb.Hold),
		Restart: binding("restart", kb.Restart),
		Quit:    binding("quit", kb.Quit),
	}
}

// keyLabel returns a short printable name for a Bubble Tea key string.
func keyLabel(name string) string {
	switch name {
	case " ":
		return "space"
	case "left":
		return "←"
	case "right":
		return "→"
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return name
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
// Menus use fixed keys so a broken binding can never lock the user in.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// holdWindowMs is how long a movement key counts as held after its last key
// event. It must exceed the terminal autorepeat interval so a held key does
// not flicker between repeats.
const holdWindowMs = 60

// keyHolder turns the press-only events of a terminal into held key state.
// Movement keys stay down while autorepeat keeps refreshing them; every
// other key is down for exactly one tick per press.
type keyHolder struct {
	remaining [len(control.AllKeys)]int
	pending   control.Keys
	sent      control.Keys
	sustain   int
}

func newKeyHolder(msPerTick int) *keyHolder {
	return &keyHolder{sustain: (holdWindowMs + msPerTick - 1) / max(msPerTick, 1)}
}

func keyIndex(k control.Key) int {
	return bits.TrailingZeros16(uint16(k))
}

func repeatable(k control.Key) bool {
	return k == control.KeyLeft || k == control.KeyRight || k == control.KeyDown
}

// Press records a key event.
func (h *keyHolder) Press(k control.Key) {
	i := keyIndex(k)
	if repeatable(k) {
		h.remaining[i] = h.sustain
		return
	}
	if h.remaining[i] > 0 || h.sent.Has(k) {
		// Needs a released tick first or the controller never sees a new press.
		h.pending = h.pending.With(k)
		return
	}
	h.remaining[i] = 1
}

// Keys returns the keys held for the next tick. Call Advance after the tick.
func (h *keyHolder) Keys() control.Keys {
	var ks control.Keys
	for i, k := range control.AllKeys {
		if h.remaining[i] == 0 && h.pending.Has(k) && !h.sent.Has(k) {
			h.remaining[i] = 1
			h.pending &^= control.Keys(k)
		}
		if h.remaining[i] > 0 {
			ks = ks.With(k)
		}
	}
	h.sent = ks
	return ks
}

// Advance ages every held key by one tick.
func (h *keyHolder) Advance() {
	for i := range h.remaining {
		if h.remaining[i] > 0 {
			h.remaining[i]--
		}
	}
}

// Reset releases every key.
func (h *keyHolder) Reset() {
	*h = keyHolder{sustain: h.sustain}
}
