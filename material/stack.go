package material

import (
	"github.com/matforge/matforge/common"
)

// MoveDirection selects which way a slot moves on the stack.
type MoveDirection int

const (
	MoveUp MoveDirection = iota
	MoveDown
)

func (d MoveDirection) String() string {
	switch d {
	case MoveUp:
		return "Up"
	case MoveDown:
		return "Down"
	default:
		return "Unknown"
	}
}

// Stack is the ordered slot store plus the cursor state for the current
// editing session. Index 0 is the topmost layer. One Stack exists per active
// material; it is created when the material becomes active and discarded on
// switch. All access is single threaded.
type Stack struct {
	slots []Slot

	// SelectedIndex is -1 when nothing is selected, otherwise a valid index
	// into the slot sequence. Every operation keeps it in range.
	SelectedIndex int

	ActiveChannel  Channel
	ActiveTab      PropertyTab
	ChannelPreview bool

	// Node layout knobs consumed by the graph synchronizer.
	NodeWidth   float64
	NodeSpacing float64
}

func NewStack() *Stack {
	return &Stack{
		SelectedIndex: -1,
		ActiveChannel: ChannelColor,
		ActiveTab:     TabMaterial,
		NodeWidth:     300,
		NodeSpacing:   500,
	}
}

func (s *Stack) Len() int { return len(s.slots) }

// Slot returns the slot at index i.
func (s *Stack) Slot(i int) (*Slot, bool) {
	if i < 0 || i >= len(s.slots) {
		return nil, false
	}
	return &s.slots[i], true
}

// IndexOf returns the position of the slot holding token, or -1.
func (s *Stack) IndexOf(token string) int {
	for i := range s.slots {
		if s.slots[i].ID == token {
			return i
		}
	}
	return -1
}

// Tokens returns the slot tokens in stack order.
func (s *Stack) Tokens() []string {
	tokens := make([]string, len(s.slots))
	for i := range s.slots {
		tokens[i] = s.slots[i].ID
	}
	return tokens
}

// Slots returns a copy of the slot sequence in stack order.
func (s *Stack) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

func (s *Stack) hasToken(token string) bool {
	return s.IndexOf(token) != -1
}

// AddSlot appends a new slot with a fresh unique token and repositions it:
// with no prior selection the slot moves to the top of the stack, otherwise
// it lands directly below the selection. The new slot becomes selected and
// its index is returned.
func (s *Stack) AddSlot() (int, error) {
	token, err := newToken(s.hasToken)
	if err != nil {
		return -1, err
	}
	s.slots = append(s.slots, Slot{ID: token})

	if s.SelectedIndex < 0 {
		s.shift(len(s.slots)-1, 0)
		s.SelectedIndex = 0
		return 0, nil
	}

	to := common.Clamp(s.SelectedIndex+1, 0, len(s.slots)-1)
	s.shift(len(s.slots)-1, to)
	s.SelectedIndex = to
	return to, nil
}

// RemoveSlot deletes the slot at index i. The selection moves to the slot
// above the removed one, clamped into the shrunken store, and becomes -1 only
// when the store empties.
func (s *Stack) RemoveSlot(i int) error {
	if i < 0 || i >= len(s.slots) {
		return ErrSlotIndex
	}
	s.slots = append(s.slots[:i], s.slots[i+1:]...)
	if len(s.slots) == 0 {
		s.SelectedIndex = -1
		return nil
	}
	s.SelectedIndex = common.Clamp(i-1, 0, len(s.slots)-1)
	return nil
}

// MoveSlot swaps the slot at index i with its neighbor in the given
// direction. Moving the top slot up or the bottom slot down is a no-op, not
// an error; the bool reports whether a swap happened. The selection tracks
// the moved element.
func (s *Stack) MoveSlot(i int, dir MoveDirection) (bool, error) {
	if i < 0 || i >= len(s.slots) {
		return false, ErrSlotIndex
	}
	j := i - 1
	if dir == MoveDown {
		j = i + 1
	}
	if j < 0 || j >= len(s.slots) {
		return false, nil
	}
	s.slots[i], s.slots[j] = s.slots[j], s.slots[i]
	switch s.SelectedIndex {
	case i:
		s.SelectedIndex = j
	case j:
		s.SelectedIndex = i
	}
	return true, nil
}

// DuplicateSlot inserts a copy of the slot at index i, carrying its hidden
// flag and layer type but a freshly generated token, directly above it. The
// copy becomes selected and its index is returned.
func (s *Stack) DuplicateSlot(i int) (int, error) {
	if i < 0 || i >= len(s.slots) {
		return -1, ErrSlotIndex
	}
	token, err := newToken(s.hasToken)
	if err != nil {
		return -1, err
	}
	dup := s.slots[i]
	dup.ID = token
	s.slots = append(s.slots, Slot{})
	copy(s.slots[i+1:], s.slots[i:])
	s.slots[i] = dup
	s.SelectedIndex = i
	return i, nil
}

// Restore replaces the slot sequence and selection wholesale. Commands use
// it to roll back a slot mutation whose graph sync failed, so the store and
// graph never drift apart.
func (s *Stack) Restore(slots []Slot, selected int) {
	s.slots = make([]Slot, len(slots))
	copy(s.slots, slots)
	s.SelectedIndex = selected
}

// shift moves the slot at from to position to, sliding the slots between.
func (s *Stack) shift(from, to int) {
	if from == to {
		return
	}
	slot := s.slots[from]
	if from < to {
		copy(s.slots[from:], s.slots[from+1:to+1])
	} else {
		copy(s.slots[to+1:from+1], s.slots[to:from])
	}
	s.slots[to] = slot
}
