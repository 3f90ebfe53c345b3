package material

import (
	"testing"
)

func addSlots(t *testing.T, s *Stack, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, err := s.AddSlot(); err != nil {
			t.Fatalf("AddSlot failed: %v", err)
		}
	}
}

func TestAddSlot(t *testing.T) {
	t.Run("no_selection_inserts_at_top", func(t *testing.T) {
		s := NewStack()
		idx, err := s.AddSlot()
		if err != nil {
			t.Fatalf("AddSlot failed: %v", err)
		}
		if idx != 0 {
			t.Fatalf("expected new index 0, got %d", idx)
		}
		if s.SelectedIndex != 0 {
			t.Fatalf("expected selection 0, got %d", s.SelectedIndex)
		}
		if s.Len() != 1 {
			t.Fatalf("expected 1 slot, got %d", s.Len())
		}
	})

	t.Run("inserts_below_selection", func(t *testing.T) {
		cases := []struct {
			name     string
			prior    int
			selected int
			wantIdx  int
		}{
			{"below_first_of_three", 3, 0, 1},
			{"below_middle", 3, 1, 2},
			{"below_last", 3, 2, 3},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				s := NewStack()
				addSlots(t, s, c.prior)
				s.SelectedIndex = c.selected
				before, _ := s.Slot(c.selected)
				beforeID := before.ID

				idx, err := s.AddSlot()
				if err != nil {
					t.Fatalf("AddSlot failed: %v", err)
				}
				if idx != c.wantIdx {
					t.Fatalf("expected new index %d, got %d", c.wantIdx, idx)
				}
				if s.SelectedIndex != c.wantIdx {
					t.Fatalf("expected selection %d, got %d", c.wantIdx, s.SelectedIndex)
				}
				if s.Len() != c.prior+1 {
					t.Fatalf("expected %d slots, got %d", c.prior+1, s.Len())
				}
				// The previously selected slot stays directly above the new one.
				prev, _ := s.Slot(c.wantIdx - 1)
				if prev.ID != beforeID {
					t.Fatalf("expected slot %s above the new slot, got %s", beforeID, prev.ID)
				}
			})
		}
	})
}

func TestRemoveSlot(t *testing.T) {
	cases := []struct {
		name         string
		count        int
		selected     int
		remove       int
		wantErr      bool
		wantLen      int
		wantSelected int
	}{
		{"remove_last_selected", 3, 2, 2, false, 2, 1},
		{"remove_first", 3, 0, 0, false, 2, 0},
		{"remove_middle", 3, 1, 1, false, 2, 0},
		{"remove_only", 1, 0, 0, false, 0, -1},
		{"out_of_bounds_high", 2, 1, 2, true, 2, 1},
		{"out_of_bounds_negative", 2, 1, -1, true, 2, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewStack()
			addSlots(t, s, c.count)
			s.SelectedIndex = c.selected

			err := s.RemoveSlot(c.remove)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error for index %d", c.remove)
				}
				if err != ErrSlotIndex {
					t.Fatalf("expected ErrSlotIndex, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("RemoveSlot failed: %v", err)
			}
			if s.Len() != c.wantLen {
				t.Fatalf("expected %d slots, got %d", c.wantLen, s.Len())
			}
			if s.SelectedIndex != c.wantSelected {
				t.Fatalf("expected selection %d, got %d", c.wantSelected, s.SelectedIndex)
			}
		})
	}
}

func TestRemoveSlotSelectionStaysInRange(t *testing.T) {
	s := NewStack()
	addSlots(t, s, 6)
	for s.Len() > 0 {
		if err := s.RemoveSlot(s.Len() - 1); err != nil {
			t.Fatalf("RemoveSlot failed: %v", err)
		}
		if s.Len() == 0 {
			if s.SelectedIndex != -1 {
				t.Fatalf("expected selection -1 on empty stack, got %d", s.SelectedIndex)
			}
		} else if s.SelectedIndex < 0 || s.SelectedIndex >= s.Len() {
			t.Fatalf("selection %d out of range for %d slots", s.SelectedIndex, s.Len())
		}
	}
}

func TestMoveSlot(t *testing.T) {
	t.Run("boundary_no_ops", func(t *testing.T) {
		cases := []struct {
			name  string
			index int
			dir   MoveDirection
		}{
			{"top_up", 0, MoveUp},
			{"bottom_down", 2, MoveDown},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				s := NewStack()
				addSlots(t, s, 3)
				s.SelectedIndex = c.index
				before := s.Tokens()

				moved, err := s.MoveSlot(c.index, c.dir)
				if err != nil {
					t.Fatalf("MoveSlot failed: %v", err)
				}
				if moved {
					t.Fatalf("expected boundary no-op")
				}
				after := s.Tokens()
				for i := range before {
					if before[i] != after[i] {
						t.Fatalf("order changed at %d: %s != %s", i, before[i], after[i])
					}
				}
				if s.SelectedIndex != c.index {
					t.Fatalf("selection changed to %d", s.SelectedIndex)
				}
			})
		}
	})

	t.Run("selection_tracks_moved_slot", func(t *testing.T) {
		s := NewStack()
		addSlots(t, s, 3)
		s.SelectedIndex = 1
		token := s.Tokens()[1]

		moved, err := s.MoveSlot(1, MoveUp)
		if err != nil {
			t.Fatalf("MoveSlot failed: %v", err)
		}
		if !moved {
			t.Fatalf("expected swap")
		}
		if s.SelectedIndex != 0 {
			t.Fatalf("expected selection 0, got %d", s.SelectedIndex)
		}
		if s.Tokens()[0] != token {
			t.Fatalf("moved slot is not at index 0")
		}
	})

	t.Run("out_of_bounds", func(t *testing.T) {
		s := NewStack()
		addSlots(t, s, 2)
		if _, err := s.MoveSlot(5, MoveUp); err != ErrSlotIndex {
			t.Fatalf("expected ErrSlotIndex, got %v", err)
		}
	})
}

func TestDuplicateSlot(t *testing.T) {
	s := NewStack()
	addSlots(t, s, 3)
	s.SelectedIndex = 1
	source, _ := s.Slot(1)
	source.Hidden = true
	sourceID := source.ID

	idx, err := s.DuplicateSlot(1)
	if err != nil {
		t.Fatalf("DuplicateSlot failed: %v", err)
	}
	if idx != 1 {
		t.Fatalf("expected copy at index 1, got %d", idx)
	}
	if s.Len() != 4 {
		t.Fatalf("expected 4 slots, got %d", s.Len())
	}
	if s.SelectedIndex != 1 {
		t.Fatalf("expected selection 1, got %d", s.SelectedIndex)
	}
	dup, _ := s.Slot(1)
	orig, _ := s.Slot(2)
	if orig.ID != sourceID {
		t.Fatalf("source slot not directly below the copy")
	}
	if dup.ID == sourceID {
		t.Fatalf("copy shares the source token")
	}
	if !dup.Hidden {
		t.Fatalf("copy should carry the hidden flag")
	}
}

// TestStackScenarios walks the exact sequences from the stack's contract,
// checking order and selection at each step.
func TestStackScenarios(t *testing.T) {
	t.Run("add_add_move", func(t *testing.T) {
		s := NewStack()

		idx, err := s.AddSlot()
		if err != nil || idx != 0 || s.SelectedIndex != 0 {
			t.Fatalf("first add: idx=%d sel=%d err=%v", idx, s.SelectedIndex, err)
		}
		a := s.Tokens()[0]

		idx, err = s.AddSlot()
		if err != nil || idx != 1 || s.SelectedIndex != 1 {
			t.Fatalf("second add: idx=%d sel=%d err=%v", idx, s.SelectedIndex, err)
		}
		b := s.Tokens()[1]
		if got := s.Tokens(); got[0] != a || got[1] != b {
			t.Fatalf("expected [A B], got %v", got)
		}

		moved, err := s.MoveSlot(1, MoveUp)
		if err != nil || !moved {
			t.Fatalf("move failed: moved=%v err=%v", moved, err)
		}
		if got := s.Tokens(); got[0] != b || got[1] != a {
			t.Fatalf("expected [B A], got %v", got)
		}
		if s.SelectedIndex != 0 {
			t.Fatalf("expected selection 0, got %d", s.SelectedIndex)
		}
	})

	t.Run("remove_last_of_three", func(t *testing.T) {
		s := NewStack()
		addSlots(t, s, 3)
		s.SelectedIndex = 2
		a, b := s.Tokens()[0], s.Tokens()[1]

		if err := s.RemoveSlot(2); err != nil {
			t.Fatalf("RemoveSlot failed: %v", err)
		}
		if got := s.Tokens(); len(got) != 2 || got[0] != a || got[1] != b {
			t.Fatalf("expected [A B], got %v", got)
		}
		if s.SelectedIndex != 1 {
			t.Fatalf("expected selection 1, got %d", s.SelectedIndex)
		}
	})
}

func TestTokenUniqueness(t *testing.T) {
	s := NewStack()
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		if _, err := s.AddSlot(); err != nil {
			t.Fatalf("AddSlot %d failed: %v", i, err)
		}
	}
	for _, token := range s.Tokens() {
		if seen[token] {
			t.Fatalf("duplicate token %s", token)
		}
		seen[token] = true
	}
}

func TestRestore(t *testing.T) {
	s := NewStack()
	addSlots(t, s, 3)
	slots := s.Slots()
	selected := s.SelectedIndex

	if _, err := s.AddSlot(); err != nil {
		t.Fatalf("AddSlot failed: %v", err)
	}
	s.Restore(slots, selected)

	if s.Len() != 3 {
		t.Fatalf("expected 3 slots after restore, got %d", s.Len())
	}
	if s.SelectedIndex != selected {
		t.Fatalf("expected selection %d, got %d", selected, s.SelectedIndex)
	}
	for i, slot := range s.Slots() {
		if slot.ID != slots[i].ID {
			t.Fatalf("slot %d: expected %s, got %s", i, slots[i].ID, slot.ID)
		}
	}
}
