package main

import (
	"github.com/ebitenui/ebitenui/widget"
)

// LayerRow is a small value used by the UI list to represent one layer slot.
type LayerRow struct {
	Index int
	Label string
}

// LayerPanel holds the layer list widget and the callbacks the editor wires
// into the stack commands.
type LayerPanel struct {
	list    *widget.List
	entries []any

	onSelect       func(idx int)
	onAddMaterial  func()
	onAddPaint     func()
	onAddDecal     func()
	onMoveUp       func()
	onMoveDown     func()
	onDuplicate    func()
	onDelete       func()
	onToggleHidden func()

	// suppressEvents, when true, causes the selection handler to avoid
	// interpreting programmatic selections as user clicks.
	suppressEvents bool
}

func NewLayerPanel() *LayerPanel {
	return &LayerPanel{}
}

func (lp *LayerPanel) SetRows(rows []LayerRow) {
	if lp == nil || lp.list == nil {
		return
	}
	// Suppress selection events while we populate the list.
	lp.suppressEvents = true
	entries := make([]any, len(rows))
	for i, row := range rows {
		entries[i] = row
	}
	lp.entries = entries
	lp.list.SetEntries(entries)
	lp.suppressEvents = false
}

func (lp *LayerPanel) SetSelected(idx int) {
	if lp == nil || lp.list == nil {
		return
	}
	if idx < 0 || idx >= len(lp.entries) {
		return
	}
	// Suppress events around the programmatic selection so it isn't treated
	// as a user click.
	lp.suppressEvents = true
	lp.list.SetSelectedEntry(lp.entries[idx])
	lp.suppressEvents = false
}
