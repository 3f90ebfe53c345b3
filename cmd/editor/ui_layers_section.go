package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func addLayersSection(
	parent *widget.Container,
	theme *widget.Theme,
	fontFace *text.Face,
	layerPanel *LayerPanel,
) *widget.List {
	layersLabel := widget.NewLabel(
		widget.LabelOpts.Text("Layers", fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	)
	parent.AddChild(layersLabel)

	layerList := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if row, ok := e.(LayerRow); ok {
				return row.Label
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			row, ok := args.Entry.(LayerRow)
			if !ok {
				return
			}
			if layerPanel.suppressEvents {
				return
			}
			if layerPanel.onSelect != nil {
				layerPanel.onSelect(row.Index)
			}
		}),
	)
	parent.AddChild(layerList)
	layerPanel.list = layerList

	newButton := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(label, fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if onClick != nil {
					onClick()
				}
			}),
		)
	}

	addRow := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
	)
	addRow.AddChild(newButton("+Material", func() {
		if layerPanel.onAddMaterial != nil {
			layerPanel.onAddMaterial()
		}
	}))
	addRow.AddChild(newButton("+Paint", func() {
		if layerPanel.onAddPaint != nil {
			layerPanel.onAddPaint()
		}
	}))
	addRow.AddChild(newButton("+Decal", func() {
		if layerPanel.onAddDecal != nil {
			layerPanel.onAddDecal()
		}
	}))
	parent.AddChild(addRow)

	editRow := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
	)
	editRow.AddChild(newButton("Up", func() {
		if layerPanel.onMoveUp != nil {
			layerPanel.onMoveUp()
		}
	}))
	editRow.AddChild(newButton("Down", func() {
		if layerPanel.onMoveDown != nil {
			layerPanel.onMoveDown()
		}
	}))
	editRow.AddChild(newButton("Dup", func() {
		if layerPanel.onDuplicate != nil {
			layerPanel.onDuplicate()
		}
	}))
	editRow.AddChild(newButton("Del", func() {
		if layerPanel.onDelete != nil {
			layerPanel.onDelete()
		}
	}))
	editRow.AddChild(newButton("Hide", func() {
		if layerPanel.onToggleHidden != nil {
			layerPanel.onToggleHidden()
		}
	}))
	parent.AddChild(editRow)

	return layerList
}
