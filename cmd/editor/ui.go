package main

import (
	"bytes"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matforge/matforge/material"
)

func BuildEditorUI(
	layerPanel *LayerPanel,
	objectName string,
	onTabSelected func(tab material.PropertyTab),
	onChannelSelected func(ch material.Channel),
	onTogglePreview func(),
) *ebitenui.UI {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	leftPanel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(240, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{35, 35, 40, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)

	objectLabel := widget.NewLabel(
		widget.LabelOpts.Text(objectName, &fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	)
	leftPanel.AddChild(objectLabel)

	addLayersSection(leftPanel, ui.PrimaryTheme, &fontFace, layerPanel)
	addTabSection(leftPanel, ui.PrimaryTheme, &fontFace, onTabSelected)
	addChannelSection(leftPanel, ui.PrimaryTheme, &fontFace, onChannelSelected, onTogglePreview)

	// Root container: anchor layout with the panel pinned to the left edge.
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	root.AddChild(leftPanel)

	ui.Container = root
	return ui
}
