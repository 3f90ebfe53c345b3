package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/matforge/matforge/material"
)

func addTabSection(
	parent *widget.Container,
	theme *widget.Theme,
	fontFace *text.Face,
	onTabSelected func(tab material.PropertyTab),
) {
	tabRow := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
	)
	for _, tab := range []material.PropertyTab{material.TabMaterial, material.TabMask} {
		tab := tab
		tabRow.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(tab.String(), fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if onTabSelected != nil {
					onTabSelected(tab)
				}
			}),
		))
	}
	parent.AddChild(tabRow)
}

func addChannelSection(
	parent *widget.Container,
	theme *widget.Theme,
	fontFace *text.Face,
	onChannelSelected func(ch material.Channel),
	onTogglePreview func(),
) *widget.List {
	channelsLabel := widget.NewLabel(
		widget.LabelOpts.Text("Channels", fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	)
	parent.AddChild(channelsLabel)

	entries := make([]any, 0, len(material.Channels()))
	for _, ch := range material.Channels() {
		entries = append(entries, ch)
	}
	channelList := widget.NewList(
		widget.ListOpts.Entries(entries),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if ch, ok := e.(material.Channel); ok {
				return ch.String()
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			ch, ok := args.Entry.(material.Channel)
			if !ok {
				return
			}
			if onChannelSelected != nil {
				onChannelSelected(ch)
			}
		}),
	)
	parent.AddChild(channelList)

	previewBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Channel Preview", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if onTogglePreview != nil {
				onTogglePreview()
			}
		}),
	)
	parent.AddChild(previewBtn)

	return channelList
}
