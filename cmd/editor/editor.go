package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/matforge/matforge/layers"
	"github.com/matforge/matforge/material"
	"github.com/matforge/matforge/templates"
)

// EditorGame is the Ebiten game driving the layer authoring UI. All state is
// touched from the game loop only.
type EditorGame struct {
	ui         *ebitenui.UI
	session    *layers.Session
	layerPanel *LayerPanel

	watcher      *templates.Watcher
	templatesDir string

	preview      *ebiten.Image
	previewDirty bool

	clipboardReady bool
	status         string
	leftPanelWidth int
}

func (g *EditorGame) Update() error {
	g.pollTemplateChanges()

	// If the UI has a focused text widget (user is typing), suppress hotkeys.
	suppressHotkeys := false
	if g.ui != nil {
		if fw := g.ui.GetFocusedWidget(); fw != nil {
			switch fw.(type) {
			case *widget.TextInput:
				suppressHotkeys = true
			}
		}
	}

	if !suppressHotkeys {
		if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
			os.Exit(0)
		}

		// New layers (N fill, B paint, G decal)
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			g.runCommand("add layer", g.session.AddMaterialLayer)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyB) {
			g.runCommand("add paint layer", g.session.AddPaintLayer)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyG) {
			g.runCommand("add decal layer", g.session.AddDecalLayer)
		}

		// Cycle the selection (Q/E)
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			g.cycleSelection(-1)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyE) {
			g.cycleSelection(1)
		}

		// Move the selected layer (Ctrl+Up / Ctrl+Down)
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && ebiten.IsKeyPressed(ebiten.KeyControl) {
			g.runCommand("move layer up", func() error { return g.session.MoveLayer(material.MoveUp) })
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && ebiten.IsKeyPressed(ebiten.KeyControl) {
			g.runCommand("move layer down", func() error { return g.session.MoveLayer(material.MoveDown) })
		}

		if inpututil.IsKeyJustPressed(ebiten.KeyD) && ebiten.IsKeyPressed(ebiten.KeyControl) {
			g.runCommand("duplicate layer", g.session.DuplicateLayer)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			g.runCommand("delete layer", g.session.DeleteLayer)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyH) {
			g.runCommand("toggle hidden", g.session.ToggleLayerHidden)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyV) {
			g.TogglePreview()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyC) && ebiten.IsKeyPressed(ebiten.KeyControl) {
			g.copySelectedLayer()
		}
	}

	if g.ui != nil {
		g.ui.Update()
	}

	if g.previewDirty && g.session.Stack.ChannelPreview {
		g.renderPreview()
		g.previewDirty = false
	}
	return nil
}

func (g *EditorGame) Draw(screen *ebiten.Image) {
	if g.session.Stack.ChannelPreview && g.preview != nil {
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		pw, ph := g.preview.Bounds().Dx(), g.preview.Bounds().Dy()
		scale := 3.0
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(
			float64(g.leftPanelWidth)+(float64(w-g.leftPanelWidth)-float64(pw)*scale)/2,
			(float64(h)-float64(ph)*scale)/2,
		)
		screen.DrawImage(g.preview, op)
	}

	if g.ui != nil {
		g.ui.Draw(screen)
	}

	ebitenutil.DebugPrintAt(screen, g.statusLine(), g.leftPanelWidth+10, screen.Bounds().Dy()-20)
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (g *EditorGame) statusLine() string {
	line := fmt.Sprintf("Channel: %s", g.session.Stack.ActiveChannel)
	if idx := g.session.Stack.SelectedIndex; idx >= 0 {
		line += fmt.Sprintf("  Layer: %d/%d", idx+1, g.session.Stack.Len())
	}
	if g.status != "" {
		line += "  " + g.status
	}
	return line
}

// runCommand executes a layer command and refreshes the panel. Precondition
// failures show up in the status line instead of the log.
func (g *EditorGame) runCommand(name string, run func() error) {
	if err := run(); err != nil {
		if errors.Is(err, layers.ErrPrecondition) {
			g.status = err.Error()
			return
		}
		log.Printf("%s failed: %v", name, err)
		g.status = fmt.Sprintf("%s failed", name)
		return
	}
	g.status = ""
	g.refreshLayers()
	g.previewDirty = true
}

func (g *EditorGame) cycleSelection(delta int) {
	stack := g.session.Stack
	if stack.Len() == 0 {
		return
	}
	idx := stack.SelectedIndex + delta
	if idx < 0 {
		idx = stack.Len() - 1
	}
	if idx >= stack.Len() {
		idx = 0
	}
	stack.SelectedIndex = idx
	if g.layerPanel != nil {
		g.layerPanel.SetSelected(idx)
	}
}

func (g *EditorGame) SelectLayer(idx int) {
	if _, ok := g.session.Stack.Slot(idx); !ok {
		return
	}
	g.session.Stack.SelectedIndex = idx
}

func (g *EditorGame) SelectTab(tab material.PropertyTab) {
	g.session.Stack.ActiveTab = tab
}

func (g *EditorGame) SelectChannel(ch material.Channel) {
	g.session.Stack.ActiveChannel = ch
	g.previewDirty = true
}

func (g *EditorGame) TogglePreview() {
	g.session.Stack.ChannelPreview = !g.session.Stack.ChannelPreview
	g.previewDirty = true
}

// refreshLayers rebuilds the panel rows from the slot store.
func (g *EditorGame) refreshLayers() {
	if g.layerPanel == nil {
		return
	}
	stack := g.session.Stack
	rows := make([]LayerRow, stack.Len())
	for i := range rows {
		slot, _ := stack.Slot(i)
		label := fmt.Sprintf("%d. %s", i+1, slot.Type)
		if slot.Hidden {
			label += " (hidden)"
		}
		rows[i] = LayerRow{Index: i, Label: label}
	}
	g.layerPanel.SetRows(rows)
	if stack.SelectedIndex >= 0 {
		g.layerPanel.SetSelected(stack.SelectedIndex)
	}
}

// pollTemplateChanges reloads the template library when the watcher reports a
// changed spec or script. Existing layer instances keep their trees; only new
// instantiations pick up the edit.
func (g *EditorGame) pollTemplateChanges() {
	if g.watcher == nil {
		return
	}
	select {
	case name, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		lib, err := templates.Load(g.templatesDir)
		if err != nil {
			log.Printf("Template reload failed: %v", err)
			g.status = "template reload failed"
			return
		}
		g.session.Library = lib
		g.status = "templates reloaded: " + filepath.Base(name)
		g.previewDirty = true
		log.Printf("Templates reloaded after change to %s", name)
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("Template watcher error: %v", err)
		}
	default:
	}
}
