package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"golang.design/x/clipboard"

	"github.com/matforge/matforge/layers"
	"github.com/matforge/matforge/material"
	"github.com/matforge/matforge/scene"
	"github.com/matforge/matforge/templates"
)

func main() {
	// Optional .env for local overrides; missing file is fine.
	_ = godotenv.Load()

	templatesDir := flag.String("templates", os.Getenv("MATFORGE_TEMPLATES"), "Directory with template overrides (yaml specs and tengo scripts)")
	objectName := flag.String("object", "Cube", "Name of the mesh object to author on")
	flag.Parse()

	log.Println("Editor starting...")

	lib, err := templates.Load(*templatesDir)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	sc := scene.NewScene()
	sc.AddObject(&scene.Object{Name: *objectName, Type: scene.GeometryMesh})
	session := layers.NewSession(sc, lib)

	game := &EditorGame{
		session:        session,
		templatesDir:   *templatesDir,
		previewDirty:   true,
		leftPanelWidth: 260,
	}

	if *templatesDir != "" {
		watcher, err := templates.NewWatcher(*templatesDir)
		if err != nil {
			log.Printf("Template watching disabled: %v", err)
		} else {
			game.watcher = watcher
			defer watcher.Close()
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable: %v", err)
	} else {
		game.clipboardReady = true
	}

	layerPanel := NewLayerPanel()
	layerPanel.onSelect = game.SelectLayer
	layerPanel.onAddMaterial = func() { game.runCommand("add layer", session.AddMaterialLayer) }
	layerPanel.onAddPaint = func() { game.runCommand("add paint layer", session.AddPaintLayer) }
	layerPanel.onAddDecal = func() { game.runCommand("add decal layer", session.AddDecalLayer) }
	layerPanel.onMoveUp = func() {
		game.runCommand("move layer up", func() error { return session.MoveLayer(material.MoveUp) })
	}
	layerPanel.onMoveDown = func() {
		game.runCommand("move layer down", func() error { return session.MoveLayer(material.MoveDown) })
	}
	layerPanel.onDuplicate = func() { game.runCommand("duplicate layer", session.DuplicateLayer) }
	layerPanel.onDelete = func() { game.runCommand("delete layer", session.DeleteLayer) }
	layerPanel.onToggleHidden = func() { game.runCommand("toggle hidden", session.ToggleLayerHidden) }

	game.ui = BuildEditorUI(layerPanel, *objectName, game.SelectTab, game.SelectChannel, game.TogglePreview)
	game.layerPanel = layerPanel
	game.refreshLayers()

	ebiten.SetWindowSize(1280, 800)
	ebiten.SetWindowTitle("MatForge")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
