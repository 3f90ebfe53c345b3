package main

import (
	"log"

	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"

	"github.com/matforge/matforge/material"
)

// layerExport is the yaml shape Ctrl+C places on the system clipboard for the
// selected layer, so channel setups can be shared outside the editor.
type layerExport struct {
	Label      string                   `yaml:"label"`
	Type       string                   `yaml:"type"`
	Hidden     bool                     `yaml:"hidden,omitempty"`
	Projection string                   `yaml:"projection"`
	Channels   map[string]channelExport `yaml:"channels"`
}

type channelExport struct {
	Source  string     `yaml:"source"`
	Value   [4]float32 `yaml:"value"`
	Opacity float32    `yaml:"opacity"`
	Image   string     `yaml:"image,omitempty"`
	Script  string     `yaml:"script,omitempty"`
}

func (g *EditorGame) copySelectedLayer() {
	if !g.clipboardReady {
		g.status = "clipboard unavailable"
		return
	}
	index := g.session.Stack.SelectedIndex
	slot, ok := g.session.Stack.Slot(index)
	if !ok {
		g.status = "no layer selected"
		return
	}
	sync, err := g.session.Synchronizer()
	if err != nil {
		log.Printf("Layer copy failed: %v", err)
		return
	}

	export := layerExport{
		Label:    "Layer " + slot.ID,
		Type:     slot.Type.String(),
		Hidden:   slot.Hidden,
		Channels: make(map[string]channelExport, len(material.Channels())),
	}
	if node, ok := sync.LayerNode(index); ok {
		export.Label = node.Label
	}
	if proj, ok := sync.ProjectionNode(index); ok {
		export.Projection = proj.Mode.String()
	}
	for _, ch := range material.Channels() {
		value, ok := sync.ChannelValueNode(index, ch)
		if !ok || value.Source == nil {
			continue
		}
		entry := channelExport{
			Source: value.Source.Kind.String(),
			Value:  [4]float32(value.Source.Value),
			Image:  value.Source.Image,
			Script: value.Source.Script,
		}
		if opacity, ok := sync.ChannelOpacityNode(index, ch); ok && opacity.Source != nil {
			entry.Opacity = opacity.Source.Value[0]
		}
		export.Channels[ch.Key()] = entry
	}

	data, err := yaml.Marshal(export)
	if err != nil {
		log.Printf("Layer copy failed: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.status = "layer copied to clipboard"
}
