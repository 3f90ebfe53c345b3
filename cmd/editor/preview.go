package main

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

var emptyPreviewColor = color.RGBA{R: 25, G: 25, B: 28, A: 255}

// previewSize is the sample resolution of the channel preview. The image is
// scaled up when drawn, so this bounds the per-frame evaluation cost.
const previewSize = 96

// renderPreview samples the active channel of the visible layer stack over
// normalized UV space into the preview image.
func (g *EditorGame) renderPreview() {
	if g.preview == nil {
		g.preview = ebiten.NewImage(previewSize, previewSize)
	}
	if g.session.Stack.Len() == 0 {
		g.preview.Fill(emptyPreviewColor)
		return
	}
	ch := g.session.Stack.ActiveChannel
	buf := make([]byte, 4*previewSize*previewSize)
	for py := 0; py < previewSize; py++ {
		y := float64(py) / float64(previewSize-1)
		for px := 0; px < previewSize; px++ {
			x := float64(px) / float64(previewSize-1)
			v, err := g.session.EvalChannel(ch, x, y)
			if err != nil {
				log.Printf("Channel preview failed: %v", err)
				g.session.Stack.ChannelPreview = false
				return
			}
			i := 4 * (py*previewSize + px)
			buf[i] = channelByte(v[0])
			buf[i+1] = channelByte(v[1])
			buf[i+2] = channelByte(v[2])
			buf[i+3] = 0xff
		}
	}
	g.preview.WritePixels(buf)
}

func channelByte(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return byte(v * 255)
}
