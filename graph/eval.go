package graph

import (
	"github.com/matforge/matforge/common"
)

// EvalChannel composites the named channel across the given layer group
// trees at normalized coordinates (x, y). Groups are ordered topmost first
// (stack order); compositing runs bottom to top, mixing each layer over the
// running result by its channel opacity. key is the upper-case channel key
// used in node names (COLOR, ROUGHNESS, ...).
//
// Hidden layers are the caller's concern: pass only the groups that should
// contribute.
func EvalChannel(groups []*Tree, key string, x, y float64) Value {
	result := Value{0, 0, 0, 1}
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		valueNode, ok := g.Node(key + "_VALUE")
		if !ok || valueNode.Source == nil {
			continue
		}
		opacity := float32(1)
		if opacityNode, ok := g.Node(key + "_OPACITY"); ok && opacityNode.Source != nil {
			opacity = opacityNode.Source.Value[0]
		}
		v := valueNode.Source.Sample(x, y)
		for c := 0; c < 4; c++ {
			result[c] = common.Lerp(result[c], v[c], opacity)
		}
	}
	return result
}
