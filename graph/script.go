package graph

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// SourceKind enumerates how a value node produces its channel value.
type SourceKind int

const (
	// SourceUniform locks the channel to a single colourless value.
	SourceUniform SourceKind = iota
	// SourceColor uses an RGB color value.
	SourceColor
	// SourceTexture reads from a paintable image.
	SourceTexture
	// SourceScript evaluates a tengo expression per sample for procedural
	// patterns.
	SourceScript
)

func (k SourceKind) String() string {
	switch k {
	case SourceUniform:
		return "Uniform"
	case SourceColor:
		return "Color"
	case SourceTexture:
		return "Texture"
	case SourceScript:
		return "Script"
	default:
		return "Unknown"
	}
}

// Source drives a NodeValue node. Value doubles as the fallback for texture
// and script sources (blank texture, script error).
type Source struct {
	Kind  SourceKind
	Value Value

	// Texture source fields.
	Image       string
	ImageWidth  int
	ImageHeight int

	// Script source: a tengo snippet reading globals x and y in [0, 1] and
	// assigning the sampled value to out.
	Script string

	compiled *tengo.Compiled
	bad      bool
}

// compileSource prepares a script source for repeated evaluation.
func compileSource(src string) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte(src))
	_ = script.Add("x", 0.0)
	_ = script.Add("y", 0.0)
	_ = script.Add("out", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("graph: compile value script: %w", err)
	}
	return compiled, nil
}

// Sample returns the source's value at normalized coordinates (x, y). Script
// errors are logged once and degrade to the fallback value.
func (s *Source) Sample(x, y float64) Value {
	switch s.Kind {
	case SourceScript:
		if s.bad {
			return s.Value
		}
		if s.compiled == nil {
			compiled, err := compileSource(s.Script)
			if err != nil {
				log.Printf("graph: %v", err)
				s.bad = true
				return s.Value
			}
			s.compiled = compiled
		}
		_ = s.compiled.Set("x", x)
		_ = s.compiled.Set("y", y)
		if err := s.compiled.Run(); err != nil {
			log.Printf("graph: run value script: %v", err)
			s.bad = true
			return s.Value
		}
		return scriptValue(s.compiled.Get("out"), s.Value)
	default:
		return s.Value
	}
}

func scriptValue(v *tengo.Variable, fallback Value) Value {
	if v == nil {
		return fallback
	}
	switch val := v.Value().(type) {
	case float64:
		return Scalar(float32(val))
	case int64:
		return Scalar(float32(val))
	case []any:
		out := fallback
		for i := 0; i < len(val) && i < 4; i++ {
			switch c := val[i].(type) {
			case float64:
				out[i] = float32(c)
			case int64:
				out[i] = float32(c)
			}
		}
		return out
	default:
		return fallback
	}
}
