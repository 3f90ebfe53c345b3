package material

// Channel is one of the material channels a layer can contribute to. The
// order here is the order channel outputs appear on layer group nodes and in
// the editor's channel selector.
type Channel int

const (
	ChannelColor Channel = iota
	ChannelSubsurface
	ChannelMetallic
	ChannelSpecular
	ChannelRoughness
	ChannelEmission
	ChannelAlpha
	ChannelNormal
	ChannelHeight
)

func (c Channel) String() string {
	switch c {
	case ChannelColor:
		return "Color"
	case ChannelSubsurface:
		return "Subsurface"
	case ChannelMetallic:
		return "Metallic"
	case ChannelSpecular:
		return "Specular"
	case ChannelRoughness:
		return "Roughness"
	case ChannelEmission:
		return "Emission"
	case ChannelAlpha:
		return "Alpha"
	case ChannelNormal:
		return "Normal"
	case ChannelHeight:
		return "Height"
	default:
		return "Unknown"
	}
}

// Key is the upper-case form used to build node names inside layer groups
// (COLOR_MIX, ROUGHNESS_VALUE, ...).
func (c Channel) Key() string {
	switch c {
	case ChannelColor:
		return "COLOR"
	case ChannelSubsurface:
		return "SUBSURFACE"
	case ChannelMetallic:
		return "METALLIC"
	case ChannelSpecular:
		return "SPECULAR"
	case ChannelRoughness:
		return "ROUGHNESS"
	case ChannelEmission:
		return "EMISSION"
	case ChannelAlpha:
		return "ALPHA"
	case ChannelNormal:
		return "NORMAL"
	case ChannelHeight:
		return "HEIGHT"
	default:
		return "UNKNOWN"
	}
}

// Channels returns every channel in stack order.
func Channels() []Channel {
	return []Channel{
		ChannelColor,
		ChannelSubsurface,
		ChannelMetallic,
		ChannelSpecular,
		ChannelRoughness,
		ChannelEmission,
		ChannelAlpha,
		ChannelNormal,
		ChannelHeight,
	}
}

// ChannelFromKey maps an upper-case key back to its channel.
func ChannelFromKey(key string) (Channel, bool) {
	for _, c := range Channels() {
		if c.Key() == key {
			return c, true
		}
	}
	return 0, false
}

// LayerType distinguishes how a layer is projected onto the object.
type LayerType int

const (
	// LayerFill covers the whole object with a material.
	LayerFill LayerType = iota
	// LayerDecal is projected through a decal anchor object, letting the
	// user position the texture dynamically.
	LayerDecal
)

func (t LayerType) String() string {
	switch t {
	case LayerFill:
		return "Fill"
	case LayerDecal:
		return "Decal"
	default:
		return "Unknown"
	}
}

// PropertyTab selects which property group the editor side panel shows for
// the selected layer.
type PropertyTab int

const (
	TabMaterial PropertyTab = iota
	TabMask
)

func (t PropertyTab) String() string {
	switch t {
	case TabMaterial:
		return "Material"
	case TabMask:
		return "Mask"
	default:
		return "Unknown"
	}
}
