package overlay

// Variant selects how a frame is placed on screen. It never changes behavior.
type Variant string

const (
	VariantDefault Variant = "default" // centered dialog
	VariantDrawer  Variant = "drawer"  // full width panel anchored to the bottom
)

// Options configures the chrome of one overlay.
type Options struct {
	Title string
	Type  Variant // empty means VariantDefault
}

// Params are the arguments of Controller.Open.
type Params struct {
	// Inputs are applied to the content by property name before it is first
	// rendered. Unknown names are ignored.
	Inputs  map[string]any
	Options Options
}

func (v Variant) orDefault() Variant {
	if v == "" {
		return VariantDefault
	}
	return v
}

// Valid reports whether v names a known variant. Empty is valid.
func (v Variant) Valid() bool {
	switch v.orDefault() {
	case VariantDefault, VariantDrawer:
		return true
	default:
		return false
	}
}
