package overlay

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
)

// inputTag is the struct tag naming the input a field receives. A tag of "-"
// excludes the field.
const inputTag = "modal"

// Context is passed to a Descriptor when its content is instantiated.
type Context struct {
	Handle *Handle
	Logger zerolog.Logger
}

// Descriptor creates the content hosted inside a frame.
type Descriptor interface {
	New(ctx Context) (tea.Model, error)
}

// DescriptorFunc adapts a function to a Descriptor.
type DescriptorFunc func(ctx Context) (tea.Model, error)

// New implements Descriptor.
func (f DescriptorFunc) New(ctx Context) (tea.Model, error) {
	return f(ctx)
}

// InputSetter is implemented by content that wants to receive inputs itself
// instead of having them assigned to its struct fields.
type InputSetter interface {
	SetInput(name string, value any) error
}

// Sizer is implemented by content that wants to know the size of its slot.
type Sizer interface {
	SetSize(width, height int)
}

// Destroyer is implemented by content holding resources that must be released
// when the overlay is torn down.
type Destroyer interface {
	Destroy()
}

// KeyHelper is implemented by content that contributes key bindings to the
// frame footer.
type KeyHelper interface {
	HelpKeys() []key.Binding
}

// applyInputs assigns inputs onto target. Names are matched against the
// `modal` struct tag, or the field name case-insensitively. Unknown names are
// ignored; a value of the wrong type leaves its field unchanged.
func applyInputs(target any, inputs map[string]any, logger zerolog.Logger) {
	if len(inputs) == 0 {
		return
	}

	if setter, ok := target.(InputSetter); ok {
		for _, name := range slices.Sorted(maps.Keys(inputs)) {
			if err := setter.SetInput(name, inputs[name]); err != nil {
				logger.Warn().Err(err).Str("input", name).Msg("content rejected input")
			}
		}
		return
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		logger.Warn().Str("type", fmt.Sprintf("%T", target)).Msg("content does not accept inputs")
		return
	}

	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    inputTag,
		ZeroFields: true,
		Metadata:   &md,
		Result:     target,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("build input decoder")
		return
	}

	if err := dec.Decode(inputs); err != nil {
		logger.Warn().Err(err).Msg("input type mismatch")
	}
	if len(md.Unused) > 0 {
		slices.Sort(md.Unused)
		logger.Debug().Strs("inputs", md.Unused).Msg("unknown inputs passed through")
	}
}
