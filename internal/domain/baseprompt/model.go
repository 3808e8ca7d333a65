// Package baseprompt defines the provider-agnostic prompt schema together
// with its validator and defaulting rules. Adapters translate a validated
// Prompt into provider payloads.
package baseprompt

import (
	"encoding/json"
	"fmt"
)

// Prompt is the universal, model-agnostic prompt description.
type Prompt struct {
	Subject     Subjects    `json:"subject" validate:"dive"`
	Environment Environment `json:"environment"`
	Style       *Style      `json:"style,omitempty"`
	Technical   *TechSpecs  `json:"technical,omitempty"`
}

// Subject is the core subject with its identity anchor, e.g.
// "Valentina Ruiz, 22, Colombian-Lebanese student from Medellín".
type Subject struct {
	Description string   `json:"description" validate:"omitempty,specific_identity"`
	Attributes  []string `json:"attributes,omitempty"`
}

// Subjects holds one or more subjects. A single subject is encoded as an
// object, several as a list.
type Subjects []Subject

// Environment anchors the scene geographically.
type Environment struct {
	Location   string  `json:"location"`
	Atmosphere *string `json:"atmosphere,omitempty"`
	Weather    *string `json:"weather,omitempty"`
}

// Style carries lighting, framing and rendering choices.
type Style struct {
	Lighting   *string  `json:"lighting,omitempty"`
	Camera     *string  `json:"camera,omitempty"`
	FilmStock  *string  `json:"film_stock,omitempty"`
	Aesthetics []string `json:"aesthetics,omitempty"`
}

// TechSpecs holds the optional numeric and sampling settings.
type TechSpecs struct {
	AspectRatio    *string     `json:"aspect_ratio,omitempty" validate:"omitempty,aspect_ratio" jsonschema:"pattern=^\d+:\d+$"`
	Seed           *int64      `json:"seed,omitempty"`
	CFGScale       *float64    `json:"cfg_scale,omitempty"`
	Resolution     *Resolution `json:"resolution,omitempty"`
	Steps          *int        `json:"steps,omitempty"`
	Guidance       *float64    `json:"guidance,omitempty"`
	Sampler        *string     `json:"sampler,omitempty"`
	NegativePrompt *string     `json:"negative_prompt,omitempty"`
}

// Resolution is either the text form "WxH" or explicit dimensions.
type Resolution struct {
	Text   string `json:"-"`
	Width  *int   `json:"width,omitempty" validate:"omitempty,min=0"`
	Height *int   `json:"height,omitempty" validate:"omitempty,min=0"`
}

// IsText reports whether the resolution was given as a "WxH" string.
func (r Resolution) IsText() bool {
	return r.Width == nil && r.Height == nil
}

func (r Resolution) String() string {
	if r.IsText() {
		return r.Text
	}
	return fmt.Sprintf("%dx%d", deref(r.Width), deref(r.Height))
}

func (r Resolution) MarshalJSON() ([]byte, error) {
	if r.IsText() {
		return json.Marshal(r.Text)
	}
	type dims struct {
		Width  *int `json:"width,omitempty"`
		Height *int `json:"height,omitempty"`
	}
	return json.Marshal(dims{Width: r.Width, Height: r.Height})
}

func (s Subjects) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}
	return json.Marshal([]Subject(s))
}

// Primary returns the first subject, the zero Subject when empty.
func (s Subjects) Primary() Subject {
	if len(s) == 0 {
		return Subject{}
	}
	return s[0]
}

// Lookup helpers keep adapters free of nil checks.

func (p Prompt) StyleOrZero() Style {
	if p.Style == nil {
		return Style{}
	}
	return *p.Style
}

func (p Prompt) TechnicalOrZero() TechSpecs {
	if p.Technical == nil {
		return TechSpecs{}
	}
	return *p.Technical
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
