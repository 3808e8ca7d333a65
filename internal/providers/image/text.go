package image

import (
	"fmt"
	"strings"

	"promptgate/internal/domain/baseprompt"
	"promptgate/internal/domain/vocab"
)

// promptParts lists the prompt fragments in assembly order: every subject
// (description then attributes), environment, then style. Blank values are
// skipped.
func promptParts(p baseprompt.Prompt) []string {
	var parts []string
	add := func(values ...string) {
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				parts = append(parts, v)
			}
		}
	}
	addPtr := func(v *string) {
		if v != nil {
			add(*v)
		}
	}

	for _, s := range p.Subject {
		add(s.Description)
		add(s.Attributes...)
	}
	add(p.Environment.Location)
	addPtr(p.Environment.Atmosphere)
	addPtr(p.Environment.Weather)

	style := p.StyleOrZero()
	addPtr(style.Lighting)
	addPtr(style.Camera)
	addPtr(style.FilmStock)
	add(style.Aesthetics...)
	return parts
}

func forbiddenWarnings(text string) []string {
	var warnings []string
	for _, term := range vocab.ForbiddenWordsIn(text) {
		warnings = append(warnings, fmt.Sprintf("Forbidden term in prompt: %s", term))
	}
	return warnings
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
