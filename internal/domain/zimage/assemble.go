package zimage

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"promptgate/internal/domain/vocab"
)

// Assemble renders p as flowing prompt text: identity and look, action,
// setting, light, atmosphere, composition, details, in-image text, then
// technical notes. The output is deterministic for a given prompt.
func Assemble(p Prompt) Assembly {
	c := p.Character
	id := c.Identity
	pd := c.PhysicalDescriptors

	var parts []string
	add := func(s string) {
		if s = sentence(s); s != "" {
			parts = append(parts, s)
		}
	}

	add(id.Name + ", a " + strconv.Itoa(id.Age) + "-year-old " + id.Background)
	add("They have " + pd.SkinTone + ", " + pd.Hair + ", " + pd.FacialStructure + " and " + pd.Eyes)
	add(deref(pd.AdditionalFeatures))
	add("They are wearing " + c.Clothing)
	add(p.Action.Action)
	add(deref(p.Action.PoseDetails))
	add(p.Scene.Setting)
	add("The scene is lit by " + p.Scene.Lighting)
	add(deref(p.Scene.LightingDetails))
	add(p.Scene.Atmosphere)
	add(p.Scene.Composition)
	add(deref(c.SpecialNotes))
	for _, t := range p.Texts() {
		add(textSentence(t))
	}
	add(deref(p.Scene.TechnicalSpecs))

	text := strings.Join(parts, " ")
	found := vocab.ForbiddenWordsIn(text)
	if found == nil {
		found = []string{}
	}
	return Assembly{
		JSONStructure:       p,
		FullPromptText:      text,
		ForbiddenWordsCheck: len(found) == 0,
		ForbiddenWords:      found,
		EstimatedWordCount:  len(strings.Fields(text)),
	}
}

func textSentence(t TextElement) string {
	var b strings.Builder
	b.WriteString(`The text "` + strings.TrimSpace(t.Content) + `" appears ` + strings.TrimSpace(t.Placement))
	if size := deref(t.Size); size != "" {
		b.WriteString(" in " + size + " size")
	}
	b.WriteString(", set in " + strings.TrimSpace(t.FontStyle))
	if m := deref(t.SurfaceMaterial); m != "" {
		b.WriteString(" on " + m)
	}
	return b.String()
}

// sentence trims s, capitalizes its first letter and ends it with one period.
func sentence(s string) string {
	s = strings.TrimRight(strings.TrimSpace(s), ". ")
	if s == "" {
		return ""
	}
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:] + "."
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
