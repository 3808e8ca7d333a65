package baseprompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalRaw() map[string]any {
	return map[string]any{
		"subject":     map[string]any{"description": "Valentina Ruiz, 22, Colombian-Lebanese student"},
		"environment": map[string]any{"location": "historic piazza in Bari old town"},
	}
}

func TestApplyDefaultsFillsMissingSections(t *testing.T) {
	out, applied := ApplyDefaults(minimalRaw())

	assert.Equal(t, []string{
		"style", "style.lighting", "style.camera",
		"technical", "technical.aspect_ratio", "technical.cfg_scale",
		"environment.atmosphere", "environment.weather",
		"subject.attributes",
	}, applied)

	m := out.(map[string]any)
	assert.Equal(t, map[string]any{
		"lighting": "soft daylight", "camera": "35mm lens", "film_stock": nil, "aesthetics": nil,
	}, m["style"])
	assert.Equal(t, map[string]any{"aspect_ratio": "16:9", "seed": nil, "cfg_scale": 7.0}, m["technical"])
	assert.Equal(t, []any{}, m["subject"].(map[string]any)["attributes"])

	p, err := Validate(out)
	require.NoError(t, err)
	assert.Equal(t, "soft daylight", *p.Style.Lighting)
	assert.Equal(t, "16:9", *p.Technical.AspectRatio)
	assert.Nil(t, p.Technical.Seed)
}

func TestApplyDefaultsKeepsPresentValues(t *testing.T) {
	raw := minimalRaw()
	raw["style"] = map[string]any{"lighting": "neon signage", "camera": nil}
	raw["technical"] = map[string]any{"cfg_scale": 4.5}
	raw["environment"].(map[string]any)["weather"] = "fog"

	out, applied := ApplyDefaults(raw)
	assert.Equal(t, []string{
		"style.camera", "technical.aspect_ratio", "environment.atmosphere", "subject.attributes",
	}, applied)

	m := out.(map[string]any)
	assert.Equal(t, "neon signage", m["style"].(map[string]any)["lighting"])
	assert.Equal(t, "35mm lens", m["style"].(map[string]any)["camera"])
	assert.Equal(t, 4.5, m["technical"].(map[string]any)["cfg_scale"])
	assert.Equal(t, "fog", m["environment"].(map[string]any)["weather"])
}

func TestApplyDefaultsIsIdempotent(t *testing.T) {
	first, _ := ApplyDefaults(minimalRaw())
	second, applied := ApplyDefaults(first)
	assert.Empty(t, applied)
	assert.NotNil(t, applied)
	assert.Equal(t, first, second)
}

func TestApplyDefaultsDoesNotMutateInput(t *testing.T) {
	raw := minimalRaw()
	raw["style"] = map[string]any{"aesthetics": []any{"grainy"}}
	snapshot := cloneValue(raw)

	out, _ := ApplyDefaults(raw)
	assert.Equal(t, snapshot, raw)

	out.(map[string]any)["style"].(map[string]any)["aesthetics"].([]any)[0] = "changed"
	assert.Equal(t, "grainy", raw["style"].(map[string]any)["aesthetics"].([]any)[0])
}

func TestApplyDefaultsSubjectList(t *testing.T) {
	raw := minimalRaw()
	raw["subject"] = []any{
		map[string]any{"description": "Mateo Silva, 8"},
		map[string]any{"description": "Lucia Silva, 35", "attributes": []any{"red coat"}},
	}
	_, applied := ApplyDefaults(raw)
	assert.Contains(t, applied, "subject.0.attributes")
	assert.NotContains(t, applied, "subject.1.attributes")
}

func TestApplyDefaultsLeavesMalformedSectionsForValidator(t *testing.T) {
	raw := minimalRaw()
	raw["style"] = "cinematic"
	raw["environment"] = []any{}

	out, applied := ApplyDefaults(raw)
	assert.NotContains(t, applied, "style")
	assert.NotContains(t, applied, "environment.atmosphere")
	assert.Equal(t, "cinematic", out.(map[string]any)["style"])

	_, applied = ApplyDefaults("not an object")
	assert.Empty(t, applied)
}
