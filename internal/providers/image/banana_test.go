package image

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptgate/internal/domain"
	"promptgate/internal/domain/baseprompt"
)

func adaptBanana(t *testing.T, p baseprompt.Prompt) BananaPayload {
	t.Helper()
	payload, err := Banana{}.Adapt(p)
	require.NoError(t, err)
	out, ok := payload.(BananaPayload)
	require.True(t, ok, "unexpected payload type %T", payload)
	assert.Equal(t, "banana-pro", out.Provider())
	return out
}

func TestBananaMinimalPortrait(t *testing.T) {
	out := adaptBanana(t, mustPrompt(t, `{
		"subject": {"description": "Valentina Ruiz, 22"},
		"environment": {"location": "photo studio"}
	}`))
	m := asMap(t, out)
	assert.Equal(t, "banana-pro", m["model"])
	assert.NotContains(t, m, "seed")
	assert.NotContains(t, m, "meta")
	assert.NotContains(t, m, "steps")

	require.Len(t, out.Contents, 1)
	assert.Equal(t, "user", out.Contents[0].Role)
	require.Len(t, out.Contents[0].Parts, 1)
	assert.Equal(t, "Valentina Ruiz, 22. photo studio", out.Contents[0].Parts[0].Text)
}

func TestBananaUsesSentenceSeparator(t *testing.T) {
	out := adaptBanana(t, mustPrompt(t, fullPrompt))
	assert.Equal(t, "Aiko Tanaka, 30, ceramicist. short black hair. linen apron. Kyoto workshop. quiet. light rain. "+
		"window light. 50mm lens. Portra 400. muted. documentary", out.Contents[0].Parts[0].Text)
}

func TestBananaTechnicalMeta(t *testing.T) {
	out := adaptBanana(t, withTechnical(t, `{"aspect_ratio": "16:9"}`))
	m := asMap(t, out)
	assert.NotContains(t, m, "seed")
	require.NotNil(t, out.Meta)
	assert.Equal(t, "v1", out.Meta.BasePromptVersion)
	assert.False(t, out.Meta.SeedProvided)
	assert.Empty(t, out.Meta.Warnings)

	out = adaptBanana(t, withTechnical(t, `{"seed": 123, "steps": 30}`))
	m = asMap(t, out)
	assert.Equal(t, 123.0, m["seed"])
	assert.Equal(t, 30.0, m["steps"])
	assert.True(t, out.Meta.SeedProvided)
}

func TestBananaWarnsAboutUnsupportedOptions(t *testing.T) {
	out := adaptBanana(t, withTechnical(t, `{"sampler": "euler", "negative_prompt": "blur", "resolution": "512x512", "guidance": 4}`))
	assert.Equal(t, []string{
		"Unsupported option for banana-pro: sampler",
		"Unsupported option for banana-pro: negative_prompt",
		"Unsupported option for banana-pro: resolution",
		"Unsupported option for banana-pro: guidance",
	}, out.Meta.Warnings)
}

func TestBananaRejectsEmptyPrompt(t *testing.T) {
	_, err := Banana{}.Adapt(baseprompt.Prompt{})
	assert.True(t, errors.Is(err, domain.ErrAdaptation))
}
