package image

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"promptgate/internal/domain/baseprompt"
)

const fullPrompt = `{
	"subject": {"description": "Aiko Tanaka, 30, ceramicist", "attributes": ["short black hair", "linen apron"]},
	"environment": {"location": "Kyoto workshop", "atmosphere": "quiet", "weather": "light rain"},
	"style": {"lighting": "window light", "camera": "50mm lens", "film_stock": "Portra 400", "aesthetics": ["muted", "documentary"]}
}`

func mustPrompt(t *testing.T, doc string) baseprompt.Prompt {
	t.Helper()
	raw, err := baseprompt.DecodeRaw(strings.NewReader(doc))
	require.NoError(t, err)
	p, err := baseprompt.Validate(raw)
	require.NoError(t, err)
	return *p
}

// withTechnical returns a minimal prompt carrying the given technical block.
func withTechnical(t *testing.T, technical string) baseprompt.Prompt {
	t.Helper()
	return mustPrompt(t, `{
		"subject": {"description": "Valentina Ruiz, 22, Colombian-Lebanese student"},
		"environment": {"location": "historic piazza in Bari old town"},
		"technical": `+technical+`
	}`)
}

func asMap(t *testing.T, payload Payload) map[string]any {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}
