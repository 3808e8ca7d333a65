package baseprompt

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptgate/internal/domain"
)

func decode(t *testing.T, doc string) any {
	t.Helper()
	raw, err := DecodeRaw(strings.NewReader(doc))
	require.NoError(t, err)
	return raw
}

func details(t *testing.T, err error) []domain.ErrorDetail {
	t.Helper()
	require.Error(t, err)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "expected *domain.ValidationError, got %T", err)
	require.True(t, errors.Is(err, domain.ErrInvalidPrompt))
	return verr.Details
}

func paths(ds []domain.ErrorDetail) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.FieldPath)
	}
	return out
}

func TestValidateAcceptsMinimalPrompt(t *testing.T) {
	p, err := Validate(decode(t, `{
		"subject": {"description": "Valentina Ruiz, 22, Colombian-Lebanese student"},
		"environment": {"location": "historic piazza in Bari old town"}
	}`))
	require.NoError(t, err)
	require.Len(t, p.Subject, 1)
	assert.Equal(t, "Valentina Ruiz, 22, Colombian-Lebanese student", p.Subject.Primary().Description)
	assert.Equal(t, "historic piazza in Bari old town", p.Environment.Location)
	assert.Nil(t, p.Style)
	assert.Nil(t, p.Technical)
}

func TestValidateBuildsTypedTechnical(t *testing.T) {
	p, err := Validate(decode(t, `{
		"subject": {"description": "Aiko Tanaka, 30, ceramicist", "attributes": ["short black hair", "linen apron"]},
		"environment": {"location": "Kyoto workshop", "weather": "light rain"},
		"style": {"lighting": "window light", "aesthetics": ["muted", "documentary"]},
		"technical": {"aspect_ratio": "4:3", "seed": 123, "cfg_scale": 9.5, "steps": 30.0,
			"resolution": {"width": 1024, "height": 1536}, "sampler": "euler"}
	}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"short black hair", "linen apron"}, p.Subject.Primary().Attributes)
	require.NotNil(t, p.Environment.Weather)
	assert.Equal(t, "light rain", *p.Environment.Weather)
	assert.Nil(t, p.Environment.Atmosphere)
	assert.Equal(t, []string{"muted", "documentary"}, p.Style.Aesthetics)

	tech := p.Technical
	require.NotNil(t, tech)
	assert.Equal(t, int64(123), *tech.Seed)
	assert.Equal(t, 9.5, *tech.CFGScale)
	assert.Equal(t, 30, *tech.Steps)
	assert.Equal(t, "1024x1536", tech.Resolution.String())
	assert.False(t, tech.Resolution.IsText())
}

func TestValidateMissingSubject(t *testing.T) {
	_, err := Validate(decode(t, `{"environment": {"location": "Lisbon tram stop"}}`))
	ds := details(t, err)
	assert.Contains(t, ds, domain.ErrorDetail{FieldPath: "subject", Message: "Field is required but missing"})
}

func TestValidateMissingNestedRequired(t *testing.T) {
	_, err := Validate(decode(t, `{"subject": {}, "environment": {}}`))
	ds := details(t, err)
	assert.Equal(t, []string{"subject.description", "environment.location"}, paths(ds))
	for _, d := range ds {
		assert.Equal(t, "Field is required but missing", d.Message)
	}
}

func TestValidateNullRequiredCountsAsMissing(t *testing.T) {
	_, err := Validate(decode(t, `{"subject": null, "environment": {"location": null}}`))
	assert.Equal(t, []string{"subject", "environment.location"}, paths(details(t, err)))
}

func TestValidateEnumeratesEveryError(t *testing.T) {
	_, err := Validate(decode(t, `{
		"environment": {"location": 12, "weather": false},
		"style": {"aesthetics": ["ok", 3]},
		"technical": {"seed": "abc", "cfg_scale": "high", "steps": 2.5, "aspect_ratio": "wide"}
	}`))
	ds := details(t, err)
	assert.Equal(t, []domain.ErrorDetail{
		{FieldPath: "subject", Message: msgRequired},
		{FieldPath: "environment.location", Message: msgString},
		{FieldPath: "environment.weather", Message: msgString},
		{FieldPath: "style.aesthetics.1", Message: msgString},
		{FieldPath: "technical.seed", Message: msgInteger},
		{FieldPath: "technical.cfg_scale", Message: msgNumber},
		{FieldPath: "technical.steps", Message: msgInteger},
		{FieldPath: "technical.aspect_ratio", Message: msgAspect},
	}, ds)
}

func TestValidateNumericKinds(t *testing.T) {
	base := map[string]any{
		"subject":     map[string]any{"description": "Noor Haddad, 41, architect"},
		"environment": map[string]any{"location": "Amman rooftop"},
	}
	tests := []struct {
		name  string
		seed  any
		valid bool
	}{
		{"json integer", json.Number("42"), true},
		{"integral float", 42.0, true},
		{"go int", 42, true},
		{"fractional", json.Number("42.5"), false},
		{"numeric string", "42", false},
		{"bool", true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := map[string]any{}
			for k, v := range base {
				raw[k] = v
			}
			raw["technical"] = map[string]any{"seed": tc.seed}
			p, err := Validate(raw)
			if !tc.valid {
				assert.Equal(t, []string{"technical.seed"}, paths(details(t, err)))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(42), *p.Technical.Seed)
		})
	}
}

func TestValidateRejectsGenericIdentity(t *testing.T) {
	for _, desc := range []string{"man", "A Woman", "  person ", "a girl"} {
		t.Run(desc, func(t *testing.T) {
			_, err := Validate(map[string]any{
				"subject":     map[string]any{"description": desc},
				"environment": map[string]any{"location": "Oslo harbour"},
			})
			ds := details(t, err)
			require.Len(t, ds, 1)
			assert.Equal(t, "subject.description", ds[0].FieldPath)
			assert.Equal(t, msgGeneric, ds[0].Message)
		})
	}
}

func TestValidateSubjectList(t *testing.T) {
	p, err := Validate(decode(t, `{
		"subject": [{"description": "Mateo Silva, 8"}, {"description": "Lucia Silva, 35", "attributes": ["red coat"]}],
		"environment": {"location": "Montevideo rambla"}
	}`))
	require.NoError(t, err)
	require.Len(t, p.Subject, 2)
	assert.Equal(t, "Lucia Silva, 35", p.Subject[1].Description)

	_, err = Validate(decode(t, `{
		"subject": [{"description": "Mateo Silva, 8"}, {"description": "boy"}, {}, "x"],
		"environment": {"location": "Montevideo rambla"}
	}`))
	assert.Equal(t, []string{"subject.2.description", "subject.3", "subject.1.description"}, paths(details(t, err)))

	_, err = Validate(decode(t, `{"subject": [], "environment": {"location": "Montevideo"}}`))
	assert.Equal(t, []domain.ErrorDetail{{FieldPath: "subject", Message: msgSubjectList}}, details(t, err))
}

func TestValidateResolution(t *testing.T) {
	tests := []struct {
		name string
		res  string
		want []domain.ErrorDetail
	}{
		{"string", `"1024x1536"`, nil},
		{"padded string", `" 800 x 600 "`, nil},
		{"bad string", `"big"`, []domain.ErrorDetail{{FieldPath: "technical.resolution", Message: msgResPattern}}},
		{"missing height", `{"width": 512}`, []domain.ErrorDetail{{FieldPath: "technical.resolution.height", Message: msgRequired}}},
		{"negative width", `{"width": -5, "height": 10}`, []domain.ErrorDetail{{FieldPath: "technical.resolution.width", Message: "Input should be greater than or equal to 0"}}},
		{"wrong kind", `[1024, 768]`, []domain.ErrorDetail{{FieldPath: "technical.resolution", Message: msgResolution}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(decode(t, `{
				"subject": {"description": "Ines Duarte, 27"},
				"environment": {"location": "Porto"},
				"technical": {"resolution": `+tc.res+`}
			}`))
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			assert.Equal(t, tc.want, details(t, err))
		})
	}
}

func TestValidateAspectRatioPattern(t *testing.T) {
	_, err := Validate(decode(t, `{
		"subject": {"description": "Ines Duarte, 27"},
		"environment": {"location": "Porto"},
		"technical": {"aspect_ratio": "16x9"}
	}`))
	assert.Equal(t, []domain.ErrorDetail{{FieldPath: "technical.aspect_ratio", Message: msgAspect}}, details(t, err))
}

func TestValidateNonObjectRoot(t *testing.T) {
	for _, raw := range []any{"prompt", nil, []any{}, json.Number("3")} {
		_, err := Validate(raw)
		ds := details(t, err)
		require.Len(t, ds, 1)
		assert.Equal(t, domain.UnknownFieldPath, ds[0].FieldPath)
	}
}

func TestValidateSection(t *testing.T) {
	require.NoError(t, ValidateSection("style", map[string]any{"lighting": "golden hour"}))
	require.NoError(t, ValidateSection("environment", map[string]any{"location": "Hanoi alley"}))

	err := ValidateSection("environment", map[string]any{"weather": 3})
	assert.Equal(t, []string{"environment.location", "environment.weather"}, paths(details(t, err)))

	err = ValidateSection("style", []any{})
	assert.Equal(t, []string{"style"}, paths(details(t, err)))

	err = ValidateSection("environment", nil)
	assert.Equal(t, []domain.ErrorDetail{{FieldPath: "environment", Message: msgRequired}}, details(t, err))

	err = ValidateSection("technical", map[string]any{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrInvalidPrompt))
}

func TestDecodeRaw(t *testing.T) {
	raw, err := DecodeRaw(strings.NewReader(`{"seed": 42}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("42"), raw.(map[string]any)["seed"])

	_, err = DecodeRaw(strings.NewReader(`{"seed": 42} {}`))
	require.Error(t, err)

	_, err = DecodeRaw(strings.NewReader(`{"seed": `))
	require.Error(t, err)
}

func TestValidateRecoversFromRulePanic(t *testing.T) {
	orig := checkRules
	checkRules = func(*Prompt) error { panic("rule table corrupted") }
	t.Cleanup(func() { checkRules = orig })

	raw, err := DecodeRaw(strings.NewReader(`{
		"subject": {"description": "Valentina Ruiz, 22, Colombian-Lebanese student"},
		"environment": {"location": "historic piazza in Bari old town"}
	}`))
	require.NoError(t, err)

	p, err := Validate(raw)
	assert.Nil(t, p)
	ds := details(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, domain.UnknownFieldPath, ds[0].FieldPath)
	assert.Contains(t, ds[0].Message, "rule table corrupted")
}
