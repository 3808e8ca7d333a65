package baseprompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"promptgate/internal/domain"
	"promptgate/internal/domain/vocab"
)

const (
	msgRequired    = "Field is required but missing"
	msgString      = "Input should be a valid string"
	msgInteger     = "Input should be a valid integer"
	msgNumber      = "Input should be a valid number"
	msgList        = "Input should be a valid list"
	msgObject      = "Input should be a valid object"
	msgSubjectList = "List should have at least 1 item"
	msgResolution  = "Input should be a 'WxH' string or an object with integer width and height"
	msgResPattern  = "String should match pattern 'WxH'"
	msgAspect      = "String should match pattern 'W:H'"
	msgGeneric     = "Generic terms such as 'man' or 'woman' are not allowed; use a specific fictional identity"
)

var (
	resolutionPattern  = regexp.MustCompile(`^\s*\d+\s*x\s*\d+\s*$`)
	aspectRatioPattern = regexp.MustCompile(`^\d+:\d+$`)
	indexPattern       = regexp.MustCompile(`\[(\d+)\]`)

	rules = newRuleValidator()

	// checkRules runs the value rules on a typed prompt.
	checkRules = func(p *Prompt) error { return rules.Struct(p) }
)

func newRuleValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	must(v.RegisterValidation("specific_identity", func(fl validator.FieldLevel) bool {
		return !vocab.IsGenericIdentity(fl.Field().String())
	}))
	must(v.RegisterValidation("aspect_ratio", func(fl validator.FieldLevel) bool {
		return aspectRatioPattern.MatchString(fl.Field().String())
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// DecodeRaw reads one JSON document keeping numbers as json.Number, so that
// 42 and 42.5 stay distinguishable for the integer checks.
func DecodeRaw(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after JSON document")
	}
	return raw, nil
}

// Validate checks an arbitrary decoded JSON value against the schema. It
// returns the typed prompt only when every check passes; otherwise the error
// is a *domain.ValidationError listing all failures.
func Validate(raw any) (p *Prompt, err error) {
	defer func() {
		if r := recover(); r != nil {
			p = nil
			err = unexpected(r)
		}
	}()

	w := &walker{}
	prompt, subjectList := w.prompt(raw)
	if prompt != nil {
		if ruleErr := checkRules(prompt); ruleErr != nil {
			var fieldErrs validator.ValidationErrors
			if !errors.As(ruleErr, &fieldErrs) {
				return nil, unexpected(ruleErr)
			}
			for _, fe := range fieldErrs {
				w.fail(rulePath(fe.Namespace(), subjectList), ruleMessage(fe))
			}
		}
	}
	if len(w.details) > 0 {
		return nil, domain.NewValidationError(w.details)
	}
	return prompt, nil
}

// ValidateSection checks a single top-level block ("style" or "environment")
// on its own, reporting paths rooted at the section name.
func ValidateSection(section string, raw any) error {
	w := &walker{}
	switch {
	case section != "style" && section != "environment":
		return fmt.Errorf("unknown prompt section %q", section)
	case raw == nil:
		w.fail(section, msgRequired)
	case section == "style":
		w.style(raw, section)
	default:
		w.environment(raw, section)
	}
	if len(w.details) > 0 {
		return domain.NewValidationError(w.details)
	}
	return nil
}

func unexpected(cause any) error {
	return domain.NewValidationError([]domain.ErrorDetail{{
		FieldPath: domain.UnknownFieldPath,
		Message:   fmt.Sprintf("Unexpected validation error: %v", cause),
	}})
}

// rulePath turns "Prompt.subject[0].description" into the canonical dotted
// path, dropping the list index when the subject was given as an object.
func rulePath(namespace string, subjectList bool) string {
	path := namespace
	if i := strings.IndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}
	path = indexPattern.ReplaceAllString(path, ".$1")
	if !subjectList && strings.HasPrefix(path, "subject.0") {
		path = "subject" + strings.TrimPrefix(path, "subject.0")
	}
	return path
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "specific_identity":
		return msgGeneric
	case "aspect_ratio":
		return msgAspect
	case "min":
		return "Input should be greater than or equal to " + fe.Param()
	default:
		return fmt.Sprintf("Value failed the %q rule", fe.Tag())
	}
}

type walker struct {
	details []domain.ErrorDetail
}

func (w *walker) fail(path, msg string) {
	w.details = append(w.details, domain.ErrorDetail{FieldPath: path, Message: msg})
}

func (w *walker) prompt(raw any) (*Prompt, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		w.fail(domain.UnknownFieldPath, msgObject)
		return nil, false
	}
	p := &Prompt{}
	var subjectList bool
	if v, present := m["subject"]; !present || v == nil {
		w.fail("subject", msgRequired)
	} else {
		p.Subject, subjectList = w.subjects(v, "subject")
	}
	if v, present := m["environment"]; !present || v == nil {
		w.fail("environment", msgRequired)
	} else if env := w.environment(v, "environment"); env != nil {
		p.Environment = *env
	}
	if v := m["style"]; v != nil {
		p.Style = w.style(v, "style")
	}
	if v := m["technical"]; v != nil {
		p.Technical = w.technical(v, "technical")
	}
	return p, subjectList
}

func (w *walker) subjects(raw any, path string) (Subjects, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return Subjects{w.subject(v, path)}, false
	case []any:
		if len(v) == 0 {
			w.fail(path, msgSubjectList)
			return nil, true
		}
		out := make(Subjects, 0, len(v))
		for i, item := range v {
			itemPath := path + "." + strconv.Itoa(i)
			m, ok := item.(map[string]any)
			if !ok {
				w.fail(itemPath, msgObject)
				out = append(out, Subject{})
				continue
			}
			out = append(out, w.subject(m, itemPath))
		}
		return out, true
	default:
		w.fail(path, msgObject)
		return nil, false
	}
}

func (w *walker) subject(m map[string]any, path string) Subject {
	var s Subject
	if d, ok := w.requiredString(m, "description", path); ok {
		s.Description = d
	}
	s.Attributes = w.stringList(m, "attributes", path)
	return s
}

func (w *walker) environment(raw any, path string) *Environment {
	m, ok := raw.(map[string]any)
	if !ok {
		w.fail(path, msgObject)
		return nil
	}
	env := &Environment{}
	if loc, ok := w.requiredString(m, "location", path); ok {
		env.Location = loc
	}
	env.Atmosphere = w.optionalString(m, "atmosphere", path)
	env.Weather = w.optionalString(m, "weather", path)
	return env
}

func (w *walker) style(raw any, path string) *Style {
	m, ok := raw.(map[string]any)
	if !ok {
		w.fail(path, msgObject)
		return nil
	}
	return &Style{
		Lighting:   w.optionalString(m, "lighting", path),
		Camera:     w.optionalString(m, "camera", path),
		FilmStock:  w.optionalString(m, "film_stock", path),
		Aesthetics: w.stringList(m, "aesthetics", path),
	}
}

func (w *walker) technical(raw any, path string) *TechSpecs {
	m, ok := raw.(map[string]any)
	if !ok {
		w.fail(path, msgObject)
		return nil
	}
	t := &TechSpecs{
		AspectRatio:    w.optionalString(m, "aspect_ratio", path),
		Seed:           w.optionalInt(m, "seed", path),
		CFGScale:       w.optionalFloat(m, "cfg_scale", path),
		Guidance:       w.optionalFloat(m, "guidance", path),
		Sampler:        w.optionalString(m, "sampler", path),
		NegativePrompt: w.optionalString(m, "negative_prompt", path),
	}
	if steps := w.optionalInt(m, "steps", path); steps != nil {
		n := int(*steps)
		t.Steps = &n
	}
	if v := m["resolution"]; v != nil {
		t.Resolution = w.resolution(v, path+".resolution")
	}
	return t
}

func (w *walker) resolution(raw any, path string) *Resolution {
	switch v := raw.(type) {
	case string:
		if !resolutionPattern.MatchString(v) {
			w.fail(path, msgResPattern)
			return nil
		}
		return &Resolution{Text: v}
	case map[string]any:
		width := w.requiredInt(v, "width", path)
		height := w.requiredInt(v, "height", path)
		if width == nil || height == nil {
			return nil
		}
		return &Resolution{Width: width, Height: height}
	default:
		w.fail(path, msgResolution)
		return nil
	}
}

func (w *walker) requiredString(m map[string]any, key, parent string) (string, bool) {
	path := parent + "." + key
	v, present := m[key]
	if !present || v == nil {
		w.fail(path, msgRequired)
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		w.fail(path, msgString)
		return "", false
	}
	return s, true
}

func (w *walker) optionalString(m map[string]any, key, parent string) *string {
	v := m[key]
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		w.fail(parent+"."+key, msgString)
		return nil
	}
	return &s
}

func (w *walker) stringList(m map[string]any, key, parent string) []string {
	v := m[key]
	if v == nil {
		return nil
	}
	path := parent + "." + key
	switch list := v.(type) {
	case []string:
		return append([]string{}, list...)
	case []any:
		out := make([]string, 0, len(list))
		valid := true
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				w.fail(path+"."+strconv.Itoa(i), msgString)
				valid = false
				continue
			}
			out = append(out, s)
		}
		if !valid {
			return nil
		}
		return out
	default:
		w.fail(path, msgList)
		return nil
	}
}

func (w *walker) optionalInt(m map[string]any, key, parent string) *int64 {
	v := m[key]
	if v == nil {
		return nil
	}
	n, ok := asInt(v)
	if !ok {
		w.fail(parent+"."+key, msgInteger)
		return nil
	}
	return &n
}

func (w *walker) requiredInt(m map[string]any, key, parent string) *int {
	path := parent + "." + key
	v, present := m[key]
	if !present || v == nil {
		w.fail(path, msgRequired)
		return nil
	}
	n, ok := asInt(v)
	if !ok || n > math.MaxInt32 || n < math.MinInt32 {
		w.fail(path, msgInteger)
		return nil
	}
	out := int(n)
	return &out
}

func (w *walker) optionalFloat(m map[string]any, key, parent string) *float64 {
	v := m[key]
	if v == nil {
		return nil
	}
	f, ok := asFloat(v)
	if !ok {
		w.fail(parent+"."+key, msgNumber)
		return nil
	}
	return &f
}

// asInt accepts integral numbers only. Booleans and numeric strings are
// rejected.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return integral(f)
	case float64:
		return integral(n)
	case float32:
		return integral(float64(n))
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), n <= math.MaxInt64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	default:
		return 0, false
	}
}

func integral(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int64(f), true
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return float64(n), true
	default:
		if i, ok := asInt(v); ok {
			return float64(i), true
		}
		return 0, false
	}
}
