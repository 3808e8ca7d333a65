package zimage

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"promptgate/internal/domain"
	"promptgate/internal/domain/vocab"
)

const (
	msgRequired = "Field is required but missing"
	msgString   = "Input should be a valid string"
	msgInteger  = "Input should be a valid integer"
	msgList     = "Input should be a valid list"
	msgObject   = "Input should be a valid object"
	msgGeneric  = "Background must describe a specific fictional identity, not generic terms such as 'man' or 'woman'"
)

// requiredKeys must be present in the input. A missing block is reported
// once instead of once per field inside it.
var requiredKeys = []string{
	"character",
	"character.identity",
	"character.identity.age",
	"character.physical_descriptors",
	"scene",
	"action",
}

var (
	indexPattern = regexp.MustCompile(`\[(\d+)\]`)

	rules = newRuleValidator()

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
		return !vocab.ContainsGenericIdentity(fl.Field().String())
	}))
	for tag, values := range descriptorTables() {
		allowed := make(map[string]struct{}, len(values))
		for _, s := range values {
			allowed[s] = struct{}{}
		}
		must(v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			_, ok := allowed[fl.Field().String()]
			return ok
		}))
	}
	return v
}

// descriptorTables maps each enum rule tag to its vocabulary table.
func descriptorTables() map[string][]string {
	v := vocab.Default()
	return map[string][]string{
		"skin_tone":        v.SkinTones,
		"hair":             v.Hair,
		"facial_structure": v.FacialStructures,
		"eyes":             v.Eyes,
		"lighting":         v.Lighting,
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate checks a decoded JSON value and returns the typed prompt. Any
// failure is a *domain.ValidationError.
func Validate(raw any) (p *Prompt, err error) {
	defer func() {
		if r := recover(); r != nil {
			p = nil
			err = unexpected(r)
		}
	}()

	root, ok := raw.(map[string]any)
	if !ok {
		return nil, fail(domain.UnknownFieldPath, msgObject)
	}
	var details []domain.ErrorDetail
	missing := missingKeys(root)
	for _, path := range missing {
		details = append(details, domain.ErrorDetail{FieldPath: path, Message: msgRequired})
	}

	data, err := json.Marshal(root)
	if err != nil {
		return nil, unexpected(err)
	}
	var prompt Prompt
	if err := json.Unmarshal(data, &prompt); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, unexpected(err)
		}
		return nil, fail(typePath(typeErr.Field), typeMessage(typeErr.Type))
	}

	if ruleErr := checkRules(&prompt); ruleErr != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(ruleErr, &fieldErrs) {
			return nil, unexpected(ruleErr)
		}
		for _, fe := range fieldErrs {
			path := rulePath(fe.Namespace())
			if under(path, missing) {
				continue
			}
			details = append(details, domain.ErrorDetail{FieldPath: path, Message: ruleMessage(fe)})
		}
	}
	if len(details) > 0 {
		return nil, domain.NewValidationError(details)
	}
	return &prompt, nil
}

func missingKeys(root map[string]any) []string {
	var missing []string
	for _, path := range requiredKeys {
		if under(path, missing) {
			continue
		}
		m := root
		keys := strings.Split(path, ".")
		for _, k := range keys[:len(keys)-1] {
			m, _ = m[k].(map[string]any)
		}
		if v, ok := m[keys[len(keys)-1]]; !ok || v == nil {
			missing = append(missing, path)
		}
	}
	return missing
}

// under reports whether path equals or is nested below one of prefixes.
func under(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+".") {
			return true
		}
	}
	return false
}

func fail(path, msg string) error {
	return domain.NewValidationError([]domain.ErrorDetail{{FieldPath: path, Message: msg}})
}

func unexpected(cause any) error {
	return fail(domain.UnknownFieldPath, fmt.Sprintf("Unexpected validation error: %v", cause))
}

func typePath(field string) string {
	if field == "" {
		return domain.UnknownFieldPath
	}
	return field
}

func typeMessage(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return msgString
	case reflect.Int, reflect.Int64:
		return msgInteger
	case reflect.Slice:
		return msgList
	default:
		return msgObject
	}
}

// rulePath turns "Prompt.text_elements.elements[1].content" into
// "text_elements.elements.1.content".
func rulePath(namespace string) string {
	path := namespace
	if i := strings.IndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}
	return indexPattern.ReplaceAllString(path, ".$1")
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "specific_identity":
		return msgGeneric
	case "min":
		return "Input should be greater than or equal to " + fe.Param()
	case "max":
		return "Input should be less than or equal to " + fe.Param()
	}
	if values, ok := descriptorTables()[fe.Tag()]; ok {
		return "Input should be one of: '" + strings.Join(values, "', '") + "'"
	}
	return fmt.Sprintf("Value failed the %q rule", fe.Tag())
}
