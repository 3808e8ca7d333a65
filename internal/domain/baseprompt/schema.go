package baseprompt

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema reflects the JSON Schema of Prompt. Fields without omitempty are
// required.
func Schema() *jsonschema.Schema {
	s := reflector().Reflect(&Prompt{})
	s.Title = "BasePrompt"
	s.Description = "Provider-agnostic image prompt translated into provider payloads"
	return s
}

func reflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		Anonymous:                 true,
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}
}

// JSONSchema describes the object-or-list encoding of Subjects.
func (Subjects) JSONSchema() *jsonschema.Schema {
	item := reflector().Reflect(&Subject{})
	item.Version = ""
	minItems := uint64(1)
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			item,
			{Type: "array", Items: item, MinItems: &minItems},
		},
	}
}

// JSONSchema describes the "WxH" or {width,height} encoding of Resolution.
func (Resolution) JSONSchema() *jsonschema.Schema {
	minimum := json.Number("0")
	dims := jsonschema.NewProperties()
	dims.Set("width", &jsonschema.Schema{Type: "integer", Minimum: minimum})
	dims.Set("height", &jsonschema.Schema{Type: "integer", Minimum: minimum})
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string", Pattern: resolutionPattern.String()},
			{Type: "object", Properties: dims, Required: []string{"width", "height"}},
		},
	}
}
