package zimage

import (
	"github.com/invopop/jsonschema"

	"promptgate/internal/domain/vocab"
)

// Schema reflects the JSON Schema of Prompt with the descriptor enums filled
// in from the vocabulary.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:                 true,
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}
	s := r.Reflect(&Prompt{})
	s.Title = "ZImageTurboPrompt"
	s.Description = "Modular character, scene and action prompt assembled into Z-Image-Turbo text"
	return s
}

func (PhysicalDescriptors) JSONSchemaExtend(s *jsonschema.Schema) {
	v := vocab.Default()
	setEnum(s, "skin_tone", v.SkinTones)
	setEnum(s, "hair", v.Hair)
	setEnum(s, "facial_structure", v.FacialStructures)
	setEnum(s, "eyes", v.Eyes)
}

func (SceneModule) JSONSchemaExtend(s *jsonschema.Schema) {
	setEnum(s, "lighting", vocab.Default().Lighting)
}

func setEnum(s *jsonschema.Schema, property string, values []string) {
	prop, ok := s.Properties.Get(property)
	if !ok {
		return
	}
	prop.Enum = make([]any, len(values))
	for i, v := range values {
		prop.Enum[i] = v
	}
}
