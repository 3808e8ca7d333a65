// Package zimage defines the modular Z-Image-Turbo prompt: a reusable
// character, a scene, an action and optional text elements. Assemble turns a
// validated Prompt into the natural-language prompt text the model consumes.
package zimage

// PhysicalDescriptors pins the physical look to the fixed descriptor
// tables, which keeps image models away from their default faces.
type PhysicalDescriptors struct {
	SkinTone           string  `json:"skin_tone" validate:"required,skin_tone"`
	Hair               string  `json:"hair" validate:"required,hair"`
	FacialStructure    string  `json:"facial_structure" validate:"required,facial_structure"`
	Eyes               string  `json:"eyes" validate:"required,eyes"`
	AdditionalFeatures *string `json:"additional_features,omitempty"`
}

// FictionalIdentity is a specific, invented person, never "a man".
type FictionalIdentity struct {
	Name       string `json:"name" validate:"required"`
	Age        int    `json:"age" validate:"min=1,max=120" jsonschema:"minimum=1,maximum=120"`
	Background string `json:"background" validate:"required,specific_identity"`
}

// CharacterProfile is the constant part of a character reused across scenes.
type CharacterProfile struct {
	ID                  *string             `json:"id,omitempty"`
	Identity            FictionalIdentity   `json:"identity"`
	PhysicalDescriptors PhysicalDescriptors `json:"physical_descriptors"`
	Clothing            string              `json:"clothing" validate:"required"`
	SpecialNotes        *string             `json:"special_notes,omitempty"`
}

// SceneModule is an exchangeable setting.
type SceneModule struct {
	ID              *string `json:"id,omitempty"`
	Setting         string  `json:"setting" validate:"required"`
	Lighting        string  `json:"lighting" validate:"required,lighting"`
	LightingDetails *string `json:"lighting_details,omitempty"`
	Atmosphere      string  `json:"atmosphere" validate:"required"`
	Composition     string  `json:"composition" validate:"required"`
	TechnicalSpecs  *string `json:"technical_specs,omitempty"`
}

type ActionModule struct {
	Action      string  `json:"action" validate:"required"`
	PoseDetails *string `json:"pose_details,omitempty"`
}

// TextElement is text rendered inside the image.
type TextElement struct {
	Content         string  `json:"content" validate:"required"`
	FontStyle       string  `json:"font_style" validate:"required"`
	Placement       string  `json:"placement" validate:"required"`
	Size            *string `json:"size,omitempty"`
	SurfaceMaterial *string `json:"surface_material,omitempty"`
}

type TextElementsModule struct {
	Elements []TextElement `json:"elements,omitempty" validate:"omitempty,dive"`
}

// Prompt combines character, scene, action and text elements.
type Prompt struct {
	ID             *string             `json:"id,omitempty"`
	Character      CharacterProfile    `json:"character"`
	Scene          SceneModule         `json:"scene"`
	Action         ActionModule        `json:"action"`
	TextElements   *TextElementsModule `json:"text_elements,omitempty"`
	StoryID        *string             `json:"story_id,omitempty"`
	SequenceNumber *int                `json:"sequence_number,omitempty"`
	Notes          *string             `json:"notes,omitempty"`
}

// Texts returns the text elements, nil when there are none.
func (p Prompt) Texts() []TextElement {
	if p.TextElements == nil {
		return nil
	}
	return p.TextElements.Elements
}

// Assembly is an assembled prompt with its forbidden-word check.
type Assembly struct {
	JSONStructure       Prompt   `json:"json_structure"`
	FullPromptText      string   `json:"full_prompt_text"`
	ForbiddenWordsCheck bool     `json:"forbidden_words_check"`
	ForbiddenWords      []string `json:"forbidden_words"`
	EstimatedWordCount  int      `json:"estimated_word_count"`
}
