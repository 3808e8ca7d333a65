package genai

import (
	"fmt"
	"strings"

	"promptgate/internal/domain/vocab"
)

const textToBaseInstruction = `You are a precise structure generator.

Convert the user input into a neutral, model-agnostic JSON document (BasePrompt).

Rules:
- Answer with JSON only. No Markdown, no explanations.
- Use concrete, observable details.
- Never use generic person terms such as "man", "woman" or "person". Use fictional identities with name, age and background.
- Keep subject, environment, style and technical clearly separated.

Output format:
{
  "subject": {"description": "...", "attributes": ["...", "..."]},
  "environment": {"location": "...", "atmosphere": "...", "weather": "..."},
  "style": {"lighting": "...", "camera": "...", "film_stock": "...", "aesthetics": ["...", "..."]},
  "technical": {"aspect_ratio": "W:H", "seed": 0, "cfg_scale": 7.0}
}

Omit a field or set it to null when unsure.`

const imageToBaseInstruction = `You analyse a photograph and extract its visual DNA as a BasePrompt JSON document.

Rules:
- Answer with JSON only. No Markdown, no explanations.
- Describe the subject as a specific fictional identity with name, age and background, never as "man", "woman" or "person".
- Describe skin tone, hair, facial structure and eyes with concrete terms.
- Name the light source and direction, the lens and the film look when visible.
- Avoid quality markers and subjective adjectives such as "masterpiece", "8k" or "beautiful".

Use exactly the structure:
{
  "subject": {"description": "...", "attributes": ["..."]},
  "environment": {"location": "...", "atmosphere": "...", "weather": "..."},
  "style": {"lighting": "...", "camera": "...", "film_stock": "...", "aesthetics": ["..."]},
  "technical": {"aspect_ratio": "W:H"}
}`

const imageToBaseUserText = "Extract the visual DNA of this image now."


var (
	textToPromptInstruction  = zimageInstruction("Convert the user input into a Z-Image-Turbo prompt JSON document.")
	imageToPromptInstruction = zimageInstruction("Analyse the photograph and extract its visual DNA as a Z-Image-Turbo prompt JSON document.")
)

const zimageRules = `%s

Rules:
- Answer with JSON only. No Markdown, no explanations.
- The character is a specific fictional identity with name, age (1 to 120) and a cultural or geographic background. Never use "man", "woman", "boy", "girl" or "person" in the background.
- Clothing names materials and colours.
- Never use quality markers or subjective adjectives such as "masterpiece", "8k", "beautiful" or "cinematic lighting".
- Put text that appears in the image into text_elements with its exact wording.
- Use exactly one of the listed values for each descriptor.

skin_tone: %s
hair: %s
facial_structure: %s
eyes: %s
lighting: %s

Use exactly the structure:
{
  "character": {
    "identity": {"name": "...", "age": 0, "background": "..."},
    "physical_descriptors": {"skin_tone": "...", "hair": "...", "facial_structure": "...", "eyes": "...", "additional_features": "..."},
    "clothing": "...",
    "special_notes": null
  },
  "scene": {"setting": "...", "lighting": "...", "lighting_details": "...", "atmosphere": "...", "composition": "...", "technical_specs": null},
  "action": {"action": "...", "pose_details": "..."},
  "text_elements": {"elements": [{"content": "...", "font_style": "...", "placement": "...", "size": null, "surface_material": null}]}
}`

func zimageInstruction(task string) string {
	v := vocab.Default()
	return fmt.Sprintf(zimageRules, task,
		choices(v.SkinTones), choices(v.Hair), choices(v.FacialStructures), choices(v.Eyes), choices(v.Lighting))
}

func choices(values []string) string {
	return `"` + strings.Join(values, `" | "`) + `"`
}
