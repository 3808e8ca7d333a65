package image

import (
	"fmt"
	"strings"

	"promptgate/internal/domain"
	"promptgate/internal/domain/baseprompt"
)

const bananaModel = "banana-pro"

// BananaPart is one text part of a chat message.
type BananaPart struct {
	Text string `json:"text"`
}

// BananaContent is a single chat turn.
type BananaContent struct {
	Role  string       `json:"role"`
	Parts []BananaPart `json:"parts"`
}

// BananaMeta is only emitted when the prompt carried a technical block.
type BananaMeta struct {
	BasePromptVersion string   `json:"baseprompt_version"`
	SeedProvided      bool     `json:"seed_provided"`
	Warnings          []string `json:"warnings"`
}

// BananaPayload is a single-turn chat request for Banana Pro.
type BananaPayload struct {
	Model    string          `json:"model"`
	Contents []BananaContent `json:"contents"`
	Seed     *int64          `json:"seed,omitempty"`
	Steps    *int            `json:"steps,omitempty"`
	Meta     *BananaMeta     `json:"meta,omitempty"`
}

func (BananaPayload) Provider() string { return bananaModel }

// Banana adapts prompts for the Banana Pro (nano banana) chat model.
type Banana struct{}

func (Banana) Name() string { return bananaModel }

func (Banana) Adapt(p baseprompt.Prompt) (Payload, error) {
	if len(p.Subject) == 0 {
		return nil, fmt.Errorf("%w: banana: prompt has no subject", domain.ErrAdaptation)
	}
	text := strings.Join(promptParts(p), ". ")
	out := BananaPayload{
		Model: bananaModel,
		Contents: []BananaContent{{
			Role:  "user",
			Parts: []BananaPart{{Text: text}},
		}},
	}

	if p.Technical == nil {
		return out, nil
	}
	tech := *p.Technical
	out.Seed = clonePtr(tech.Seed)
	out.Steps = clonePtr(tech.Steps)

	warnings := []string{}
	if tech.Sampler != nil {
		warnings = append(warnings, "Unsupported option for banana-pro: sampler")
	}
	if tech.NegativePrompt != nil {
		warnings = append(warnings, "Unsupported option for banana-pro: negative_prompt")
	}
	if tech.Resolution != nil {
		warnings = append(warnings, "Unsupported option for banana-pro: resolution")
	}
	if tech.Guidance != nil {
		warnings = append(warnings, "Unsupported option for banana-pro: guidance")
	}
	warnings = append(warnings, forbiddenWarnings(text)...)

	out.Meta = &BananaMeta{
		BasePromptVersion: BasePromptVersion,
		SeedProvided:      tech.Seed != nil,
		Warnings:          warnings,
	}
	return out, nil
}
