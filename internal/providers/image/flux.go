package image

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"promptgate/internal/domain"
	"promptgate/internal/domain/baseprompt"
)

const (
	fluxModel           = "flux"
	fluxDefaultSteps    = 28
	fluxDefaultGuidance = 7.0
	fluxFallbackAspect  = "1:1"
)

type size struct{ width, height int }

var (
	fluxAspectSizes = map[string]size{
		"1:1":  {1024, 1024},
		"16:9": {1344, 768},
		"9:16": {768, 1344},
		"4:3":  {1152, 896},
		"3:4":  {896, 1152},
	}

	fluxSamplers = map[string]struct{}{
		"euler":        {},
		"euler_a":      {},
		"ddim":         {},
		"dpmpp_2m":     {},
		"dpmpp_2m_sde": {},
	}

	resolutionText = regexp.MustCompile(`^\s*(\d+)\s*x\s*(\d+)\s*$`)
)

// FluxMeta records the schema version and any non-fatal adaptation notes.
type FluxMeta struct {
	BasePromptVersion string   `json:"baseprompt_version"`
	Warnings          []string `json:"warnings"`
}

// FluxPayload is the Flux text-to-image request body. Seed and Sampler are
// omitted entirely when unset.
type FluxPayload struct {
	Model          string   `json:"model"`
	Prompt         string   `json:"prompt"`
	NegativePrompt string   `json:"negative_prompt"`
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	Steps          int      `json:"steps"`
	Guidance       float64  `json:"guidance"`
	Seed           *int64   `json:"seed,omitempty"`
	Sampler        *string  `json:"sampler,omitempty"`
	Meta           FluxMeta `json:"meta"`
}

func (FluxPayload) Provider() string { return fluxModel }

// Flux adapts prompts for Flux models.
type Flux struct{}

func (Flux) Name() string { return fluxModel }

func (Flux) Adapt(p baseprompt.Prompt) (Payload, error) {
	if len(p.Subject) == 0 {
		return nil, fmt.Errorf("%w: flux: prompt has no subject", domain.ErrAdaptation)
	}
	tech := p.TechnicalOrZero()
	warnings := []string{}

	out := FluxPayload{
		Model:    fluxModel,
		Prompt:   strings.Join(promptParts(p), ", "),
		Steps:    fluxDefaultSteps,
		Guidance: fluxDefaultGuidance,
		Seed:     clonePtr(tech.Seed),
	}

	dims, resWarning := fluxSize(tech)
	if resWarning != "" {
		warnings = append(warnings, resWarning)
	}
	out.Width, out.Height = dims.width, dims.height

	switch {
	case tech.Guidance != nil:
		out.Guidance = *tech.Guidance
	case tech.CFGScale != nil:
		out.Guidance = *tech.CFGScale
	}
	if tech.Steps != nil {
		out.Steps = *tech.Steps
	}
	if tech.NegativePrompt != nil {
		out.NegativePrompt = *tech.NegativePrompt
	}
	if tech.Sampler != nil {
		if _, ok := fluxSamplers[*tech.Sampler]; ok {
			sampler := *tech.Sampler
			out.Sampler = &sampler
		} else {
			warnings = append(warnings, "Unsupported sampler: "+*tech.Sampler)
		}
	}

	warnings = append(warnings, forbiddenWarnings(out.Prompt)...)
	out.Meta = FluxMeta{BasePromptVersion: BasePromptVersion, Warnings: warnings}
	return out, nil
}

// fluxSize picks explicit resolution first, then the aspect ratio table, then
// the square fallback. An unusable resolution yields a warning and falls
// through.
func fluxSize(tech baseprompt.TechSpecs) (size, string) {
	var warning string
	if tech.Resolution != nil {
		if dims, ok := parseResolution(*tech.Resolution); ok {
			return dims, ""
		}
		warning = "Invalid resolution: " + tech.Resolution.String()
	}
	if tech.AspectRatio != nil {
		if dims, ok := fluxAspectSizes[strings.TrimSpace(*tech.AspectRatio)]; ok {
			return dims, warning
		}
	}
	return fluxAspectSizes[fluxFallbackAspect], warning
}

func parseResolution(r baseprompt.Resolution) (size, bool) {
	var dims size
	if r.IsText() {
		m := resolutionText.FindStringSubmatch(r.Text)
		if m == nil {
			return size{}, false
		}
		w, errW := strconv.Atoi(m[1])
		h, errH := strconv.Atoi(m[2])
		if errW != nil || errH != nil {
			return size{}, false
		}
		dims = size{w, h}
	} else {
		if r.Width == nil || r.Height == nil {
			return size{}, false
		}
		dims = size{*r.Width, *r.Height}
	}
	if dims.width <= 0 || dims.height <= 0 {
		return size{}, false
	}
	return dims, true
}
