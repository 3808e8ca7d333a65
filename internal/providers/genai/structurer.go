package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"promptgate/internal/domain"
	"promptgate/internal/domain/baseprompt"
	"promptgate/internal/domain/zimage"
)

const defaultTimeout = 60 * time.Second

// StructurerOptions configures a Structurer. Zero values select defaults.
type StructurerOptions struct {
	TextModel   string
	VisionModel string
	Timeout     time.Duration
	Logger      *zerolog.Logger
}

// Structurer asks a Generator for a base prompt and validates the answer.
// The model output is never trusted: malformed JSON and schema mismatches
// come back as *domain.ValidationError.
type Structurer struct {
	gen         Generator
	textModel   string
	visionModel string
	timeout     time.Duration
	logger      zerolog.Logger
}

func NewStructurer(gen Generator, opts StructurerOptions) *Structurer {
	s := &Structurer{
		gen:         gen,
		textModel:   strings.TrimSpace(opts.TextModel),
		visionModel: strings.TrimSpace(opts.VisionModel),
		timeout:     opts.Timeout,
		logger:      zerolog.Nop(),
	}
	if s.textModel == "" {
		s.textModel = defaultTextModel
	}
	if s.visionModel == "" {
		s.visionModel = defaultVisionModel
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}
	if opts.Logger != nil {
		s.logger = *opts.Logger
	}
	return s
}

// TextToBase converts free text into a validated base prompt.
func (s *Structurer) TextToBase(ctx context.Context, text string) (*baseprompt.Prompt, error) {
	return s.structure(ctx, Request{
		Model:           s.textModel,
		System:          textToBaseInstruction,
		Text:            "USER INPUT:\n" + text,
		Temperature:     0.6,
		MaxOutputTokens: 1200,
	})
}

// ImageToBase extracts a validated base prompt from image bytes.
func (s *Structurer) ImageToBase(ctx context.Context, image []byte, mime string) (*baseprompt.Prompt, error) {
	return s.structure(ctx, Request{
		Model:           s.visionModel,
		System:          imageToBaseInstruction,
		Text:            imageToBaseUserText,
		Image:           image,
		ImageMIME:       mime,
		Temperature:     0.5,
		MaxOutputTokens: 2500,
	})
}

// TextToPrompt converts free text into a validated Z-Image-Turbo prompt.
func (s *Structurer) TextToPrompt(ctx context.Context, text string) (*zimage.Prompt, error) {
	raw, err := s.generateJSON(ctx, Request{
		Model:           s.textModel,
		System:          textToPromptInstruction,
		Text:            "USER INPUT:\n" + text,
		Temperature:     0.7,
		MaxOutputTokens: 2000,
	})
	if err != nil {
		return nil, err
	}
	return zimage.Validate(raw)
}

// ImageToPrompt extracts a validated Z-Image-Turbo prompt from image bytes.
func (s *Structurer) ImageToPrompt(ctx context.Context, image []byte, mime string) (*zimage.Prompt, error) {
	raw, err := s.generateJSON(ctx, Request{
		Model:           s.visionModel,
		System:          imageToPromptInstruction,
		Text:            imageToBaseUserText,
		Image:           image,
		ImageMIME:       mime,
		Temperature:     0.5,
		MaxOutputTokens: 2500,
	})
	if err != nil {
		return nil, err
	}
	return zimage.Validate(raw)
}

func (s *Structurer) structure(ctx context.Context, req Request) (*baseprompt.Prompt, error) {
	raw, err := s.generateJSON(ctx, req)
	if err != nil {
		return nil, err
	}
	return baseprompt.Validate(raw)
}

// generateJSON runs req and decodes the JSON document in the reply.
func (s *Structurer) generateJSON(ctx context.Context, req Request) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	text, err := s.gen.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s after %s", domain.ErrTimeout, req.Model, s.timeout)
		}
		return nil, err
	}
	s.logger.Debug().
		Str("model", req.Model).
		Dur("elapsed", time.Since(started)).
		Msg("genai: structuring response")

	raw, err := baseprompt.DecodeRaw(strings.NewReader(extractJSON(text)))
	if err != nil {
		return nil, domain.NewValidationError([]domain.ErrorDetail{{
			FieldPath: "response",
			Message:   "Model returned invalid JSON: " + err.Error(),
		}})
	}
	return raw, nil
}
