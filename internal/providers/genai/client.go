// Package genai turns free text or an image into a base prompt through the
// Gemini API.
package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	googleai "google.golang.org/genai"
)

const (
	defaultTextModel   = "gemini-2.5-flash"
	defaultVisionModel = "gemini-2.5-pro"
)

// Request is one generation call: a system instruction plus either user text,
// image bytes, or both.
type Request struct {
	Model           string
	System          string
	Text            string
	Image           []byte
	ImageMIME       string
	Temperature     float32
	MaxOutputTokens int32
}

// Generator returns the raw model text for a request.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// Client calls the Gemini generateContent endpoint through the official SDK.
type Client struct {
	sdk    *googleai.Client
	logger zerolog.Logger
}

// NewClient builds a client for the Gemini Developer API.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	cfg := &googleai.ClientConfig{
		APIKey:     apiKey,
		Backend:    googleai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.HTTPOptions = googleai.HTTPOptions{BaseURL: base}
	}
	sdk, err := googleai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Client{sdk: sdk, logger: logger}, nil
}

func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	var parts []*googleai.Part
	if len(req.Image) > 0 {
		mime := req.ImageMIME
		if mime == "" {
			mime = "image/jpeg"
		}
		parts = append(parts, googleai.NewPartFromBytes(req.Image, mime))
	}
	if req.Text != "" {
		parts = append(parts, googleai.NewPartFromText(req.Text))
	}
	if len(parts) == 0 {
		return "", errors.New("gemini: empty request")
	}

	config := &googleai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = googleai.NewContentFromText(req.System, googleai.RoleUser)
	}
	if req.Temperature > 0 {
		t := req.Temperature
		config.Temperature = &t
	}
	if req.MaxOutputTokens > 0 {
		config.MaxOutputTokens = req.MaxOutputTokens
	}

	contents := []*googleai.Content{googleai.NewContentFromParts(parts, googleai.RoleUser)}
	resp, err := c.sdk.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		c.logger.Warn().Err(err).Str("model", req.Model).Msg("gemini: generate content failed")
		return "", fmt.Errorf("gemini generate %s: %w", req.Model, err)
	}
	text := resp.Text()
	c.logger.Debug().Str("model", req.Model).Int("chars", len(text)).Msg("gemini: response received")
	return text, nil
}

var _ Generator = (*Client)(nil)
