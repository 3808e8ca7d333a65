// Package image translates a validated baseprompt.Prompt into the payloads
// expected by the supported image-generation providers.
package image

import (
	"sort"
	"strings"

	"promptgate/internal/domain"
	"promptgate/internal/domain/baseprompt"
)

// BasePromptVersion is stamped into every payload meta block.
const BasePromptVersion = "v1"

// Payload is a provider-specific request body.
type Payload interface {
	Provider() string
}

// Adapter maps a validated prompt onto one provider's payload shape. Adapt
// must be safe for concurrent use and must not retain the prompt.
type Adapter interface {
	Name() string
	Adapt(p baseprompt.Prompt) (Payload, error)
}

// ProviderInfo describes a registered provider and the names resolving to it.
type ProviderInfo struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

var (
	flux   Adapter = Flux{}
	banana Adapter = Banana{}

	registry = map[string]Adapter{
		"flux":        flux,
		"banana":      banana,
		"banana-pro":  banana,
		"nano banana": banana,
		"nano-banana": banana,
	}
)

// Get resolves a provider name, ignoring case and surrounding whitespace.
func Get(name string) (Adapter, error) {
	if a, ok := registry[strings.ToLower(strings.TrimSpace(name))]; ok {
		return a, nil
	}
	return nil, &domain.UnknownProviderError{Name: name}
}

// Providers lists the registered adapters with their aliases, sorted by name.
func Providers() []ProviderInfo {
	byName := map[string][]string{}
	for alias, a := range registry {
		if alias != a.Name() {
			byName[a.Name()] = append(byName[a.Name()], alias)
		} else if _, ok := byName[alias]; !ok {
			byName[alias] = []string{}
		}
	}
	out := make([]ProviderInfo, 0, len(byName))
	for name, aliases := range byName {
		sort.Strings(aliases)
		out = append(out, ProviderInfo{Name: name, Aliases: aliases})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
