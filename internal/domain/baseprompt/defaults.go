package baseprompt

import "strconv"

// Fallback values filled in by ApplyDefaults.
const (
	DefaultLighting    = "soft daylight"
	DefaultCamera      = "35mm lens"
	DefaultAspectRatio = "16:9"
	DefaultCFGScale    = 7.0
	DefaultAtmosphere  = "natural ambient lighting"
	DefaultWeather     = "clear conditions"
)

// ApplyDefaults returns a deep copy of raw with the optional fields filled in,
// plus the field paths that were defaulted in order. Present non-null values
// are never overwritten and raw itself is left untouched. Applying it to its
// own output yields the same value and no paths.
func ApplyDefaults(raw any) (any, []string) {
	applied := []string{}
	root, ok := cloneValue(raw).(map[string]any)
	if !ok {
		return cloneValue(raw), applied
	}

	if style, ok := root["style"].(map[string]any); ok {
		applied = fill(style, "style", "lighting", DefaultLighting, applied)
		applied = fill(style, "style", "camera", DefaultCamera, applied)
	} else if root["style"] == nil {
		root["style"] = map[string]any{
			"lighting":   DefaultLighting,
			"camera":     DefaultCamera,
			"film_stock": nil,
			"aesthetics": nil,
		}
		applied = append(applied, "style", "style.lighting", "style.camera")
	}

	if technical, ok := root["technical"].(map[string]any); ok {
		applied = fill(technical, "technical", "aspect_ratio", DefaultAspectRatio, applied)
		applied = fill(technical, "technical", "cfg_scale", DefaultCFGScale, applied)
	} else if root["technical"] == nil {
		root["technical"] = map[string]any{
			"aspect_ratio": DefaultAspectRatio,
			"seed":         nil,
			"cfg_scale":    DefaultCFGScale,
		}
		applied = append(applied, "technical", "technical.aspect_ratio", "technical.cfg_scale")
	}

	if env, ok := root["environment"].(map[string]any); ok {
		applied = fill(env, "environment", "atmosphere", DefaultAtmosphere, applied)
		applied = fill(env, "environment", "weather", DefaultWeather, applied)
	}

	switch subject := root["subject"].(type) {
	case map[string]any:
		applied = fill(subject, "subject", "attributes", []any{}, applied)
	case []any:
		for i, item := range subject {
			if m, ok := item.(map[string]any); ok {
				applied = fill(m, "subject."+strconv.Itoa(i), "attributes", []any{}, applied)
			}
		}
	}
	return root, applied
}

func fill(m map[string]any, parent, key string, value any, applied []string) []string {
	if m[key] != nil {
		return applied
	}
	m[key] = value
	return append(applied, parent+"."+key)
}

// cloneValue copies the maps and slices of a decoded JSON value. Scalars are
// immutable and shared.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
