package genai

import "strings"

// extractJSON strips Markdown fences and any prose around the outermost JSON
// object or array.
func extractJSON(raw string) string {
	text := trimCodeFence(strings.TrimSpace(raw))
	if text == "" {
		return ""
	}
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	// Drop the info string, e.g. "json".
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		if info := strings.TrimSpace(text[:nl]); !strings.ContainsAny(info, "{[") {
			text = text[nl+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
