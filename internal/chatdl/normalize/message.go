package normalize

import "fmt"

// textOf renders a projected field (already simpleText-unwrapped by
// project) as plain text: either it's already a string, or it's a
// {"runs": [...]} object to flatten, or a leftover {"simpleText": ...}.
func textOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if runs, ok := t["runs"].([]any); ok {
			return ParseRuns(runs)
		}
		if s, ok := t["simpleText"].(string); ok {
			return s
		}
	}
	return ""
}

func stickerLabel(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	acc, ok := m["accessibility"].(map[string]any)
	if !ok {
		return ""
	}
	data, ok := acc["accessibilityData"].(map[string]any)
	if !ok {
		return ""
	}
	label, _ := data["label"].(string)
	return label
}

// buildMessage renders the textual message from the renderer-specific
// source fields, choosing among the member-item, welcome-item,
// sticker-item, paid-no-message, and normal-text shapes.
func buildMessage(data map[string]any) string {
	headerPrimary, hasHeaderPrimary := data["header_primary_text"]
	headerSubtext, hasHeaderSubtext := data["header_subtext"]
	sticker, hasSticker := data["sticker"]
	message, hasMessage := data["message"]
	_, hasAmount := data["amount"]

	delete(data, "header_primary_text")
	delete(data, "header_subtext")
	delete(data, "sticker")

	switch {
	case hasHeaderPrimary:
		msg := textOf(headerPrimary)
		if hasHeaderSubtext {
			msg += fmt.Sprintf(" (%s)", textOf(headerSubtext))
		}
		if hasMessage {
			msg += ": " + textOf(message)
		}
		return msg
	case hasHeaderSubtext:
		return textOf(headerSubtext)
	case hasSticker:
		msg := fmt.Sprintf("<<%s>>", stickerLabel(sticker))
		if hasMessage {
			msg += ": " + textOf(message)
		}
		return msg
	case hasAmount && !hasMessage:
		return "<<no message>>"
	case hasMessage:
		return textOf(message)
	default:
		return ""
	}
}
