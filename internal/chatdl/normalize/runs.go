package normalize

import (
	"fmt"
	"net/url"
	"strings"
)

const youtubeHome = "https://www.youtube.com"

// ParseRuns flattens a slice of platform "run" objects into plain
// text: text runs resolve navigation links, emoji runs use the first
// shortcut (falling back to the emoji id), and anything else is
// coerced to a generic string.
func ParseRuns(runs []any) string {
	var sb strings.Builder
	for _, raw := range runs {
		run, ok := raw.(map[string]any)
		if !ok {
			fmt.Fprintf(&sb, "%v", raw)
			continue
		}
		switch {
		case run["text"] != nil:
			sb.WriteString(parseTextRun(run))
		case run["emoji"] != nil:
			sb.WriteString(parseEmojiRun(run))
		default:
			fmt.Fprintf(&sb, "%v", run)
		}
	}
	return sb.String()
}

func parseTextRun(run map[string]any) string {
	text, _ := run["text"].(string)
	nav, ok := run["navigationEndpoint"].(map[string]any)
	if !ok {
		return text
	}
	link, ok := extractNavigationURL(nav)
	if !ok {
		return text
	}
	return NormalizeLink(link)
}

func extractNavigationURL(nav map[string]any) (string, bool) {
	cmd, ok := nav["commandMetadata"].(map[string]any)
	if !ok {
		return "", false
	}
	web, ok := cmd["webCommandMetadata"].(map[string]any)
	if !ok {
		return "", false
	}
	u, ok := web["url"].(string)
	return u, ok
}

func parseEmojiRun(run map[string]any) string {
	emoji, ok := run["emoji"].(map[string]any)
	if !ok {
		return fmt.Sprintf("%v", run)
	}
	if shortcuts, ok := emoji["shortcuts"].([]any); ok && len(shortcuts) > 0 {
		if s, ok := shortcuts[0].(string); ok {
			return s
		}
	}
	if id, ok := emoji["emojiId"].(string); ok {
		return id
	}
	return ""
}

// NormalizeLink resolves a raw platform link the way the original
// resolves a navigation endpoint's URL:
//   - "/redirect...?q=X" and "https://www.youtube.com/redirect...?q=X"
//     resolve to the decoded X.
//   - protocol-relative "//host/p" becomes "https://host/p".
//   - root-relative "/p" gets the site host prepended.
//   - anything else passes through unchanged.
func NormalizeLink(text string) string {
	switch {
	case strings.HasPrefix(text, "/redirect"), strings.HasPrefix(text, "https://www.youtube.com/redirect"):
		u, err := url.Parse(text)
		if err != nil {
			return text
		}
		if q := u.Query().Get("q"); q != "" {
			return q
		}
		return ""
	case strings.HasPrefix(text, "//"):
		return "https:" + text
	case strings.HasPrefix(text, "/"):
		return youtubeHome + text
	default:
		return text
	}
}
