// Package normalize implements C3: converting a raw single-key
// renderer item into the canonical chat record.
package normalize

import (
	"fmt"

	"github.com/lbmaian/chatdl/internal/chatdl/model"
	"github.com/lbmaian/chatdl/internal/log"
)

// Item normalizes a single raw `{rendererName: payload}` item into a
// canonical Record and its category. Unknown renderers are logged and
// normalized on a best-effort basis rather than dropped; callers
// decide whether to skip CategoryIgnore results.
func Item(item map[string]any) (*model.Record, Category, error) {
	rendererName, payload, err := soleEntry(item)
	if err != nil {
		return nil, "", err
	}

	category, known := CategoryOf(rendererName)
	if !known {
		log.WithComponent("normalize").Warn().Str("renderer", rendererName).Msg("unknown renderer, normalizing best-effort")
		category = CategoryMessage
	}

	data := project(payload)

	if badgesRaw, ok := payload["authorBadges"].([]any); ok && len(badgesRaw) > 0 {
		badges, authorType := flattenBadges(badgesRaw)
		data["badges"] = badges
		data["author_type"] = authorType
	}

	if showItem, ok := navigateShowItemEndpoint(payload); ok {
		nested, _, err := Item(showItem)
		if err == nil && nested != nil {
			mergeOuterWins(data, nested)
		}
		return recordFromData(data), category, nil
	}

	data["message"] = buildMessage(data)

	return recordFromData(data), category, nil
}

func soleEntry(item map[string]any) (string, map[string]any, error) {
	if len(item) != 1 {
		return "", nil, fmt.Errorf("normalize: item must have exactly one key, got %d", len(item))
	}
	for k, v := range item {
		payload, ok := v.(map[string]any)
		if !ok {
			return "", nil, fmt.Errorf("normalize: payload for %q is not an object", k)
		}
		return k, payload, nil
	}
	panic("unreachable")
}

func navigateShowItemEndpoint(payload map[string]any) (map[string]any, bool) {
	showItemEndpoint, ok := payload["showItemEndpoint"].(map[string]any)
	if !ok {
		return nil, false
	}
	showLiveChatItemEndpoint, ok := showItemEndpoint["showLiveChatItemEndpoint"].(map[string]any)
	if !ok {
		return nil, false
	}
	renderer, ok := showLiveChatItemEndpoint["renderer"].(map[string]any)
	if !ok {
		return nil, false
	}
	return renderer, true
}

// mergeOuterWins merges nested's fields into outer's data map, with
// outer's existing fields winning any conflict except message, which
// nested always supplies (the outer shell has no message of its own
// at this point since buildMessage hasn't run for it).
func mergeOuterWins(outer map[string]any, nested *model.Record) {
	nestedData := recordToData(nested)
	for k, v := range nestedData {
		if _, exists := outer[k]; !exists {
			outer[k] = v
		}
	}
	outer["message"] = nestedData["message"]
}
