package normalize

import (
	"strings"

	"github.com/lbmaian/chatdl/internal/chatdl/model"
)

var iconTypeToAuthorType = map[string]model.AuthorType{
	"VERIFIED":  model.AuthorVerified,
	"MEMBER":    model.AuthorMember,
	"MODERATOR": model.AuthorModerator,
	"OWNER":     model.AuthorOwner,
}

// flattenBadges collects badge tooltips and derives the author's
// highest-ranked badge type. A badge with a tooltip but no icon type
// is treated as MEMBER. First-listed tooltip wins ties in the badges
// string; author type is always the rank-max regardless of order.
func flattenBadges(raw []any) (badges string, authorType model.AuthorType) {
	var tooltips []string
	for _, rawBadge := range raw {
		badge, ok := rawBadge.(map[string]any)
		if !ok {
			continue
		}
		renderer, ok := badge["liveChatAuthorBadgeRenderer"].(map[string]any)
		if !ok {
			continue
		}
		tooltip, _ := renderer["tooltip"].(string)
		iconType := ""
		if icon, ok := renderer["icon"].(map[string]any); ok {
			iconType, _ = icon["iconType"].(string)
		}
		if tooltip != "" {
			tooltips = append(tooltips, tooltip)
			if iconType == "" {
				iconType = "MEMBER"
			}
		}
		if iconType != "" {
			if at, known := iconTypeToAuthorType[iconType]; known {
				authorType = model.MaxAuthorType(authorType, at)
			}
		}
	}
	return strings.Join(tooltips, ", "), authorType
}
