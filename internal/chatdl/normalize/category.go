package normalize

// Category classifies a renderer for message-type filtering and for
// the message/superchat skip rule in Phase III step 5.
type Category string

const (
	CategoryIgnore    Category = "ignore"
	CategoryMessage   Category = "message"
	CategorySuperchat Category = "superchat"
)

// rendererCategory maps every known renderer name to its category.
// liveChatPaidStickerRenderer is classed superchat per the newer
// upstream revision (see DESIGN.md open-question decision); a
// regression test pins this.
var rendererCategory = map[string]Category{
	"liveChatViewerEngagementMessageRenderer": CategoryIgnore,
	"liveChatPurchasedProductMessageRenderer": CategoryIgnore,
	"liveChatPlaceholderItemRenderer":         CategoryIgnore,
	"liveChatModeChangeMessageRenderer":       CategoryIgnore,

	"liveChatTextMessageRenderer": CategoryMessage,

	"liveChatMembershipItemRenderer":             CategorySuperchat,
	"liveChatPaidMessageRenderer":                CategorySuperchat,
	"liveChatPaidStickerRenderer":                CategorySuperchat,
	"liveChatTickerPaidStickerItemRenderer":      CategorySuperchat,
	"liveChatTickerPaidMessageItemRenderer":      CategorySuperchat,
	"liveChatTickerSponsorItemRenderer":          CategorySuperchat,
}

// CategoryOf returns the category for rendererName and whether the
// renderer is known. For an unrecognized renderer it returns the zero
// Category and false; the caller applies the CategoryMessage
// (pass-through) fallback and logs the warning.
func CategoryOf(rendererName string) (Category, bool) {
	cat, known := rendererCategory[rendererName]
	return cat, known
}
