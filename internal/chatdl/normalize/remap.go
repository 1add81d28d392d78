package normalize

// keyRemap is the fixed source-key -> canonical-field projection
// table every renderer payload is filtered and renamed through.
var keyRemap = map[string]string{
	"timestampUsec":            "timestamp",
	"authorExternalChannelId":  "author_id",
	"authorName":               "author",
	"message":                  "message",
	"timestampText":            "time_text",
	"purchaseAmountText":       "amount",
	"headerBackgroundColor":    "header_color",
	"bodyBackgroundColor":      "body_color",
	"amount":                   "amount",
	"startBackgroundColor":     "body_color",
	"durationSec":              "ticker_duration",
	"detailText":               "message",
	"headerPrimaryText":        "header_primary_text",
	"headerSubtext":            "header_subtext",
	"sticker":                  "sticker",
	"backgroundColor":          "body_color",
}

// project applies keyRemap to payload, unwrapping any projected value
// that is itself a {"simpleText": ...} mapping.
func project(payload map[string]any) map[string]any {
	data := make(map[string]any, len(payload))
	for srcKey, v := range payload {
		dstKey, ok := keyRemap[srcKey]
		if !ok {
			continue
		}
		if m, ok := v.(map[string]any); ok {
			if simple, ok := m["simpleText"]; ok {
				v = simple
			}
		}
		data[dstKey] = v
	}
	return data
}
