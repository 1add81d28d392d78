package normalize

import (
	"testing"

	"github.com/lbmaian/chatdl/internal/chatdl/model"
)

func runsPayload(text string) map[string]any {
	return map[string]any{
		"runs": []any{
			map[string]any{"text": text},
		},
	}
}

func TestItem_TextMessage(t *testing.T) {
	item := map[string]any{
		"liveChatTextMessageRenderer": map[string]any{
			"message":                 runsPayload("hello world"),
			"timestampUsec":           "1577836800000000",
			"authorName":              map[string]any{"simpleText": "Alice"},
			"authorExternalChannelId": "UC123",
		},
	}

	rec, cat, err := Item(item)
	if err != nil {
		t.Fatalf("Item() error = %v", err)
	}
	if cat != CategoryMessage {
		t.Fatalf("category = %v, want message", cat)
	}
	if rec.Message != "hello world" {
		t.Fatalf("message = %q", rec.Message)
	}
	if rec.Author != "Alice" {
		t.Fatalf("author = %q", rec.Author)
	}
	if rec.AuthorID != "UC123" {
		t.Fatalf("author_id = %q", rec.AuthorID)
	}
	if rec.Timestamp == nil || *rec.Timestamp != 1577836800000000 {
		t.Fatalf("timestamp = %v", rec.Timestamp)
	}
	if rec.Datetime != "2020-01-01 00:00:00" {
		t.Fatalf("datetime = %q", rec.Datetime)
	}
}

func TestItem_PaidMessageWithAmount(t *testing.T) {
	item := map[string]any{
		"liveChatPaidMessageRenderer": map[string]any{
			"message":            runsPayload("thanks!"),
			"purchaseAmountText": map[string]any{"simpleText": "$5.00"},
			"headerBackgroundColor": int64(0x80FF0000),
		},
	}

	rec, cat, err := Item(item)
	if err != nil {
		t.Fatalf("Item() error = %v", err)
	}
	if cat != CategorySuperchat {
		t.Fatalf("category = %v, want superchat", cat)
	}
	if rec.Amount != "$5.00" {
		t.Fatalf("amount = %q", rec.Amount)
	}
	if rec.Message != "thanks!" {
		t.Fatalf("message = %q", rec.Message)
	}
	if rec.HeaderColor == nil || rec.HeaderColor.Hex != "#ff000080" {
		t.Fatalf("header color = %+v", rec.HeaderColor)
	}
}

func TestItem_PaidMessageNoText(t *testing.T) {
	item := map[string]any{
		"liveChatPaidMessageRenderer": map[string]any{
			"purchaseAmountText": map[string]any{"simpleText": "$10.00"},
		},
	}

	rec, _, err := Item(item)
	if err != nil {
		t.Fatalf("Item() error = %v", err)
	}
	if rec.Message != "<<no message>>" {
		t.Fatalf("message = %q, want <<no message>>", rec.Message)
	}
}

func TestItem_MembershipHeaderAndSubtext(t *testing.T) {
	item := map[string]any{
		"liveChatMembershipItemRenderer": map[string]any{
			"headerPrimaryText": runsPayload("Member for 2 months"),
			"headerSubtext":     runsPayload("Welcome!"),
		},
	}

	rec, _, err := Item(item)
	if err != nil {
		t.Fatalf("Item() error = %v", err)
	}
	want := "Member for 2 months (Welcome!)"
	if rec.Message != want {
		t.Fatalf("message = %q, want %q", rec.Message, want)
	}
}

func TestItem_MembershipSubtextOnly(t *testing.T) {
	item := map[string]any{
		"liveChatMembershipItemRenderer": map[string]any{
			"headerSubtext": runsPayload("Welcome to the club!"),
		},
	}

	rec, _, err := Item(item)
	if err != nil {
		t.Fatalf("Item() error = %v", err)
	}
	if rec.Message != "Welcome to the club!" {
		t.Fatalf("message = %q", rec.Message)
	}
}

func TestItem_Sticker(t *testing.T) {
	item := map[string]any{
		"liveChatPaidStickerRenderer": map[string]any{
			"sticker": map[string]any{
				"accessibility": map[string]any{
					"accessibilityData": map[string]any{"label": "Party sticker"},
				},
			},
		},
	}

	rec, cat, err := Item(item)
	if err != nil {
		t.Fatalf("Item() error = %v", err)
	}
	if cat != CategorySuperchat {
		t.Fatalf("category = %v, want superchat (open-question decision)", cat)
	}
	if rec.Message != "<<Party sticker>>" {
		t.Fatalf("message = %q", rec.Message)
	}
}

func TestItem_BadgesRankAuthorType(t *testing.T) {
	item := map[string]any{
		"liveChatTextMessageRenderer": map[string]any{
			"message": runsPayload("mod message"),
			"authorBadges": []any{
				map[string]any{
					"liveChatAuthorBadgeRenderer": map[string]any{
						"tooltip": "Member (2 months)",
						"icon":    map[string]any{"iconType": "MEMBER"},
					},
				},
				map[string]any{
					"liveChatAuthorBadgeRenderer": map[string]any{
						"tooltip": "Moderator",
						"icon":    map[string]any{"iconType": "MODERATOR"},
					},
				},
			},
		},
	}

	rec, _, err := Item(item)
	if err != nil {
		t.Fatalf("Item() error = %v", err)
	}
	if rec.AuthorType != model.AuthorModerator {
		t.Fatalf("author_type = %v, want moderator", rec.AuthorType)
	}
	if rec.Badges != "Member (2 months), Moderator" {
		t.Fatalf("badges = %q", rec.Badges)
	}
}

func TestItem_UnknownRendererNormalizesBestEffort(t *testing.T) {
	item := map[string]any{
		"someFutureRenderer": map[string]any{
			"message": runsPayload("still works"),
		},
	}

	rec, cat, err := Item(item)
	if err != nil {
		t.Fatalf("Item() error = %v", err)
	}
	if cat != CategoryMessage {
		t.Fatalf("category = %v, want message fallback", cat)
	}
	if rec.Message != "still works" {
		t.Fatalf("message = %q", rec.Message)
	}
}

func TestItem_RejectsMultiKeyItem(t *testing.T) {
	item := map[string]any{
		"a": map[string]any{},
		"b": map[string]any{},
	}
	if _, _, err := Item(item); err == nil {
		t.Fatal("expected error for multi-key item")
	}
}

func TestItem_ShowItemEndpointMerge(t *testing.T) {
	item := map[string]any{
		"liveChatTickerPaidMessageItemRenderer": map[string]any{
			"durationSec": "60",
			"showItemEndpoint": map[string]any{
				"showLiveChatItemEndpoint": map[string]any{
					"renderer": map[string]any{
						"liveChatPaidMessageRenderer": map[string]any{
							"message":            runsPayload("big gift"),
							"purchaseAmountText": map[string]any{"simpleText": "$50.00"},
							"authorName":         map[string]any{"simpleText": "Bob"},
						},
					},
				},
			},
		},
	}

	rec, cat, err := Item(item)
	if err != nil {
		t.Fatalf("Item() error = %v", err)
	}
	if cat != CategorySuperchat {
		t.Fatalf("category = %v, want superchat", cat)
	}
	if rec.TickerDuration == nil || *rec.TickerDuration != 60 {
		t.Fatalf("ticker_duration = %v", rec.TickerDuration)
	}
	if !rec.IsTicker() {
		t.Fatal("expected IsTicker() true")
	}
	if rec.Author != "Bob" {
		t.Fatalf("author = %q, want Bob (from nested renderer)", rec.Author)
	}
	if rec.Amount != "$50.00" {
		t.Fatalf("amount = %q", rec.Amount)
	}
	if rec.Message != "big gift" {
		t.Fatalf("message = %q", rec.Message)
	}
}
