package sink

import (
	"strings"

	"github.com/lbmaian/chatdl/internal/chatdl/model"
)

// FormatMessage renders r the way print_item/message_to_string does
// in the original: "[{datetime|time_text}] ({author_type}) *{amount}*
// {author}:\t{message}", with the author-type and amount segments
// only present when the record has them.
func FormatMessage(r *model.Record) string {
	var sb strings.Builder

	ts := r.Datetime
	if ts == "" {
		ts = r.TimeText
	}
	sb.WriteByte('[')
	sb.WriteString(ts)
	sb.WriteString("] ")

	if r.AuthorType != model.AuthorNone {
		sb.WriteByte('(')
		sb.WriteString(strings.ToLower(string(r.AuthorType)))
		sb.WriteString(") ")
	}

	if r.Amount != "" {
		sb.WriteByte('*')
		sb.WriteString(r.Amount)
		sb.WriteString("* ")
	}

	sb.WriteString(r.Author)
	sb.WriteString(":\t")
	sb.WriteString(r.Message)
	return sb.String()
}
