package youtube

import (
	"encoding/json"
	"fmt"

	cerrors "github.com/lbmaian/chatdl/internal/chatdl/errors"
)

// decodeJSONMap decodes a raw API response body into a generic map,
// the same loose shape scrape.Extract hands back for embedded blobs,
// so downstream navigate/navString/navSlice helpers work uniformly
// over both HTML-embedded and API JSON.
func decodeJSONMap(body []byte) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("%w: decoding youtube api response: %v", cerrors.ErrParsing, err)
	}
	return m, nil
}
