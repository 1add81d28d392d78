package youtube

import "strconv"

// unwrapContinuationEntry reads one entry of a response's
// "continuations" array. Each entry has exactly one sub-key - one of
// invalidationContinuationData, timedContinuationData,
// liveChatReplayContinuationData, reloadContinuationData - whose value
// carries the next "continuation" token and an optional "timeoutMs".
func unwrapContinuationEntry(entry map[string]any) (token string, timeoutMs int64, ok bool) {
	for _, v := range entry {
		sub, isMap := v.(map[string]any)
		if !isMap {
			continue
		}
		token, ok = sub["continuation"].(string)
		if !ok {
			return "", 0, false
		}
		if ms, present := sub["timeoutMs"]; present {
			timeoutMs, _ = toInt64(ms)
		}
		return token, timeoutMs, true
	}
	return "", 0, false
}

// toInt64 coerces the loosely-typed numeric values YT's JSON blobs
// carry (float64 from a decoded blob, or a numeric string for
// large/precision-sensitive fields) into an int64.
func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case int64:
		return t, true
	case int:
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
