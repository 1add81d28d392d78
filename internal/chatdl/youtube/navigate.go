package youtube

// navigate walks a chain of map[string]any keys, returning false as
// soon as any hop is absent or not itself a map[string]any. It's the
// Go analogue of Python's repeated dict.get chains the original
// scraper relies on.
func navigate(m map[string]any, keys ...string) (map[string]any, bool) {
	cur := m
	for _, k := range keys {
		next, ok := cur[k].(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func navString(m map[string]any, keys ...string) (string, bool) {
	if len(keys) == 0 {
		return "", false
	}
	parent, ok := navigate(m, keys[:len(keys)-1]...)
	if !ok {
		return "", false
	}
	s, ok := parent[keys[len(keys)-1]].(string)
	return s, ok
}

func navBool(m map[string]any, keys ...string) (bool, bool) {
	if len(keys) == 0 {
		return false, false
	}
	parent, ok := navigate(m, keys[:len(keys)-1]...)
	if !ok {
		return false, false
	}
	b, ok := parent[keys[len(keys)-1]].(bool)
	return b, ok
}

func navSlice(m map[string]any, keys ...string) ([]any, bool) {
	if len(keys) == 0 {
		return nil, false
	}
	parent, ok := navigate(m, keys[:len(keys)-1]...)
	if !ok {
		return nil, false
	}
	s, ok := parent[keys[len(keys)-1]].([]any)
	return s, ok
}
