package abort

import (
	"fmt"
	"strings"
)

// Compile parses every --abort_condition occurrence (the spec's
// "groups are ORed; predicates within a group are ANDed" grammar)
// into a Formula plus the signal directives pulled out of it.
//
// Ownership is immutable after Compile returns: neither the Formula
// nor the directives are mutated again.
func Compile(raws []string) (*Formula, []SignalDirective, error) {
	f := &Formula{}
	var directives []SignalDirective

	for _, raw := range raws {
		parts, err := splitGroup(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("abort condition %q: %w", raw, err)
		}

		var directive *SignalDirective
		var group Group
		seen := make(map[string]bool, len(parts))
		for _, part := range parts {
			name, rest, _ := strings.Cut(part, ":")
			if dir, ok := parseSignalDirective(name, rest); ok {
				if directive != nil || len(parts) > 1 {
					return nil, nil, fmt.Errorf(
						"abort condition %q: signal directive %q must be the sole entry in its group", raw, part)
				}
				directive = dir
				continue
			}
			if seen[name] {
				return nil, nil, fmt.Errorf("abort condition %q: duplicate predicate %q in group", raw, name)
			}
			seen[name] = true
			pred, err := parsePredicate(name, rest)
			if err != nil {
				return nil, nil, fmt.Errorf("abort condition %q: %w", raw, err)
			}
			group.Predicates = append(group.Predicates, pred)
		}

		switch {
		case directive != nil:
			directives = append(directives, *directive)
		case len(group.Predicates) > 0:
			f.Groups = append(f.Groups, group)
		default:
			return nil, nil, fmt.Errorf("abort condition %q: empty condition", raw)
		}
	}

	return f, directives, nil
}

func parsePredicate(name, rest string) (Predicate, error) {
	switch name {
	case "changed_scheduled_start_time":
		return newChangedScheduledStartTime(rest)
	case "min_time_until_scheduled_start_time":
		return newMinTimeUntilScheduledStart(rest)
	case "file_exists":
		return newFileExists(rest)
	default:
		return nil, fmt.Errorf("unknown abort predicate %q", name)
	}
}
