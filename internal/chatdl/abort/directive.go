package abort

import "strings"

// SignalDirective is the non-predicate `<signal_name>:{default|enable
// |disable}` entry: it installs a policy into the signal router
// rather than contributing a runtime predicate, and must be the sole
// entry in its group.
type SignalDirective struct {
	SignalName string
	Policy     string
}

var signalPolicies = map[string]bool{
	"default": true,
	"enable":  true,
	"disable": true,
}

// parseSignalDirective recognizes `<NAME>:{default|enable|disable}`.
// NAME isn't validated against the host's actual signal set here -
// that's the signal router's job, since it alone knows what signals
// the host supports.
func parseSignalDirective(name, rest string) (*SignalDirective, bool) {
	if !looksLikeSignalName(name) {
		return nil, false
	}
	policy := strings.TrimSpace(rest)
	if !signalPolicies[policy] {
		return nil, false
	}
	return &SignalDirective{SignalName: name, Policy: policy}, true
}

func looksLikeSignalName(name string) bool {
	return strings.HasPrefix(name, "SIG") && name == strings.ToUpper(name) && len(name) > 3
}
