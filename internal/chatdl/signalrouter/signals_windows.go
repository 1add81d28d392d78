//go:build windows

package signalrouter

import (
	"os"
	"syscall"
)

// defaultSignals lists the signals this host supports among the
// spec's candidate set. Windows lacks SIGQUIT/SIGABRT as deliverable
// console events; SIGBREAK takes their place.
func defaultSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGBREAK}
}

func defaultPolicies() map[string]Policy {
	return map[string]Policy{
		"SIGINT":   PolicyDefault,
		"SIGTERM":  PolicyDefault,
		"SIGBREAK": PolicyDefault,
	}
}

func signalName(sig os.Signal) string {
	switch sig {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	case syscall.SIGBREAK:
		return "SIGBREAK"
	default:
		return sig.String()
	}
}
