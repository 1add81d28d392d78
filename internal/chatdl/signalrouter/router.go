// Package signalrouter implements C5: mapping OS signals onto
// enable/disable/default policies and routing them either to the
// engine's graceful finalizer or to a no-op.
//
// Per the spec's design notes (§9), the signal handler, the
// finalizer, and the output sink must not close over each other
// cyclically. This package re-architects that as an explicit
// shutdown controller: handlers only ever flip a flag or call the
// idempotent finalizer, never touch engine state directly.
package signalrouter

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/lbmaian/chatdl/internal/log"
)

// Policy is the routing decision for one signal.
type Policy string

const (
	// PolicyDefault invokes the finalizer for every signal, like
	// PolicyEnable; for SIGINT (the Go analogue of the original catching
	// a KeyboardInterrupt at the outer poll loop) it does not touch the
	// low-level console handler.
	PolicyDefault Policy = "default"
	// PolicyEnable invokes the finalizer; for SIGINT it additionally
	// attempts to disable the host's low-level console handler so
	// background-launched processes also abort.
	PolicyEnable Policy = "enable"
	// PolicyDisable is a no-op: the signal is logged and ignored.
	PolicyDisable Policy = "disable"
)

// Finalizer is called at most once, however many times a routed
// signal arrives.
type Finalizer func(ctx context.Context)

// Controller owns the installed signal policies and the idempotent
// finalizer. It is the "explicit shutdown controller" the design
// notes call for: no cyclic references back into the engine or sink,
// just a function pointer invoked under sync.Once.
type Controller struct {
	policies map[string]Policy
	finalize Finalizer

	once sync.Once
}

// New builds a Controller with the host's default signal->policy
// mapping (SIGINT plus whichever of SIGBREAK/SIGQUIT/SIGTERM/SIGABRT
// exist on the host, per platform-specific defaultPolicies()), ready
// to have operator-supplied abort-condition signal directives
// (abort.SignalDirective) layered on with SetPolicy.
func New(finalize Finalizer) *Controller {
	c := &Controller{
		policies: defaultPolicies(),
		finalize: finalize,
	}
	return c
}

// SetPolicy overrides the policy for a named signal (e.g. "SIGINT"),
// as installed by an --abort_condition signal directive.
func (c *Controller) SetPolicy(name string, p Policy) {
	c.policies[strings.ToUpper(name)] = p
}

// policyFor returns the effective policy for a signal name, falling
// back to PolicyDefault for signals with no explicit entry.
func (c *Controller) policyFor(name string) Policy {
	if p, ok := c.policies[strings.ToUpper(name)]; ok {
		return p
	}
	return PolicyDefault
}

// Run installs handlers for every signal in defaultSignals() and
// blocks, dispatching each received signal per its policy, until ctx
// is done. It's meant to run in its own goroutine (the engine driver
// wires it with golang.org/x/sync/errgroup alongside the poll loop).
func (c *Controller) Run(ctx context.Context) {
	sigs := defaultSignals()
	ch := make(chan os.Signal, len(sigs))
	signal.Notify(ch, sigs...)
	defer signal.Stop(ch)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-ch:
			c.handle(ctx, sig)
		}
	}
}

func (c *Controller) handle(ctx context.Context, sig os.Signal) {
	name := signalName(sig)
	policy := c.policyFor(name)
	logger := log.WithComponent("signalrouter")

	switch policy {
	case PolicyDisable:
		logger.Info().
			Str("event", "signal.ignored").
			Str("signal", name).
			Msgf("Signal Received: %s Ignored", strings.TrimPrefix(name, "SIG"))
	case PolicyEnable:
		if name == "SIGINT" {
			disableConsoleCtrlHandler()
		}
		c.doFinalize(ctx, name)
	case PolicyDefault:
		// SIGINT's default path still reaches the finalizer (the
		// cancellation the original catches as KeyboardInterrupt at
		// the outer loop), just without the console-handler override.
		c.doFinalize(ctx, name)
	}
}

// doFinalize invokes the finalizer at most once; re-entrant signals
// (including a second interrupt while shutting down) are absorbed
// silently.
func (c *Controller) doFinalize(ctx context.Context, name string) {
	c.once.Do(func() {
		log.WithComponent("signalrouter").Info().
			Str("event", "signal.finalize").
			Str("signal", name).
			Msg("signal triggered graceful finalization")
		if c.finalize != nil {
			c.finalize(ctx)
		}
	})
}
