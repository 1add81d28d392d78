package signalrouter

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestController_PolicyFor_DefaultsUnknownSignalsToDefault(t *testing.T) {
	c := New(nil)
	if got := c.policyFor("SIGHUP"); got != PolicyDefault {
		t.Fatalf("policyFor(SIGHUP) = %v, want default", got)
	}
}

func TestController_SetPolicy_Overrides(t *testing.T) {
	c := New(nil)
	c.SetPolicy("SIGINT", PolicyDisable)
	if got := c.policyFor("sigint"); got != PolicyDisable {
		t.Fatalf("policyFor(sigint) = %v, want disable", got)
	}
}

func TestController_Disable_NeverFinalizes(t *testing.T) {
	var calls int32
	c := New(func(context.Context) { atomic.AddInt32(&calls, 1) })
	c.SetPolicy("SIGINT", PolicyDisable)
	c.handle(context.Background(), syntheticSignal{})
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("finalizer called %d times, want 0", calls)
	}
}

func TestController_Enable_FinalizesOnce(t *testing.T) {
	var calls int32
	c := New(func(context.Context) { atomic.AddInt32(&calls, 1) })
	c.SetPolicy("SIGINT", PolicyEnable)
	c.handle(context.Background(), syntheticSignal{})
	c.handle(context.Background(), syntheticSignal{})
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("finalizer called %d times, want 1 (idempotent)", got)
	}
}

// syntheticSignal lets the test drive handle() without depending on
// which concrete os.Signal the host's signalName() recognizes; its
// String() returns "SIGINT", so a signalName that falls through to
// sig.String() yields "SIGINT" and the SIGINT policy entry applies.
type syntheticSignal struct{}

func (syntheticSignal) String() string { return "SIGINT" }
func (syntheticSignal) Signal()        {}
