package coordinator

import (
	"context"
	"errors"
	"sync"
)

// FlowState is a payment reconciliation state. Success and failed are
// terminal; only re-running the flow leaves them.
type FlowState int

const (
	FlowIdle FlowState = iota
	FlowVerifying
	FlowSuccess
	FlowFailed
)

func (s FlowState) String() string {
	switch s {
	case FlowVerifying:
		return "verifying"
	case FlowSuccess:
		return "success"
	case FlowFailed:
		return "failed"
	default:
		return "idle"
	}
}

// ErrNoReference means the callback URL carried no payment reference;
// the caller should navigate away instead of showing a result.
var ErrNoReference = errors.New("no payment reference present")

// Verifier is the external payment verification collaborator. It owns
// exactly-once financial effect; the flow may call it any number of
// times for the same reference.
type Verifier interface {
	VerifyTopup(ctx context.Context, reference string) (message string, ok bool, err error)
}

// FlowResult is the terminal outcome of one reconciliation run
type FlowResult struct {
	State   FlowState
	Message string
}

// PaymentFlow reconciles a gateway callback reference with the
// platform: idle -> verifying -> success/failed. Outcomes are never
// memoized; re-visiting the callback URL re-runs the whole sequence.
type PaymentFlow struct {
	coordinator *Coordinator
	verifier    Verifier

	mu    sync.RWMutex
	state FlowState
}

// NewPaymentFlow creates a flow in the idle state
func NewPaymentFlow(c *Coordinator, v Verifier) *PaymentFlow {
	return &PaymentFlow{
		coordinator: c,
		verifier:    v,
		state:       FlowIdle,
	}
}

// State returns the flow's current state
func (f *PaymentFlow) State() FlowState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

// Run executes one reconciliation sequence for the reference. On
// success the coordinator refetches the user exactly once, so the
// rendered balance is the authoritative post-payment one. On failure
// the snapshot is left untouched.
func (f *PaymentFlow) Run(ctx context.Context, reference string) (FlowResult, error) {
	f.setState(FlowIdle)

	if reference == "" {
		return FlowResult{State: FlowIdle}, ErrNoReference
	}

	f.setState(FlowVerifying)

	message, ok, err := f.verifier.VerifyTopup(ctx, reference)
	if err != nil {
		f.setState(FlowFailed)
		return FlowResult{State: FlowFailed, Message: message}, err
	}
	if !ok {
		f.setState(FlowFailed)
		return FlowResult{State: FlowFailed, Message: message}, nil
	}

	f.coordinator.RefetchUser(ctx)
	f.setState(FlowSuccess)
	return FlowResult{State: FlowSuccess, Message: message}, nil
}

func (f *PaymentFlow) setState(s FlowState) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}
