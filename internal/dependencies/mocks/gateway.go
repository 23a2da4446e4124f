package mocks

import (
	"context"
	"sync"

	"github.com/betstack/betstack/internal/services/topup"
)

// MockGateway is a mock payment gateway for testing
type MockGateway struct {
	mu sync.Mutex

	// Results maps references to canned gateway answers
	Results map[string]*topup.GatewayResult
	// Err, if set, is returned for every verification call
	Err error
	// Calls records every reference verified, in order
	Calls []string
}

// Ensure MockGateway implements Gateway
var _ topup.Gateway = (*MockGateway)(nil)

// NewMockGateway creates an empty MockGateway
func NewMockGateway() *MockGateway {
	return &MockGateway{
		Results: make(map[string]*topup.GatewayResult),
	}
}

// SetPaid marks a reference as paid for the given amount
func (g *MockGateway) SetPaid(reference string, amount int64, message string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Results[reference] = &topup.GatewayResult{Paid: true, Amount: amount, Message: message}
}

// SetUnpaid marks a reference as declined
func (g *MockGateway) SetUnpaid(reference, message string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Results[reference] = &topup.GatewayResult{Paid: false, Message: message}
}

// VerifyPayment returns the canned result for the reference.
// Unknown references read as unpaid.
func (g *MockGateway) VerifyPayment(ctx context.Context, reference string) (*topup.GatewayResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.Calls = append(g.Calls, reference)

	if g.Err != nil {
		return nil, g.Err
	}
	if result, ok := g.Results[reference]; ok {
		return result, nil
	}
	return &topup.GatewayResult{Paid: false, Message: "unknown payment reference"}, nil
}

// CallCount returns how many times the gateway was consulted
func (g *MockGateway) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Calls)
}
