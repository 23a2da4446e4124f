package topup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPGateway is a Gateway backed by the payment provider's HTTP API
type HTTPGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPGateway creates a Gateway client for the given provider base URL
func NewHTTPGateway(baseURL, apiKey string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

var _ Gateway = (*HTTPGateway)(nil)

type gatewayVerifyRequest struct {
	Reference string `json:"reference"`
}

type gatewayVerifyResponse struct {
	Status  string `json:"status"` // "paid" or anything else
	Amount  int64  `json:"amount"`
	Message string `json:"message"`
}

// VerifyPayment asks the provider whether the reference has been paid.
// A non-paid status is a normal answer, not an error; errors mean the
// provider could not be consulted at all.
func (g *HTTPGateway) VerifyPayment(ctx context.Context, reference string) (*GatewayResult, error) {
	body, err := json.Marshal(gatewayVerifyRequest{Reference: reference})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/transactions/verify", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("gateway returned HTTP %d", resp.StatusCode)
	}

	var decoded gatewayVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}

	return &GatewayResult{
		Paid:    decoded.Status == "paid",
		Amount:  decoded.Amount,
		Message: decoded.Message,
	}, nil
}
