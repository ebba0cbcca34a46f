package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"workgate/internal/domain"
)

// RazorpayGateway implements the PaymentGateway port using direct HTTP calls
// to the Razorpay Orders API. Signature verification is local (HMAC with the
// key secret), so failed callbacks never cost a network round trip.
type RazorpayGateway struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

// NewRazorpayGateway creates a gateway client. baseURL is overridable for tests;
// pass "" for the production endpoint.
func NewRazorpayGateway(keyID, keySecret, baseURL string) (*RazorpayGateway, error) {
	if keyID == "" || keySecret == "" {
		return nil, domain.ErrInvalidArgument
	}
	if baseURL == "" {
		baseURL = "https://api.razorpay.com/v1"
	}
	return &RazorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   baseURL,
		client:    &http.Client{},
	}, nil
}

func (g *RazorpayGateway) Name() string { return "razorpay" }

// razorpayOrderResponse represents the response from the order creation API.
type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// razorpayErrorResponse represents the error envelope Razorpay returns.
type razorpayErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder implements PaymentGateway.CreateOrder using direct HTTP calls.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (string, error) {
	requestData := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1, // auto-capture
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request data: %w", err)
	}

	url := g.baseURL + "/orders"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp razorpayErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Description != "" {
			return "", fmt.Errorf("%w: %s: %s", domain.ErrGateway, errResp.Error.Code, errResp.Error.Description)
		}
		return "", fmt.Errorf("%w: status %d", domain.ErrGateway, resp.StatusCode)
	}

	var response razorpayOrderResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}
	if response.ID == "" {
		return "", fmt.Errorf("%w: order id missing in response", domain.ErrGateway)
	}

	return response.ID, nil
}

// VerifySignature implements PaymentGateway.VerifySignature.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) error {
	if !VerifyCallbackSignature(g.keySecret, orderID, paymentID, signature) {
		return domain.ErrSignatureInvalid
	}
	return nil
}
