package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the Razorpay orders API.
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

func NewClient(baseURL, keyID, keySecret string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		keyID:      keyID,
		keySecret:  keySecret,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// KeyID is the public key the hosted checkout is opened with.
func (c *Client) KeyID() string { return c.keyID }

// CreateOrder calls POST /v1/orders for amount minor units of currency and
// returns the provider's order object untouched.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (json.RawMessage, error) {
	payload := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
	}
	if receipt != "" {
		payload["receipt"] = receipt
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("razorpay /v1/orders: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay /v1/orders: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResp(resp, "/v1/orders"); err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("razorpay /v1/orders: read: %w", err)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("razorpay /v1/orders: response is not JSON")
	}
	return json.RawMessage(raw), nil
}

// VerifyPaymentSignature checks the signature the checkout returns after a
// payment: hex(HMAC-SHA256(orderID + "|" + paymentID, keySecret)).
func (c *Client) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" || c.keySecret == "" {
		return false
	}
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hmac.Equal(got, mac.Sum(nil))
}

// checkResp returns an error carrying the upstream body if the status is not 2xx.
func checkResp(resp *http.Response, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("razorpay %s returned %d: %s", path, resp.StatusCode, string(body))
}
