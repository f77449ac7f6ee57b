package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const razorpayBaseURL = "https://api.razorpay.com"

// RazorpayClient talks to the Razorpay orders API. A nil client means
// credentials were absent at startup; callers answer ServiceUnavailable.
type RazorpayClient struct {
	KeyID     string
	keySecret string
	BaseURL   string

	http *resty.Client
}

func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		KeyID:     keyID,
		keySecret: keySecret,
		BaseURL:   razorpayBaseURL,
		http:      resty.New().SetTimeout(15 * time.Second),
	}
}

// Order is the gateway-side record representing an amount to be collected.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder creates a gateway order for amountPaise minor units.
func (rc *RazorpayClient) CreateOrder(amountPaise int64, currency, receipt string, notes map[string]string) (*Order, error) {
	resp, err := rc.http.R().
		SetBasicAuth(rc.KeyID, rc.keySecret).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"amount":   amountPaise,
			"currency": currency,
			"receipt":  receipt,
			"notes":    notes,
		}).
		Post(rc.BaseURL + "/v1/orders")
	if err != nil {
		return nil, fmt.Errorf("razorpay order create failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("razorpay order create failed: status %d", resp.StatusCode())
	}

	var order Order
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return nil, fmt.Errorf("razorpay order create failed: %w", err)
	}
	return &order, nil
}

// VerifySignature checks a payment completion callback against the shared
// key secret.
func (rc *RazorpayClient) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, rc.keySecret)
}

// VerifySignature recomputes the HMAC-SHA256 of "orderId|paymentId" with
// the shared secret and requires exact equality with the hex signature the
// gateway sent. Constant-time compare; a mismatch is a security failure,
// never a retryable one.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
