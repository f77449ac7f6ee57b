package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayment(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "test_secret"
	sig := signPayment("order_123", "pay_456", secret)

	assert.True(t, VerifySignature("order_123", "pay_456", sig, secret))

	// Any single changed input must fail.
	assert.False(t, VerifySignature("order_124", "pay_456", sig, secret))
	assert.False(t, VerifySignature("order_123", "pay_457", sig, secret))
	assert.False(t, VerifySignature("order_123", "pay_456", sig, "other_secret"))
	assert.False(t, VerifySignature("order_123", "pay_456", "", secret))
	assert.False(t, VerifySignature("order_123", "pay_456", sig[:len(sig)-1]+"0", secret))
}

func TestClientVerifySignatureUsesOwnSecret(t *testing.T) {
	client := NewRazorpayClient("rzp_test_key", "client_secret")
	sig := signPayment("order_1", "pay_1", "client_secret")

	assert.True(t, client.VerifySignature("order_1", "pay_1", sig))
	assert.False(t, client.VerifySignature("order_1", "pay_1", signPayment("order_1", "pay_1", "wrong")))
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/orders", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "client_secret", pass)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"order_abc","amount":99900,"currency":"INR","receipt":"sub_1_1","status":"created"}`))
	}))
	defer srv.Close()

	client := NewRazorpayClient("rzp_test_key", "client_secret")
	client.BaseURL = srv.URL

	order, err := client.CreateOrder(99900, "INR", "sub_1_1", map[string]string{"plan": "basic"})
	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(99900), order.Amount)
	assert.Equal(t, "created", order.Status)
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"description":"Authentication failed"}}`))
	}))
	defer srv.Close()

	client := NewRazorpayClient("bad_key", "bad_secret")
	client.BaseURL = srv.URL

	_, err := client.CreateOrder(99900, "INR", "sub_1_1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
