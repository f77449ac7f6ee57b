package paymentController

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"vibelms/config"
	"vibelms/database"
	"vibelms/middleware"
	"vibelms/models"
	"vibelms/payments"
	paymentValidator "vibelms/validators/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testKeySecret = "test_key_secret"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	user := models.User{Name: "Payer", Email: "payer@example.com"}
	require.NoError(t, db.Create(&user).Error)

	cfg := &config.Config{JWTSecret: "test-secret"}
	token, err := middleware.GenerateJWT(cfg.JWTSecret, user.ID)
	require.NoError(t, err)

	razorpay := payments.NewRazorpayClient("rzp_test_key", testKeySecret)
	ctl := New(db, cfg, razorpay, nil)

	protected := middleware.Protected(db, cfg.JWTSecret)

	app := fiber.New()
	app.Post("/api/subscription/verify", protected, paymentValidator.SubscriptionVerify(), ctl.VerifySubscription)
	app.Post("/api/webinar/verify", paymentValidator.WebinarVerify(), ctl.VerifyWebinar)
	app.Get("/api/razorpay-key", ctl.Key)

	return app, db, token
}

func signPayment(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func postJSON(t *testing.T, app *fiber.App, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp, parsed
}

func TestVerifySubscriptionActivatesTier(t *testing.T) {
	app, db, token := newTestApp(t)

	resp, _ := postJSON(t, app, "/api/subscription/verify", token, fiber.Map{
		"orderId":   "order_1",
		"paymentId": "pay_1",
		"signature": signPayment("order_1", "pay_1"),
		"plan":      "premium",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Where("email = ?", "payer@example.com").First(&user).Error)
	assert.Equal(t, "premium", user.Subscription.Tier)
	assert.True(t, user.Subscription.IsActive)
	require.NotNil(t, user.Subscription.EndDate)
	require.NotNil(t, user.Subscription.StartDate)
	assert.Equal(t, user.Subscription.StartDate.AddDate(1, 0, 0).Unix(), user.Subscription.EndDate.Unix())
}

func TestVerifySubscriptionReplayIsNoOp(t *testing.T) {
	app, db, token := newTestApp(t)

	payload := fiber.Map{
		"orderId":   "order_replay",
		"paymentId": "pay_1",
		"signature": signPayment("order_replay", "pay_1"),
		"plan":      "basic",
	}

	resp, _ := postJSON(t, app, "/api/subscription/verify", token, payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = postJSON(t, app, "/api/subscription/verify", token, payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.PaymentEvent{}).Where("order_id = ?", "order_replay").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestVerifySubscriptionBadSignature(t *testing.T) {
	app, db, token := newTestApp(t)

	resp, body := postJSON(t, app, "/api/subscription/verify", token, fiber.Map{
		"orderId":   "order_1",
		"paymentId": "pay_1",
		"signature": "deadbeef",
		"plan":      "basic",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_signature", body["code"])

	var user models.User
	require.NoError(t, db.Where("email = ?", "payer@example.com").First(&user).Error)
	assert.False(t, user.Subscription.IsActive)
	assert.Equal(t, "free", user.Subscription.Tier)
}

func TestVerifyWebinarPersistsRegistration(t *testing.T) {
	app, db, _ := newTestApp(t)

	payload := fiber.Map{
		"orderId":    "order_web",
		"paymentId":  "pay_web",
		"signature":  signPayment("order_web", "pay_web"),
		"name":       "Ada Lovelace",
		"email":      "ada@example.com",
		"phone":      "9876543210",
		"experience": "beginner",
		"goals":      "ship a side project",
	}

	resp, _ := postJSON(t, app, "/api/webinar/verify", "", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reg models.WebinarRegistration
	require.NoError(t, db.Where("order_id = ?", "order_web").First(&reg).Error)
	assert.Equal(t, "completed", reg.Status)
	assert.Equal(t, int64(9900), reg.AmountPaise)

	// Replay: second callback leaves a single registration.
	resp, _ = postJSON(t, app, "/api/webinar/verify", "", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.WebinarRegistration{}).Where("order_id = ?", "order_web").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRazorpayKeyEndpoint(t *testing.T) {
	app, _, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/razorpay-key", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, "rzp_test_key", data["key"])
}
