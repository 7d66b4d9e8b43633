package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"donation_server/config"
	"donation_server/logger"
	"donation_server/metrics"
	"donation_server/middleware"
	"donation_server/model"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCharger struct {
	outcome model.ChargeOutcome
	got     model.DonationRequest
}

func (f *fakeCharger) CreateCharge(_ context.Context, req model.DonationRequest) model.ChargeOutcome {
	f.got = req
	return f.outcome
}

type broadcastCall struct {
	kind    model.EventKind
	subject string
	body    string
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (f *fakeNotifier) Broadcast(_ context.Context, kind model.EventKind, subject, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, broadcastCall{kind: kind, subject: subject, body: body})
}

func (f *fakeNotifier) broadcasts() []broadcastCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]broadcastCall(nil), f.calls...)
}

func testConfig() *config.ServiceConfig {
	return &config.ServiceConfig{
		PublicKey:      "pk_test_XXX",
		SecretKey:      "sk_test_YYY",
		Currency:       "usd",
		CORSOrigin:     "*",
		PubkeyVariable: "stripe_pubkey",
	}
}

func newTestApp(outcome model.ChargeOutcome) (*fiber.App, *fakeCharger, *fakeNotifier, *metrics.Metrics) {
	charger := &fakeCharger{outcome: outcome}
	notifier := &fakeNotifier{}
	m := metrics.New(prometheus.NewRegistry())
	h := NewChargeHandler(testConfig(), charger, notifier, logger.New("test"), m)

	app := fiber.New()
	app.Use(middleware.RequestID())
	app.Get("/pubkey.js", h.Pubkey)
	app.Get("/ping", h.Ping)
	app.Post("/charge", h.Charge)
	return app, charger, notifier, m
}

func postCharge(t *testing.T, app *fiber.App, form string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", "/charge", strings.NewReader(form))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestChargeSuccess(t *testing.T) {
	app, charger, notifier, m := newTestApp(model.ChargeOutcome{
		Kind:     model.OutcomeSuccess,
		Status:   fiber.StatusOK,
		ChargeID: "ch_123",
	})

	status, body := postCharge(t, app, "amount=2500&token=tok_visa&email=donor@example.org")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body)
	assert.Equal(t, model.DonationRequest{Amount: "2500", Token: "tok_visa", Email: "donor@example.org"}, charger.got)

	calls := notifier.broadcasts()
	require.Len(t, calls, 1)
	assert.Equal(t, model.EventSuccess, calls[0].kind)
	assert.Contains(t, calls[0].body, "25.00")
	assert.Contains(t, calls[0].body, "donor@example.org")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Charges.WithLabelValues("success")))
}

func TestChargeDeclinedPassesThroughAndStaysQuiet(t *testing.T) {
	declineBody := map[string]interface{}{
		"error": map[string]interface{}{
			"type":         "card_error",
			"code":         "card_declined",
			"decline_code": "insufficient_funds",
			"message":      "Your card has insufficient funds.",
		},
	}
	app, _, notifier, _ := newTestApp(model.ChargeOutcome{
		Kind:   model.OutcomeDeclined,
		Status: fiber.StatusPaymentRequired,
		Detail: "Your card has insufficient funds.",
		Body:   declineBody,
	})

	status, body := postCharge(t, app, "amount=2500&token=tok_chargeDeclined&email=donor@example.org")

	assert.Equal(t, fiber.StatusPaymentRequired, status)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, declineBody, got)

	assert.Empty(t, notifier.broadcasts())
}

func TestChargeFailureNotifies(t *testing.T) {
	tests := []struct {
		name string
		kind model.OutcomeKind
	}{
		{"processor error", model.OutcomeProcessorError},
		{"transient error", model.OutcomeTransientError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errBody := map[string]interface{}{
				"error": map[string]interface{}{"type": "api_error", "message": "boom"},
			}
			app, _, notifier, m := newTestApp(model.ChargeOutcome{
				Kind:   tt.kind,
				Status: fiber.StatusInternalServerError,
				Detail: "boom",
				Body:   errBody,
			})

			status, body := postCharge(t, app, "amount=999&token=tok_visa&email=donor@example.org")

			assert.Equal(t, fiber.StatusInternalServerError, status)
			var got map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(body), &got))
			assert.Equal(t, errBody, got)

			calls := notifier.broadcasts()
			require.Len(t, calls, 1)
			assert.Equal(t, model.EventFailure, calls[0].kind)
			assert.Contains(t, calls[0].body, "9.99")
			assert.Contains(t, calls[0].body, "boom")

			assert.Equal(t, float64(1), testutil.ToFloat64(m.Charges.WithLabelValues(string(tt.kind))))
		})
	}
}

func TestPubkeyScript(t *testing.T) {
	app, _, _, _ := newTestApp(model.ChargeOutcome{})

	resp, err := app.Test(httptest.NewRequest("GET", "/pubkey.js", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, `var stripe_pubkey = "pk_test_XXX";`, string(body))
	assert.Equal(t, "text/javascript", resp.Header.Get(fiber.HeaderContentType))
}

func TestPing(t *testing.T) {
	app, _, _, _ := newTestApp(model.ChargeOutcome{})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, string(body))
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))
}
