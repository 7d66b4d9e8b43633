package handler

import (
	"context"
	"errors"
	"time"

	"donation_server/config"
	"donation_server/model"
	"donation_server/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/charge"
)

// Charger is the payment-processor boundary. It never fails with a raw
// error; every result comes back as a classified ChargeOutcome.
type Charger interface {
	CreateCharge(ctx context.Context, req model.DonationRequest) model.ChargeOutcome
}

// StripeCharger creates charges against the Stripe charge API.
type StripeCharger struct {
	cfg     *config.ServiceConfig
	timeout time.Duration
}

func NewStripeCharger(cfg *config.ServiceConfig) *StripeCharger {
	stripe.Key = cfg.SecretKey
	return &StripeCharger{cfg: cfg, timeout: 30 * time.Second}
}

func (s *StripeCharger) CreateCharge(ctx context.Context, req model.DonationRequest) model.ChargeOutcome {
	cents, err := utils.ParseAmount(req.Amount)
	if err != nil {
		return invalidRequestOutcome("amount", "Invalid amount: "+req.Amount)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := &stripe.ChargeParams{
		Params:       stripe.Params{Context: ctx},
		Amount:       stripe.Int64(cents),
		Currency:     stripe.String(s.cfg.Currency),
		ReceiptEmail: stripe.String(req.Email),
	}
	if s.cfg.Description != "" {
		params.Description = stripe.String(s.cfg.Description)
	}
	if err := params.SetSource(req.Token); err != nil {
		return invalidRequestOutcome("source", err.Error())
	}

	ch, err := charge.New(params)
	if err != nil {
		return classifyChargeErr(err)
	}
	return model.ChargeOutcome{Kind: model.OutcomeSuccess, Status: fiber.StatusOK, ChargeID: ch.ID}
}

// classifyChargeErr folds the Stripe error taxonomy into the outcome
// variants: card errors are declines, other Stripe-reported errors are
// processor errors, anything else (connection reset, DNS, TLS) is transient.
func classifyChargeErr(err error) model.ChargeOutcome {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		kind := model.OutcomeProcessorError
		if stripeErr.Type == stripe.ErrorTypeCard {
			kind = model.OutcomeDeclined
		}
		status := stripeErr.HTTPStatusCode
		if status == 0 {
			status = fiber.StatusInternalServerError
		}
		return model.ChargeOutcome{
			Kind:   kind,
			Status: status,
			Detail: stripeErr.Msg,
			Body:   stripeErrorBody(stripeErr),
		}
	}
	return model.ChargeOutcome{
		Kind:   model.OutcomeTransientError,
		Status: fiber.StatusServiceUnavailable,
		Detail: err.Error(),
		Body: map[string]interface{}{
			"error": map[string]interface{}{
				"type":    "api_connection_error",
				"message": err.Error(),
			},
		},
	}
}

// stripeErrorBody mirrors the processor's own error payload shape so the
// caller sees the decline/error details unaltered.
func stripeErrorBody(e *stripe.Error) map[string]interface{} {
	detail := map[string]interface{}{
		"type":    string(e.Type),
		"message": e.Msg,
	}
	if e.Code != "" {
		detail["code"] = string(e.Code)
	}
	if e.DeclineCode != "" {
		detail["decline_code"] = string(e.DeclineCode)
	}
	if e.Param != "" {
		detail["param"] = e.Param
	}
	return map[string]interface{}{"error": detail}
}

func invalidRequestOutcome(param, msg string) model.ChargeOutcome {
	return model.ChargeOutcome{
		Kind:   model.OutcomeProcessorError,
		Status: fiber.StatusBadRequest,
		Detail: msg,
		Body: map[string]interface{}{
			"error": map[string]interface{}{
				"type":    "invalid_request_error",
				"message": msg,
				"param":   param,
			},
		},
	}
}
