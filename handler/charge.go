package handler

import (
	"context"
	"fmt"

	"donation_server/config"
	"donation_server/logger"
	"donation_server/metrics"
	"donation_server/middleware"
	"donation_server/model"
	"donation_server/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Notifier fans a single outcome out to every enabled notification channel.
type Notifier interface {
	Broadcast(ctx context.Context, kind model.EventKind, subject, body string)
}

// ChargeHandler orchestrates the donation flow: parse, charge, classify,
// notify, respond.
type ChargeHandler struct {
	cfg      *config.ServiceConfig
	charger  Charger
	notifier Notifier
	log      *logger.Logger
	metrics  *metrics.Metrics
}

func NewChargeHandler(cfg *config.ServiceConfig, charger Charger, notifier Notifier, log *logger.Logger, m *metrics.Metrics) *ChargeHandler {
	return &ChargeHandler{cfg: cfg, charger: charger, notifier: notifier, log: log, metrics: m}
}

func (h *ChargeHandler) Charge(c *fiber.Ctx) error {
	req := model.DonationRequest{
		Amount: c.FormValue("amount"),
		Token:  c.FormValue("token"),
		Email:  c.FormValue("email"),
	}

	// Display amount only; the processor receives the raw smallest-unit value.
	cents, _ := utils.ParseAmount(req.Amount)
	display := utils.DisplayAmount(cents)

	outcome := h.charger.CreateCharge(c.UserContext(), req)
	h.metrics.Charges.WithLabelValues(string(outcome.Kind)).Inc()

	log := h.log.WithRequestID(middleware.GetRequestID(c)).WithFields(logrus.Fields{
		"amount": fmt.Sprintf("%.2f", display),
		"email":  req.Email,
	})

	switch outcome.Kind {
	case model.OutcomeSuccess:
		log.WithField("charge_id", outcome.ChargeID).Infof("charged %.2f donation from %s", display, req.Email)
		h.notifier.Broadcast(c.UserContext(), model.EventSuccess,
			"Donation received",
			fmt.Sprintf("Charged %.2f donation from %s.", display, req.Email))
		// Empty body, SendStatus would fill in the status text.
		c.Status(fiber.StatusOK)
		return nil

	case model.OutcomeDeclined:
		// A decline is a normal user-facing outcome, nobody gets paged.
		log.WithField("detail", outcome.Detail).Errorf("card declined for %.2f donation from %s: %s", display, req.Email, outcome.Detail)
		return c.Status(outcome.Status).JSON(outcome.Body)

	default:
		log.WithField("detail", outcome.Detail).Errorf("failed to charge %.2f donation from %s: %s", display, req.Email, outcome.Detail)
		h.notifier.Broadcast(c.UserContext(), model.EventFailure,
			"Donation charge failed",
			fmt.Sprintf("Failed to charge %.2f donation from %s: %s", display, req.Email, outcome.Detail))
		return c.Status(outcome.Status).JSON(outcome.Body)
	}
}
