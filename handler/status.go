package handler

import (
	"fmt"

	"donation_server/middleware"

	"github.com/gofiber/fiber/v2"
)

// Pubkey serves a script snippet exposing the configured public key.
func (h *ChargeHandler) Pubkey(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/javascript")
	return c.SendString(fmt.Sprintf("var %s = %q;", h.cfg.PubkeyVariable, h.cfg.PublicKey))
}

// Ping is the liveness check.
func (h *ChargeHandler) Ping(c *fiber.Ctx) error {
	h.log.WithRequestID(middleware.GetRequestID(c)).Info("ping")
	c.Status(fiber.StatusOK)
	return nil
}
