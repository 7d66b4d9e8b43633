package router

import (
	"donation_server/handler"
	"donation_server/middleware"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App, h *handler.ChargeHandler) {
	app.Use(logger.New())
	app.Use(middleware.RequestID())

	app.Get("/pubkey.js", h.Pubkey)
	app.Get("/ping", h.Ping)
	app.Post("/charge", h.Charge)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
