package main

import (
	"donation_server/config"
	"donation_server/handler"
	"donation_server/logger"
	"donation_server/metrics"
	"donation_server/notify"
	"donation_server/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	log := logger.New("donation-server")

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	dispatcher := notify.NewDispatcher(cfg, notify.NewMailgun(cfg.Mailgun), notify.NewPushover(cfg.Pushover), log, m)
	h := handler.NewChargeHandler(cfg, handler.NewStripeCharger(cfg), dispatcher, log, m)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigin,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	router.SetupRoutes(app, h)

	log.Fatal(app.Listen(cfg.ListenAddr))
}
