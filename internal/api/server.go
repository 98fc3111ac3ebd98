package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/MPZ-00/pdf-bank-extractor/internal/config"
)

// NewApp builds the fiber application with the API routes mounted.
func NewApp(cfg *config.Config, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "pdf-bank-extractor",
		BodyLimit:             cfg.Server.BodyLimitMB << 20,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	h := &Handler{OCR: cfg.Convert.OCREnabled, Log: log}
	h.Register(app)
	return app
}
