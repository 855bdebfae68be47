package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

type AppOptions struct {
	AllowedOrigins []string
	AccessLog      bool
}

// NewApp wires the middleware stack and every route around handler.
func NewApp(handler *Handler, options AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Paaga",
		DisableStartupMessage: true,
		ErrorHandler:          handler.fiberErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	if options.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:" + requestIDKey + "} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	if len(options.AllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(options.AllowedOrigins, ","),
			AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
			AllowCredentials: true,
		}))
	}

	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func (handler *Handler) fiberErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return apiError(c, fiberErr.Code, strings.ToLower(fiberErr.Message))
	}
	return handler.respondError(c, err)
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "route not found")
}
