package middleware

import (
	"DietApp/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type Middleware interface {
	NewRateLimiter(ctx *fiber.Ctx) error
	NewRequestIDMiddleware() fiber.Handler
	NewLoggerMiddleware() fiber.Handler
	GetRequestID(ctx *fiber.Ctx) string
}

type middleware struct {
	rateLimitter        *rateLimiter
	requestIDMiddleware fiber.Handler
	loggerMiddleware    fiber.Handler
	log                 *logrus.Logger
}

type Config struct {
	// Requests per second and burst allowed per client IP on expensive routes.
	RateLimit rate.Limit
	Burst     int
}

func New(logger *logrus.Logger, u utils.IUtils, cfg Config) Middleware {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}

	return &middleware{
		rateLimitter:        newRateLimiter(cfg.RateLimit, cfg.Burst),
		requestIDMiddleware: newRequestIDMiddleware(u),
		loggerMiddleware:    newLoggerMiddleware(logger),
		log:                 logger,
	}
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}

func (m *middleware) NewLoggerMiddleware() fiber.Handler {
	return m.loggerMiddleware
}
