package dietHandler

import (
	dietService "DietApp/internal/api/diet/service"
	"DietApp/internal/middleware"
	"DietApp/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"time"
)

type DietHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	dietService dietService.IDietService
	utils       utils.IUtils
	timeout     time.Duration
}

// New builds the diet handler. timeout bounds a whole generation request and
// should exceed the generator's own deadline.
func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ds dietService.IDietService,
	utils utils.IUtils,
	timeout time.Duration,
) *DietHandler {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	return &DietHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		dietService: ds,
		utils:       utils,
		timeout:     timeout,
	}
}

func (h *DietHandler) Start(srv fiber.Router) {
	diet := srv.Group("/diet")

	diet.Post("/generate", h.middleware.NewRateLimiter, h.GenerateFromMeasurements)
	diet.Post("/generate/photo", h.middleware.NewRateLimiter, h.GenerateFromPhoto)
	diet.Get("/plans/:id", h.GetPlan)
}
