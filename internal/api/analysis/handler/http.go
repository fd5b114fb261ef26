package analysisHandler

import (
	analysisService "DietApp/internal/api/analysis/service"
	"DietApp/internal/middleware"
	"DietApp/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type AnalysisHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	analysisService analysisService.IAnalysisService
	utils           utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	as analysisService.IAnalysisService,
	utils utils.IUtils,
) *AnalysisHandler {
	return &AnalysisHandler{
		log:             log,
		validator:       validator,
		middleware:      middleware,
		analysisService: as,
		utils:           utils,
	}
}

func (h *AnalysisHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals(liveRequestIDKey, h.middleware.GetRequestID(c))
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	srv.Get("/analysis", h.ListAnalyses)

	analysis := srv.Group("/analysis")
	analysis.Post("/somatotype", h.AnalyzeManual)
	analysis.Post("/photo", h.middleware.NewRateLimiter, h.AnalyzePhoto)
	analysis.Use("/ws", wsMiddleware)
	analysis.Get("/ws", websocket.New(h.handleLiveFeedback))
	analysis.Get("/:id", h.GetAnalysis)
}
