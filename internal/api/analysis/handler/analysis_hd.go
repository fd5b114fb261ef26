package analysisHandler

import (
	"DietApp/internal/api/analysis"
	contextPkg "DietApp/pkg/context"
	"DietApp/pkg/handlerUtil"
	"DietApp/pkg/log"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"time"
)

func (h *AnalysisHandler) AnalyzeManual(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing manual somatotype request")

	var req analysis.SomatotypeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleBadRequest(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.analysisService.AnalyzeManual(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "analyze_manual")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, analysis.NewAnalysisResponse(result))
	}
}

func (h *AnalysisHandler) AnalyzePhoto(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req analysis.PhotoAnalysisRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleBadRequest(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		return errHandler.Handle(ctx, requestID, analysis.ErrInvalidImage, ctx.Path(), "read_form_file")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"file_name":  file.Filename,
		"file_size":  file.Size,
	}).Debug("Processing photo analysis request")

	image, contentType, err := h.utils.ReadImageFile(file)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_image_file")
	}

	result, err := h.analysisService.AnalyzePhoto(c, req, image, contentType)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "analyze_photo")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, analysis.NewAnalysisResponse(result))
	}
}

func (h *AnalysisHandler) GetAnalysis(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	result, err := h.analysisService.GetAnalysis(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_analysis")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, analysis.NewAnalysisResponse(result))
	}
}

func (h *AnalysisHandler) ListAnalyses(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	results, err := h.analysisService.ListAnalyses(c, ctx.QueryInt("limit", 20))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_analyses")
	}

	responses := make([]analysis.AnalysisResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, analysis.NewAnalysisResponse(result))
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"analyses": responses,
		})
	}
}
