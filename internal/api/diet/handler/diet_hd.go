package dietHandler

import (
	"DietApp/internal/api/analysis"
	"DietApp/internal/api/diet"
	contextPkg "DietApp/pkg/context"
	"DietApp/pkg/handlerUtil"
	"DietApp/pkg/log"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"time"
)

func (h *DietHandler) GenerateFromMeasurements(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), h.timeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing diet generation request")

	var req diet.GenerateDietRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleBadRequest(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.dietService.GenerateFromMeasurements(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "generate_diet")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, result)
	}
}

func (h *DietHandler) GenerateFromPhoto(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), h.timeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req diet.GenerateDietPhotoRequest
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
	}).Debug("Processing diet generation from photo")

	image, contentType, err := h.utils.ReadImageFile(file)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_image_file")
	}

	result, err := h.dietService.GenerateFromPhoto(c, req, image, contentType)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "generate_diet_photo")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, result)
	}
}

func (h *DietHandler) GetPlan(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	plan, err := h.dietService.GetPlan(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_plan")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, diet.NewPlanResponse(plan))
	}
}
