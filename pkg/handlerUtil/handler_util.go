package handlerUtil

import (
	"DietApp/pkg/log"
	"DietApp/pkg/pose"
	"DietApp/pkg/response"
	"DietApp/pkg/somatotype"
	"DietApp/pkg/utils"
	"context"
	"errors"
	"github.com/gofiber/fiber/v2"
	fiberUtils "github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Order matters: the first mapping whose target is in the error chain wins.
var errorMappings = []errorMapping{
	{somatotype.ErrDegeneratePose, fiber.StatusUnprocessableEntity, "CALIBRATION_FAILED",
		"Could not establish scale from the photo. Stand fully inside the frame, head to heels, and retake the photo"},
	{somatotype.ErrMissingLandmark, fiber.StatusUnprocessableEntity, "NO_PERSON_DETECTED",
		"Part of the body is not visible. Make sure your whole body is in the frame and retake the photo"},
	{pose.ErrNoPersonDetected, fiber.StatusUnprocessableEntity, "NO_PERSON_DETECTED",
		"No person detected in the photo. Retake it with your whole body visible"},
	{pose.ErrEmptyImage, fiber.StatusBadRequest, "INVALID_IMAGE", "Image is empty"},
	{utils.ErrNoFile, fiber.StatusBadRequest, "INVALID_IMAGE", "No image uploaded"},
	{utils.ErrFileTooLarge, fiber.StatusRequestEntityTooLarge, "INVALID_IMAGE", "File too large. Maximum size is 10MB"},
	{utils.ErrNotAnImage, fiber.StatusBadRequest, "INVALID_IMAGE", "Uploaded file is not an image"},
	{utils.ErrUnsupportedFormat, fiber.StatusBadRequest, "INVALID_IMAGE", "Unsupported image format. Use JPEG, PNG or WebP"},
	{pose.ErrServiceUnavailable, fiber.StatusServiceUnavailable, "POSE_SERVICE_UNAVAILABLE",
		"Pose detection service is unavailable, try again later"},
	{context.DeadlineExceeded, fiber.StatusGatewayTimeout, "TIMEOUT", "The operation timed out, try again later"},
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) fields(requestID string, err error, path string, operation string) log.Fields {
	return log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	if errors.Is(err, somatotype.ErrInvalidInput) {
		h.logger.WithFields(h.fields(requestID, err, path, operation)).Warn("Invalid biometric input")
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_INPUT",
		})
	}

	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}

		fields := h.fields(requestID, err, path, operation)
		fields["code"] = m.code

		var traceID string
		if m.status >= fiber.StatusInternalServerError {
			traceID = log.ErrorWithTraceID(fields, m.message)
		} else {
			h.logger.WithFields(fields).Warn(m.message)
		}

		return c.Status(m.status).JSON(ErrorResponse{
			Error:   m.message,
			Code:    m.code,
			TraceID: traceID,
		})
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		fields := h.fields(requestID, err, path, operation)
		fields["code"] = respErr.Code

		var traceID string
		if respErr.Code >= fiber.StatusInternalServerError {
			traceID = log.ErrorWithTraceID(fields, "Operation failed with error response")
		} else {
			h.logger.WithFields(fields).Warn("Operation failed with error response")
		}
		return c.Status(respErr.Code).JSON(ErrorResponse{
			Error:   respErr.Error(),
			TraceID: traceID,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		h.logger.WithFields(h.fields(requestID, err, path, operation)).Warn("Request rejected")
		return c.Status(fiberErr.Code).JSON(ErrorResponse{
			Error: fiberErr.Message,
		})
	}

	traceID := log.ErrorWithTraceID(h.fields(requestID, err, path, operation), "Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "An unexpected error occurred",
		TraceID: traceID,
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: "Validation failed: " + err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleBadRequest(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Malformed request body")

	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: "Malformed request body",
		Code:  "BAD_REQUEST",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(ErrorResponse{
		Error: fiberUtils.StatusMessage(fiber.StatusRequestTimeout),
		Code:  "TIMEOUT",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
