package analysis

import "DietApp/pkg/response"

var (
	ErrAnalysisNotFound  = response.NewError(404, "analysis not found")
	ErrInvalidAnalysisID = response.NewError(400, "invalid analysis id")
	ErrInvalidImage      = response.NewError(400, "invalid image, upload a JPEG, PNG or WebP photo")
	ErrCreateAnalysis    = response.NewError(500, "failed to save analysis")
)
