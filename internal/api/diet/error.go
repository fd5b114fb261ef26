package diet

import "DietApp/pkg/response"

var (
	ErrPlanNotFound         = response.NewError(404, "diet plan not found")
	ErrInvalidPlanID        = response.NewError(400, "invalid diet plan id")
	ErrInvalidPlan          = response.NewError(502, "diet generator returned an invalid plan")
	ErrGeneratorUnavailable = response.NewError(503, "diet generator unavailable, try again later")
	ErrGeneratorTimeout     = response.NewError(504, "diet generator timed out, try again later")
	ErrCreatePlan           = response.NewError(500, "failed to save diet plan")
)
