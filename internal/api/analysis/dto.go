package analysis

import (
	"DietApp/internal/entity"
	"DietApp/pkg/somatotype"
	"time"
)

type SomatotypeRequest struct {
	WeightKg        float64 `json:"weight_kg" validate:"required,gt=0,lte=500"`
	HeightCm        float64 `json:"height_cm" validate:"required,gt=0,lte=300"`
	Age             int     `json:"age" validate:"omitempty,gt=0,lte=120"`
	Gender          string  `json:"gender" validate:"omitempty,max=16"`
	ShoulderWidthCm float64 `json:"shoulder_width_cm" validate:"gte=0"`
	HipWidthCm      float64 `json:"hip_width_cm" validate:"gte=0"`
	TorsoLengthCm   float64 `json:"torso_length_cm" validate:"gte=0"`
	MesoScale       float64 `json:"meso_scale" validate:"omitempty,gt=0"`
}

type PhotoAnalysisRequest struct {
	WeightKg  float64 `form:"weight_kg" validate:"required,gt=0,lte=500"`
	HeightCm  float64 `form:"height_cm" validate:"required,gt=0,lte=300"`
	Age       int     `form:"age" validate:"omitempty,gt=0,lte=120"`
	Gender    string  `form:"gender" validate:"omitempty,max=16"`
	MesoScale float64 `form:"meso_scale" validate:"omitempty,gt=0"`
}

type AnalysisResponse struct {
	ID           string                      `json:"id"`
	Source       entity.AnalysisSource       `json:"source"`
	Somatotype   somatotype.Scores           `json:"somatotype"`
	Dominant     somatotype.DominantType     `json:"dominant_profile"`
	Measurements somatotype.BodyMeasurements `json:"measurements"`
	ScaleCmPerPx float64                     `json:"scale_cm_per_px,omitempty"`
	MesoScale    float64                     `json:"meso_scale"`
	BMR          int                         `json:"bmr,omitempty"`
	PhotoURL     string                      `json:"photo_url,omitempty"`
	CreatedAt    string                      `json:"created_at"`
}

type FrameUpdate struct {
	HeightCm float64 `json:"height_cm"`
}

func NewAnalysisResponse(a entity.BodyAnalysis) AnalysisResponse {
	return AnalysisResponse{
		ID:           a.ID,
		Source:       a.Source,
		Somatotype:   a.Scores(),
		Dominant:     a.Dominant,
		Measurements: a.Measurements(),
		ScaleCmPerPx: a.ScaleCmPerPx,
		MesoScale:    a.MesoScale,
		BMR:          a.BMR,
		PhotoURL:     a.PhotoURL,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
}
