package entity

import (
	"DietApp/pkg/somatotype"
	"time"
)

type AnalysisSource string

const (
	AnalysisSourceManual AnalysisSource = "manual"
	AnalysisSourcePhoto  AnalysisSource = "photo"
)

type BodyAnalysis struct {
	ID              string                  `json:"id"`
	Source          AnalysisSource          `json:"source"`
	WeightKg        float64                 `json:"weight_kg"`
	HeightCm        float64                 `json:"height_cm"`
	Age             int                     `json:"age,omitempty"`
	Gender          string                  `json:"gender,omitempty"`
	ShoulderWidthCm float64                 `json:"shoulder_width_cm"`
	HipWidthCm      float64                 `json:"hip_width_cm"`
	TorsoLengthCm   float64                 `json:"torso_length_cm"`
	ScaleCmPerPx    float64                 `json:"scale_cm_per_px,omitempty"`
	MesoScale       float64                 `json:"meso_scale"`
	Endomorphy      float64                 `json:"endo"`
	Mesomorphy      float64                 `json:"meso"`
	Ectomorphy      float64                 `json:"ecto"`
	Dominant        somatotype.DominantType `json:"dominant"`
	BMR             int                     `json:"bmr,omitempty"`
	PhotoURL        string                  `json:"photo_url,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
}

func (a BodyAnalysis) Scores() somatotype.Scores {
	return somatotype.Scores{
		Endomorphy: a.Endomorphy,
		Mesomorphy: a.Mesomorphy,
		Ectomorphy: a.Ectomorphy,
	}
}

func (a BodyAnalysis) Measurements() somatotype.BodyMeasurements {
	return somatotype.BodyMeasurements{
		ShoulderWidthCm: a.ShoulderWidthCm,
		HipWidthCm:      a.HipWidthCm,
		TorsoLengthCm:   a.TorsoLengthCm,
	}
}
