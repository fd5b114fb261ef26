package entity

import (
	"encoding/json"
	"time"
)

type DietPlanRecord struct {
	ID                string          `json:"id"`
	AnalysisID        string          `json:"analysis_id"`
	Provider          string          `json:"provider"`
	Goal              string          `json:"goal"`
	ActivityLevel     string          `json:"activity_level"`
	Country           string          `json:"country"`
	BMR               int             `json:"bmr"`
	TargetCalories    int             `json:"target_calories"`
	PredictedChangeKg float64         `json:"predicted_change_kg"`
	Plan              json.RawMessage `json:"plan"`
	CreatedAt         time.Time       `json:"created_at"`
}
