package dietService

import (
	"DietApp/internal/api/diet"
	"DietApp/pkg/somatotype"
)

const (
	kcalPerKg        = 7700.0
	predictionDays   = 28
	predictionNotice = "Predicción simple basada en fórmula, no en modelo ML."
)

var activityMultipliers = map[string]float64{
	diet.ActivitySedentary: 1.2,
	diet.ActivityLight:     1.375,
	diet.ActivityModerate:  1.55,
	diet.ActivityActive:    1.725,
}

// ActivityMultiplier maps an activity level to its energy factor. Unknown
// levels count as sedentary.
func ActivityMultiplier(level string) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return activityMultipliers[diet.ActivitySedentary]
}

// PredictWeightChange projects four weeks at targetCalories against the
// estimated expenditure. Negative means weight loss.
func PredictWeightChange(bmr int, activityLevel string, targetCalories int) diet.WeightPrediction {
	caloriesOut := float64(bmr) * ActivityMultiplier(activityLevel)
	change := (float64(targetCalories) - caloriesOut) * predictionDays / kcalPerKg

	return diet.WeightPrediction{
		PredictedChangeKg: somatotype.Round(change, 2),
		CaloriesOut:       somatotype.Round(caloriesOut, 1),
		TargetCalories:    targetCalories,
		Disclaimer:        predictionNotice,
	}
}
