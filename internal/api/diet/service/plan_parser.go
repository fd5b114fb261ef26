package dietService

import (
	"DietApp/internal/api/diet"
	"errors"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

const defaultTargetCalories = 2000

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ParsePlan extracts the outermost JSON object from raw generator output and
// decodes it. Anything that does not decode into a plan with at least one day
// is ErrInvalidPlan.
func ParsePlan(raw string) (diet.DietPlan, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return diet.DietPlan{}, fmt.Errorf("%w: no JSON object in response", diet.ErrInvalidPlan)
	}

	var plan diet.DietPlan
	if err := json.Unmarshal([]byte(raw[start:end+1]), &plan); err != nil {
		return diet.DietPlan{}, errors.Join(diet.ErrInvalidPlan, err)
	}

	if len(plan.PlanSemanalRotativo) == 0 {
		return diet.DietPlan{}, fmt.Errorf("%w: plan has no days", diet.ErrInvalidPlan)
	}

	return plan, nil
}

// TargetCalories is the plan's daily target, or 2000 kcal when the generator left it out.
func TargetCalories(plan diet.DietPlan) int {
	if plan.ResumenNutricional.CaloriasDiariasObjetivo > 0 {
		return plan.ResumenNutricional.CaloriasDiariasObjetivo
	}
	return defaultTargetCalories
}
