package diet

import (
	"DietApp/internal/entity"
	"DietApp/pkg/somatotype"
	"strings"
	"time"
)

const (
	ActivitySedentary = "sedentary"
	ActivityLight     = "light"
	ActivityModerate  = "moderate"
	ActivityActive    = "active"
)

type GenerateDietRequest struct {
	Age               int     `json:"age" validate:"required,gt=0,lte=120"`
	Gender            string  `json:"gender" validate:"required,max=16"`
	WeightKg          float64 `json:"current_weight_kg" validate:"required,gt=0,lte=500"`
	HeightCm          float64 `json:"height_cm" validate:"required,gt=0,lte=300"`
	ActivityLevel     string  `json:"activity_level" validate:"required,oneof=sedentary light moderate active"`
	Goal              string  `json:"goal" validate:"required,max=200"`
	Country           string  `json:"country" validate:"required,max=64"`
	City              string  `json:"city" validate:"omitempty,max=64"`
	MedicalConditions string  `json:"medical_conditions" validate:"omitempty,max=1000"`
	ShoulderWidthCm   float64 `json:"shoulder_width_cm" validate:"required,gt=0"`
	HipWidthCm        float64 `json:"hip_width_cm" validate:"required,gt=0"`
	TorsoLengthCm     float64 `json:"shoulder_hip_dist_cm" validate:"required,gt=0"`
	MesoScale         float64 `json:"meso_scale" validate:"omitempty,gt=0"`
}

type GenerateDietPhotoRequest struct {
	Age               int     `form:"age" validate:"required,gt=0,lte=120"`
	Gender            string  `form:"gender" validate:"required,max=16"`
	WeightKg          float64 `form:"current_weight_kg" validate:"required,gt=0,lte=500"`
	HeightCm          float64 `form:"height_cm" validate:"required,gt=0,lte=300"`
	ActivityLevel     string  `form:"activity_level" validate:"required,oneof=sedentary light moderate active"`
	Goal              string  `form:"goal" validate:"required,max=200"`
	Country           string  `form:"country" validate:"required,max=64"`
	City              string  `form:"city" validate:"omitempty,max=64"`
	MedicalConditions string  `form:"medical_conditions" validate:"omitempty,max=1000"`
	MesoScale         float64 `form:"meso_scale" validate:"omitempty,gt=0"`
}

// DietProfile is every user attribute the plan generator reads. It is built
// once per request and passed by value.
type DietProfile struct {
	Age               int     `json:"age"`
	Gender            string  `json:"gender"`
	WeightKg          float64 `json:"current_weight_kg"`
	HeightCm          float64 `json:"height_cm"`
	ActivityLevel     string  `json:"activity_level"`
	Goal              string  `json:"goal"`
	Country           string  `json:"country"`
	City              string  `json:"city,omitempty"`
	MedicalConditions string  `json:"medical_conditions,omitempty"`
}

func NewDietProfile(age int, gender string, weightKg, heightCm float64, activity, goal, country, city, medical string) DietProfile {
	return DietProfile{
		Age:               age,
		Gender:            strings.TrimSpace(gender),
		WeightKg:          weightKg,
		HeightCm:          heightCm,
		ActivityLevel:     strings.ToLower(strings.TrimSpace(activity)),
		Goal:              strings.TrimSpace(goal),
		Country:           strings.TrimSpace(country),
		City:              strings.TrimSpace(city),
		MedicalConditions: strings.TrimSpace(medical),
	}
}

func (r GenerateDietRequest) Profile() DietProfile {
	return NewDietProfile(r.Age, r.Gender, r.WeightKg, r.HeightCm, r.ActivityLevel, r.Goal, r.Country, r.City, r.MedicalConditions)
}

func (r GenerateDietPhotoRequest) Profile() DietProfile {
	return NewDietProfile(r.Age, r.Gender, r.WeightKg, r.HeightCm, r.ActivityLevel, r.Goal, r.Country, r.City, r.MedicalConditions)
}

// Location is "city, country", or just the country when no city is given.
func (p DietProfile) Location() string {
	if p.City == "" {
		return p.Country
	}
	return p.City + ", " + p.Country
}

type Meals struct {
	Desayuno string `json:"desayuno"`
	Almuerzo string `json:"almuerzo"`
	Cena     string `json:"cena"`
	Snack    string `json:"snack"`
}

type Macros struct {
	ProteinaG int `json:"proteina_g"`
	CarbosG   int `json:"carbos_g"`
	GrasaG    int `json:"grasa_g"`
}

type DietPlan struct {
	AnalisisInicial struct {
		InterpretacionSomatotipo string `json:"interpretacion_somatotipo"`
		EstrategiaEconomica      string `json:"estrategia_economica"`
	} `json:"analisis_inicial"`
	ResumenNutricional struct {
		CaloriasDiariasObjetivo int    `json:"calorias_diarias_objetivo"`
		Macros                  Macros `json:"macros"`
	} `json:"resumen_nutricional"`
	PlanSemanalRotativo map[string]Meals `json:"plan_semanal_rotativo"`
	ListaComprasSemanal []string         `json:"lista_compras_semanal"`
}

type WeightPrediction struct {
	PredictedChangeKg float64 `json:"predicted_weight_change_in_4_weeks_kg"`
	CaloriesOut       float64 `json:"estimated_daily_calories_out"`
	TargetCalories    int     `json:"target_daily_calories"`
	Disclaimer        string  `json:"disclaimer"`
}

type SomatotypeAnalysis struct {
	Components      string                  `json:"components"`
	Scores          somatotype.Scores       `json:"scores"`
	DominantProfile somatotype.DominantType `json:"dominant_profile"`
}

type DietResponse struct {
	ID                 string             `json:"id"`
	AnalysisID         string             `json:"analysis_id"`
	Provider           string             `json:"provider"`
	Cached             bool               `json:"cached"`
	UserInfo           DietProfile        `json:"user_info"`
	BMR                int                `json:"bmr"`
	SomatotypeAnalysis SomatotypeAnalysis `json:"somatotype_analysis"`
	DietPlan           DietPlan           `json:"diet_plan"`
	SimplePrediction   WeightPrediction   `json:"simple_prediction"`
	CreatedAt          string             `json:"created_at"`
}

type PlanResponse struct {
	entity.DietPlanRecord
	CreatedAt string `json:"created_at"`
}

func NewPlanResponse(r entity.DietPlanRecord) PlanResponse {
	return PlanResponse{
		DietPlanRecord: r,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}
}
