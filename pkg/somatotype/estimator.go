package somatotype

import (
	"fmt"
	"math"
)

// DefaultMesoScale brings (summed widths / height) onto the usual 1-7 rating range.
// It is an empirical calibration constant, not a physical one.
const DefaultMesoScale = 10.0

const (
	minEndomorphy = 0.5
	minMesomorphy = 0.5
	minEctomorphy = 0.1
)

// Anthropometry is the input record of one somatotype estimation.
type Anthropometry struct {
	WeightKg        float64
	HeightCm        float64
	ShoulderWidthCm float64
	HipWidthCm      float64
	TorsoLengthCm   float64
}

// Scores are the three somatotype components rounded to one decimal.
type Scores struct {
	Endomorphy float64 `json:"endo"`
	Mesomorphy float64 `json:"meso"`
	Ectomorphy float64 `json:"ecto"`
}

type Estimator struct {
	mesoScale float64
}

// NewEstimator returns an estimator with the given mesomorphy scale.
// A non-positive scale selects DefaultMesoScale.
func NewEstimator(mesoScale float64) *Estimator {
	if !(mesoScale > 0) {
		mesoScale = DefaultMesoScale
	}
	return &Estimator{mesoScale: mesoScale}
}

func (e *Estimator) MesoScale() float64 {
	return e.mesoScale
}

// Estimate computes endomorphy, mesomorphy and ectomorphy for a.
func (e *Estimator) Estimate(a Anthropometry) (Scores, error) {
	return EstimateWithScale(a, e.mesoScale)
}

// EstimateWithScale is Estimate with an explicit mesomorphy scale.
func EstimateWithScale(a Anthropometry, mesoScale float64) (Scores, error) {
	if err := a.Validate(); err != nil {
		return Scores{}, err
	}
	if !(mesoScale > 0) {
		return Scores{}, fmt.Errorf("%w: meso scale must be positive, got %v", ErrInvalidInput, mesoScale)
	}

	return Scores{
		Endomorphy: Round(Endomorphy(a.WeightKg, a.HeightCm), 1),
		Mesomorphy: Round(Mesomorphy(a, mesoScale), 1),
		Ectomorphy: Round(Ectomorphy(a.WeightKg, a.HeightCm), 1),
	}, nil
}

func (a Anthropometry) Validate() error {
	if !(a.WeightKg > 0) {
		return fmt.Errorf("%w: weight must be positive, got %v", ErrInvalidInput, a.WeightKg)
	}
	if !(a.HeightCm > 0) {
		return fmt.Errorf("%w: height must be positive, got %v", ErrInvalidInput, a.HeightCm)
	}
	if !(a.ShoulderWidthCm >= 0) || !(a.HipWidthCm >= 0) || !(a.TorsoLengthCm >= 0) {
		return fmt.Errorf("%w: body measurements must be non-negative", ErrInvalidInput)
	}
	return nil
}

// PonderalIndex is height over the cube root of weight.
func PonderalIndex(weightKg, heightCm float64) float64 {
	return heightCm / math.Cbrt(weightKg)
}

// EctomorphyFromPonderalIndex applies the Heath-Carter rating curve.
// The two linear regimes do not meet at 40.75; values just below it use the
// lower slope.
func EctomorphyFromPonderalIndex(ip float64) float64 {
	var ecto float64
	switch {
	case ip >= 40.75:
		ecto = 0.732*ip - 28.58
	case ip > 38.25:
		ecto = 0.463*ip - 17.63
	default:
		ecto = minEctomorphy
	}
	return math.Max(minEctomorphy, ecto)
}

func Ectomorphy(weightKg, heightCm float64) float64 {
	return EctomorphyFromPonderalIndex(PonderalIndex(weightKg, heightCm))
}

// BMI is weight over height in meters squared.
func BMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100.0
	return weightKg / (m * m)
}

// Endomorphy is a linear BMI proxy standing in for skinfold-based endomorphy.
func Endomorphy(weightKg, heightCm float64) float64 {
	return math.Max(minEndomorphy, 0.7*BMI(weightKg, heightCm)-7.0)
}

// Mesomorphy is the robustness index (shoulder + hip + torso) over height, scaled.
func Mesomorphy(a Anthropometry, mesoScale float64) float64 {
	robustness := a.ShoulderWidthCm + a.HipWidthCm + a.TorsoLengthCm
	return math.Max(minMesomorphy, robustness/a.HeightCm*mesoScale)
}
