package somatotype

import (
	"fmt"
	"strings"
)

type Sex string

const (
	Male  Sex = "male"
	Other Sex = "other"
)

// ParseSex maps a free-form gender value onto the two BMR categories.
func ParseSex(gender string) Sex {
	if strings.EqualFold(strings.TrimSpace(gender), string(Male)) {
		return Male
	}
	return Other
}

// BMR returns the Mifflin-St Jeor basal metabolic rate in kcal/day, truncated.
func BMR(sex Sex, weightKg, heightCm float64, ageYears int) (int, error) {
	if !(weightKg > 0) || !(heightCm > 0) || ageYears <= 0 {
		return 0, fmt.Errorf("%w: weight, height and age must be positive", ErrInvalidInput)
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if sex == Male {
		bmr += 5
	} else {
		bmr -= 161
	}

	return int(bmr), nil
}
