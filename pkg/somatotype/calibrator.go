package somatotype

import (
	"fmt"
	"math"
)

// ScaleFactor is centimeters per pixel for a single image.
type ScaleFactor float64

// PixelHeight is the vertical nose-to-heels distance in pixels.
func PixelHeight(lm PoseLandmarks) float64 {
	bottom := (lm.LeftHeel.Y + lm.RightHeel.Y) / 2.0
	return math.Abs(bottom - lm.Nose.Y)
}

// Calibrate derives the pixel-to-centimeter scale from the person's real height.
func Calibrate(lm PoseLandmarks, realHeightCm float64) (ScaleFactor, error) {
	if !(realHeightCm > 0) {
		return 0, fmt.Errorf("%w: height must be positive, got %v", ErrInvalidInput, realHeightCm)
	}

	px := PixelHeight(lm)
	if px == 0 {
		return 0, ErrDegeneratePose
	}

	return ScaleFactor(realHeightCm / px), nil
}
