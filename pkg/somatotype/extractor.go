package somatotype

// BodyMeasurements are centimeter widths and lengths taken from landmarks.
type BodyMeasurements struct {
	ShoulderWidthCm float64 `json:"shoulder_width_cm"`
	HipWidthCm      float64 `json:"hip_width_cm"`
	TorsoLengthCm   float64 `json:"torso_length_cm"`
}

// Extract converts landmark pair distances to centimeters, rounded to two decimals.
func Extract(lm PoseLandmarks, scale ScaleFactor) BodyMeasurements {
	s := float64(scale)

	shoulders := distance(lm.LeftShoulder, lm.RightShoulder)
	hips := distance(lm.LeftHip, lm.RightHip)
	torso := (distance(lm.LeftShoulder, lm.LeftHip) + distance(lm.RightShoulder, lm.RightHip)) / 2.0

	return BodyMeasurements{
		ShoulderWidthCm: Round(shoulders*s, 2),
		HipWidthCm:      Round(hips*s, 2),
		TorsoLengthCm:   Round(torso*s, 2),
	}
}

// Measure calibrates against the real height and extracts the measurements.
// Nothing is extracted when calibration fails.
func Measure(lm PoseLandmarks, realHeightCm float64) (BodyMeasurements, ScaleFactor, error) {
	scale, err := Calibrate(lm, realHeightCm)
	if err != nil {
		return BodyMeasurements{}, 0, err
	}
	return Extract(lm, scale), scale, nil
}
