// Package somatotype estimates Heath-Carter body-type components and basal
// metabolic rate from pose landmarks or direct anthropometric inputs.
package somatotype

import (
	"fmt"
	"math"
	"strconv"
)

// Landmark names as emitted by the pose service (MediaPipe pose naming).
const (
	Nose          = "nose"
	LeftShoulder  = "left_shoulder"
	RightShoulder = "right_shoulder"
	LeftHip       = "left_hip"
	RightHip      = "right_hip"
	LeftHeel      = "left_heel"
	RightHeel     = "right_heel"
)

// RequiredLandmarks lists every landmark the calibrator and extractor read.
var RequiredLandmarks = []string{
	Nose, LeftShoulder, RightShoulder, LeftHip, RightHip, LeftHeel, RightHeel,
}

// Point is a position in image pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PoseLandmarks holds the keypoints of one frontal, fully visible body.
type PoseLandmarks struct {
	Nose          Point `json:"nose"`
	LeftShoulder  Point `json:"left_shoulder"`
	RightShoulder Point `json:"right_shoulder"`
	LeftHip       Point `json:"left_hip"`
	RightHip      Point `json:"right_hip"`
	LeftHeel      Point `json:"left_heel"`
	RightHeel     Point `json:"right_heel"`
}

// LandmarksFromMap picks the required keypoints out of a detector result
// keyed by landmark name.
func LandmarksFromMap(points map[string]Point) (PoseLandmarks, error) {
	for _, name := range RequiredLandmarks {
		if _, ok := points[name]; !ok {
			return PoseLandmarks{}, fmt.Errorf("%w: %s", ErrMissingLandmark, name)
		}
	}

	return PoseLandmarks{
		Nose:          points[Nose],
		LeftShoulder:  points[LeftShoulder],
		RightShoulder: points[RightShoulder],
		LeftHip:       points[LeftHip],
		RightHip:      points[RightHip],
		LeftHeel:      points[LeftHeel],
		RightHeel:     points[RightHeel],
	}, nil
}

func distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Round rounds v to the given number of decimals, breaking exact ties
// towards the even digit. Formatting rounds the exact binary value, so
// 2.675 becomes 2.67 and 30.125 becomes 30.12.
func Round(v float64, decimals int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return v
	}
	return r
}
