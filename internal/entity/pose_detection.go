package entity

import "DietApp/pkg/somatotype"

type PoseDetectionResult struct {
	Landmarks   map[string]somatotype.Point `json:"landmarks"`
	Normalized  bool                        `json:"normalized"`
	ImageWidth  int                         `json:"image_width"`
	ImageHeight int                         `json:"image_height"`
	Error       string                      `json:"error,omitempty"`
}

type FrameStatus string

const (
	FrameStatusOK             FrameStatus = "ok"
	FrameStatusNoPerson       FrameStatus = "no_person"
	FrameStatusDegeneratePose FrameStatus = "degenerate_pose"
	FrameStatusError          FrameStatus = "error"
)

type FrameInspection struct {
	Status       FrameStatus                  `json:"status"`
	Instructions []string                     `json:"instructions"`
	Measurements *somatotype.BodyMeasurements `json:"measurements,omitempty"`
	ScaleCmPerPx *float64                     `json:"scale_cm_per_px,omitempty"`
}
