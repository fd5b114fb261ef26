package analysisService

import (
	"DietApp/internal/entity"
	contextPkg "DietApp/pkg/context"
	"DietApp/pkg/pose"
	"DietApp/pkg/somatotype"
	"errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	instructionStepBack    = "Step back until your whole body, head to heels, is inside the frame"
	instructionFaceCamera  = "Stand facing the camera with arms slightly away from your body"
	instructionLighting    = "Make sure the room is well lit and the background is plain"
	instructionHold        = "Hold still, framing looks good"
	instructionSetHeight   = "Enter your height in centimeters before starting"
	instructionServiceBusy = "Pose service is not responding, keep the pose and wait"
)

// InspectFrame runs one live preview frame through detection and calibration.
// Nothing is persisted. Failures are reported as a status, not an error.
func (s *analysisService) InspectFrame(ctx context.Context, frame []byte, heightCm float64) entity.FrameInspection {
	requestID := contextPkg.GetRequestID(ctx)

	if heightCm <= 0 {
		return entity.FrameInspection{
			Status:       entity.FrameStatusError,
			Instructions: []string{instructionSetHeight},
		}
	}

	landmarks, err := s.detector.Detect(ctx, frame)
	if err != nil {
		switch {
		case errors.Is(err, pose.ErrNoPersonDetected), errors.Is(err, somatotype.ErrMissingLandmark):
			return entity.FrameInspection{
				Status:       entity.FrameStatusNoPerson,
				Instructions: []string{instructionStepBack, instructionFaceCamera, instructionLighting},
			}
		default:
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Frame inspection failed")
			return entity.FrameInspection{
				Status:       entity.FrameStatusError,
				Instructions: []string{instructionServiceBusy},
			}
		}
	}

	measurements, scale, err := somatotype.Measure(landmarks, heightCm)
	if err != nil {
		return entity.FrameInspection{
			Status:       entity.FrameStatusDegeneratePose,
			Instructions: []string{instructionStepBack, instructionFaceCamera},
		}
	}

	scaleCmPerPx := float64(scale)
	return entity.FrameInspection{
		Status:       entity.FrameStatusOK,
		Instructions: []string{instructionHold},
		Measurements: &measurements,
		ScaleCmPerPx: &scaleCmPerPx,
	}
}
