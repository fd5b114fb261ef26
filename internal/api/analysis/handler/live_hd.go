package analysisHandler

import (
	"DietApp/internal/api/analysis"
	contextPkg "DietApp/pkg/context"
	"encoding/json"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
	"strconv"
	"time"
)

const (
	liveRequestIDKey = "live_request_id"
	liveReadTimeout  = 60 * time.Second
	liveFrameTimeout = 15 * time.Second
)

// handleLiveFeedback answers each binary preview frame with a framing
// inspection. A text message {"height_cm": n} updates the calibration height.
func (h *AnalysisHandler) handleLiveFeedback(c *websocket.Conn) {
	requestID, _ := c.Locals(liveRequestIDKey).(string)
	logger := h.log.WithField("request_id", requestID)

	logger.Info("Live framing client connected")
	defer logger.Info("Live framing client disconnected")

	heightCm, _ := strconv.ParseFloat(c.Query("height_cm"), 64)

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			logger.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	for {
		if err := c.SetReadDeadline(time.Now().Add(liveReadTimeout)); err != nil {
			logger.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Errorf("Live framing websocket error: %v", err)
			}
			break
		}

		switch messageType {
		case websocket.TextMessage:
			var update analysis.FrameUpdate
			if err := json.Unmarshal(message, &update); err != nil || update.HeightCm <= 0 {
				if writeErr := c.WriteJSON(map[string]string{"error": "expected {\"height_cm\": <positive number>}"}); writeErr != nil {
					return
				}
				continue
			}
			heightCm = update.HeightCm

		case websocket.BinaryMessage:
			ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), liveFrameTimeout)
			result := h.analysisService.InspectFrame(ctx, message, heightCm)
			cancel()

			if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
				logger.Errorf("Error setting write deadline: %v", err)
				return
			}
			if err := c.WriteJSON(result); err != nil {
				logger.Errorf("Error writing JSON response: %v", err)
				return
			}

		default:
			logger.Warnf("Received unexpected message type: %d", messageType)
		}
	}
}
