package pose

import (
	"DietApp/internal/entity"
	"DietApp/pkg/somatotype"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoPersonDetected   = errors.New("no person detected in the image")
	ErrServiceUnavailable = errors.New("pose detection service unavailable")
	ErrEmptyImage         = errors.New("empty image")
)

type IDetector interface {
	Detect(ctx context.Context, image []byte) (somatotype.PoseLandmarks, error)
	IsConnected() bool
	Reconnect() error
	Close()
}

type detectorClient struct {
	url          string
	conn         *websocket.Conn
	mu           sync.Mutex
	log          *logrus.Logger
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// New creates the pose detector client and dials the service in the
// background. A failed dial is retried on the first Detect call.
func New(log *logrus.Logger) IDetector {
	url := os.Getenv("AI_POSE_DETECTION_URL")
	if url == "" {
		url = "ws://localhost:8000/api/v1/pose/ws"
	}

	client := NewWithURL(url, log)

	go func() {
		if err := client.Reconnect(); err != nil {
			log.Warnf("Initial connection to pose service failed: %v. Will retry on demand.", err)
		} else {
			log.Info("Successfully connected to pose service")
		}
	}()

	return client
}

func NewWithURL(url string, log *logrus.Logger) IDetector {
	return &detectorClient{
		url:          url,
		log:          log,
		pingInterval: 30 * time.Second,
		readTimeout:  20 * time.Second,
		writeTimeout: 5 * time.Second,
	}
}

func (c *detectorClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *detectorClient) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialLocked()
}

func (c *detectorClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropLocked()
}

func (c *detectorClient) dialLocked() error {
	c.dropLocked()

	c.log.Debugf("Connecting to pose service at %s", c.url)

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
		if err != nil {
			c.log.Warnf("Error sending pong: %v", err)
		}
		return nil
	})

	c.conn = conn
	go c.keepAlive(conn)

	return nil
}

func (c *detectorClient) dropLocked() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *detectorClient) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		if c.conn != conn {
			c.mu.Unlock()
			return
		}

		err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(c.writeTimeout))
		if err != nil {
			c.log.Warnf("Ping failed for pose service, marking connection as dead: %v", err)
			c.dropLocked()
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
	}
}

func (c *detectorClient) deadline(ctx context.Context, fallback time.Duration) time.Time {
	d := time.Now().Add(fallback)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(d) {
		return ctxDeadline
	}
	return d
}

// contextError reports a cancelled context, or an expired deadline the
// context has not noticed yet.
func contextError(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d, ok := ctx.Deadline(); ok && !time.Now().Before(d) {
		return context.DeadlineExceeded
	}
	return nil
}

// Detect sends one encoded image to the pose service and returns the body
// landmarks in pixel coordinates. Requests share one connection and are
// serialized.
func (c *detectorClient) Detect(ctx context.Context, image []byte) (somatotype.PoseLandmarks, error) {
	if len(image) == 0 {
		return somatotype.PoseLandmarks{}, ErrEmptyImage
	}
	if err := ctx.Err(); err != nil {
		return somatotype.PoseLandmarks{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// The deadline may have passed while queued behind another request.
	if err := contextError(ctx); err != nil {
		return somatotype.PoseLandmarks{}, err
	}

	if c.conn == nil {
		if err := c.dialLocked(); err != nil {
			return somatotype.PoseLandmarks{}, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
		}
	}
	conn := c.conn

	c.log.Debugf("Sending image of size %d bytes to pose service", len(image))

	conn.SetWriteDeadline(c.deadline(ctx, c.writeTimeout))
	if err := conn.WriteMessage(websocket.BinaryMessage, image); err != nil {
		c.dropLocked()
		if ctxErr := contextError(ctx); ctxErr != nil {
			return somatotype.PoseLandmarks{}, ctxErr
		}
		return somatotype.PoseLandmarks{}, fmt.Errorf("%w: error sending image: %w", ErrServiceUnavailable, err)
	}

	conn.SetReadDeadline(c.deadline(ctx, c.readTimeout))
	_, message, err := conn.ReadMessage()
	if err != nil {
		c.dropLocked()
		if ctxErr := contextError(ctx); ctxErr != nil {
			return somatotype.PoseLandmarks{}, ctxErr
		}
		return somatotype.PoseLandmarks{}, fmt.Errorf("%w: error reading reply: %w", ErrServiceUnavailable, err)
	}

	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})

	var result entity.PoseDetectionResult
	if err := json.Unmarshal(message, &result); err != nil {
		return somatotype.PoseLandmarks{}, fmt.Errorf("error unmarshaling pose reply: %w", err)
	}

	c.log.Debugf("Pose service returned %d landmarks", len(result.Landmarks))

	return ToLandmarks(result)
}

// ToLandmarks converts a pose service reply to pixel-space landmarks.
func ToLandmarks(result entity.PoseDetectionResult) (somatotype.PoseLandmarks, error) {
	if len(result.Landmarks) == 0 {
		if result.Error != "" {
			return somatotype.PoseLandmarks{}, fmt.Errorf("%w: %s", ErrNoPersonDetected, result.Error)
		}
		return somatotype.PoseLandmarks{}, ErrNoPersonDetected
	}

	points := result.Landmarks
	if result.Normalized {
		if result.ImageWidth <= 0 || result.ImageHeight <= 0 {
			return somatotype.PoseLandmarks{}, errors.New("normalized landmarks without image size")
		}

		w := float64(result.ImageWidth)
		h := float64(result.ImageHeight)
		points = make(map[string]somatotype.Point, len(result.Landmarks))
		for name, p := range result.Landmarks {
			points[name] = somatotype.Point{X: p.X * w, Y: p.Y * h}
		}
	}

	return somatotype.LandmarksFromMap(points)
}
