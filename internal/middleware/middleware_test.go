package middleware

import (
	"DietApp/pkg/utils"
	"bytes"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, cfg Config) (*fiber.App, *bytes.Buffer) {
	t.Helper()

	logs := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(logs)
	logger.SetFormatter(&logrus.JSONFormatter{})

	m := New(logger, utils.New(), cfg)

	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Use(m.NewLoggerMiddleware())
	app.Post("/limited", m.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})
	return app, logs
}

func TestRequestID(t *testing.T) {
	app, _ := newApp(t, Config{})

	resp, err := app.Test(httptest.NewRequest("POST", "/limited", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)

	assert.Len(t, string(body), 26)
	assert.Equal(t, string(body), resp.Header.Get(RequestIDKey))

	req := httptest.NewRequest("POST", "/limited", nil)
	req.Header.Set(RequestIDKey, "client-supplied")
	resp, err = app.Test(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "client-supplied", string(body))
}

func TestRateLimiter(t *testing.T) {
	app, _ := newApp(t, Config{RateLimit: 0.001, Burst: 2})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/limited", nil))
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}

	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestLoggerMasksSensitiveFields(t *testing.T) {
	app, logs := newApp(t, Config{})

	req := httptest.NewRequest("POST", "/limited",
		strings.NewReader(`{"goal":"lose weight","medical_conditions":"hipertensión"}`))
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req)
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "lose weight")
	assert.NotContains(t, logs.String(), "hipertensi")
	assert.Contains(t, logs.String(), "[SECRET]")
}

func TestSanitizeRequestBody_NonJSON(t *testing.T) {
	assert.Equal(t, "[non-JSON body]", sanitizeRequestBody("multipart/form-data; boundary=x", []byte("binary")))
	assert.Equal(t, "[non-JSON body]", sanitizeRequestBody("application/json", []byte("{oops")))
}
