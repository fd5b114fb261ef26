package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Setenv("APP_ENV", "test")
	l := NewLogger()
	buf := &bytes.Buffer{}
	prev := l.Out
	l.SetOutput(buf)
	t.Cleanup(func() { l.SetOutput(prev) })
	return buf
}

func TestErrorWithTraceID_ReusesRequestID(t *testing.T) {
	buf := captureOutput(t)

	id := ErrorWithTraceID(Fields{RequestIDKey: "01HXREQ"}, "boom")

	assert.Equal(t, "01HXREQ", id)
	assert.Contains(t, buf.String(), "boom")
}

func TestErrorWithTraceID_GeneratesUUID(t *testing.T) {
	captureOutput(t)

	id := ErrorWithTraceID(nil, "boom")

	assert.Len(t, id, 36)
}

func TestWithRequestID(t *testing.T) {
	captureOutput(t)

	e := WithRequestID(context.WithValue(context.Background(), RequestIDKey, "abc"))
	assert.Equal(t, "abc", e.Data[RequestIDKey])

	e = WithRequestID(context.Background())
	assert.Equal(t, "unknown", e.Data[RequestIDKey])
}

func TestLevelFromEnv(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, levelFromEnv(""))
	assert.Equal(t, logrus.WarnLevel, levelFromEnv("warn"))
	assert.Equal(t, logrus.DebugLevel, levelFromEnv("nonsense"))
}
