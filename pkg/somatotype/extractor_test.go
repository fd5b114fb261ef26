package somatotype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	m := Extract(frontalPose(), 0.3)

	// 100px apart at 0.3 cm/px
	assert.InDelta(t, 30.0, m.ShoulderWidthCm, 1e-9)
	assert.InDelta(t, 18.0, m.HipWidthCm, 1e-9)
	// both sides are sqrt(20^2 + 150^2) px
	assert.InDelta(t, 45.4, m.TorsoLengthCm, 1e-9)
}

func TestExtract_AveragesTorsoSides(t *testing.T) {
	lm := frontalPose()
	lm.LeftHip = Point{X: 100, Y: 350}  // 100px below left shoulder
	lm.RightHip = Point{X: 200, Y: 450} // 200px below right shoulder

	m := Extract(lm, 1)

	assert.InDelta(t, 150.0, m.TorsoLengthCm, 1e-9)
}

func TestExtract_RoundsToTwoDecimals(t *testing.T) {
	lm := frontalPose()
	lm.RightShoulder = Point{X: 101, Y: 251} // sqrt(2) px

	m := Extract(lm, 1)

	assert.Equal(t, 1.41, m.ShoulderWidthCm)
}

func TestExtract_TiesRoundToEven(t *testing.T) {
	lm := frontalPose()
	lm.RightShoulder = Point{X: 220.5, Y: 250} // 120.5px at 0.25 cm/px is 30.125cm

	m := Extract(lm, 0.25)

	assert.Equal(t, 30.12, m.ShoulderWidthCm)
}

func TestRound(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     float64
	}{
		{30.125, 2, 30.12},
		{0.375, 2, 0.38},
		{2.675, 2, 2.67},
		{2.5, 0, 2},
		{3.5, 0, 4},
		{-1.25, 1, -1.2},
		{1.41421356, 2, 1.41},
		{7.45, 1, 7.5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.v, tt.decimals), "Round(%v, %d)", tt.v, tt.decimals)
	}
}

func TestMeasure(t *testing.T) {
	t.Run("calibrates then extracts", func(t *testing.T) {
		m, scale, err := Measure(frontalPose(), 180)

		require.NoError(t, err)
		assert.InDelta(t, 0.3, float64(scale), 1e-12)
		assert.InDelta(t, 30.0, m.ShoulderWidthCm, 1e-9)
	})

	t.Run("degenerate pose yields no measurements", func(t *testing.T) {
		lm := frontalPose()
		lm.LeftHeel.Y = lm.Nose.Y
		lm.RightHeel.Y = lm.Nose.Y

		m, scale, err := Measure(lm, 180)

		assert.ErrorIs(t, err, ErrDegeneratePose)
		assert.Zero(t, scale)
		assert.Equal(t, BodyMeasurements{}, m)
	})
}
