package somatotype

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimator_Estimate(t *testing.T) {
	tests := []struct {
		name string
		in   Anthropometry
		want Scores
	}{
		{
			name: "heavy build",
			in:   Anthropometry{WeightKg: 90, HeightCm: 180, ShoulderWidthCm: 45, HipWidthCm: 35, TorsoLengthCm: 55},
			// bmi 27.78 -> endo 12.44, robustness 135/180*10, ip 40.17
			want: Scores{Endomorphy: 12.4, Mesomorphy: 7.5, Ectomorphy: 1.0},
		},
		{
			name: "linear build",
			in:   Anthropometry{WeightKg: 60, HeightCm: 180, ShoulderWidthCm: 40, HipWidthCm: 30, TorsoLengthCm: 60},
			want: Scores{Endomorphy: 6.0, Mesomorphy: 7.2, Ectomorphy: 5.1},
		},
		{
			name: "all floors",
			in:   Anthropometry{WeightKg: 120, HeightCm: 120},
			want: Scores{Endomorphy: 51.3, Mesomorphy: 0.5, Ectomorphy: 0.1},
		},
	}

	e := NewEstimator(DefaultMesoScale)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Estimate(tt.in)

			require.NoError(t, err)
			assert.InDelta(t, tt.want.Endomorphy, got.Endomorphy, 1e-9)
			assert.InDelta(t, tt.want.Mesomorphy, got.Mesomorphy, 1e-9)
			assert.InDelta(t, tt.want.Ectomorphy, got.Ectomorphy, 1e-9)
		})
	}
}

func TestEstimator_EndomorphyFloor(t *testing.T) {
	// bmi 10 gives 0.7*10-7 = 0
	got, err := NewEstimator(0).Estimate(Anthropometry{WeightKg: 40, HeightCm: 200})

	require.NoError(t, err)
	assert.Equal(t, 0.5, got.Endomorphy)
}

func TestEstimator_MesoScale(t *testing.T) {
	in := Anthropometry{WeightKg: 90, HeightCm: 180, ShoulderWidthCm: 45, HipWidthCm: 35, TorsoLengthCm: 55}

	assert.Equal(t, DefaultMesoScale, NewEstimator(-1).MesoScale())

	got, err := NewEstimator(20).Estimate(in)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, got.Mesomorphy, 1e-9)

	// tiny scales collapse to the floor
	got, err = EstimateWithScale(in, 0.005)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.Mesomorphy)

	_, err = EstimateWithScale(in, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEstimator_RejectsInvalidInput(t *testing.T) {
	tests := []Anthropometry{
		{WeightKg: 70, HeightCm: 0},
		{WeightKg: 0, HeightCm: 170},
		{WeightKg: -5, HeightCm: 170},
		{WeightKg: 70, HeightCm: math.NaN()},
		{WeightKg: 70, HeightCm: 170, HipWidthCm: -1},
	}

	for _, in := range tests {
		_, err := NewEstimator(DefaultMesoScale).Estimate(in)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %+v", in)
	}
}

func TestEstimator_FloorsHold(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	e := NewEstimator(DefaultMesoScale)

	for i := 0; i < 2000; i++ {
		in := Anthropometry{
			WeightKg:        1 + r.Float64()*250,
			HeightCm:        50 + r.Float64()*200,
			ShoulderWidthCm: r.Float64() * 60,
			HipWidthCm:      r.Float64() * 60,
			TorsoLengthCm:   r.Float64() * 80,
		}

		got, err := e.Estimate(in)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.Endomorphy, 0.5)
		assert.GreaterOrEqual(t, got.Mesomorphy, 0.5)
		assert.GreaterOrEqual(t, got.Ectomorphy, 0.1)
	}
}

func TestEctomorphyFromPonderalIndex(t *testing.T) {
	t.Run("flat below lower bound", func(t *testing.T) {
		assert.Equal(t, 0.1, EctomorphyFromPonderalIndex(30))
		assert.Equal(t, 0.1, EctomorphyFromPonderalIndex(38.25))
	})

	t.Run("middle regime floors near lower bound", func(t *testing.T) {
		// 0.463*38.26-17.63 is below 0.1
		assert.Equal(t, 0.1, EctomorphyFromPonderalIndex(38.26))
		assert.InDelta(t, 0.427, EctomorphyFromPonderalIndex(39), 1e-9)
	})

	t.Run("upper bound switches formula with a gap", func(t *testing.T) {
		below := EctomorphyFromPonderalIndex(math.Nextafter(40.75, 0))
		at := EctomorphyFromPonderalIndex(40.75)

		assert.InDelta(t, 0.463*40.75-17.63, below, 1e-9)
		assert.InDelta(t, 1.249, at, 1e-9)
		assert.InDelta(t, 0.01175, at-below, 1e-6)
	})

	t.Run("upper regime", func(t *testing.T) {
		assert.InDelta(t, 0.732*45-28.58, EctomorphyFromPonderalIndex(45), 1e-9)
	})
}

func TestPonderalIndexAndBMI(t *testing.T) {
	assert.InDelta(t, 40.166, PonderalIndex(90, 180), 1e-3)
	assert.InDelta(t, 27.778, BMI(90, 180), 1e-3)
}
