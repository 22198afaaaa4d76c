package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProfileShape(t *testing.T) {
	testCases := []struct {
		name     string
		distance float64
		speed    float64
		peak     float64
		duration time.Duration
	}{
		{
			name:     "triangle",
			distance: 100,
			speed:    500,
			peak:     250,
			duration: 666666667,
		},
		{
			name:     "trapezoid",
			distance: 1000,
			speed:    500,
			peak:     500,
			duration: 2*750*time.Millisecond + 1175*time.Millisecond,
		},
		{
			name:     "below start speed",
			distance: 100,
			speed:    10,
			peak:     50,
			duration: 2 * time.Second,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := newProfile(tc.distance, tc.speed, DefaultStartSpeed, DefaultAccel)
			require.InDelta(t, tc.peak, p.peakSpeed, 1e-9)
			require.InDelta(t, float64(tc.duration), float64(p.duration()), float64(time.Microsecond))
			require.Equal(t, tc.distance, p.travelled(p.duration()))
			require.Equal(t, tc.distance, p.travelled(p.duration()+time.Hour))
			require.Equal(t, float64(0), p.travelled(0))
		})
	}
}

func TestProfileMonotonic(t *testing.T) {
	p := newProfile(5000, 2000, DefaultStartSpeed, DefaultAccel)
	var last float64
	for at := time.Duration(0); at <= p.duration(); at += 5 * time.Millisecond {
		s := p.travelled(at)
		require.True(t, s >= last, "travelled decreased at %v", at)
		last = s
	}
}

func TestProfileTimeAtInverse(t *testing.T) {
	for _, p := range []profile{
		newProfile(100, 500, DefaultStartSpeed, DefaultAccel),
		newProfile(100000, 500, DefaultStartSpeed, DefaultAccel),
		newProfile(300, 40, DefaultStartSpeed, DefaultAccel),
	} {
		for _, frac := range []float64{0.01, 0.1, 0.5, 0.9, 0.999} {
			s := p.distance * frac
			require.InDelta(t, s, p.travelled(p.timeAt(s)), 1e-3)
		}
		require.Equal(t, time.Duration(0), p.timeAt(0))
		require.Equal(t, p.duration(), p.timeAt(p.distance))
	}
}
