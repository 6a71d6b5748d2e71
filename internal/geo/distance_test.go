package geo

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lon1      float64
		lat2      float64
		lon2      float64
		want      float64
		tolerance float64
	}{
		{
			name:      "adjacent blocks in San Francisco",
			lat1:      37.7749,
			lon1:      -122.4194,
			lat2:      37.7750,
			lon2:      -122.4195,
			want:      0.013,
			tolerance: 0.01,
		},
		{
			name:      "San Francisco to New York",
			lat1:      37.7749,
			lon1:      -122.4194,
			lat2:      40.7128,
			lon2:      -74.0060,
			want:      4129,
			tolerance: 10,
		},
		{
			name:      "equator quarter turn",
			lat1:      0,
			lon1:      0,
			lat2:      0,
			lon2:      90,
			want:      10007.5,
			tolerance: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("Distance() = %v, want %v ± %v", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestDistanceIdentity(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{37.7749, -122.4194},
		{-90, 0},
		{90, 180},
		{51.5074, -0.1278},
	}

	for _, p := range points {
		if d := Distance(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("Distance(p, p) = %v for %v, want 0", d, p)
		}
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{37.7749, -122.4194, 40.7128, -74.0060},
		{-33.8688, 151.2093, 51.5074, -0.1278},
		{0, 179.9, 0, -179.9},
	}

	for _, p := range pairs {
		ab := Distance(p[0], p[1], p[2], p[3])
		ba := Distance(p[2], p[3], p[0], p[1])
		if ab != ba {
			t.Errorf("Distance not symmetric: %v vs %v for %v", ab, ba, p)
		}
	}
}

// Nearly-antipodal points can push the haversine intermediate past 1 through
// float rounding; the clamp has to keep the result a real number.
func TestDistanceAntipodal(t *testing.T) {
	tests := [][4]float64{
		{0, 0, 0, 180},
		{90, 0, -90, 0},
		{37.7749, -122.4194, -37.7749, 57.5806},
	}

	for _, p := range tests {
		d := Distance(p[0], p[1], p[2], p[3])
		if math.IsNaN(d) || math.IsInf(d, 0) {
			t.Errorf("Distance(%v) = %v, want a finite value", p, d)
		}
		// Half the Earth's circumference is the ceiling.
		if d > 20016 {
			t.Errorf("Distance(%v) = %v, exceeds half circumference", p, d)
		}
	}
}
