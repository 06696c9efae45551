package matching

import "time"

// Behavioral signal weights and sampling limits for the preference vector.
const (
	BaseWeight     = 1.0
	AppliedWeight  = 0.5
	RejectedWeight = -0.3
	SavedWeight    = 0.4
	MaxViewWeight  = 0.4

	AppliedLimit  = 20
	RejectedLimit = 10
	SavedLimit    = 10
	ViewedLimit   = 15

	MinViewSeconds     = 10
	ViewSaturationSecs = 300

	BehaviorWindow = 90 * 24 * time.Hour
)

type WeightedVector struct {
	Vector []float32
	Weight float64
}

// ViewWeight scales engagement linearly until MaxViewWeight at five minutes.
func ViewWeight(seconds int) float64 {
	w := float64(seconds) / ViewSaturationSecs
	if w > MaxViewWeight {
		return MaxViewWeight
	}
	if w < 0 {
		return 0
	}
	return w
}

// PreferenceVector averages the weighted vectors elementwise. The first entry is the base
// embedding; when it is the only one it is returned unchanged.
func PreferenceVector(base []float32, signals []WeightedVector) []float32 {
	if len(base) == 0 {
		return nil
	}
	usable := make([]WeightedVector, 0, len(signals))
	for _, s := range signals {
		if len(s.Vector) != len(base) {
			continue
		}
		usable = append(usable, s)
	}
	if len(usable) == 0 {
		return base
	}

	acc := make([]float64, len(base))
	for i, v := range base {
		acc[i] = float64(v) * BaseWeight
	}
	for _, s := range usable {
		for i, v := range s.Vector {
			acc[i] += float64(v) * s.Weight
		}
	}

	n := float64(len(usable) + 1)
	out := make([]float32, len(base))
	for i := range acc {
		out[i] = float32(acc[i] / n)
	}
	return out
}
