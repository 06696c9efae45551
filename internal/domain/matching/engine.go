package matching

import "math"

// Profile holds the base weights of one fusion flavour.
type Profile struct {
	Name       string
	Similarity float64
	Skills     float64
	Experience float64
}

// The two profiles differ on purpose pending product confirmation; keep both.
var (
	RecommendationProfile = Profile{Name: "recommendation", Similarity: 0.6, Skills: 0.3, Experience: 0.1}
	ApplicationProfile    = Profile{Name: "application", Similarity: 0.7, Skills: 0.2, Experience: 0.1}
)

type Components struct {
	Similarity float64
	Skills     float64
	Experience float64

	HasSkills     bool
	HasExperience bool
}

type Weights struct {
	Similarity float64
	Skills     float64
	Experience float64
}

func (w Weights) Sum() float64 {
	return w.Similarity + w.Skills + w.Experience
}

type Importance struct {
	Similarity float64 `json:"similarity"`
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
}

func (i Importance) Sum() float64 {
	return i.Similarity + i.Skills + i.Experience
}

// Active zeroes the weights of components without a signal.
func (p Profile) Active(c Components) Weights {
	w := Weights{Similarity: p.Similarity, Skills: p.Skills, Experience: p.Experience}
	if !c.HasSkills {
		w.Skills = 0
	}
	if !c.HasExperience {
		w.Experience = 0
	}
	return w
}

// Fuse returns the weighted mean of the components over the active weights, clamped to [0,100].
func Fuse(c Components, w Weights) float64 {
	total := w.Sum()
	if total <= 0 {
		total = 1
	}
	score := (c.Similarity*w.Similarity + c.Skills*w.Skills + c.Experience*w.Experience) / total
	return ClampScore(score)
}

// FeatureImportance splits the fused score into per-component percentages.
// All zero when nothing contributed.
func FeatureImportance(c Components, w Weights) Importance {
	sim := c.Similarity * w.Similarity
	sk := c.Skills * w.Skills
	exp := c.Experience * w.Experience
	total := sim + sk + exp
	if total == 0 {
		return Importance{}
	}
	return Importance{
		Similarity: sim / total * 100,
		Skills:     sk / total * 100,
		Experience: exp / total * 100,
	}
}

func ClampScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// RoundWhole rounds to the nearest integer; used by the recommendation feed.
func RoundWhole(v float64) float64 {
	return math.Round(v)
}

// RoundTenth rounds to one decimal; used by application ranking.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
