package matching

import "math"

// Cosine returns the cosine similarity of two vectors, or 0 when undefined.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// SimilarityScore rescales the cosine to a 0-100 percentage.
func SimilarityScore(a, b []float32) float64 {
	return ClampScore(Cosine(a, b) * 100)
}
