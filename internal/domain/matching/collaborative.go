package matching

const (
	MaxCollaborativeBoost = 10.0
	CollaborativeSample   = 50
)

// CollaborativeBoost averages the Jaccard similarity between the candidate and the other
// applicants of a job and scales it to at most maxBoost points. Applicants without skills
// are ignored.
func CollaborativeBoost(candidateSkills []string, others [][]string, maxBoost float64) float64 {
	if len(candidateSkills) == 0 || len(others) == 0 {
		return 0
	}
	sum := 0.0
	n := 0
	for _, o := range others {
		if len(o) == 0 {
			continue
		}
		sum += Jaccard(candidateSkills, o)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n) * maxBoost
}

// ApplyBoost adds the boost to a similarity score, capped at 100.
func ApplyBoost(similarity, boost float64) float64 {
	v := similarity + boost
	if v > 100 {
		return 100
	}
	return v
}
