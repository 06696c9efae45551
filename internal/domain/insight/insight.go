package insight

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	RoleOverlapThreshold = 0.4
	MinUpskillingSamples = 5
	MaxUpskilling        = 3
	MinUpskillingSuccess = 50.0
	minTitleTokenLength  = 3
)

type Suggestion struct {
	Skill       string  `json:"skill"`
	SuccessRate float64 `json:"success_rate"`
}

type MarketInsight struct {
	SuccessRate *float64     `json:"market_success_rate"`
	SampleSize  int          `json:"sample_size"`
	Upskilling  []Suggestion `json:"upskilling_recommendations"`
}

// Record is one dataset row reduced to the columns the lookup reads.
type Record struct {
	Roles          []string
	Industry       string
	UpskillingType string
	Success        float64
}

type Dataset struct {
	Records []Record
	// HasSuccess and HasUpskilling report whether the source carried those columns.
	HasSuccess    bool
	HasUpskilling bool
}

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// NormalizeTitle lowercases a title and keeps the tokens longer than two characters.
func NormalizeTitle(title string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, tok := range nonWord.Split(strings.ToLower(title), -1) {
		if utf8.RuneCountInString(tok) < minTitleTokenLength {
			continue
		}
		out[tok] = struct{}{}
	}
	return out
}

// TitleOverlap is the Jaccard overlap of two token sets.
func TitleOverlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union <= 0 {
		union = 1
	}
	return float64(inter) / float64(union)
}

// MatchRole returns the indexes of records whose role columns overlap the title.
func (d *Dataset) MatchRole(title string) []int {
	if d == nil {
		return nil
	}
	tokens := NormalizeTitle(title)
	if len(tokens) == 0 {
		return nil
	}
	out := make([]int, 0)
	for i, r := range d.Records {
		for _, role := range r.Roles {
			if strings.TrimSpace(role) == "" {
				continue
			}
			if TitleOverlap(tokens, NormalizeTitle(role)) >= RoleOverlapThreshold {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

// SuccessRate returns the mean hiring success of matched records as a percentage.
// A non-empty industry narrows the match when at least one record carries it.
func (d *Dataset) SuccessRate(title, industry string) (*float64, int) {
	if d == nil || !d.HasSuccess {
		return nil, 0
	}
	idx := d.MatchRole(title)
	if len(idx) == 0 {
		return nil, 0
	}

	if industry = strings.ToLower(strings.TrimSpace(industry)); industry != "" {
		narrowed := make([]int, 0, len(idx))
		for _, i := range idx {
			if strings.ToLower(strings.TrimSpace(d.Records[i].Industry)) == industry {
				narrowed = append(narrowed, i)
			}
		}
		if len(narrowed) > 0 {
			idx = narrowed
		}
	}

	sum := 0.0
	for _, i := range idx {
		sum += d.Records[i].Success
	}
	rate := sum / float64(len(idx)) * 100
	return &rate, len(idx)
}

// Upskilling ranks upskilling types among matched records by mean success.
func (d *Dataset) Upskilling(title string) []Suggestion {
	if d == nil || !d.HasSuccess || !d.HasUpskilling {
		return nil
	}
	idx := d.MatchRole(title)
	if len(idx) == 0 {
		return nil
	}

	type group struct {
		label string
		sum   float64
		count int
	}
	groups := make(map[string]*group)
	order := make([]string, 0)
	for _, i := range idx {
		label := strings.TrimSpace(d.Records[i].UpskillingType)
		if label == "" {
			continue
		}
		g, ok := groups[label]
		if !ok {
			g = &group{label: label}
			groups[label] = g
			order = append(order, label)
		}
		g.sum += d.Records[i].Success
		g.count++
	}

	ranked := make([]*group, 0, len(groups))
	for _, label := range order {
		g := groups[label]
		if g.count < MinUpskillingSamples {
			continue
		}
		ranked = append(ranked, g)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].sum/float64(ranked[i].count) > ranked[j].sum/float64(ranked[j].count)
	})
	if len(ranked) > MaxUpskilling {
		ranked = ranked[:MaxUpskilling]
	}

	out := make([]Suggestion, 0, len(ranked))
	for _, g := range ranked {
		rate := g.sum / float64(g.count) * 100
		if rate <= MinUpskillingSuccess {
			continue
		}
		out = append(out, Suggestion{Skill: g.label, SuccessRate: rate})
	}
	return out
}

// Lookup combines the success rate and upskilling suggestions. It returns nil when neither exists.
func (d *Dataset) Lookup(title, industry string) *MarketInsight {
	rate, n := d.SuccessRate(title, industry)
	recs := d.Upskilling(title)
	if rate == nil && len(recs) == 0 {
		return nil
	}
	return &MarketInsight{SuccessRate: rate, SampleSize: n, Upskilling: recs}
}
