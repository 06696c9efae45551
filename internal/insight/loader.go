package insight

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	domain "talent-match/internal/domain/insight"
)

const (
	colJobRole    = "job_role"
	colJobTitle   = "current_job_title"
	colSuccess    = "success_in_hiring_process"
	colUpskilling = "ai_upskilling_type"
	colIndustry   = "industry"
)

var ErrNoRoleColumns = errors.New("dataset has no role columns")

type Opener interface {
	Open(ctx context.Context, ref string) ([]byte, error)
}

// Load reads the dataset referenced by path through the opener.
func Load(ctx context.Context, src Opener, path string) (*domain.Dataset, error) {
	b, err := src.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	return ParseCSV(bytes.NewReader(b))
}

// NormalizeColumn trims, lowercases and replaces spaces with underscores.
func NormalizeColumn(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func ParseCSV(r io.Reader) (*domain.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[NormalizeColumn(h)] = i
	}

	roleIdx := make([]int, 0, 2)
	for _, c := range []string{colJobRole, colJobTitle} {
		if i, ok := cols[c]; ok {
			roleIdx = append(roleIdx, i)
		}
	}
	if len(roleIdx) == 0 {
		return nil, ErrNoRoleColumns
	}
	successIdx, hasSuccess := cols[colSuccess]
	upskillIdx, hasUpskill := cols[colUpskilling]
	industryIdx, hasIndustry := cols[colIndustry]

	ds := &domain.Dataset{HasSuccess: hasSuccess, HasUpskilling: hasUpskill}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		rec := domain.Record{}
		for _, i := range roleIdx {
			rec.Roles = append(rec.Roles, field(row, i))
		}
		if hasSuccess {
			rec.Success = parseSuccess(field(row, successIdx))
		}
		if hasUpskill {
			rec.UpskillingType = field(row, upskillIdx)
		}
		if hasIndustry {
			rec.Industry = field(row, industryIdx)
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseSuccess coerces a cell to a number; anything unparseable counts as 0.
func parseSuccess(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
