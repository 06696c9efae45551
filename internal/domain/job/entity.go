package job

import (
	"strings"

	"github.com/google/uuid"
)

type Posting struct {
	ID             uuid.UUID
	Title          string
	Company        string
	Industry       string
	Description    string
	Requirements   string
	RequiredSkills []string
	RequiredYears  int
	RecruiterID    uuid.UUID
	Active         bool
}

// Text joins the fields used for embedding. A non-empty override is placed first.
func (p Posting) Text(override string) string {
	parts := make([]string, 0, 4)
	if s := strings.TrimSpace(override); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(p.Description); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(p.Requirements); s != "" {
		parts = append(parts, s)
	}
	if len(p.RequiredSkills) > 0 {
		skills := strings.TrimSpace(strings.Join(p.RequiredSkills, ", "))
		if skills != "" {
			parts = append(parts, skills)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
