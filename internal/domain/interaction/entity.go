package interaction

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeApplied  Type = "applied"
	TypeRejected Type = "rejected"
	TypeSaved    Type = "saved"
	TypeViewed   Type = "viewed"
	TypeIgnored  Type = "ignored"
)

func (t Type) Valid() bool {
	switch t {
	case TypeApplied, TypeRejected, TypeSaved, TypeViewed, TypeIgnored:
		return true
	default:
		return false
	}
}

// Event is unique per (UserID, JobID, Type). DurationSeconds is only meaningful for TypeViewed.
type Event struct {
	UserID          uuid.UUID
	JobID           uuid.UUID
	Type            Type
	OccurredAt      time.Time
	DurationSeconds int
	Source          string
}
