package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"talent-match/internal/domain/interaction"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

const maxViewSeconds = 6 * 60 * 60

type InteractionUsecase interface {
	TrackView(ctx context.Context, userID, jobID uuid.UUID, seconds int, source string) error
	SetPreference(ctx context.Context, userID, jobID uuid.UUID, pref interaction.Type) error
}

type Interactions struct {
	interactions repository.InteractionRepository
	jobs         repository.JobRepository
	now          func() time.Time
}

func NewInteractionUsecase(interactions repository.InteractionRepository, jobs repository.JobRepository) *Interactions {
	return &Interactions{interactions: interactions, jobs: jobs, now: time.Now}
}

func (u *Interactions) TrackView(ctx context.Context, userID, jobID uuid.UUID, seconds int, source string) error {
	if seconds < 0 {
		return ErrInvalidInput
	}
	if seconds > maxViewSeconds {
		seconds = maxViewSeconds
	}
	return u.record(ctx, interaction.Event{
		UserID:          userID,
		JobID:           jobID,
		Type:            interaction.TypeViewed,
		DurationSeconds: seconds,
		Source:          strings.TrimSpace(source),
	})
}

// SetPreference records an explicit saved, rejected or ignored signal.
func (u *Interactions) SetPreference(ctx context.Context, userID, jobID uuid.UUID, pref interaction.Type) error {
	switch pref {
	case interaction.TypeSaved, interaction.TypeRejected, interaction.TypeIgnored:
	default:
		return ErrInvalidInput
	}
	return u.record(ctx, interaction.Event{UserID: userID, JobID: jobID, Type: pref})
}

func (u *Interactions) record(ctx context.Context, evt interaction.Event) error {
	if evt.UserID == uuid.Nil {
		return ErrUnauthorized
	}
	if evt.JobID == uuid.Nil || !evt.Type.Valid() {
		return ErrInvalidInput
	}

	if u.jobs != nil {
		if _, err := u.jobs.FindByID(ctx, evt.JobID); err != nil {
			if errors.Is(err, repository.ErrJobNotFound) {
				return ErrJobNotFound
			}
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	evt.OccurredAt = u.now().UTC()
	if err := u.interactions.Upsert(ctx, evt); err != nil {
		return fmt.Errorf("%w: %v", ErrInteractionLog, err)
	}
	return nil
}
