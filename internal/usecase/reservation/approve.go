package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/anri-dev/reservation-api/internal/audit"
	domain "github.com/anri-dev/reservation-api/internal/domain/reservation"
	"github.com/anri-dev/reservation-api/internal/events"
	"github.com/anri-dev/reservation-api/internal/httperr"
	"github.com/anri-dev/reservation-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ApproveReservationInput struct {
	AdminNote *string

	ScheduledStartAt *time.Time
	ScheduledEndAt   *time.Time

	MeetingLink *string
	Location    *string
}

// ======================================================
// USE CASE
// ======================================================

type ApproveReservation struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	events events.Publisher
}

func NewApproveReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	pub events.Publisher,
) *ApproveReservation {
	return &ApproveReservation{
		repo:   repo,
		audit:  audit,
		events: pub,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ApproveReservation) Execute(
	ctx context.Context,
	admin domain.Principal,
	reservationID uint,
	in ApproveReservationInput,
) error {

	res, err := uc.repo.GetReservationByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness("reservation_not_found")
		}
		return err
	}

	now := timezone.Now()

	// Guardas de estado, defaulting da agenda final e campos por modo
	if err := domain.Approve(
		res,
		admin.ID,
		now,
		in.AdminNote,
		in.ScheduledStartAt,
		in.ScheduledEndAt,
		in.MeetingLink,
		in.Location,
	); err != nil {
		return err
	}

	// Pending reconferido e conflito com as outras reservas approved do
	// mesmo (service, mode) verificados na mesma transação da escrita
	if err := uc.repo.SaveApproval(ctx, res); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness("reservation_not_found")
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &admin.ID,
		Action:   "reservation_approved",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	ev := events.ReservationDecidedEvent{
		ReservationID: res.ID,
		Reference:     res.Reference,
		UserID:        res.UserID,
		ServiceID:     res.ServiceID,
		Mode:          res.Mode,
		Decision:      string(domain.StatusApproved),
		DecidedAt:     now.Format(time.RFC3339),
	}
	if res.ScheduledStartAt != nil {
		ev.ScheduledStartAt = res.ScheduledStartAt.Format(time.RFC3339)
	}
	if res.ScheduledEndAt != nil {
		ev.ScheduledEndAt = res.ScheduledEndAt.Format(time.RFC3339)
	}
	if res.AdminNote != nil {
		ev.AdminNote = *res.AdminNote
	}

	// best-effort: falha de publicação nunca desfaz a aprovação
	_ = uc.events.PublishReservationDecided(ctx, ev)

	return nil
}
