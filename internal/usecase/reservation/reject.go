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

type RejectReservation struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	events events.Publisher
}

func NewRejectReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	pub events.Publisher,
) *RejectReservation {
	return &RejectReservation{
		repo:   repo,
		audit:  audit,
		events: pub,
	}
}

func (uc *RejectReservation) Execute(
	ctx context.Context,
	admin domain.Principal,
	reservationID uint,
	adminNote string,
) error {

	res, err := uc.repo.GetReservationByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness("reservation_not_found")
		}
		return err
	}

	from := domain.Status(res.Status)
	now := timezone.Now()
	if err := domain.Reject(res, admin.ID, now, adminNote); err != nil {
		return err
	}

	// Só grava se a reserva ainda está no estado lido acima
	if err := uc.repo.SaveTransition(ctx, res, from); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness("reservation_not_found")
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &admin.ID,
		Action:   "reservation_rejected",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	ev := events.ReservationDecidedEvent{
		ReservationID: res.ID,
		Reference:     res.Reference,
		UserID:        res.UserID,
		ServiceID:     res.ServiceID,
		Mode:          res.Mode,
		Decision:      string(domain.StatusRejected),
		AdminNote:     adminNote,
		DecidedAt:     now.Format(time.RFC3339),
	}
	_ = uc.events.PublishReservationDecided(ctx, ev)

	return nil
}
