package reservation

import (
	"context"
	"errors"

	"github.com/anri-dev/reservation-api/internal/audit"
	domain "github.com/anri-dev/reservation-api/internal/domain/reservation"
	"github.com/anri-dev/reservation-api/internal/httperr"
	"github.com/anri-dev/reservation-api/internal/models"
	"github.com/anri-dev/reservation-api/internal/timezone"
)

type CompleteReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteReservation {
	return &CompleteReservation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CompleteReservation) Execute(
	ctx context.Context,
	admin domain.Principal,
	reservationID uint,
) (*models.Reservation, error) {

	res, err := uc.repo.GetReservationByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("reservation_not_found")
		}
		return nil, err
	}

	from := domain.Status(res.Status)
	now := timezone.Now()
	if err := domain.Complete(res, now); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveTransition(ctx, res, from); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("reservation_not_found")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &admin.ID,
		Action:   "reservation_completed",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	return res, nil
}
