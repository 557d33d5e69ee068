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

type CancelReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelReservation {
	return &CancelReservation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelReservation) Execute(
	ctx context.Context,
	actor domain.Principal,
	reservationID uint,
) (*models.Reservation, error) {

	res, err := uc.repo.GetReservationByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("reservation_not_found")
		}
		return nil, err
	}

	if !domain.CanCancelAs(actor, res) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	from := domain.Status(res.Status)
	now := timezone.Now()
	if err := domain.Cancel(res, now); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveTransition(ctx, res, from); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("reservation_not_found")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "reservation_cancelled",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	return res, nil
}
