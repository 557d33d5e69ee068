package reservation

import (
	"context"
	"errors"

	domain "github.com/anri-dev/reservation-api/internal/domain/reservation"
	"github.com/anri-dev/reservation-api/internal/httperr"
	"github.com/anri-dev/reservation-api/internal/models"
)

type ShowReservation struct {
	repo domain.Repository
}

func NewShowReservation(repo domain.Repository) *ShowReservation {
	return &ShowReservation{repo: repo}
}

func (uc *ShowReservation) Execute(
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

	if !domain.CanView(actor, res) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	return res, nil
}
