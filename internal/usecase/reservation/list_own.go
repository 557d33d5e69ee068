package reservation

import (
	"context"

	domain "github.com/anri-dev/reservation-api/internal/domain/reservation"
	"github.com/anri-dev/reservation-api/internal/models"
)

type ListOwnReservations struct {
	repo domain.Repository
}

func NewListOwnReservations(repo domain.Repository) *ListOwnReservations {
	return &ListOwnReservations{repo: repo}
}

func (uc *ListOwnReservations) Execute(
	ctx context.Context,
	actor domain.Principal,
) ([]models.Reservation, error) {
	return uc.repo.ListReservationsByUser(ctx, actor.ID)
}
