package reservation

import (
	"context"

	domain "github.com/anri-dev/reservation-api/internal/domain/reservation"
	"github.com/anri-dev/reservation-api/internal/httperr"
	"github.com/anri-dev/reservation-api/internal/models"
)

type ListReservationsForAdmin struct {
	repo domain.Repository
}

func NewListReservationsForAdmin(repo domain.Repository) *ListReservationsForAdmin {
	return &ListReservationsForAdmin{repo: repo}
}

// Execute lista todas as reservas, com filtro opcional por status.
func (uc *ListReservationsForAdmin) Execute(
	ctx context.Context,
	status string,
) ([]models.Reservation, error) {

	if status != "" && !domain.IsValidStatus(domain.Status(status)) {
		return nil, httperr.ErrBusiness("invalid_status_filter")
	}

	return uc.repo.ListReservations(ctx, domain.Status(status))
}
