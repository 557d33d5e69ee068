package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/anri-dev/reservation-api/internal/audit"
	domain "github.com/anri-dev/reservation-api/internal/domain/reservation"
	"github.com/anri-dev/reservation-api/internal/httperr"
	"github.com/anri-dev/reservation-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	ServiceID uint
	Mode      string

	Topic   string
	Details string

	RequestedStartAt time.Time
	RequestedEndAt   time.Time

	InstitutionName string
	UnitName        string
	PicName         string
	PicPhone        string
	PicPosition     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateReservation {
	return &CreateReservation{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReservation) Execute(
	ctx context.Context,
	actor domain.Principal,
	in CreateReservationInput,
) (*models.Reservation, error) {

	// --------------------------------------------------
	// Modo e intervalo solicitado
	// --------------------------------------------------
	if !domain.IsValidMode(domain.Mode(in.Mode)) {
		return nil, httperr.ErrBusiness("invalid_mode")
	}

	win := domain.Window{Start: in.RequestedStartAt, End: in.RequestedEndAt}
	if !win.Valid() {
		return nil, httperr.ErrBusiness("invalid_window")
	}

	// --------------------------------------------------
	// Serviço
	// --------------------------------------------------
	svc, err := uc.repo.GetServiceByID(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}

	// --------------------------------------------------
	// Criação (conflito com reservas ativas do próprio
	// usuário verificado na mesma transação)
	// --------------------------------------------------
	res := &models.Reservation{
		Reference: uuid.NewString(),
		UserID:    actor.ID,
		ServiceID: svc.ID,
		Mode:      in.Mode,
		Topic:     in.Topic,
		Details:   in.Details,
		Status:    string(domain.InitialStatus()),

		RequestedStartAt: in.RequestedStartAt,
		RequestedEndAt:   in.RequestedEndAt,

		InstitutionName: in.InstitutionName,
		UnitName:        in.UnitName,
		PicName:         in.PicName,
		PicPhone:        in.PicPhone,
		PicPosition:     in.PicPosition,
	}

	if err := uc.repo.CreateReservation(ctx, res); err != nil {
		return nil, err
	}

	res.Service = *svc

	// --------------------------------------------------
	// Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "reservation_created",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	return res, nil
}
