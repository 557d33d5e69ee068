package reservation

import (
	"context"
	"errors"

	"github.com/anri-dev/reservation-api/internal/models"
)

// ErrNotFound sinaliza registro inexistente, seja qual for o storage por
// trás do Repository. Erros de transporte sobem intactos para o chamador.
var ErrNotFound = errors.New("registro não encontrado")

type Repository interface {
	// -------- Service --------
	GetServiceByID(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Reservation (create / conflict) --------

	// CreateReservation insere a reserva verificando, na mesma transação e
	// sob lock da janela do usuário, conflito com as reservas
	// pending/approved dele (intervalos solicitados). Falha com
	// "time_conflict".
	CreateReservation(
		ctx context.Context,
		res *models.Reservation,
	) error

	// SaveApproval persiste a aprovação em uma transação que reconfere o
	// pending da própria reserva sob lock e, sob lock da agenda do
	// (service, mode), verifica conflito com as demais reservas approved
	// sobre os intervalos finais. Falha com "invalid_state" quando o
	// pending já caiu e "time_conflict" quando a agenda cruza outra
	// aprovação.
	SaveApproval(
		ctx context.Context,
		res *models.Reservation,
	) error

	// -------- Reservation (read) --------
	GetReservationByID(
		ctx context.Context,
		id uint,
	) (*models.Reservation, error)

	ListReservationsByUser(
		ctx context.Context,
		userID uint,
	) ([]models.Reservation, error)

	ListReservations(
		ctx context.Context,
		status Status,
	) ([]models.Reservation, error)

	// -------- Reservation (state change) --------

	// SaveTransition persiste a mudança de estado somente se a reserva
	// ainda está no estado de origem visto pelo chamador; caso contrário
	// falha com "invalid_state" sem escrever nada.
	SaveTransition(
		ctx context.Context,
		res *models.Reservation,
		from Status,
	) error

	// UpdateLetterKey grava apenas a chave da carta, sem tocar no restante
	// da linha.
	UpdateLetterKey(
		ctx context.Context,
		id uint,
		key string,
	) error
}
