package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/anri-dev/reservation-api/internal/domain/reservation"
	"github.com/anri-dev/reservation-api/internal/httperr"
	"github.com/anri-dev/reservation-api/internal/models"
)

// Classes dos advisory locks transacionais. O FOR UPDATE sozinho não
// serializa duas aprovações simultâneas de reservas ainda pending: o scan de
// approved de cada transação não enxerga a linha da outra (phantom), então
// nenhuma trava nada em comum. O lock por recurso força uma de cada vez.
const (
	lockUserWindows    = 1 // janela do usuário (criação)
	lockApprovedAgenda = 2 // agenda approved de um (service, mode)
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

func advisoryLock(tx *gorm.DB, class, key int64) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(?::int, ?::int)", class, key).Error
}

func agendaLockKey(serviceID uint, mode string) int64 {
	key := int64(serviceID) * 2
	if mode == string(domain.ModeOffline) {
		key++
	}
	return key
}

// translateConcurrency mapeia falha de serialização/deadlock do Postgres para
// time_conflict: o chamador reenvia com a agenda revalidada em vez de o
// serviço tentar de novo por conta própria.
func translateConcurrency(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "40001" || pgErr.Code == "40P01" {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	return err
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *ReservationGormRepository) GetServiceByID(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Reservation (create / conflict)
// --------------------------------------------------

// CreateReservation trava a janela do usuário, verifica as reservas ativas
// dele e só insere se o intervalo solicitado não cruza nenhuma. O predicado
// de sobreposição é o do domínio, o mesmo usado na aprovação.
func (r *ReservationGormRepository) CreateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Duas criações simultâneas do mesmo usuário estão ambas pending
		// "em trânsito" e não se enxergam no scan; o lock serializa.
		if err := advisoryLock(tx, lockUserWindows, int64(res.UserID)); err != nil {
			return err
		}

		var active []models.Reservation
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "requested_start_at", "requested_end_at").
			Where(
				"user_id = ? AND status IN ?",
				res.UserID,
				[]string{string(domain.StatusPending), string(domain.StatusApproved)},
			).
			Find(&active).Error; err != nil {
			return err
		}

		windows := make([]domain.Window, 0, len(active))
		for i := range active {
			windows = append(windows, domain.RequestedWindow(&active[i]))
		}

		if domain.OverlapsAny(domain.RequestedWindow(res), windows) {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(res).Error
	})

	return translateConcurrency(err)
}

// SaveApproval trava a agenda do (service, mode), reconfere o pending da
// própria reserva sob FOR UPDATE e só persiste a aprovação se o intervalo
// final não cruza nenhuma outra reserva approved do par.
func (r *ReservationGormRepository) SaveApproval(
	ctx context.Context,
	res *models.Reservation,
) error {

	final, ok := domain.ScheduledWindow(res)
	if !ok {
		return httperr.ErrBusiness("schedule_required")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := advisoryLock(
			tx,
			lockApprovedAgenda,
			agendaLockKey(res.ServiceID, res.Mode),
		); err != nil {
			return err
		}

		// A precondição foi avaliada sobre uma leitura anterior à
		// transação; uma desistência ou rejeição no meio do caminho não
		// pode ser sobrescrita.
		var current models.Reservation
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "status").
			First(&current, res.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if err := domain.CanApprove(domain.Status(current.Status)); err != nil {
			return err
		}

		var approved []models.Reservation
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "scheduled_start_at", "scheduled_end_at").
			Where(
				"id <> ? AND service_id = ? AND mode = ? AND status = ?",
				res.ID,
				res.ServiceID,
				res.Mode,
				string(domain.StatusApproved),
			).
			Find(&approved).Error; err != nil {
			return err
		}

		windows := make([]domain.Window, 0, len(approved))
		for i := range approved {
			if w, ok := domain.ScheduledWindow(&approved[i]); ok {
				windows = append(windows, w)
			}
		}

		if domain.OverlapsAny(final, windows) {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Save(res).Error
	})

	return translateConcurrency(err)
}

// --------------------------------------------------
// Reservation (read)
// --------------------------------------------------

func (r *ReservationGormRepository) GetReservationByID(
	ctx context.Context,
	id uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("User").
		First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &res, nil
}

func (r *ReservationGormRepository) ListReservationsByUser(
	ctx context.Context,
	userID uint,
) ([]models.Reservation, error) {

	var list []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}

	return list, nil
}

func (r *ReservationGormRepository) ListReservations(
	ctx context.Context,
	status domain.Status,
) ([]models.Reservation, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Preload("User").
		Order("created_at DESC")

	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var list []models.Reservation
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}

	return list, nil
}

// --------------------------------------------------
// Reservation (state change)
// --------------------------------------------------

// SaveTransition trava a linha e só grava se a reserva ainda está no estado
// de origem visto pelo chamador. Estados terminais nunca são ressuscitados
// por uma escrita atrasada.
func (r *ReservationGormRepository) SaveTransition(
	ctx context.Context,
	res *models.Reservation,
	from domain.Status,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var current models.Reservation
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "status").
			First(&current, res.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		if current.Status != string(from) {
			return httperr.ErrBusiness("invalid_state")
		}

		return tx.Save(res).Error
	})

	return translateConcurrency(err)
}

func (r *ReservationGormRepository) UpdateLetterKey(
	ctx context.Context,
	id uint,
	key string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("letter_key", key).Error
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
