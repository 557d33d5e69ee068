package reservation

import (
	"context"
	"errors"
	"sync"

	"github.com/anri-dev/reservation-api/internal/audit"
	domain "github.com/anri-dev/reservation-api/internal/domain/reservation"
	"github.com/anri-dev/reservation-api/internal/events"
	"github.com/anri-dev/reservation-api/internal/httperr"
	"github.com/anri-dev/reservation-api/internal/models"
)

// fakeRepo implementa domain.Repository em memória, com as mesmas regras de
// conflito e de reconferência de estado da implementação gorm.
type fakeRepo struct {
	mu sync.Mutex

	services     map[uint]*models.Service
	reservations map[uint]*models.Reservation
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services: map[uint]*models.Service{
			1: {ID: 1, Name: "Konsultasi Kearsipan", Active: true},
			2: {ID: 2, Name: "Layanan Restorasi", Active: true},
		},
		reservations: map[uint]*models.Reservation{},
		nextID:       0,
	}
}

func (f *fakeRepo) GetServiceByID(_ context.Context, id uint) (*models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	svc, ok := f.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *svc
	return &cp, nil
}

func (f *fakeRepo) CreateReservation(_ context.Context, res *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	win := domain.RequestedWindow(res)
	for _, other := range f.reservations {
		if other.UserID != res.UserID {
			continue
		}
		if other.Status != string(domain.StatusPending) &&
			other.Status != string(domain.StatusApproved) {
			continue
		}
		if win.Overlaps(domain.RequestedWindow(other)) {
			return httperr.ErrBusiness("time_conflict")
		}
	}

	f.nextID++
	res.ID = f.nextID
	cp := *res
	f.reservations[res.ID] = &cp
	return nil
}

func (f *fakeRepo) SaveApproval(_ context.Context, res *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	final, ok := domain.ScheduledWindow(res)
	if !ok {
		return httperr.ErrBusiness("schedule_required")
	}

	// reconfere o pending sobre o estado persistido, como a transação gorm
	current, ok := f.reservations[res.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if err := domain.CanApprove(domain.Status(current.Status)); err != nil {
		return err
	}

	for _, other := range f.reservations {
		if other.ID == res.ID {
			continue
		}
		if other.ServiceID != res.ServiceID || other.Mode != res.Mode {
			continue
		}
		if other.Status != string(domain.StatusApproved) {
			continue
		}
		if w, ok := domain.ScheduledWindow(other); ok && final.Overlaps(w) {
			return httperr.ErrBusiness("time_conflict")
		}
	}

	cp := *res
	f.reservations[res.ID] = &cp
	return nil
}

func (f *fakeRepo) GetReservationByID(_ context.Context, id uint) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	res, ok := f.reservations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (f *fakeRepo) ListReservationsByUser(_ context.Context, userID uint) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Reservation
	for _, res := range f.reservations {
		if res.UserID == userID {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListReservations(_ context.Context, status domain.Status) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Reservation
	for _, res := range f.reservations {
		if status == "" || res.Status == string(status) {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (f *fakeRepo) SaveTransition(_ context.Context, res *models.Reservation, from domain.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, ok := f.reservations[res.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if current.Status != string(from) {
		return httperr.ErrBusiness("invalid_state")
	}

	cp := *res
	f.reservations[res.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateLetterKey(_ context.Context, id uint, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	res, ok := f.reservations[id]
	if !ok {
		return domain.ErrNotFound
	}
	res.LetterKey = &key
	return nil
}

// stored retorna o estado persistido (não o ponteiro entregue ao usecase).
func (f *fakeRepo) stored(id uint) *models.Reservation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reservations[id]
}

var _ domain.Repository = (*fakeRepo)(nil)

// --------------------------------------------------
// Repo com desistência concorrente
// --------------------------------------------------

// cancelRacingRepo desfaz o pending da reserva logo depois da leitura do
// usecase, simulando o dono cancelando entre a leitura e a escrita.
type cancelRacingRepo struct {
	*fakeRepo
}

func (r *cancelRacingRepo) GetReservationByID(ctx context.Context, id uint) (*models.Reservation, error) {
	res, err := r.fakeRepo.GetReservationByID(ctx, id)
	if err == nil {
		r.fakeRepo.stored(id).Status = string(domain.StatusCancelled)
	}
	return res, err
}

// --------------------------------------------------
// Repo com storage indisponível
// --------------------------------------------------

var errStorageDown = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

type outageRepo struct {
	*fakeRepo
}

func (r *outageRepo) GetServiceByID(context.Context, uint) (*models.Service, error) {
	return nil, errStorageDown
}

func (r *outageRepo) GetReservationByID(context.Context, uint) (*models.Reservation, error) {
	return nil, errStorageDown
}

// --------------------------------------------------
// Publisher fake
// --------------------------------------------------

type fakePublisher struct {
	published []events.ReservationDecidedEvent
}

func (f *fakePublisher) PublishReservationDecided(
	_ context.Context,
	ev events.ReservationDecidedEvent,
) error {
	f.published = append(f.published, ev)
	return nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(nil, nil)
}
