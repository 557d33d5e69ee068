package reservation

import (
	"context"
	"testing"
	"time"

	domain "github.com/anri-dev/reservation-api/internal/domain/reservation"
	"github.com/anri-dev/reservation-api/internal/httperr"
	"github.com/anri-dev/reservation-api/internal/models"
)

var admin = domain.Principal{ID: 1, Role: domain.RoleAdmin}

// seedPending grava uma reserva pending direto no repositório fake.
func seedPending(t *testing.T, repo *fakeRepo, userID, serviceID uint, mode string, startHour, endHour int) *models.Reservation {
	t.Helper()

	day := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	res := &models.Reservation{
		Reference: "ref",
		UserID:    userID,
		ServiceID: serviceID,
		Mode:      mode,
		Status:    string(domain.StatusPending),

		RequestedStartAt: day.Add(time.Duration(startHour) * time.Hour),
		RequestedEndAt:   day.Add(time.Duration(endHour) * time.Hour),
	}
	if err := repo.CreateReservation(context.Background(), res); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return res
}

// seedApproved grava uma reserva já approved com agenda final igual à solicitada.
func seedApproved(t *testing.T, repo *fakeRepo, userID, serviceID uint, mode string, startHour, endHour int) *models.Reservation {
	t.Helper()

	res := seedPending(t, repo, userID, serviceID, mode, startHour, endHour)
	stored := repo.stored(res.ID)
	stored.Status = string(domain.StatusApproved)
	start := stored.RequestedStartAt
	end := stored.RequestedEndAt
	stored.ScheduledStartAt = &start
	stored.ScheduledEndAt = &end
	return stored
}

func TestApproveReservationDefaultsSchedule(t *testing.T) {
	repo := newFakeRepo()
	pub := &fakePublisher{}
	uc := NewApproveReservation(repo, testDispatcher(), pub)

	res := seedPending(t, repo, 10, 1, "online", 9, 10)

	link := "https://meet.example.com/abc"
	err := uc.Execute(context.Background(), admin, res.ID, ApproveReservationInput{
		MeetingLink: &link,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := repo.stored(res.ID)
	if got.Status != string(domain.StatusApproved) {
		t.Fatalf("status = %s, want approved", got.Status)
	}
	if got.ScheduledStartAt == nil || !got.ScheduledStartAt.Equal(res.RequestedStartAt) {
		t.Fatal("scheduled start must default to the requested start")
	}
	if got.ScheduledEndAt == nil || !got.ScheduledEndAt.Equal(res.RequestedEndAt) {
		t.Fatal("scheduled end must default to the requested end")
	}
	if got.ApprovedBy == nil || *got.ApprovedBy != admin.ID {
		t.Fatal("approved_by must record the admin")
	}
	if got.ApprovedAt == nil {
		t.Fatal("approved_at must be set")
	}
	if got.MeetingLink == nil || *got.MeetingLink != link {
		t.Fatal("meeting link must be kept for online reservations")
	}
}

func TestApproveReservationConflict(t *testing.T) {
	repo := newFakeRepo()
	pub := &fakePublisher{}
	uc := NewApproveReservation(repo, testDispatcher(), pub)

	// 09:00–10:00 já approved para o mesmo (service, mode)
	seedApproved(t, repo, 20, 1, "online", 9, 10)

	// candidata 09:30–10:30 de outro usuário
	res := seedPending(t, repo, 10, 1, "online", 9, 10)
	stored := repo.stored(res.ID)
	stored.RequestedStartAt = stored.RequestedStartAt.Add(30 * time.Minute)
	stored.RequestedEndAt = stored.RequestedEndAt.Add(30 * time.Minute)

	err := uc.Execute(context.Background(), admin, res.ID, ApproveReservationInput{})
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("expected time_conflict, got %v", err)
	}

	// a falha não pode deixar a reserva meio aprovada
	if got := repo.stored(res.ID); got.Status != string(domain.StatusPending) {
		t.Fatalf("status after conflict = %s, want pending", got.Status)
	}
	if len(pub.published) != 0 {
		t.Fatal("no event must be published on conflict")
	}
}

func TestApproveReservationNoConflictAcrossServiceOrMode(t *testing.T) {
	repo := newFakeRepo()
	uc := NewApproveReservation(repo, testDispatcher(), &fakePublisher{})

	seedApproved(t, repo, 20, 1, "online", 9, 10)

	// mesmo horário, outro serviço
	other := seedPending(t, repo, 10, 2, "online", 9, 10)
	if err := uc.Execute(context.Background(), admin, other.ID, ApproveReservationInput{}); err != nil {
		t.Fatalf("different service must not conflict: %v", err)
	}

	// mesmo horário e serviço, outro modo
	offline := seedPending(t, repo, 11, 1, "offline", 9, 10)
	loc := "Ruang Layanan 1"
	err := uc.Execute(context.Background(), admin, offline.ID, ApproveReservationInput{Location: &loc})
	if err != nil {
		t.Fatalf("different mode must not conflict: %v", err)
	}
}

func TestApproveReservationTouchingWindows(t *testing.T) {
	repo := newFakeRepo()
	uc := NewApproveReservation(repo, testDispatcher(), &fakePublisher{})

	seedApproved(t, repo, 20, 1, "online", 9, 10)

	res := seedPending(t, repo, 10, 1, "online", 10, 11)
	if err := uc.Execute(context.Background(), admin, res.ID, ApproveReservationInput{}); err != nil {
		t.Fatalf("touching windows must not conflict: %v", err)
	}
}

func TestApproveReservationRacedByCancel(t *testing.T) {
	repo := newFakeRepo()
	pub := &fakePublisher{}
	res := seedPending(t, repo, 10, 1, "online", 9, 10)

	// o dono cancela entre a leitura do usecase e a persistência; a escrita
	// não pode ressuscitar o estado terminal
	uc := NewApproveReservation(&cancelRacingRepo{repo}, testDispatcher(), pub)

	err := uc.Execute(context.Background(), admin, res.ID, ApproveReservationInput{})
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}

	if got := repo.stored(res.ID); got.Status != string(domain.StatusCancelled) {
		t.Fatalf("status = %s, want cancelled preserved", got.Status)
	}
	if len(pub.published) != 0 {
		t.Fatal("no event must be published for a lost race")
	}
}

func TestApproveReservationInvalidState(t *testing.T) {
	repo := newFakeRepo()
	uc := NewApproveReservation(repo, testDispatcher(), &fakePublisher{})

	res := seedApproved(t, repo, 10, 1, "online", 9, 10)
	err := uc.Execute(context.Background(), admin, res.ID, ApproveReservationInput{})
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

func TestApproveReservationNotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := NewApproveReservation(repo, testDispatcher(), &fakePublisher{})

	err := uc.Execute(context.Background(), admin, 999, ApproveReservationInput{})
	if !httperr.IsBusiness(err, "reservation_not_found") {
		t.Fatalf("expected reservation_not_found, got %v", err)
	}
}

func TestApproveReservationPublishesEvent(t *testing.T) {
	repo := newFakeRepo()
	pub := &fakePublisher{}
	uc := NewApproveReservation(repo, testDispatcher(), pub)

	res := seedPending(t, repo, 10, 1, "online", 9, 10)
	if err := uc.Execute(context.Background(), admin, res.ID, ApproveReservationInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pub.published) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.published))
	}
	ev := pub.published[0]
	if ev.ReservationID != res.ID || ev.Decision != string(domain.StatusApproved) {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.ScheduledStartAt == "" || ev.ScheduledEndAt == "" {
		t.Fatal("event must carry the final schedule")
	}
}
