package reservation

import (
	"context"
	"testing"

	domain "github.com/anri-dev/reservation-api/internal/domain/reservation"
	"github.com/anri-dev/reservation-api/internal/httperr"
)

func TestRejectReservation(t *testing.T) {
	repo := newFakeRepo()
	pub := &fakePublisher{}
	uc := NewRejectReservation(repo, testDispatcher(), pub)

	res := seedPending(t, repo, 10, 1, "online", 9, 10)

	err := uc.Execute(context.Background(), admin, res.ID, "Jadwal tidak tersedia")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := repo.stored(res.ID)
	if got.Status != string(domain.StatusRejected) {
		t.Fatalf("status = %s, want rejected", got.Status)
	}
	if got.AdminNote == nil || *got.AdminNote != "Jadwal tidak tersedia" {
		t.Fatal("admin note must be recorded")
	}
	if got.ApprovedBy == nil || *got.ApprovedBy != admin.ID {
		t.Fatal("deciding admin must be recorded")
	}
	if got.ScheduledStartAt != nil || got.ScheduledEndAt != nil {
		t.Fatal("rejection must not set a final schedule")
	}

	if len(pub.published) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.published))
	}
	if ev := pub.published[0]; ev.Decision != string(domain.StatusRejected) || ev.AdminNote == "" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestRejectReservationRequiresNote(t *testing.T) {
	repo := newFakeRepo()
	uc := NewRejectReservation(repo, testDispatcher(), &fakePublisher{})

	res := seedPending(t, repo, 10, 1, "online", 9, 10)

	for _, note := range []string{"", "   "} {
		err := uc.Execute(context.Background(), admin, res.ID, note)
		if !httperr.IsBusiness(err, "note_required") {
			t.Fatalf("note %q: expected note_required, got %v", note, err)
		}
	}

	if got := repo.stored(res.ID); got.Status != string(domain.StatusPending) {
		t.Fatalf("status = %s, want pending", got.Status)
	}
}

func TestRejectReservationRacedByCancel(t *testing.T) {
	repo := newFakeRepo()
	res := seedPending(t, repo, 10, 1, "online", 9, 10)

	uc := NewRejectReservation(&cancelRacingRepo{repo}, testDispatcher(), &fakePublisher{})

	err := uc.Execute(context.Background(), admin, res.ID, "Jadwal tidak tersedia")
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
	if got := repo.stored(res.ID); got.Status != string(domain.StatusCancelled) {
		t.Fatalf("status = %s, want cancelled preserved", got.Status)
	}
}

func TestRejectReservationInvalidState(t *testing.T) {
	repo := newFakeRepo()
	uc := NewRejectReservation(repo, testDispatcher(), &fakePublisher{})

	res := seedApproved(t, repo, 10, 1, "online", 9, 10)
	err := uc.Execute(context.Background(), admin, res.ID, "Jadwal tidak tersedia")
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

func TestRejectReservationNotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := NewRejectReservation(repo, testDispatcher(), &fakePublisher{})

	err := uc.Execute(context.Background(), admin, 999, "Jadwal tidak tersedia")
	if !httperr.IsBusiness(err, "reservation_not_found") {
		t.Fatalf("expected reservation_not_found, got %v", err)
	}
}
