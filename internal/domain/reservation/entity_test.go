package reservation

import (
	"testing"
	"time"

	"github.com/anri-dev/reservation-api/internal/httperr"
	"github.com/anri-dev/reservation-api/internal/models"
)

func pendingReservation(mode Mode) *models.Reservation {
	return &models.Reservation{
		ID:               1,
		UserID:           10,
		ServiceID:        1,
		Mode:             string(mode),
		Status:           string(StatusPending),
		RequestedStartAt: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
		RequestedEndAt:   time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC),
	}
}

func strPtr(s string) *string { return &s }

func TestApproveDefaultsScheduleFromRequested(t *testing.T) {
	res := pendingReservation(ModeOnline)
	now := time.Date(2026, 1, 9, 12, 0, 0, 0, time.UTC)

	if err := Approve(res, 99, now, nil, nil, nil, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Status != string(StatusApproved) {
		t.Fatalf("status = %s, want approved", res.Status)
	}
	if res.ScheduledStartAt == nil || !res.ScheduledStartAt.Equal(res.RequestedStartAt) {
		t.Fatal("scheduled_start_at must default to requested_start_at")
	}
	if res.ScheduledEndAt == nil || !res.ScheduledEndAt.Equal(res.RequestedEndAt) {
		t.Fatal("scheduled_end_at must default to requested_end_at")
	}
	if res.MeetingLink != nil {
		t.Fatal("meeting_link must stay null when not supplied")
	}
	if res.ApprovedBy == nil || *res.ApprovedBy != 99 {
		t.Fatal("approved_by must record the admin")
	}
	if res.ApprovedAt == nil || !res.ApprovedAt.Equal(now) {
		t.Fatal("approved_at must record the decision time")
	}
}

func TestApproveOverridesSchedule(t *testing.T) {
	res := pendingReservation(ModeOnline)
	start := time.Date(2026, 1, 11, 13, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 11, 14, 0, 0, 0, time.UTC)

	if err := Approve(res, 99, time.Now(), nil, &start, &end, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.ScheduledStartAt.Equal(start) || !res.ScheduledEndAt.Equal(end) {
		t.Fatal("admin overrides must win over the requested window")
	}
}

func TestApproveModeGatesLogistics(t *testing.T) {
	link := strPtr("https://meet.example.com/abc")
	loc := strPtr("Ruang Layanan Lt. 2")

	online := pendingReservation(ModeOnline)
	if err := Approve(online, 99, time.Now(), nil, nil, nil, link, loc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if online.MeetingLink == nil || *online.MeetingLink != *link {
		t.Fatal("online approval must keep meeting_link")
	}
	if online.Location != nil {
		t.Fatal("online approval must null location")
	}

	offline := pendingReservation(ModeOffline)
	if err := Approve(offline, 99, time.Now(), nil, nil, nil, link, loc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if offline.Location == nil || *offline.Location != *loc {
		t.Fatal("offline approval must keep location")
	}
	if offline.MeetingLink != nil {
		t.Fatal("offline approval must null meeting_link")
	}
}

func TestApproveRequiresEffectiveSchedule(t *testing.T) {
	res := pendingReservation(ModeOnline)
	res.RequestedStartAt = time.Time{}
	res.RequestedEndAt = time.Time{}

	err := Approve(res, 99, time.Now(), nil, nil, nil, nil, nil)
	if !httperr.IsBusiness(err, "schedule_required") {
		t.Fatalf("expected schedule_required, got %v", err)
	}
	if res.Status != string(StatusPending) {
		t.Fatal("failed approval must not change status")
	}
}

func TestApproveRejectsInvertedSchedule(t *testing.T) {
	res := pendingReservation(ModeOnline)
	start := time.Date(2026, 1, 11, 14, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 11, 13, 0, 0, 0, time.UTC)

	err := Approve(res, 99, time.Now(), nil, &start, &end, nil, nil)
	if !httperr.IsBusiness(err, "invalid_schedule") {
		t.Fatalf("expected invalid_schedule, got %v", err)
	}
}

func TestApproveNonPending(t *testing.T) {
	res := pendingReservation(ModeOnline)
	res.Status = string(StatusApproved)

	err := Approve(res, 99, time.Now(), nil, nil, nil, nil, nil)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

func TestRejectRequiresNote(t *testing.T) {
	res := pendingReservation(ModeOnline)

	for _, note := range []string{"", "   ", "\t\n"} {
		err := Reject(res, 99, time.Now(), note)
		if !httperr.IsBusiness(err, "note_required") {
			t.Fatalf("note %q: expected note_required, got %v", note, err)
		}
	}

	if res.Status != string(StatusPending) {
		t.Fatal("failed rejection must not change status")
	}
}

func TestReject(t *testing.T) {
	res := pendingReservation(ModeOffline)
	now := time.Date(2026, 1, 9, 16, 0, 0, 0, time.UTC)

	if err := Reject(res, 42, now, "Mohon pilih jadwal lain."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Status != string(StatusRejected) {
		t.Fatalf("status = %s, want rejected", res.Status)
	}
	if res.AdminNote == nil || *res.AdminNote != "Mohon pilih jadwal lain." {
		t.Fatal("admin_note must carry the reason")
	}
	if res.ScheduledStartAt != nil || res.ScheduledEndAt != nil {
		t.Fatal("scheduled window must stay null on rejection")
	}
	if res.ApprovedBy == nil || *res.ApprovedBy != 42 {
		t.Fatal("approved_by must record the admin")
	}
}

func TestCancelAndComplete(t *testing.T) {
	now := time.Now()

	res := pendingReservation(ModeOnline)
	if err := Cancel(res, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != string(StatusCancelled) || res.CancelledAt == nil {
		t.Fatal("cancel must set status and timestamp")
	}

	res = pendingReservation(ModeOnline)
	res.Status = string(StatusApproved)
	if err := Complete(res, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != string(StatusDone) || res.CompletedAt == nil {
		t.Fatal("complete must set status and timestamp")
	}

	err := Complete(res, now)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("terminal state must not be resurrected, got %v", err)
	}
}

func TestPolicy(t *testing.T) {
	owner := Principal{ID: 10, Role: RoleUser}
	other := Principal{ID: 11, Role: RoleUser}
	admin := Principal{ID: 1, Role: RoleAdmin}

	res := pendingReservation(ModeOnline)

	if !CanView(owner, res) || !CanView(admin, res) {
		t.Fatal("owner and admin must be able to view")
	}
	if CanView(other, res) {
		t.Fatal("other users must not view")
	}

	if !CanCancelAs(owner, res) {
		t.Fatal("owner must be able to cancel")
	}
	if CanCancelAs(admin, res) || CanCancelAs(other, res) {
		t.Fatal("only the owner cancels")
	}

	if !CanAttachLetter(owner, res) || CanAttachLetter(other, res) {
		t.Fatal("only the owner attaches the letter")
	}
}
