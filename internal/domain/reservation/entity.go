package reservation

import (
	"strings"
	"time"

	"github.com/anri-dev/reservation-api/internal/httperr"
	"github.com/anri-dev/reservation-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Approve fecha o agendamento final e move a reserva para approved.
// O intervalo final herda o solicitado quando o admin não informa ajustes.
// meeting_link só se aplica ao modo online, location só ao modo offline.
func Approve(
	res *models.Reservation,
	adminID uint,
	now time.Time,
	note *string,
	scheduledStart *time.Time,
	scheduledEnd *time.Time,
	meetingLink *string,
	location *string,
) error {

	if err := CanApprove(Status(res.Status)); err != nil {
		return err
	}

	sched := RequestedWindow(res)
	if scheduledStart != nil {
		sched.Start = *scheduledStart
	}
	if scheduledEnd != nil {
		sched.End = *scheduledEnd
	}

	if sched.Start.IsZero() || sched.End.IsZero() {
		return httperr.ErrBusiness("schedule_required")
	}
	if !sched.Valid() {
		return httperr.ErrBusiness("invalid_schedule")
	}

	res.Status = string(StatusApproved)
	res.ScheduledStartAt = &sched.Start
	res.ScheduledEndAt = &sched.End
	res.AdminNote = note

	if Mode(res.Mode) == ModeOnline {
		res.MeetingLink = meetingLink
		res.Location = nil
	} else {
		res.Location = location
		res.MeetingLink = nil
	}

	res.ApprovedBy = &adminID
	res.ApprovedAt = &now

	return nil
}

// Reject encerra a reserva com uma justificativa obrigatória.
func Reject(res *models.Reservation, adminID uint, now time.Time, note string) error {
	if err := CanReject(Status(res.Status)); err != nil {
		return err
	}

	if strings.TrimSpace(note) == "" {
		return httperr.ErrBusiness("note_required")
	}

	res.Status = string(StatusRejected)
	res.AdminNote = &note
	res.ApprovedBy = &adminID
	res.ApprovedAt = &now

	return nil
}

func Cancel(res *models.Reservation, now time.Time) error {
	if err := CanCancel(Status(res.Status)); err != nil {
		return err
	}

	res.Status = string(StatusCancelled)
	res.CancelledAt = &now
	return nil
}

func Complete(res *models.Reservation, now time.Time) error {
	if err := CanComplete(Status(res.Status)); err != nil {
		return err
	}

	res.Status = string(StatusDone)
	res.CompletedAt = &now
	return nil
}
