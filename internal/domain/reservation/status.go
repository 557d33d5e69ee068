package reservation

import "github.com/anri-dev/reservation-api/internal/httperr"

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusDone      Status = "done"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusDone:
		return true
	}
	return false
}

// ===============================
// Mode
// ===============================

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

func IsValidMode(m Mode) bool {
	return m == ModeOnline || m == ModeOffline
}

// ===============================
// Validations
// ===============================

// CanApprove define se uma reserva pode ser aprovada
func CanApprove(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanReject define se uma reserva pode ser rejeitada
func CanReject(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel: o solicitante pode desistir enquanto a reserva ainda está ativa
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusApproved {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete: somente reservas aprovadas são concluídas
func CanComplete(current Status) error {
	if current != StatusApproved {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
