package reservation

import "github.com/anri-dev/reservation-api/internal/models"

// ===============================
// Authorization Policy
// ===============================

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal é o usuário autenticado visto pelo núcleo.
type Principal struct {
	ID   uint
	Role string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanView: o dono ou um admin podem ver a reserva.
func CanView(p Principal, res *models.Reservation) bool {
	return p.IsAdmin() || res.UserID == p.ID
}

// CanCancelAs: somente o dono desiste da própria reserva.
func CanCancelAs(p Principal, res *models.Reservation) bool {
	return res.UserID == p.ID
}

// CanAttachLetter: somente o dono anexa a carta de solicitação.
func CanAttachLetter(p Principal, res *models.Reservation) bool {
	return res.UserID == p.ID
}
