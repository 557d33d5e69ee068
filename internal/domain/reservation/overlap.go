package reservation

import (
	"time"

	"github.com/anri-dev/reservation-api/internal/models"
)

// ===============================
// Overlap Detector
// ===============================

// Window é um intervalo semiaberto [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Valid() bool {
	return !w.Start.IsZero() && !w.End.IsZero() && w.End.After(w.Start)
}

// Overlaps verifica se dois intervalos semiabertos se cruzam.
// Extremos encostados (w.End == o.Start) NÃO contam como conflito,
// permitindo reservas consecutivas.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && w.End.After(o.Start)
}

// OverlapsAny verifica se w cruza algum intervalo do conjunto.
func OverlapsAny(w Window, set []Window) bool {
	for _, o := range set {
		if w.Overlaps(o) {
			return true
		}
	}
	return false
}

// RequestedWindow extrai o intervalo solicitado da reserva.
func RequestedWindow(res *models.Reservation) Window {
	return Window{Start: res.RequestedStartAt, End: res.RequestedEndAt}
}

// ScheduledWindow extrai o intervalo final, quando já definido.
func ScheduledWindow(res *models.Reservation) (Window, bool) {
	if res.ScheduledStartAt == nil || res.ScheduledEndAt == nil {
		return Window{}, false
	}
	return Window{Start: *res.ScheduledStartAt, End: *res.ScheduledEndAt}, true
}
