// Package events define os payloads publicados no broker de mensagens.
package events

import "context"

// ReservationDecidedEvent é publicado quando um admin decide uma reserva
// (aprovação ou rejeição). Carrega o suficiente para consumidores de
// notificação sem consultar o banco primário.
type ReservationDecidedEvent struct {
	ReservationID    uint   `json:"reservation_id"`
	Reference        string `json:"reference"`
	UserID           uint   `json:"user_id"`
	ServiceID        uint   `json:"service_id"`
	Mode             string `json:"mode"`
	Decision         string `json:"decision"` // approved | rejected
	ScheduledStartAt string `json:"scheduled_start_at,omitempty"`
	ScheduledEndAt   string `json:"scheduled_end_at,omitempty"`
	AdminNote        string `json:"admin_note,omitempty"`
	DecidedAt        string `json:"decided_at"`
}

// Publisher abstrai o broker para os usecases (e para os testes).
type Publisher interface {
	PublishReservationDecided(ctx context.Context, ev ReservationDecidedEvent) error
}

// NopPublisher descarta eventos. Usado quando RABBITMQ_URL não está
// configurada.
type NopPublisher struct{}

func (NopPublisher) PublishReservationDecided(context.Context, ReservationDecidedEvent) error {
	return nil
}
