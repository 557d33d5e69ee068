package dto

import (
	"time"

	"github.com/anri-dev/reservation-api/internal/models"
)

type AdminReservationDTO struct {
	ID        uint   `json:"id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Mode      string `json:"mode"`
	Topic     string `json:"topic"`

	UserName    string `json:"user_name"`
	ServiceName string `json:"service_name"`

	InstitutionName string `json:"institution_name"`
	PicName         string `json:"pic_name"`

	RequestedStartAt time.Time  `json:"requested_start_at"`
	RequestedEndAt   time.Time  `json:"requested_end_at"`
	ScheduledStartAt *time.Time `json:"scheduled_start_at"`
	ScheduledEndAt   *time.Time `json:"scheduled_end_at"`

	CreatedAt time.Time `json:"created_at"`
}

func NewAdminReservationDTO(res *models.Reservation) AdminReservationDTO {
	return AdminReservationDTO{
		ID:        res.ID,
		Reference: res.Reference,
		Status:    res.Status,
		Mode:      res.Mode,
		Topic:     res.Topic,

		UserName:    res.User.Name,
		ServiceName: res.Service.Name,

		InstitutionName: res.InstitutionName,
		PicName:         res.PicName,

		RequestedStartAt: res.RequestedStartAt,
		RequestedEndAt:   res.RequestedEndAt,
		ScheduledStartAt: res.ScheduledStartAt,
		ScheduledEndAt:   res.ScheduledEndAt,

		CreatedAt: res.CreatedAt,
	}
}
