package models

import "time"

// Slot é uma unidade de agenda independente, não consumida pelo fluxo de
// reservas.
type Slot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID uint    `gorm:"index" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Mode string `gorm:"size:10;not null" json:"mode"`

	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`

	Status string `gorm:"size:20;default:'available'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
