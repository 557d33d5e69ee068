package models

import "time"

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	ServiceID uint    `gorm:"index" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Mode string `gorm:"size:10;not null" json:"mode"`

	Topic   string `gorm:"size:255;not null" json:"topic"`
	Details string `gorm:"type:text" json:"details"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	RequestedStartAt time.Time  `json:"requested_start_at"`
	RequestedEndAt   time.Time  `json:"requested_end_at"`
	ScheduledStartAt *time.Time `json:"scheduled_start_at"`
	ScheduledEndAt   *time.Time `json:"scheduled_end_at"`

	InstitutionName string `gorm:"size:255;not null" json:"institution_name"`
	UnitName        string `gorm:"size:255" json:"unit_name"`
	PicName         string `gorm:"size:255;not null" json:"pic_name"`
	PicPhone        string `gorm:"size:30;not null" json:"pic_phone"`
	PicPosition     string `gorm:"size:255" json:"pic_position"`

	AdminNote   *string `gorm:"type:text" json:"admin_note"`
	MeetingLink *string `gorm:"size:255" json:"meeting_link"`
	Location    *string `gorm:"size:255" json:"location"`

	LetterKey *string `gorm:"size:255" json:"letter_key"`

	ApprovedBy *uint      `json:"approved_by"`
	ApprovedAt *time.Time `json:"approved_at"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
