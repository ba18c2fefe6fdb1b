package models

import "time"

type ScheduleStatus string

const (
	ScheduleRunning   ScheduleStatus = "running"
	ScheduleCancelled ScheduleStatus = "cancelled"
	ScheduleDelayed   ScheduleStatus = "delayed"
)

func (s ScheduleStatus) Valid() bool {
	switch s {
	case ScheduleRunning, ScheduleCancelled, ScheduleDelayed:
		return true
	}
	return false
}

// ScheduleOverride changes how a train runs on one journey date.
type ScheduleOverride struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	TrainID      uint           `gorm:"not null;uniqueIndex:idx_override_train_date" json:"train_id"`
	JourneyDate  time.Time      `gorm:"type:date;not null;uniqueIndex:idx_override_train_date;index" json:"journey_date"`
	Status       ScheduleStatus `gorm:"type:varchar(20);not null;default:'running'" json:"status"`
	DelayMinutes int            `gorm:"not null;default:0" json:"delay_minutes"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	Train *Train `gorm:"foreignKey:TrainID;constraint:OnDelete:CASCADE" json:"-"`
}
