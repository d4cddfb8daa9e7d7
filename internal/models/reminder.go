package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reminder is a scheduled care task tied to one plant. The due date is
// kept as the calendar string the client submitted; interpretation
// happens in the services layer so a malformed value can never make a
// stored record unreadable.
type Reminder struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	PlantID   string    `gorm:"not null;index" json:"plantId"`
	TaskType  string    `gorm:"not null" json:"taskType"`
	DueDate   string    `gorm:"not null" json:"dueDate"`
	IsDone    bool      `gorm:"not null;default:false" json:"isDone"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (reminder *Reminder) BeforeCreate(tx *gorm.DB) error {
	if reminder.ID == "" {
		reminder.ID = uuid.NewString()
	}
	return nil
}
