package services

import (
	"errors"
	"strings"

	"github.com/daemroni/leaflove/internal/models"
)

var (
	ErrReminderPlantRequired   = errors.New("reminder plant is required")
	ErrReminderTaskRequired    = errors.New("reminder task type is required")
	ErrReminderDueDateRequired = errors.New("reminder due date is required")
	ErrReminderDueDateInvalid  = errors.New("reminder due date is invalid")
)

// ReminderInput is a new-reminder payload. Task type and due date are
// rejected here, before any store call happens.
type ReminderInput struct {
	PlantID  string `json:"plantId"`
	TaskType string `json:"taskType"`
	DueDate  string `json:"dueDate"`
}

func (input ReminderInput) Validate() error {
	if strings.TrimSpace(input.PlantID) == "" {
		return ErrReminderPlantRequired
	}
	if strings.TrimSpace(input.TaskType) == "" {
		return ErrReminderTaskRequired
	}
	dueDate := strings.TrimSpace(input.DueDate)
	if dueDate == "" {
		return ErrReminderDueDateRequired
	}
	if _, ok := ParseDueDate(dueDate, nil); !ok {
		return ErrReminderDueDateInvalid
	}
	return nil
}

// ToReminder materializes a validated input. New reminders always start
// pending; the store assigns the id.
func (input ReminderInput) ToReminder() models.Reminder {
	return models.Reminder{
		PlantID:  strings.TrimSpace(input.PlantID),
		TaskType: strings.TrimSpace(input.TaskType),
		DueDate:  strings.TrimSpace(input.DueDate),
		IsDone:   false,
	}
}

// ReminderPatch is a partial reminder update; nil fields stay unchanged.
type ReminderPatch struct {
	PlantID  *string `json:"plantId"`
	TaskType *string `json:"taskType"`
	DueDate  *string `json:"dueDate"`
	IsDone   *bool   `json:"isDone"`
}

func (patch ReminderPatch) Apply(reminder models.Reminder) (models.Reminder, error) {
	if patch.PlantID != nil {
		reminder.PlantID = strings.TrimSpace(*patch.PlantID)
	}
	if patch.TaskType != nil {
		reminder.TaskType = strings.TrimSpace(*patch.TaskType)
	}
	if patch.DueDate != nil {
		reminder.DueDate = strings.TrimSpace(*patch.DueDate)
	}
	if patch.IsDone != nil {
		reminder.IsDone = *patch.IsDone
	}

	check := ReminderInput{
		PlantID:  reminder.PlantID,
		TaskType: reminder.TaskType,
		DueDate:  reminder.DueDate,
	}
	if err := check.Validate(); err != nil {
		return models.Reminder{}, err
	}
	return reminder, nil
}
