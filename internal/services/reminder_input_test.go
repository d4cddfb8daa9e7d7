package services

import (
	"errors"
	"testing"

	"github.com/daemroni/leaflove/internal/models"
)

func TestReminderInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   ReminderInput
		wantErr error
	}{
		{
			name:    "valid input",
			input:   ReminderInput{PlantID: "p1", TaskType: "Water", DueDate: "2024-06-01"},
			wantErr: nil,
		},
		{
			name:    "missing plant",
			input:   ReminderInput{TaskType: "Water", DueDate: "2024-06-01"},
			wantErr: ErrReminderPlantRequired,
		},
		{
			name:    "empty task type",
			input:   ReminderInput{PlantID: "p1", TaskType: "  ", DueDate: "2024-06-01"},
			wantErr: ErrReminderTaskRequired,
		},
		{
			name:    "empty due date",
			input:   ReminderInput{PlantID: "p1", TaskType: "Water"},
			wantErr: ErrReminderDueDateRequired,
		},
		{
			name:    "unparsable due date",
			input:   ReminderInput{PlantID: "p1", TaskType: "Water", DueDate: "next tuesday"},
			wantErr: ErrReminderDueDateInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.input.Validate(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReminderInputToReminderStartsPending(t *testing.T) {
	reminder := ReminderInput{PlantID: "p1", TaskType: " Water ", DueDate: "2024-06-01"}.ToReminder()
	if reminder.IsDone {
		t.Fatal("new reminders must start pending")
	}
	if reminder.TaskType != "Water" {
		t.Fatalf("expected trimmed task type, got %q", reminder.TaskType)
	}
	if reminder.ID != "" {
		t.Fatalf("expected empty id before store assignment, got %q", reminder.ID)
	}
}

func TestReminderPatchPreservesAbsentFields(t *testing.T) {
	base := models.Reminder{ID: "r1", PlantID: "p1", TaskType: "Water", DueDate: "2024-06-01", IsDone: false}

	done := true
	patched, err := ReminderPatch{IsDone: &done}.Apply(base)
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	if !patched.IsDone {
		t.Fatal("expected done flag set")
	}
	if patched.TaskType != "Water" || patched.DueDate != "2024-06-01" || patched.PlantID != "p1" {
		t.Fatalf("absent fields changed: %#v", patched)
	}
}

func TestReminderPatchRejectsInvalidDueDate(t *testing.T) {
	base := models.Reminder{ID: "r1", PlantID: "p1", TaskType: "Water", DueDate: "2024-06-01"}

	broken := "whenever"
	if _, err := (ReminderPatch{DueDate: &broken}).Apply(base); !errors.Is(err, ErrReminderDueDateInvalid) {
		t.Fatalf("expected ErrReminderDueDateInvalid, got %v", err)
	}
}
