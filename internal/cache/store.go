package cache

import (
	"context"
	"io"

	"github.com/daemroni/leaflove/internal/models"
	"github.com/daemroni/leaflove/internal/services"
)

// RemoteStore is the boundary to the canonical plant and reminder
// collections. Every call is a network round-trip; failure is a plain
// error and never a partial result.
type RemoteStore interface {
	ListPlants(ctx context.Context) ([]models.Plant, error)
	ListReminders(ctx context.Context) ([]models.Reminder, error)

	CreatePlant(ctx context.Context, input services.PlantInput) (models.Plant, error)
	UpdatePlant(ctx context.Context, plantID string, patch services.PlantPatch) (models.Plant, error)
	DeletePlant(ctx context.Context, plantID string) error

	CreateReminder(ctx context.Context, input services.ReminderInput) (models.Reminder, error)
	UpdateReminder(ctx context.Context, reminderID string, patch services.ReminderPatch) (models.Reminder, error)
	DeleteReminder(ctx context.Context, reminderID string) error

	UploadImage(ctx context.Context, fileName string, content io.Reader, size int64) (string, error)
}
