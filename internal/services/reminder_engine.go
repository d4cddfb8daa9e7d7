package services

import (
	"sort"
	"strings"
	"time"

	"github.com/daemroni/leaflove/internal/models"
)

// UnknownPlantLabel is rendered for reminders whose plant reference is
// dangling. A missing plant must never break a reminder view.
const UnknownPlantLabel = "Unknown Plant"

var dueDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDueDate interprets a stored due date as a calendar day in the
// given location. The second return value reports whether the raw value
// was parsable; callers treat unparsable dates as "sorts last, never
// due" instead of failing.
func ParseDueDate(raw string, location *time.Location) (time.Time, bool) {
	if location == nil {
		location = time.UTC
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dueDateLayouts {
		if value, err := time.ParseInLocation(layout, trimmed, location); err == nil {
			return DateAtLocation(value, location), true
		}
	}
	return time.Time{}, false
}

// DateAtLocation truncates a timestamp to midnight of its calendar day
// in the given location.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// PendingSortedByDueDate returns the not-done reminders ordered by
// ascending calendar due date. Reminders sharing a due date keep their
// input order; unparsable due dates sort after everything else. The
// input slice is never mutated.
func PendingSortedByDueDate(reminders []models.Reminder, location *time.Location) []models.Reminder {
	pending := make([]models.Reminder, 0, len(reminders))
	for _, reminder := range reminders {
		if !reminder.IsDone {
			pending = append(pending, reminder)
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		left, leftOK := ParseDueDate(pending[i].DueDate, location)
		right, rightOK := ParseDueDate(pending[j].DueDate, location)
		if leftOK != rightOK {
			return leftOK
		}
		if !leftOK {
			return false
		}
		return left.Before(right)
	})

	return pending
}

// IsDueToday reports whether any pending reminder falls on the same
// calendar day as today. A zero today means "now". Done reminders and
// unparsable due dates never match.
func IsDueToday(reminders []models.Reminder, today time.Time, location *time.Location) bool {
	if location == nil {
		location = time.UTC
	}
	if today.IsZero() {
		today = time.Now()
	}
	todayStart := DateAtLocation(today, location)

	for _, reminder := range reminders {
		if reminder.IsDone {
			continue
		}
		due, ok := ParseDueDate(reminder.DueDate, location)
		if !ok {
			continue
		}
		if due.Equal(todayStart) {
			return true
		}
	}
	return false
}

// ResolvePlantName returns the name of the plant a reminder points at,
// or UnknownPlantLabel when the reference is dangling.
func ResolvePlantName(reminder models.Reminder, plants []models.Plant) string {
	for _, plant := range plants {
		if plant.ID == reminder.PlantID {
			return plant.Name
		}
	}
	return UnknownPlantLabel
}

// ToggleDone returns a copy of the reminder with the completion flag
// flipped. The argument is untouched, which lets callers apply the
// transform speculatively and still roll back to the original value.
func ToggleDone(reminder models.Reminder) models.Reminder {
	reminder.IsDone = !reminder.IsDone
	return reminder
}

// RemindersForPlant filters a reminder snapshot down to one plant,
// preserving input order.
func RemindersForPlant(reminders []models.Reminder, plantID string) []models.Reminder {
	matched := make([]models.Reminder, 0, len(reminders))
	for _, reminder := range reminders {
		if reminder.PlantID == plantID {
			matched = append(matched, reminder)
		}
	}
	return matched
}
