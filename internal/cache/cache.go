// Package cache holds the client-side snapshot of the plant and
// reminder collections and applies mutations optimistically: the local
// snapshot changes first, the store is asked to confirm, and on failure
// the snapshot is rolled back to the last canonical state.
//
// Mutations against the same record are not serialized; when two racing
// edits both confirm, the later response wins. That limitation is
// accepted in exchange for never blocking the caller on a queue.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/daemroni/leaflove/internal/models"
	"github.com/daemroni/leaflove/internal/services"
)

var (
	ErrPlantNotFound    = errors.New("plant not found in snapshot")
	ErrReminderNotFound = errors.New("reminder not found in snapshot")
)

// Snapshot is a point-in-time copy of both collections. Callers own the
// returned slices and may not reach back into the cache through them.
type Snapshot struct {
	Plants    []models.Plant
	Reminders []models.Reminder
}

type Cache struct {
	store RemoteStore

	mu       sync.RWMutex
	snapshot Snapshot
}

func New(store RemoteStore) *Cache {
	return &Cache{
		store: store,
		snapshot: Snapshot{
			Plants:    []models.Plant{},
			Reminders: []models.Reminder{},
		},
	}
}

// Snapshot returns a copy of the current state. Readers always get the
// optimistically patched view, even while a confirmation is in flight.
func (cache *Cache) Snapshot() Snapshot {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	return copySnapshot(cache.snapshot)
}

// Refresh replaces both collections with the canonical server state.
func (cache *Cache) Refresh(ctx context.Context) error {
	plants, err := cache.store.ListPlants(ctx)
	if err != nil {
		return err
	}
	reminders, err := cache.store.ListReminders(ctx)
	if err != nil {
		return err
	}

	cache.mu.Lock()
	cache.snapshot = Snapshot{Plants: plants, Reminders: reminders}
	cache.mu.Unlock()
	return nil
}

// ToggleFavourite flips the favourite flag on one plant before the
// store confirms. On failure the previous state is restored and the
// canonical plant list is re-fetched when reachable.
func (cache *Cache) ToggleFavourite(ctx context.Context, plantID string) error {
	cache.mu.Lock()
	index := plantIndex(cache.snapshot.Plants, plantID)
	if index < 0 {
		cache.mu.Unlock()
		return ErrPlantNotFound
	}
	previous := copySnapshot(cache.snapshot)
	cache.snapshot.Plants[index].IsFavourite = !cache.snapshot.Plants[index].IsFavourite
	wantFavourite := cache.snapshot.Plants[index].IsFavourite
	cache.mu.Unlock()

	confirmed, err := cache.store.UpdatePlant(ctx, plantID, services.PlantPatch{IsFavourite: &wantFavourite})
	if err != nil {
		cache.rollback(ctx, previous)
		return err
	}

	cache.replacePlant(confirmed)
	return nil
}

// AddPlant creates a plant. Creation is never optimistic: the record
// has no identity until the store assigns one, so nothing is published
// before confirmation.
func (cache *Cache) AddPlant(ctx context.Context, input services.PlantInput) (models.Plant, error) {
	if err := input.Validate(); err != nil {
		return models.Plant{}, err
	}

	confirmed, err := cache.store.CreatePlant(ctx, input)
	if err != nil {
		return models.Plant{}, err
	}

	cache.mu.Lock()
	cache.snapshot.Plants = append(cache.snapshot.Plants, confirmed)
	cache.mu.Unlock()
	return confirmed, nil
}

// EditPlant applies a partial patch optimistically; absent fields stay
// untouched.
func (cache *Cache) EditPlant(ctx context.Context, plantID string, patch services.PlantPatch) error {
	cache.mu.Lock()
	index := plantIndex(cache.snapshot.Plants, plantID)
	if index < 0 {
		cache.mu.Unlock()
		return ErrPlantNotFound
	}
	patched, err := patch.Apply(cache.snapshot.Plants[index])
	if err != nil {
		cache.mu.Unlock()
		return err
	}
	previous := copySnapshot(cache.snapshot)
	cache.snapshot.Plants[index] = patched
	cache.mu.Unlock()

	confirmed, err := cache.store.UpdatePlant(ctx, plantID, patch)
	if err != nil {
		cache.rollback(ctx, previous)
		return err
	}

	cache.replacePlant(confirmed)
	return nil
}

// DeletePlant removes the plant and its reminders from the snapshot
// immediately; both reappear if the store refuses the delete.
func (cache *Cache) DeletePlant(ctx context.Context, plantID string) error {
	cache.mu.Lock()
	index := plantIndex(cache.snapshot.Plants, plantID)
	if index < 0 {
		cache.mu.Unlock()
		return ErrPlantNotFound
	}
	previous := copySnapshot(cache.snapshot)
	cache.snapshot.Plants = append(cache.snapshot.Plants[:index], cache.snapshot.Plants[index+1:]...)
	kept := cache.snapshot.Reminders[:0:0]
	for _, reminder := range cache.snapshot.Reminders {
		if reminder.PlantID != plantID {
			kept = append(kept, reminder)
		}
	}
	cache.snapshot.Reminders = kept
	cache.mu.Unlock()

	if err := cache.store.DeletePlant(ctx, plantID); err != nil {
		cache.rollback(ctx, previous)
		return err
	}
	return nil
}

// AddReminder validates locally first; an invalid reminder causes no
// store call at all. Like AddPlant, creation publishes only the
// confirmed record.
func (cache *Cache) AddReminder(ctx context.Context, input services.ReminderInput) (models.Reminder, error) {
	if err := input.Validate(); err != nil {
		return models.Reminder{}, err
	}

	confirmed, err := cache.store.CreateReminder(ctx, input)
	if err != nil {
		return models.Reminder{}, err
	}

	cache.mu.Lock()
	cache.snapshot.Reminders = append(cache.snapshot.Reminders, confirmed)
	cache.mu.Unlock()
	return confirmed, nil
}

// EditReminder applies a partial patch to one reminder optimistically.
func (cache *Cache) EditReminder(ctx context.Context, reminderID string, patch services.ReminderPatch) error {
	cache.mu.Lock()
	index := reminderIndex(cache.snapshot.Reminders, reminderID)
	if index < 0 {
		cache.mu.Unlock()
		return ErrReminderNotFound
	}
	patched, err := patch.Apply(cache.snapshot.Reminders[index])
	if err != nil {
		cache.mu.Unlock()
		return err
	}
	previous := copySnapshot(cache.snapshot)
	cache.snapshot.Reminders[index] = patched
	cache.mu.Unlock()

	confirmed, err := cache.store.UpdateReminder(ctx, reminderID, patch)
	if err != nil {
		cache.rollback(ctx, previous)
		return err
	}

	cache.replaceReminder(confirmed)
	return nil
}

// MarkReminderDone flips the completion flag of one reminder. The same
// call moves a done reminder back to pending; due dates never change.
func (cache *Cache) MarkReminderDone(ctx context.Context, reminderID string) error {
	cache.mu.RLock()
	index := reminderIndex(cache.snapshot.Reminders, reminderID)
	if index < 0 {
		cache.mu.RUnlock()
		return ErrReminderNotFound
	}
	toggled := services.ToggleDone(cache.snapshot.Reminders[index])
	cache.mu.RUnlock()

	return cache.EditReminder(ctx, reminderID, services.ReminderPatch{IsDone: &toggled.IsDone})
}

// DeleteReminder removes one reminder optimistically; it reappears on
// failure.
func (cache *Cache) DeleteReminder(ctx context.Context, reminderID string) error {
	cache.mu.Lock()
	index := reminderIndex(cache.snapshot.Reminders, reminderID)
	if index < 0 {
		cache.mu.Unlock()
		return ErrReminderNotFound
	}
	previous := copySnapshot(cache.snapshot)
	cache.snapshot.Reminders = append(cache.snapshot.Reminders[:index], cache.snapshot.Reminders[index+1:]...)
	cache.mu.Unlock()

	if err := cache.store.DeleteReminder(ctx, reminderID); err != nil {
		cache.rollback(ctx, previous)
		return err
	}
	return nil
}

// PendingReminders returns the pending reminders ordered by due date.
func (cache *Cache) PendingReminders(location *time.Location) []models.Reminder {
	snapshot := cache.Snapshot()
	return services.PendingSortedByDueDate(snapshot.Reminders, location)
}

// HasReminderDueToday reports whether any pending reminder is due on
// the given day.
func (cache *Cache) HasReminderDueToday(today time.Time, location *time.Location) bool {
	snapshot := cache.Snapshot()
	return services.IsDueToday(snapshot.Reminders, today, location)
}

// PlantNameFor resolves the plant a reminder belongs to, degrading to
// the unknown-plant label for dangling references.
func (cache *Cache) PlantNameFor(reminder models.Reminder) string {
	snapshot := cache.Snapshot()
	return services.ResolvePlantName(reminder, snapshot.Plants)
}

// rollback restores the pre-mutation snapshot, then tries to replace it
// with fresh canonical state. When the store is unreachable the
// restored snapshot stands; the mutation error is reported either way.
func (cache *Cache) rollback(ctx context.Context, previous Snapshot) {
	cache.mu.Lock()
	cache.snapshot = previous
	cache.mu.Unlock()

	_ = cache.Refresh(ctx)
}

func (cache *Cache) replacePlant(confirmed models.Plant) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if index := plantIndex(cache.snapshot.Plants, confirmed.ID); index >= 0 {
		cache.snapshot.Plants[index] = confirmed
	}
}

func (cache *Cache) replaceReminder(confirmed models.Reminder) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if index := reminderIndex(cache.snapshot.Reminders, confirmed.ID); index >= 0 {
		cache.snapshot.Reminders[index] = confirmed
	}
}

func plantIndex(plants []models.Plant, plantID string) int {
	for index := range plants {
		if plants[index].ID == plantID {
			return index
		}
	}
	return -1
}

func reminderIndex(reminders []models.Reminder, reminderID string) int {
	for index := range reminders {
		if reminders[index].ID == reminderID {
			return index
		}
	}
	return -1
}

func copySnapshot(snapshot Snapshot) Snapshot {
	plants := make([]models.Plant, len(snapshot.Plants))
	copy(plants, snapshot.Plants)
	for index := range plants {
		if len(plants[index].FertiliserSeason) > 0 {
			seasons := make([]string, len(plants[index].FertiliserSeason))
			copy(seasons, plants[index].FertiliserSeason)
			plants[index].FertiliserSeason = seasons
		}
	}
	reminders := make([]models.Reminder, len(snapshot.Reminders))
	copy(reminders, snapshot.Reminders)
	return Snapshot{Plants: plants, Reminders: reminders}
}
