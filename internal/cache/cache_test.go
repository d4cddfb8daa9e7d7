package cache

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/daemroni/leaflove/internal/models"
	"github.com/daemroni/leaflove/internal/services"
)

var errStoreDown = errors.New("store unreachable")

// fakeStore records every call and answers from fixed state. Set fail
// to refuse all mutations.
type fakeStore struct {
	plants    []models.Plant
	reminders []models.Reminder

	fail  bool
	calls []string

	nextID int
}

func (store *fakeStore) record(name string) {
	store.calls = append(store.calls, name)
}

func (store *fakeStore) assignID() string {
	store.nextID++
	return "srv-" + strconv.Itoa(store.nextID)
}

func (store *fakeStore) ListPlants(ctx context.Context) ([]models.Plant, error) {
	store.record("ListPlants")
	if store.fail {
		return nil, errStoreDown
	}
	return append([]models.Plant{}, store.plants...), nil
}

func (store *fakeStore) ListReminders(ctx context.Context) ([]models.Reminder, error) {
	store.record("ListReminders")
	if store.fail {
		return nil, errStoreDown
	}
	return append([]models.Reminder{}, store.reminders...), nil
}

func (store *fakeStore) CreatePlant(ctx context.Context, input services.PlantInput) (models.Plant, error) {
	store.record("CreatePlant")
	if store.fail {
		return models.Plant{}, errStoreDown
	}
	plant := input.ToPlant()
	plant.ID = store.assignID()
	store.plants = append(store.plants, plant)
	return plant, nil
}

func (store *fakeStore) UpdatePlant(ctx context.Context, plantID string, patch services.PlantPatch) (models.Plant, error) {
	store.record("UpdatePlant")
	if store.fail {
		return models.Plant{}, errStoreDown
	}
	for index := range store.plants {
		if store.plants[index].ID == plantID {
			patched, err := patch.Apply(store.plants[index])
			if err != nil {
				return models.Plant{}, err
			}
			store.plants[index] = patched
			return patched, nil
		}
	}
	return models.Plant{}, errors.New("no such plant")
}

func (store *fakeStore) DeletePlant(ctx context.Context, plantID string) error {
	store.record("DeletePlant")
	if store.fail {
		return errStoreDown
	}
	return nil
}

func (store *fakeStore) CreateReminder(ctx context.Context, input services.ReminderInput) (models.Reminder, error) {
	store.record("CreateReminder")
	if store.fail {
		return models.Reminder{}, errStoreDown
	}
	reminder := input.ToReminder()
	reminder.ID = store.assignID()
	store.reminders = append(store.reminders, reminder)
	return reminder, nil
}

func (store *fakeStore) UpdateReminder(ctx context.Context, reminderID string, patch services.ReminderPatch) (models.Reminder, error) {
	store.record("UpdateReminder")
	if store.fail {
		return models.Reminder{}, errStoreDown
	}
	for index := range store.reminders {
		if store.reminders[index].ID == reminderID {
			patched, err := patch.Apply(store.reminders[index])
			if err != nil {
				return models.Reminder{}, err
			}
			store.reminders[index] = patched
			return patched, nil
		}
	}
	return models.Reminder{}, errors.New("no such reminder")
}

func (store *fakeStore) DeleteReminder(ctx context.Context, reminderID string) error {
	store.record("DeleteReminder")
	if store.fail {
		return errStoreDown
	}
	return nil
}

func (store *fakeStore) UploadImage(ctx context.Context, fileName string, content io.Reader, size int64) (string, error) {
	store.record("UploadImage")
	if store.fail {
		return "", errStoreDown
	}
	return "/uploads/" + fileName, nil
}

func seededCache(t *testing.T, store *fakeStore) *Cache {
	t.Helper()
	cache := New(store)
	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	store.calls = nil
	return cache
}

func TestToggleFavouritePersists(t *testing.T) {
	store := &fakeStore{
		plants: []models.Plant{{ID: "p1", Name: "Monstera", IsFavourite: false}},
	}
	cache := seededCache(t, store)

	if err := cache.ToggleFavourite(context.Background(), "p1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	snapshot := cache.Snapshot()
	if !snapshot.Plants[0].IsFavourite {
		t.Error("plant should be favourite after toggle")
	}
	if !store.plants[0].IsFavourite {
		t.Error("store should have been told about the toggle")
	}

	if err := cache.ToggleFavourite(context.Background(), "p1"); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if cache.Snapshot().Plants[0].IsFavourite {
		t.Error("second toggle should restore the original state")
	}
}

// snapshotObservingStore looks at the cache from inside the
// confirmation call, the way a reader on another goroutine would while
// the request is still in flight.
type snapshotObservingStore struct {
	fakeStore
	cache             *Cache
	sawOptimisticFlag bool
}

func (store *snapshotObservingStore) UpdatePlant(ctx context.Context, plantID string, patch services.PlantPatch) (models.Plant, error) {
	store.record("UpdatePlant")
	snapshot := store.cache.Snapshot()
	if index := plantIndex(snapshot.Plants, plantID); index >= 0 && snapshot.Plants[index].IsFavourite {
		store.sawOptimisticFlag = true
	}
	return models.Plant{}, errStoreDown
}

func TestToggleFavouritePublishesBeforeConfirmation(t *testing.T) {
	store := &snapshotObservingStore{}
	store.plants = []models.Plant{{ID: "p1", Name: "Monstera", IsFavourite: false}}
	cache := New(store)
	store.cache = cache
	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if err := cache.ToggleFavourite(context.Background(), "p1"); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	if !store.sawOptimisticFlag {
		t.Error("flipped flag should be visible while confirmation is pending")
	}
	if cache.Snapshot().Plants[0].IsFavourite {
		t.Error("refused toggle should be rolled back")
	}
}

func TestToggleFavouriteRollsBackOnFailure(t *testing.T) {
	store := &fakeStore{
		plants: []models.Plant{{ID: "p1", Name: "Monstera", IsFavourite: false}},
	}
	cache := seededCache(t, store)
	store.fail = true

	if err := cache.ToggleFavourite(context.Background(), "p1"); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	if cache.Snapshot().Plants[0].IsFavourite {
		t.Error("failed toggle should leave the flag unchanged")
	}
}

func TestToggleFavouriteUnknownPlant(t *testing.T) {
	cache := seededCache(t, &fakeStore{})

	err := cache.ToggleFavourite(context.Background(), "missing")
	if !errors.Is(err, ErrPlantNotFound) {
		t.Fatalf("expected ErrPlantNotFound, got %v", err)
	}
}

func TestAddReminderInvalidMakesNoStoreCall(t *testing.T) {
	store := &fakeStore{}
	cache := seededCache(t, store)

	_, err := cache.AddReminder(context.Background(), services.ReminderInput{
		PlantID:  "p1",
		TaskType: "",
		DueDate:  "2026-09-01",
	})
	if !errors.Is(err, services.ErrReminderTaskRequired) {
		t.Fatalf("expected task-required error, got %v", err)
	}
	if len(store.calls) != 0 {
		t.Errorf("invalid input should reach the store never, got calls %v", store.calls)
	}
	if len(cache.Snapshot().Reminders) != 0 {
		t.Error("invalid input should not change the snapshot")
	}
}

func TestAddReminderPublishesConfirmedRecord(t *testing.T) {
	store := &fakeStore{}
	cache := seededCache(t, store)

	confirmed, err := cache.AddReminder(context.Background(), services.ReminderInput{
		PlantID:  "p1",
		TaskType: "Watering",
		DueDate:  "2026-09-01",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if confirmed.ID == "" {
		t.Error("confirmed reminder should carry the assigned id")
	}

	snapshot := cache.Snapshot()
	if len(snapshot.Reminders) != 1 || snapshot.Reminders[0].ID != confirmed.ID {
		t.Errorf("snapshot should hold the confirmed reminder, got %+v", snapshot.Reminders)
	}
}

func TestAddReminderFailureLeavesSnapshotUntouched(t *testing.T) {
	store := &fakeStore{}
	cache := seededCache(t, store)
	store.fail = true

	_, err := cache.AddReminder(context.Background(), services.ReminderInput{
		PlantID:  "p1",
		TaskType: "Watering",
		DueDate:  "2026-09-01",
	})
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(cache.Snapshot().Reminders) != 0 {
		t.Error("nothing should be published on failed creation")
	}
}

func TestEditReminderOptimisticThenConfirmed(t *testing.T) {
	store := &fakeStore{
		reminders: []models.Reminder{{ID: "r1", PlantID: "p1", TaskType: "Watering", DueDate: "2026-09-01"}},
	}
	cache := seededCache(t, store)

	due := "2026-10-15"
	if err := cache.EditReminder(context.Background(), "r1", services.ReminderPatch{DueDate: &due}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	snapshot := cache.Snapshot()
	if snapshot.Reminders[0].DueDate != due {
		t.Errorf("due date = %q, want %q", snapshot.Reminders[0].DueDate, due)
	}
	if snapshot.Reminders[0].TaskType != "Watering" {
		t.Error("absent patch fields must stay untouched")
	}
}

func TestEditReminderRollsBackOnFailure(t *testing.T) {
	store := &fakeStore{
		reminders: []models.Reminder{{ID: "r1", PlantID: "p1", TaskType: "Watering", DueDate: "2026-09-01"}},
	}
	cache := seededCache(t, store)
	store.fail = true

	due := "2026-10-15"
	if err := cache.EditReminder(context.Background(), "r1", services.ReminderPatch{DueDate: &due}); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	if got := cache.Snapshot().Reminders[0].DueDate; got != "2026-09-01" {
		t.Errorf("due date after rollback = %q, want original", got)
	}
}

func TestDeleteReminderRestoredOnFailure(t *testing.T) {
	store := &fakeStore{
		reminders: []models.Reminder{{ID: "r1", PlantID: "p1", TaskType: "Watering", DueDate: "2026-09-01"}},
	}
	cache := seededCache(t, store)
	store.fail = true

	if err := cache.DeleteReminder(context.Background(), "r1"); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(cache.Snapshot().Reminders) != 1 {
		t.Error("failed delete should restore the reminder")
	}
}

func TestDeleteReminderRemovesOptimistically(t *testing.T) {
	store := &fakeStore{
		reminders: []models.Reminder{{ID: "r1", PlantID: "p1", TaskType: "Watering", DueDate: "2026-09-01"}},
	}
	cache := seededCache(t, store)

	if err := cache.DeleteReminder(context.Background(), "r1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(cache.Snapshot().Reminders) != 0 {
		t.Error("reminder should be gone")
	}
}

func TestMarkReminderDoneTogglesBothWays(t *testing.T) {
	store := &fakeStore{
		reminders: []models.Reminder{{ID: "r1", PlantID: "p1", TaskType: "Watering", DueDate: "2026-09-01"}},
	}
	cache := seededCache(t, store)

	if err := cache.MarkReminderDone(context.Background(), "r1"); err != nil {
		t.Fatalf("mark done: %v", err)
	}
	if !cache.Snapshot().Reminders[0].IsDone {
		t.Error("reminder should be done")
	}
	if got := cache.Snapshot().Reminders[0].DueDate; got != "2026-09-01" {
		t.Error("toggling completion must not touch the due date")
	}

	if err := cache.MarkReminderDone(context.Background(), "r1"); err != nil {
		t.Fatalf("mark pending: %v", err)
	}
	if cache.Snapshot().Reminders[0].IsDone {
		t.Error("second toggle should move the reminder back to pending")
	}
}

func TestDeletePlantRemovesItsReminders(t *testing.T) {
	store := &fakeStore{
		plants: []models.Plant{{ID: "p1", Name: "Monstera"}, {ID: "p2", Name: "Ficus"}},
		reminders: []models.Reminder{
			{ID: "r1", PlantID: "p1", TaskType: "Watering", DueDate: "2026-09-01"},
			{ID: "r2", PlantID: "p2", TaskType: "Fertilising", DueDate: "2026-09-02"},
		},
	}
	cache := seededCache(t, store)

	if err := cache.DeletePlant(context.Background(), "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	snapshot := cache.Snapshot()
	if len(snapshot.Plants) != 1 || snapshot.Plants[0].ID != "p2" {
		t.Errorf("plants after delete = %+v", snapshot.Plants)
	}
	if len(snapshot.Reminders) != 1 || snapshot.Reminders[0].ID != "r2" {
		t.Errorf("reminders of the deleted plant should vanish, got %+v", snapshot.Reminders)
	}
}

func TestDeletePlantRollsBackOnFailure(t *testing.T) {
	store := &fakeStore{
		plants:    []models.Plant{{ID: "p1", Name: "Monstera"}},
		reminders: []models.Reminder{{ID: "r1", PlantID: "p1", TaskType: "Watering", DueDate: "2026-09-01"}},
	}
	cache := seededCache(t, store)
	store.fail = true

	if err := cache.DeletePlant(context.Background(), "p1"); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	snapshot := cache.Snapshot()
	if len(snapshot.Plants) != 1 || len(snapshot.Reminders) != 1 {
		t.Error("failed delete should restore the plant and its reminders")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	store := &fakeStore{
		plants: []models.Plant{{ID: "p1", Name: "Monstera", FertiliserSeason: []string{"Spring", "Summer"}}},
	}
	cache := seededCache(t, store)

	snapshot := cache.Snapshot()
	snapshot.Plants[0].Name = "Scribbled over"
	snapshot.Plants[0].FertiliserSeason[0] = "Scribbled over"

	kept := cache.Snapshot().Plants[0]
	if kept.Name != "Monstera" {
		t.Error("mutating a returned snapshot must not reach the cache")
	}
	if kept.FertiliserSeason[0] != "Spring" {
		t.Error("nested slices of a returned snapshot must not share backing arrays with the cache")
	}
}

func TestPendingRemindersDelegatesOrdering(t *testing.T) {
	store := &fakeStore{
		reminders: []models.Reminder{
			{ID: "r1", PlantID: "p1", TaskType: "Watering", DueDate: "2026-10-01"},
			{ID: "r2", PlantID: "p1", TaskType: "Fertilising", DueDate: "2026-09-01"},
			{ID: "r3", PlantID: "p1", TaskType: "Repotting", DueDate: "2026-08-01", IsDone: true},
		},
	}
	cache := seededCache(t, store)

	pending := cache.PendingReminders(time.UTC)
	if len(pending) != 2 {
		t.Fatalf("pending count = %d, want 2", len(pending))
	}
	if pending[0].ID != "r2" || pending[1].ID != "r1" {
		t.Errorf("pending order = [%s %s], want [r2 r1]", pending[0].ID, pending[1].ID)
	}
}

func TestPlantNameForDanglingReference(t *testing.T) {
	cache := seededCache(t, &fakeStore{})

	name := cache.PlantNameFor(models.Reminder{ID: "r1", PlantID: "gone"})
	if name != services.UnknownPlantLabel {
		t.Errorf("name = %q, want %q", name, services.UnknownPlantLabel)
	}
}

func TestUploadPlantImageRefusesOversizedFile(t *testing.T) {
	store := &fakeStore{
		plants: []models.Plant{{ID: "p1", Name: "Monstera"}},
	}
	cache := seededCache(t, store)

	content := strings.NewReader("pretend image")
	err := cache.UploadPlantImage(context.Background(), "p1", "big.jpg", content, MaxImageBytes+1)
	if !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
	if len(store.calls) != 0 {
		t.Errorf("oversized upload should not reach the store, got calls %v", store.calls)
	}
}

func TestUploadPlantImagePatchesURL(t *testing.T) {
	store := &fakeStore{
		plants: []models.Plant{{ID: "p1", Name: "Monstera"}},
	}
	cache := seededCache(t, store)

	content := strings.NewReader("pretend image")
	if err := cache.UploadPlantImage(context.Background(), "p1", "leaf.jpg", content, 13); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if got := cache.Snapshot().Plants[0].ImageURL; got != "/uploads/leaf.jpg" {
		t.Errorf("image url = %q, want /uploads/leaf.jpg", got)
	}
}
