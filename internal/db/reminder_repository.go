package db

import (
	"github.com/daemroni/leaflove/internal/models"
	"gorm.io/gorm"
)

type ReminderRepository struct {
	database *gorm.DB
}

func NewReminderRepository(database *gorm.DB) *ReminderRepository {
	return &ReminderRepository{database: database}
}

func (repo *ReminderRepository) List() ([]models.Reminder, error) {
	reminders := make([]models.Reminder, 0)
	if err := repo.database.Order("due_date ASC, created_at ASC, id ASC").Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

func (repo *ReminderRepository) ListByPlant(plantID string) ([]models.Reminder, error) {
	reminders := make([]models.Reminder, 0)
	if err := repo.database.
		Where("plant_id = ?", plantID).
		Order("due_date ASC, created_at ASC, id ASC").
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

func (repo *ReminderRepository) FindByID(reminderID string) (models.Reminder, bool, error) {
	var reminder models.Reminder
	result := repo.database.Limit(1).Find(&reminder, "id = ?", reminderID)
	if result.Error != nil {
		return models.Reminder{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Reminder{}, false, nil
	}
	return reminder, true, nil
}

func (repo *ReminderRepository) Create(reminder *models.Reminder) error {
	return repo.database.Create(reminder).Error
}

func (repo *ReminderRepository) Save(reminder *models.Reminder) error {
	return repo.database.Save(reminder).Error
}

func (repo *ReminderRepository) Delete(reminderID string) error {
	return repo.database.Delete(&models.Reminder{}, "id = ?", reminderID).Error
}
