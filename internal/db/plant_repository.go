package db

import (
	"github.com/daemroni/leaflove/internal/models"
	"gorm.io/gorm"
)

type PlantRepository struct {
	database *gorm.DB
}

func NewPlantRepository(database *gorm.DB) *PlantRepository {
	return &PlantRepository{database: database}
}

func (repo *PlantRepository) List() ([]models.Plant, error) {
	plants := make([]models.Plant, 0)
	if err := repo.database.Order("created_at ASC, id ASC").Find(&plants).Error; err != nil {
		return nil, err
	}
	return plants, nil
}

func (repo *PlantRepository) ListFavourites() ([]models.Plant, error) {
	plants := make([]models.Plant, 0)
	if err := repo.database.
		Where("is_favourite = ?", true).
		Order("created_at ASC, id ASC").
		Find(&plants).Error; err != nil {
		return nil, err
	}
	return plants, nil
}

func (repo *PlantRepository) FindByID(plantID string) (models.Plant, bool, error) {
	var plant models.Plant
	result := repo.database.Limit(1).Find(&plant, "id = ?", plantID)
	if result.Error != nil {
		return models.Plant{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Plant{}, false, nil
	}
	return plant, true, nil
}

func (repo *PlantRepository) Create(plant *models.Plant) error {
	return repo.database.Create(plant).Error
}

func (repo *PlantRepository) Save(plant *models.Plant) error {
	return repo.database.Save(plant).Error
}

// DeleteWithReminders removes the plant and every reminder pointing at
// it in one transaction, so the store never leaves dangling references
// behind on its own delete path.
func (repo *PlantRepository) DeleteWithReminders(plantID string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plant_id = ?", plantID).Delete(&models.Reminder{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Plant{}, "id = ?", plantID).Error
	})
}
