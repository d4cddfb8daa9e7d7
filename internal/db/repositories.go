package db

import "gorm.io/gorm"

type Repositories struct {
	Users     *UserRepository
	Plants    *PlantRepository
	Reminders *ReminderRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(database),
		Plants:    NewPlantRepository(database),
		Reminders: NewReminderRepository(database),
	}
}
