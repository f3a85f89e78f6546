package db

import "gorm.io/gorm"

type Repositories struct {
	database      *gorm.DB
	Users         *UserRepository
	CycleSettings *CycleSettingsRepository
	FoodEntries   *FoodEntryRepository
	Routines      *RoutineRepository
	Goals         *GoalRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		database:      database,
		Users:         NewUserRepository(database),
		CycleSettings: NewCycleSettingsRepository(database),
		FoodEntries:   NewFoodEntryRepository(database),
		Routines:      NewRoutineRepository(database),
		Goals:         NewGoalRepository(database),
	}
}

// InTransaction runs fn with repositories bound to a single transaction.
func (repos *Repositories) InTransaction(fn func(tx *Repositories) error) error {
	return repos.database.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
