package api

import (
	"github.com/terraincognita07/wellnest/internal/db"
	"github.com/terraincognita07/wellnest/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(
		handler.repositories.Users,
		handler.i18n.DefaultLanguage(),
		handler.i18n.SupportedLanguages(),
	)
	handler.cycleService = services.NewCycleService(
		handler.repositories.CycleSettings,
		handler.i18n,
		handler.location,
		handler.log.WithField("component", "cycle"),
	)
	handler.nutritionService = services.NewNutritionService(handler.repositories.FoodEntries)
	handler.routineService = services.NewRoutineService(
		routineStores(handler.repositories),
		routineTransactor{repositories: handler.repositories},
	)
	return handler
}

func routineStores(repositories *db.Repositories) services.RoutineStores {
	return services.RoutineStores{
		Routines: repositories.Routines,
		Goals:    repositories.Goals,
		Food:     repositories.FoodEntries,
	}
}

type routineTransactor struct {
	repositories *db.Repositories
}

func (transactor routineTransactor) InTransaction(fn func(stores services.RoutineStores) error) error {
	return transactor.repositories.InTransaction(func(tx *db.Repositories) error {
		return fn(routineStores(tx))
	})
}
