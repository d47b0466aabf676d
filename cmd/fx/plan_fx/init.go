package plan_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"voyager/internal/config"
	"voyager/internal/events"
	"voyager/internal/repositories"
	"voyager/internal/services"
)

var Module = fx.Provide(
	provideSavedPlanRepo,
	provideSharedTripRepo,
	provideSavedPlanService,
	provideShareService)

func provideSavedPlanRepo(db *gorm.DB) repositories.SavedPlanRepository {
	return repositories.NewSavedPlanRepository(db)
}

func provideSharedTripRepo(db *gorm.DB) repositories.SharedTripRepository {
	return repositories.NewSharedTripRepository(db)
}

func provideSavedPlanService(
	plans repositories.SavedPlanRepository,
	bookings repositories.BookingRepository,
	publisher events.Publisher,
	log *zap.Logger,
) services.SavedPlanServiceInterface {
	return services.NewSavedPlanService(plans, bookings, publisher, log)
}

func provideShareService(
	cfg *config.Config,
	trips repositories.SharedTripRepository,
	plans repositories.SavedPlanRepository,
	publisher events.Publisher,
	log *zap.Logger,
) services.ShareServiceInterface {
	return services.NewShareService(trips, plans, publisher, log, cfg.App.PublicURL)
}
