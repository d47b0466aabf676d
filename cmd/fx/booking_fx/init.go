package booking_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"voyager/internal/events"
	"voyager/internal/repositories"
	"voyager/internal/services"
)

var Module = fx.Provide(
	provideBookingRepo,
	provideBookingService)

func provideBookingRepo(db *gorm.DB) repositories.BookingRepository {
	return repositories.NewBookingRepository(db)
}

func provideBookingService(
	bookings repositories.BookingRepository,
	plans repositories.SavedPlanRepository,
	documents services.TripDocumentGenerator,
	publisher events.Publisher,
	log *zap.Logger,
) services.BookingServiceInterface {
	return services.NewBookingService(bookings, plans, documents, publisher, log.Named("booking"))
}
