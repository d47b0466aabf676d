package controllers_fx

import (
	"go.uber.org/fx"

	"voyager/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewGenerationController),
	fx.Provide(controllers.NewPickController),
	fx.Provide(controllers.NewQuoteController),
	fx.Provide(controllers.NewPlanController),
	fx.Provide(controllers.NewShareController),
	fx.Provide(controllers.NewBookingController))
