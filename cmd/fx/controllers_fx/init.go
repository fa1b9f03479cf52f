package controllers_fx

import (
	"go.uber.org/fx"

	"tiffin/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewCustomerController),
	fx.Provide(controllers.NewMealPlanController),
	fx.Provide(controllers.NewMembershipController),
)
