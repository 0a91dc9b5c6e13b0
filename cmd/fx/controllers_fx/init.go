package controllers_fx

import (
	"go.uber.org/fx"

	"gezi/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewSystemController))
