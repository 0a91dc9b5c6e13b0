package plan_fx

import (
	"go.uber.org/fx"

	"gezi/internal/api/controllers"
	"gezi/internal/services"
	"gezi/pkg/utils"
)

var Module = fx.Provide(
	ProvidePlanService,
	ProvidePlanController)

func ProvidePlanService(client utils.CompletionClientInterface) services.PlanServiceInterface {
	return services.NewPlanService(services.PlanServiceConfig{
		Client: client,
		Retry:  utils.DefaultRetryPolicy(),
	})
}

func ProvidePlanController(planService services.PlanServiceInterface) *controllers.PlanController {
	return controllers.NewPlanController(planService)
}
