package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/gin-gonic/gin"

	"gezi/internal/models/request_models"
	"gezi/internal/services"
	"gezi/pkg/utils"
)

type PlanController struct {
	planService services.PlanServiceInterface
}

func NewPlanController(planService services.PlanServiceInterface) *PlanController {
	return &PlanController{
		planService: planService,
	}
}

// serviceContext detaches the request context from client disconnects so an
// in-flight completion is not aborted halfway; provider timeouts still apply.
func serviceContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

// CreatePlanHandler godoc
// @Summary Create a trip plan
// @Description Build a 3-5 stop itinerary from the planning preferences
// @Tags Plan
// @Accept json
// @Produce json
// @Param request body request_models.PlanRequest false "Planning preferences (all optional)"
// @Success 200 {object} response_models.Plan
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/plan [post]
func (p *PlanController) CreatePlanHandler(c *gin.Context) {
	var req request_models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.HandleServiceError(c, fmt.Errorf("%w: %v", utils.ErrInvalidRequestBody, err), "Plan oluşturulamadı")
		return
	}

	log.Printf("[%s] POST /api/plan city=%q hours=%v interests=%v", c.GetString("trace_id"), req.City, req.Hours, req.Interests)

	plan, err := p.planService.CreatePlan(serviceContext(c), req)
	if err != nil {
		utils.HandleServiceError(c, err, "Plan oluşturulamadı")
		return
	}

	utils.RespondSuccess(c, plan)
}

// ChatPlanHandler godoc
// @Summary Revise a trip plan
// @Description Re-prompt the model with the current plan and a free-text instruction
// @Tags Plan
// @Accept json
// @Produce json
// @Param request body request_models.ChatRequest true "Current plan and message"
// @Success 200 {object} response_models.Plan
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/plan/chat [post]
func (p *PlanController) ChatPlanHandler(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.HandleServiceError(c, fmt.Errorf("%w: %v", utils.ErrInvalidRequestBody, err), "Plan güncellenemedi")
		return
	}
	if !req.HasPlan() || !req.HasMessage() {
		utils.HandleServiceError(c, utils.ErrInvalidChatRequest, "Plan güncellenemedi")
		return
	}

	log.Printf("[%s] POST /api/plan/chat message=%q", c.GetString("trace_id"), req.Message)

	plan, err := p.planService.RevisePlan(serviceContext(c), req)
	if err != nil {
		utils.HandleServiceError(c, err, "Plan güncellenemedi")
		return
	}

	utils.RespondSuccess(c, plan)
}
