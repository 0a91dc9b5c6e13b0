package controllers

import (
	"fmt"
	"log"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"gezi/internal/infra"
	"gezi/internal/models/response_models"
	"gezi/internal/services"
	"gezi/pkg/utils"
)

var Endpoints = []string{
	"POST /api/plan",
	"POST /api/plan/chat",
	"GET /api/test",
	"GET /api/raw-test",
	"GET /api/health",
}

type SystemController struct {
	planService services.PlanServiceInterface
	provider    string
	devMode     bool
	startedAt   time.Time
}

func NewSystemController(planService services.PlanServiceInterface, cfg *infra.Config) *SystemController {
	return &SystemController{
		planService: planService,
		provider:    cfg.Completion.Provider,
		devMode:     cfg.IsDevelopment(),
		startedAt:   cfg.StartedAt,
	}
}

// IndexHandler godoc
// @Summary Service descriptor
// @Tags System
// @Produce json
// @Success 200 {object} response_models.IndexResponse
// @Router / [get]
func (s *SystemController) IndexHandler(c *gin.Context) {
	c.JSON(http.StatusOK, response_models.IndexResponse{
		Status:    "running",
		Model:     s.planService.Model(),
		Endpoints: Endpoints,
	})
}

// HealthHandler godoc
// @Summary Liveness, memory and uptime snapshot
// @Tags System
// @Produce json
// @Success 200 {object} response_models.HealthResponse
// @Router /api/health [get]
func (s *SystemController) HealthHandler(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	uptime := time.Since(s.startedAt)
	c.JSON(http.StatusOK, response_models.HealthResponse{
		Status:        "ok",
		Model:         s.planService.Model(),
		Provider:      s.provider,
		Uptime:        utils.FormatUptime(uptime),
		UptimeSeconds: uptime.Seconds(),
		Timestamp:     utils.NowISO(),
		Memory: response_models.MemoryStats{
			AllocMB:      toMB(mem.Alloc),
			HeapInUseMB:  toMB(mem.HeapInuse),
			SysMB:        toMB(mem.Sys),
			NumGC:        mem.NumGC,
			NumGoroutine: runtime.NumGoroutine(),
		},
	})
}

// TestHandler godoc
// @Summary Round-trip to the completion provider
// @Tags System
// @Produce json
// @Success 200 {object} response_models.TestResponse
// @Failure 500 {object} response_models.TestFailureResponse
// @Router /api/test [get]
func (s *SystemController) TestHandler(c *gin.Context) {
	result, err := s.planService.TestCompletion(serviceContext(c))
	if err != nil {
		log.Printf("[%s] test completion failed: %v", c.GetString("trace_id"), err)
		c.JSON(http.StatusInternalServerError, response_models.TestFailureResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	log.Printf("[%s] test completion: %s", c.GetString("trace_id"), result.Content)
	c.JSON(http.StatusOK, response_models.TestResponse{
		Success:  true,
		Model:    s.planService.Model(),
		Response: result.Content,
		Usage:    result.Usage,
	})
}

// RawTestHandler godoc
// @Summary Unprocessed provider payload of a JSON-mode call
// @Tags System
// @Produce json
// @Success 200 {object} response_models.RawTestResponse
// @Failure 500 {object} response_models.RawTestFailureResponse
// @Router /api/raw-test [get]
func (s *SystemController) RawTestHandler(c *gin.Context) {
	result, err := s.planService.RawCompletion(serviceContext(c))
	if err != nil {
		log.Printf("[%s] raw test failed: %v", c.GetString("trace_id"), err)
		c.JSON(http.StatusInternalServerError, response_models.RawTestFailureResponse{
			Success:      false,
			Error:        err.Error(),
			ErrorDetails: response_models.ErrorDetails{Status: utils.StatusCodeOf(err)},
		})
		return
	}

	c.JSON(http.StatusOK, response_models.RawTestResponse{
		Success:     true,
		RawResponse: result.Raw,
	})
}

// NotFoundHandler answers every unmatched route.
func (s *SystemController) NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, utils.NotFoundResponse{
		Error:   "Bulunamadı",
		Message: fmt.Sprintf("%s %s bulunamadı", c.Request.Method, c.Request.URL.Path),
	})
}

// RecoveryHandler turns a panic into a 500; the detail is only exposed in development.
func (s *SystemController) RecoveryHandler(c *gin.Context, recovered any) {
	log.Printf("[%s] panic recovered: %v", c.GetString("trace_id"), recovered)

	detail := ""
	if s.devMode {
		detail = fmt.Sprint(recovered)
	}
	utils.RespondError(c, http.StatusInternalServerError, "Sunucu hatası", detail)
	c.Abort()
}

func toMB(b uint64) float64 {
	return float64(b) / 1024 / 1024
}
