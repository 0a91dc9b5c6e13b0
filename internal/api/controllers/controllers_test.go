package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"gezi/internal/infra"
	"gezi/internal/models/request_models"
	"gezi/internal/models/response_models"
	"gezi/internal/services"
	"gezi/pkg/utils"
)

type stubPlanService struct {
	plan     *response_models.Plan
	err      error
	result   *utils.CompletionResult
	calls    int
	lastPlan request_models.PlanRequest
	lastChat request_models.ChatRequest
}

func (s *stubPlanService) CreatePlan(ctx context.Context, req request_models.PlanRequest) (*response_models.Plan, error) {
	s.calls++
	s.lastPlan = req
	return s.plan, s.err
}

func (s *stubPlanService) RevisePlan(ctx context.Context, req request_models.ChatRequest) (*response_models.Plan, error) {
	s.calls++
	s.lastChat = req
	return s.plan, s.err
}

func (s *stubPlanService) CreatePlanFromPrompt(ctx context.Context, prompt string, opts services.NormalizeOptions) (*response_models.Plan, error) {
	s.calls++
	return s.plan, s.err
}

func (s *stubPlanService) TestCompletion(ctx context.Context) (*utils.CompletionResult, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubPlanService) RawCompletion(ctx context.Context) (*utils.CompletionResult, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubPlanService) Model() string { return "stub-model" }

func newTestRouter(svc *stubPlanService, appEnv string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &infra.Config{
		AppEnv:     appEnv,
		Completion: utils.CompletionConfig{Provider: "openai"},
		StartedAt:  time.Now().Add(-90 * time.Second),
	}
	planController := NewPlanController(svc)
	systemController := NewSystemController(svc, cfg)

	r := gin.New()
	r.Use(gin.CustomRecovery(systemController.RecoveryHandler))
	r.GET("/", systemController.IndexHandler)
	r.GET("/api/health", systemController.HealthHandler)
	r.GET("/api/test", systemController.TestHandler)
	r.GET("/api/raw-test", systemController.RawTestHandler)
	r.POST("/api/plan", planController.CreatePlanHandler)
	r.POST("/api/plan/chat", planController.ChatPlanHandler)
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })
	r.NoRoute(systemController.NotFoundHandler)
	return r
}

func perform(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestCreatePlanHandler(t *testing.T) {
	svc := &stubPlanService{plan: &response_models.Plan{ID: "p1", Stops: []response_models.Stop{}, Tips: []string{}}}
	r := newTestRouter(svc, "production")

	w := perform(r, http.MethodPost, "/api/plan", `{"city":"Bursa","interests":"tarih"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if body := decode(t, w); body["id"] != "p1" {
		t.Fatalf("unexpected body %v", body)
	}
	if svc.lastPlan.City != "Bursa" || len(svc.lastPlan.Interests) != 1 {
		t.Fatalf("request not bound: %+v", svc.lastPlan)
	}
}

func TestCreatePlanHandlerEmptyBody(t *testing.T) {
	svc := &stubPlanService{plan: &response_models.Plan{ID: "p1"}}
	w := perform(newTestRouter(svc, "production"), http.MethodPost, "/api/plan", "")
	if w.Code != http.StatusOK {
		t.Fatalf("empty body should use defaults, status = %d", w.Code)
	}
}

func TestCreatePlanHandlerInvalidBody(t *testing.T) {
	svc := &stubPlanService{}
	w := perform(newTestRouter(svc, "production"), http.MethodPost, "/api/plan", `{"city":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if svc.calls != 0 {
		t.Fatal("service must not be called")
	}
}

func TestCreatePlanHandlerServiceError(t *testing.T) {
	svc := &stubPlanService{err: utils.ErrNoJSON}
	w := perform(newTestRouter(svc, "production"), http.MethodPost, "/api/plan", `{}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode(t, w)
	if body["error"] != "Plan oluşturulamadı" || body["detail"] != utils.ErrNoJSON.Error() {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestChatPlanHandlerValidation(t *testing.T) {
	for _, payload := range []string{
		`{"plan":{"id":"p1"}}`,
		`{"message":"daha ucuz"}`,
		`{"plan":{"id":"p1"},"message":"   "}`,
		`{"plan":"p1","message":"x"}`,
	} {
		svc := &stubPlanService{}
		w := perform(newTestRouter(svc, "production"), http.MethodPost, "/api/plan/chat", payload)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", payload, w.Code)
		}
		if svc.calls != 0 {
			t.Errorf("%s: completion must not be attempted", payload)
		}
	}
}

func TestChatPlanHandler(t *testing.T) {
	svc := &stubPlanService{plan: &response_models.Plan{ID: "p1"}}
	w := perform(newTestRouter(svc, "production"), http.MethodPost, "/api/plan/chat", `{"plan":{"id":"p1"},"message":"daha ucuz"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if svc.lastChat.Message != "daha ucuz" {
		t.Fatalf("message not forwarded: %+v", svc.lastChat)
	}
}

func TestNotFound(t *testing.T) {
	w := perform(newTestRouter(&stubPlanService{}, "production"), http.MethodGet, "/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode(t, w)
	if body["error"] != "Bulunamadı" || body["message"] == "" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestRecoveryHidesDetailOutsideDevelopment(t *testing.T) {
	w := perform(newTestRouter(&stubPlanService{}, "production"), http.MethodGet, "/panic", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if _, ok := decode(t, w)["detail"]; ok {
		t.Fatal("detail must be hidden in production")
	}

	w = perform(newTestRouter(&stubPlanService{}, "development"), http.MethodGet, "/panic", "")
	if decode(t, w)["detail"] != "kaboom" {
		t.Fatalf("detail should be exposed in development: %s", w.Body.String())
	}
}

func TestHealthHandler(t *testing.T) {
	w := perform(newTestRouter(&stubPlanService{}, "production"), http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode(t, w)
	if body["status"] != "ok" || body["model"] != "stub-model" || body["provider"] != "openai" {
		t.Fatalf("unexpected body %v", body)
	}
	if uptime, _ := body["uptimeSeconds"].(float64); uptime < 90 {
		t.Fatalf("uptimeSeconds = %v", body["uptimeSeconds"])
	}
	if _, ok := body["memory"].(map[string]any); !ok {
		t.Fatalf("memory stats missing: %v", body)
	}
}

func TestIndexHandler(t *testing.T) {
	w := perform(newTestRouter(&stubPlanService{}, "production"), http.MethodGet, "/", "")
	body := decode(t, w)
	if body["status"] != "running" {
		t.Fatalf("unexpected body %v", body)
	}
	if endpoints, _ := body["endpoints"].([]any); len(endpoints) != len(Endpoints) {
		t.Fatalf("endpoints = %v", body["endpoints"])
	}
}

func TestTestHandler(t *testing.T) {
	svc := &stubPlanService{result: &utils.CompletionResult{Content: "Merhaba!", Usage: utils.CompletionUsage{TotalTokens: 7}}}
	w := perform(newTestRouter(svc, "production"), http.MethodGet, "/api/test", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode(t, w)
	if body["success"] != true || body["response"] != "Merhaba!" {
		t.Fatalf("unexpected body %v", body)
	}

	svc = &stubPlanService{err: errors.New("upstream down")}
	w = perform(newTestRouter(svc, "production"), http.MethodGet, "/api/test", "")
	if w.Code != http.StatusInternalServerError || decode(t, w)["success"] != false {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestRawTestHandlerReportsStatus(t *testing.T) {
	svc := &stubPlanService{err: &utils.StatusError{Code: http.StatusUnauthorized, Message: "bad key"}}
	w := perform(newTestRouter(svc, "production"), http.MethodGet, "/api/raw-test", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	details, _ := decode(t, w)["error_details"].(map[string]any)
	if details["status"] != float64(http.StatusUnauthorized) {
		t.Fatalf("unexpected error details %v", details)
	}
}
