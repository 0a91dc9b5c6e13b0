package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"gezi/internal/models/request_models"
	"gezi/internal/models/response_models"
	"gezi/pkg/utils"
)

const (
	testPrompt       = `Sadece "Merhaba!" yaz.`
	rawTestSystem    = `Sadece JSON döndür: {"test": true, "message": "hello"}`
	rawTestUserInput = "Test JSON döndür"
)

type PlanServiceInterface interface {
	CreatePlan(ctx context.Context, req request_models.PlanRequest) (*response_models.Plan, error)
	RevisePlan(ctx context.Context, req request_models.ChatRequest) (*response_models.Plan, error)
	CreatePlanFromPrompt(ctx context.Context, prompt string, opts NormalizeOptions) (*response_models.Plan, error)
	TestCompletion(ctx context.Context) (*utils.CompletionResult, error)
	RawCompletion(ctx context.Context) (*utils.CompletionResult, error)
	Model() string
}

// PlanServiceConfig carries everything the service needs; nothing is read
// from globals.
type PlanServiceConfig struct {
	Client utils.CompletionClientInterface
	Retry  utils.RetryPolicy
	Now    func() time.Time
	NewID  func() string
}

type PlanService struct {
	client utils.CompletionClientInterface
	retry  utils.RetryPolicy
	now    func() time.Time
	newID  func() string
}

func NewPlanService(cfg PlanServiceConfig) PlanServiceInterface {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	return &PlanService{
		client: cfg.Client,
		retry:  cfg.Retry,
		now:    cfg.Now,
		newID:  cfg.NewID,
	}
}

func (p *PlanService) Model() string {
	return p.client.Model()
}

func (p *PlanService) CreatePlan(ctx context.Context, req request_models.PlanRequest) (*response_models.Plan, error) {
	req = req.WithDefaults()
	log.Printf("Creating plan for %s (%s h, %s, lang=%s)", req.City, formatNumber(req.Hours), req.Mobility, req.Language)

	return p.CreatePlanFromPrompt(ctx, BuildPlanPrompt(req), NormalizeOptions{
		Language: req.Language,
		Currency: req.Currency,
	})
}

func (p *PlanService) RevisePlan(ctx context.Context, req request_models.ChatRequest) (*response_models.Plan, error) {
	if !req.HasPlan() || !req.HasMessage() {
		return nil, utils.ErrInvalidChatRequest
	}

	var current map[string]any
	if err := json.Unmarshal(req.Plan, &current); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidChatRequest, err)
	}

	prompt, err := BuildRevisionPrompt(req.Plan, req.Message)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidChatRequest, err)
	}

	opts := NormalizeOptions{
		Language: stringOr(current["language"], ""),
		Currency: stringOr(current["currency"], ""),
	}
	// The model is asked to keep the id; fall back to it when it does not.
	if prevID := nonEmptyString(current["id"], ""); prevID != "" {
		opts.NewID = func() string { return prevID }
	}

	return p.CreatePlanFromPrompt(ctx, prompt, opts)
}

// CreatePlanFromPrompt runs one completion and reconciles its text into a Plan.
func (p *PlanService) CreatePlanFromPrompt(ctx context.Context, prompt string, opts NormalizeOptions) (*response_models.Plan, error) {
	result, err := utils.CompleteWithRetry(ctx, p.client, p.retry, utils.CompletionRequest{
		System:   SystemPrompt,
		User:     prompt,
		JSONMode: true,
	})
	if err != nil {
		return nil, err
	}

	raw, err := utils.ExtractJSON(result.Content)
	if err != nil {
		log.Printf("JSON extraction failed, content: %s", result.Content)
		return nil, err
	}

	if opts.Now == nil {
		opts.Now = p.now
	}
	if opts.NewID == nil {
		opts.NewID = p.newID
	}

	plan, err := NormalizePlan(raw, opts)
	if err != nil {
		log.Printf("Plan normalization failed: %v", err)
		return nil, err
	}

	log.Printf("Plan %s ready with %d stops", plan.ID, len(plan.Stops))
	return plan, nil
}

// TestCompletion is a plain round-trip used by the diagnostic endpoint.
func (p *PlanService) TestCompletion(ctx context.Context) (*utils.CompletionResult, error) {
	return p.client.Complete(ctx, utils.CompletionRequest{User: testPrompt})
}

// RawCompletion returns the unprocessed vendor payload of a JSON-mode call.
func (p *PlanService) RawCompletion(ctx context.Context) (*utils.CompletionResult, error) {
	return p.client.Complete(ctx, utils.CompletionRequest{
		System:   rawTestSystem,
		User:     rawTestUserInput,
		JSONMode: true,
	})
}
