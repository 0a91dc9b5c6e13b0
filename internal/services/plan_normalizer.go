package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"gezi/internal/models/request_models"
	"gezi/internal/models/response_models"
	"gezi/pkg/utils"
)

const (
	defaultCrowd      = "orta"
	defaultDuration   = 60
	defaultPriceLevel = 1
	maxDuration       = 7 * 24 * 60
	maxRatingCount    = math.MaxInt32
)

var crowdLevels = map[string]string{
	"az":       "az",
	"low":      "az",
	"orta":     "orta",
	"medium":   "orta",
	"moderate": "orta",
	"yoğun":    "yoğun",
	"yogun":    "yoğun",
	"high":     "yoğun",
	"busy":     "yoğun",
}

// NormalizeOptions supplies request-level fallbacks and the sources of fresh
// ids and timestamps. The zero value is usable.
type NormalizeOptions struct {
	Language string
	Currency string
	Now      func() time.Time
	NewID    func() string
}

// NormalizePlan turns an arbitrary decoded JSON value into a complete Plan.
// It fails only when raw is not an object. Applying it to its own JSON output
// yields the same Plan.
func NormalizePlan(raw any, opts NormalizeOptions) (*response_models.Plan, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", utils.ErrMalformedPlan, describeJSONType(raw))
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	plan := &response_models.Plan{
		ID:                 nonEmptyString(obj["id"], ""),
		CreatedAt:          nonEmptyString(obj["createdAt"], ""),
		Summary:            stringOr(obj["summary"], ""),
		EstimatedTotalCost: nonNegative(obj["estimatedTotalCost"], 0),
		Currency:           nonEmptyString(obj["currency"], ""),
		Language:           languageOf(obj["language"], opts.Language),
	}
	if plan.ID == "" {
		plan.ID = newID()
	}
	if plan.CreatedAt == "" {
		plan.CreatedAt = utils.FormatISO(now())
	}
	if plan.Currency == "" {
		plan.Currency = strings.ToUpper(nonEmptyString(opts.Currency, request_models.DefaultCurrency))
	}

	rawStops, _ := obj["stops"].([]any)
	plan.Stops = make([]response_models.Stop, 0, len(rawStops))
	for i, rs := range rawStops {
		plan.Stops = append(plan.Stops, normalizeStop(rs, i, plan.Language))
	}

	rawTips, _ := obj["tips"].([]any)
	plan.Tips = make([]string, 0, len(rawTips))
	for _, t := range rawTips {
		if s, ok := t.(string); ok && strings.TrimSpace(s) != "" {
			plan.Tips = append(plan.Tips, s)
		}
	}

	return plan, nil
}

func normalizeStop(raw any, index int, lang string) response_models.Stop {
	obj, ok := raw.(map[string]any)
	if !ok {
		obj = map[string]any{}
	}

	stop := response_models.Stop{
		TimeRange:     stringOr(obj["timeRange"], ""),
		PlaceName:     nonEmptyString(obj["placeName"], stopLabel(index, lang)),
		Address:       stringOr(obj["address"], ""),
		Description:   stringOr(obj["description"], ""),
		Reason:        stringOr(obj["reason"], ""),
		EstimatedCost: nonNegative(obj["estimatedCost"], 0),
		Crowd:         crowdOf(obj["crowd"]),
		Transport:     stringOr(obj["transport"], ""),
		Lat:           coordinate(obj["lat"], 90),
		Lng:           coordinate(obj["lng"], 180),
		Rating:        0,
		RatingCount:   0,
		PriceLevel:    defaultPriceLevel,
		Category:      stringOr(obj["category"], ""),
		Duration:      defaultDuration,
	}

	if v, ok := finite(obj["rating"]); ok && v >= 0 && v <= 5 {
		stop.Rating = v
	}
	if v, ok := finite(obj["ratingCount"]); ok && v >= 0 && v <= maxRatingCount {
		stop.RatingCount = int(math.Round(v))
	}
	if v, ok := finite(obj["priceLevel"]); ok && v >= 1 && v <= 4 {
		stop.PriceLevel = int(math.Round(v))
	}
	if v, ok := finite(obj["duration"]); ok && v > 0 && v <= maxDuration {
		if d := int(math.Round(v)); d >= 1 {
			stop.Duration = d
		}
	}

	return stop
}

func stopLabel(index int, lang string) string {
	if lang == "en" {
		return fmt.Sprintf("Stop %d", index+1)
	}
	return fmt.Sprintf("Durak %d", index+1)
}

// coordinate keeps finite, in-range, non-zero values. Zero is the usual
// placeholder a model emits when it does not know the location.
func coordinate(raw any, limit float64) *float64 {
	v, ok := finite(raw)
	if !ok || v == 0 || v < -limit || v > limit {
		return nil
	}
	return &v
}

func crowdOf(raw any) string {
	s, ok := raw.(string)
	if !ok {
		return defaultCrowd
	}
	if level, ok := crowdLevels[strings.ToLower(strings.TrimSpace(s))]; ok {
		return level
	}
	return defaultCrowd
}

func languageOf(raw any, fallback string) string {
	if s, ok := raw.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "tr":
			return "tr"
		case "en":
			return "en"
		}
	}
	return request_models.NormalizeLanguage(fallback)
}

func nonNegative(raw any, def float64) float64 {
	if v, ok := finite(raw); ok && v >= 0 {
		return v
	}
	return def
}

// finite accepts JSON numbers only; numeric strings are not coerced.
func finite(raw any) (float64, bool) {
	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func stringOr(raw any, def string) string {
	if s, ok := raw.(string); ok {
		return s
	}
	return def
}

func nonEmptyString(raw any, def string) string {
	if s, ok := raw.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return def
}

func describeJSONType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
