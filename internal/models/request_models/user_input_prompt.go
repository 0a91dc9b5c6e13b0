package request_models

import (
	"encoding/json"
	"strings"
)

const (
	DefaultCity        = "İstanbul"
	DefaultDate        = "Bugün"
	DefaultHours       = 4
	DefaultStartTime   = "09:00"
	DefaultBudget      = 500
	DefaultCurrency    = "TRY"
	DefaultCrowd       = "any"
	DefaultMobility    = "walk"
	DefaultLanguage    = "tr"
	DefaultQualityMode = "balanced"
)

// PlanRequest is the body of POST /api/plan. Every field is optional.
type PlanRequest struct {
	City            string    `json:"city"`
	Date            string    `json:"date"`
	Hours           float64   `json:"hours"`
	StartTime       string    `json:"startTime"`
	Budget          float64   `json:"budget"`
	Currency        string    `json:"currency"`
	Interests       Interests `json:"interests"`
	CrowdPreference string    `json:"crowdPreference"` // avoid | prefer | any
	Mobility        string    `json:"mobility"`        // walk | public | taxi
	SpecialRequest  string    `json:"specialRequest"`
	Language        string    `json:"language"`    // tr | en
	QualityMode     string    `json:"qualityMode"` // fast | balanced | detailed
}

// WithDefaults returns a copy with every blank field filled in.
func (r PlanRequest) WithDefaults() PlanRequest {
	r.City = orDefault(r.City, DefaultCity)
	r.Date = orDefault(r.Date, DefaultDate)
	if r.Hours <= 0 {
		r.Hours = DefaultHours
	}
	r.StartTime = orDefault(r.StartTime, DefaultStartTime)
	if r.Budget <= 0 {
		r.Budget = DefaultBudget
	}
	r.Currency = strings.ToUpper(orDefault(r.Currency, DefaultCurrency))
	if r.Interests == nil {
		r.Interests = Interests{}
	}
	r.CrowdPreference = strings.ToLower(orDefault(r.CrowdPreference, DefaultCrowd))
	r.Mobility = strings.ToLower(orDefault(r.Mobility, DefaultMobility))
	r.SpecialRequest = strings.TrimSpace(r.SpecialRequest)
	r.Language = NormalizeLanguage(r.Language)
	r.QualityMode = strings.ToLower(orDefault(r.QualityMode, DefaultQualityMode))
	return r
}

// NormalizeLanguage folds anything other than "en" to "tr".
func NormalizeLanguage(lang string) string {
	if strings.EqualFold(strings.TrimSpace(lang), "en") {
		return "en"
	}
	return DefaultLanguage
}

// Interests accepts either ["a","b"] or a single "a, b" string.
type Interests []string

func (i *Interests) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*i = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	single = strings.TrimSpace(single)
	if single == "" {
		*i = Interests{}
		return nil
	}
	*i = Interests{single}
	return nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
