package response_models

// Plan is the normalized itinerary returned to clients. Every field is always
// present; only Stop coordinates may be null.
type Plan struct {
	ID                 string   `json:"id"`
	CreatedAt          string   `json:"createdAt"`
	Summary            string   `json:"summary"`
	EstimatedTotalCost float64  `json:"estimatedTotalCost"`
	Currency           string   `json:"currency"`
	Language           string   `json:"language"`
	Stops              []Stop   `json:"stops"`
	Tips               []string `json:"tips"`
}

// Stop is one ordered entry of a Plan.
type Stop struct {
	TimeRange     string   `json:"timeRange"`
	PlaceName     string   `json:"placeName"`
	Address       string   `json:"address"`
	Description   string   `json:"description"`
	Reason        string   `json:"reason"`
	EstimatedCost float64  `json:"estimatedCost"`
	Crowd         string   `json:"crowd"` // az | orta | yoğun
	Transport     string   `json:"transport"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	Rating        float64  `json:"rating"`
	RatingCount   int      `json:"ratingCount"`
	PriceLevel    int      `json:"priceLevel"` // 1-4
	Category      string   `json:"category"`
	Duration      int      `json:"duration"` // minutes
}
