package domain

// SuggestedItem is one line proposed by the suggestion service.
type SuggestedItem struct {
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Unit           string  `json:"unit"`
	Quantity       float64 `json:"quantity"`
	EstimatedPrice float64 `json:"estimatedPrice"`
}

// Suggestion is the result of turning a free-text request into an estimate.
type Suggestion struct {
	Items  []SuggestedItem `json:"items"`
	Advice string          `json:"advice"`
}
