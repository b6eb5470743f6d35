package suggest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
)

// stripFences removes a surrounding ``` or ```json block that models
// sometimes add despite the JSON response type.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.Trim(s, "`")
	s = strings.TrimPrefix(s, "json")
	return strings.TrimSpace(s)
}

// Parse decodes the model output into a Suggestion.
func Parse(text string) (domain.Suggestion, error) {
	var out domain.Suggestion
	body := stripFences(text)
	if body == "" {
		return out, &Error{Kind: ErrValidation, Err: errEmptyResponse}
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return domain.Suggestion{}, &Error{Kind: ErrValidation, Err: fmt.Errorf("decode suggestion: %w", err)}
	}
	if out.Items == nil {
		out.Items = []domain.SuggestedItem{}
	}
	return out, nil
}
