package templates

import (
	"fmt"
	"strings"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
)

const (
	TemplateProjectName = "Смета (Профессиональная)"
	maxPromptNameRunes  = 30
)

// Factory builds new projects with fresh ids and matching timestamps.
type Factory struct {
	Clock domain.Clock
	NewID func() string
}

func NewFactory() Factory {
	return Factory{Clock: domain.SystemClock, NewID: domain.NewID}
}

func (f Factory) base(name string) domain.RenovationProject {
	now := f.Clock()
	return domain.RenovationProject{
		ID:           f.NewID(),
		Name:         name,
		Items:        []domain.EstimateItem{},
		CreatedAt:    now,
		LastModified: now,
	}
}

// Empty creates a project numbered after the existing count.
func (f Factory) Empty(existing int) domain.RenovationProject {
	return f.base(fmt.Sprintf("Проект #%d", existing+1))
}

// FromTemplate copies the template lines with fresh ids and zero quantity.
func (f Factory) FromTemplate(t Template) domain.RenovationProject {
	p := f.base(TemplateProjectName)
	p.Items = make([]domain.EstimateItem, 0, len(t.Lines))
	for _, l := range t.Lines {
		p.Items = append(p.Items, domain.EstimateItem{
			ID:           f.NewID(),
			Category:     l.Category,
			Name:         l.Name,
			Unit:         l.Unit,
			Quantity:     0,
			PricePerUnit: l.PricePerUnit,
		})
	}
	return p
}

// FromSuggestion turns a suggestion into a project named after the prompt.
// Units outside the supported set become "шт" and quantities are clamped.
func (f Factory) FromSuggestion(prompt string, s domain.Suggestion) domain.RenovationProject {
	p := f.base(NameFromPrompt(prompt))
	p.AIAdvice = s.Advice
	p.Items = make([]domain.EstimateItem, 0, len(s.Items))
	for _, it := range s.Items {
		p.Items = append(p.Items, domain.EstimateItem{
			ID:           f.NewID(),
			Category:     it.Category,
			Name:         it.Name,
			Unit:         domain.NormalizeUnit(it.Unit, domain.FallbackUnit),
			Quantity:     domain.ClampQuantity(it.Quantity),
			PricePerUnit: domain.CoercePrice(it.EstimatedPrice),
		})
	}
	return p
}

// NameFromPrompt trims the prompt and cuts it to 30 characters plus "...".
func NameFromPrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	r := []rune(prompt)
	if len(r) > maxPromptNameRunes {
		return string(r[:maxPromptNameRunes]) + "..."
	}
	return prompt
}
