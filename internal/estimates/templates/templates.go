// Package templates holds the built-in estimate templates and the
// constructors for new projects.
package templates

import "github.com/7svn/smeta-backend/internal/estimates/domain"

// ProfessionalID identifies the professional renovation template.
const ProfessionalID = "pro-template"

// Line is a template row; it has no id until copied into a project.
type Line struct {
	Category     string      `json:"category"`
	Name         string      `json:"name"`
	Unit         domain.Unit `json:"unit"`
	PricePerUnit float64     `json:"pricePerUnit"`
}

type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Lines       []Line `json:"items"`
}

// List returns the available templates.
func List() []Template {
	return []Template{professional}
}

// Get looks a template up by id.
func Get(id string) (Template, bool) {
	for _, t := range List() {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
