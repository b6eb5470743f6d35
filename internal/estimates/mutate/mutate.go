// Package mutate applies item and category edits to a project value.
// Every function returns a new project; the input is never modified.
// A mutation that changes nothing reports Changed=false and leaves
// LastModified untouched.
package mutate

import (
	"fmt"
	"strings"

	"github.com/7svn/smeta-backend/internal/estimates/aggregate"
	"github.com/7svn/smeta-backend/internal/estimates/domain"
)

// NewCategoryPrefix labels categories created by AddCategory.
const NewCategoryPrefix = "Раздел"

type Result struct {
	Project domain.RenovationProject
	Changed bool
	// ItemID is set by operations that create an item.
	ItemID string
	// Merged is set when a rename folded items into an existing category.
	Merged bool
}

type Mutator struct {
	Clock domain.Clock
	NewID func() string
}

func New() Mutator {
	return Mutator{Clock: domain.SystemClock, NewID: domain.NewID}
}

func (m Mutator) changed(p domain.RenovationProject) Result {
	p.LastModified = domain.NextStamp(m.Clock, p.LastModified)
	return Result{Project: p, Changed: true}
}

func unchanged(p domain.RenovationProject) Result {
	return Result{Project: p}
}

// Rename sets the project name.
func (m Mutator) Rename(p domain.RenovationProject, name string) Result {
	if p.Name == name {
		return unchanged(p)
	}
	next := p.Clone()
	next.Name = name
	return m.changed(next)
}

// AddItem appends an empty item to category.
func (m Mutator) AddItem(p domain.RenovationProject, category string) Result {
	next := p.Clone()
	item := domain.EstimateItem{
		ID:       m.NewID(),
		Category: category,
		Unit:     domain.DefaultUnit,
	}
	next.Items = append(next.Items, item)
	res := m.changed(next)
	res.ItemID = item.ID
	return res
}

// UpdateItem merges patch into the item with the given id. Quantities are
// clamped to be non-negative and prices are kept finite.
func (m Mutator) UpdateItem(p domain.RenovationProject, itemID string, patch domain.ItemPatch) (Result, error) {
	idx := p.IndexOf(itemID)
	if idx < 0 {
		return unchanged(p), fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	if patch.Unit != nil && !patch.Unit.Valid() {
		return unchanged(p), fmt.Errorf("%w: %q", domain.ErrInvalidUnit, string(*patch.Unit))
	}
	if patch.Empty() {
		return unchanged(p), nil
	}

	before := p.Items[idx]
	after := before
	if patch.Category != nil {
		after.Category = *patch.Category
	}
	if patch.Name != nil {
		after.Name = *patch.Name
	}
	if patch.Unit != nil {
		after.Unit = *patch.Unit
	}
	if patch.Quantity != nil {
		after.Quantity = domain.ClampQuantity(*patch.Quantity)
	}
	if patch.PricePerUnit != nil {
		after.PricePerUnit = domain.CoercePrice(*patch.PricePerUnit)
	}
	if after == before {
		return unchanged(p), nil
	}

	next := p.Clone()
	next.Items[idx] = after
	return m.changed(next), nil
}

// DeleteItem removes the item. Removing the last item of a category makes
// the category disappear with it.
func (m Mutator) DeleteItem(p domain.RenovationProject, itemID string) Result {
	idx := p.IndexOf(itemID)
	if idx < 0 {
		return unchanged(p)
	}
	next := p.Clone()
	next.Items = append(next.Items[:idx], next.Items[idx+1:]...)
	return m.changed(next)
}

// RenameCategory relabels every item of oldName. The new label is trimmed;
// an empty or identical label is a no-op. Renaming onto a label that is
// already in use merges both categories and reports Merged.
func (m Mutator) RenameCategory(p domain.RenovationProject, oldName, newName string) Result {
	newName = strings.TrimSpace(newName)
	if newName == "" || newName == oldName || !aggregate.HasCategory(p.Items, oldName) {
		return unchanged(p)
	}
	merged := aggregate.HasCategory(p.Items, newName)

	next := p.Clone()
	for i := range next.Items {
		if next.Items[i].Category == oldName {
			next.Items[i].Category = newName
		}
	}
	res := m.changed(next)
	res.Merged = merged
	return res
}

// DeleteCategory removes every item carrying the label.
func (m Mutator) DeleteCategory(p domain.RenovationProject, name string) Result {
	if !aggregate.HasCategory(p.Items, name) {
		return unchanged(p)
	}
	next := p.Clone()
	kept := next.Items[:0]
	for _, it := range next.Items {
		if it.Category != name {
			kept = append(kept, it)
		}
	}
	next.Items = kept
	return m.changed(next)
}

// NextCategoryName is "Раздел N+1" for N distinct categories. The label
// is not checked for uniqueness: when it already exists, AddCategory
// appends to that category instead of starting a new one.
func NextCategoryName(items []domain.EstimateItem) string {
	return fmt.Sprintf("%s %d", NewCategoryPrefix, len(aggregate.Categories(items))+1)
}

// AddCategory starts a new category holding one empty item.
func (m Mutator) AddCategory(p domain.RenovationProject) Result {
	return m.AddItem(p, NextCategoryName(p.Items))
}
