package domain

// EstimateItem is a single priced line of an estimate.
// Category membership is by value of the Category field; there is no
// separate category entity.
type EstimateItem struct {
	ID           string  `json:"id"`
	Category     string  `json:"category"`
	Name         string  `json:"name"`
	Unit         Unit    `json:"unit"`
	Quantity     float64 `json:"quantity"`
	PricePerUnit float64 `json:"pricePerUnit"`
}

// LineTotal is quantity * price. It is never stored.
func (i EstimateItem) LineTotal() float64 {
	return i.Quantity * i.PricePerUnit
}

// Filled reports whether both quantity and price are positive.
func (i EstimateItem) Filled() bool {
	return i.PricePerUnit > 0 && i.Quantity > 0
}

// RenovationProject is a named, owned, ordered collection of items.
// Timestamps are epoch milliseconds.
type RenovationProject struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Items        []EstimateItem `json:"items"`
	CreatedAt    int64          `json:"createdAt"`
	LastModified int64          `json:"lastModified"`
	AIAdvice     string         `json:"aiAdvice,omitempty"`
}

// Clone returns a copy whose item slice does not alias p's.
func (p RenovationProject) Clone() RenovationProject {
	out := p
	out.Items = append([]EstimateItem(nil), p.Items...)
	if out.Items == nil {
		out.Items = []EstimateItem{}
	}
	return out
}

// IndexOf returns the position of the item with the given id, or -1.
func (p RenovationProject) IndexOf(itemID string) int {
	for i := range p.Items {
		if p.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// ItemPatch is a partial update of an item. Nil fields are left untouched.
type ItemPatch struct {
	Category     *string
	Name         *string
	Unit         *Unit
	Quantity     *float64
	PricePerUnit *float64
}

// Empty reports whether the patch carries no fields.
func (p ItemPatch) Empty() bool {
	return p.Category == nil && p.Name == nil && p.Unit == nil && p.Quantity == nil && p.PricePerUnit == nil
}

// Normalize repairs data read from outside the process: unknown units
// fall back to FallbackUnit, quantities are clamped and prices made finite.
func (p *RenovationProject) Normalize() {
	if p.Items == nil {
		p.Items = []EstimateItem{}
	}
	for i := range p.Items {
		it := &p.Items[i]
		if !it.Unit.Valid() {
			it.Unit = NormalizeUnit(string(it.Unit), FallbackUnit)
		}
		it.Quantity = ClampQuantity(it.Quantity)
		it.PricePerUnit = CoercePrice(it.PricePerUnit)
	}
	if p.LastModified < p.CreatedAt {
		p.LastModified = p.CreatedAt
	}
}
