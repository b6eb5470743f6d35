package mutate

import "github.com/7svn/smeta-backend/internal/estimates/domain"

// MoveItem handles a drop of the source item onto the target item.
//
// The source is taken out of the sequence and inserted where the target
// sits after that removal, joining the target's category. Dropped at the
// very start, or onto an item with an empty category, it keeps its own.
// Identical or unknown ids are a no-op.
func (m Mutator) MoveItem(p domain.RenovationProject, sourceID, targetID string) Result {
	if sourceID == targetID {
		return unchanged(p)
	}
	from := p.IndexOf(sourceID)
	to := p.IndexOf(targetID)
	if from < 0 || to < 0 {
		return unchanged(p)
	}

	next := p.Clone()
	moved := next.Items[from]
	rest := append(next.Items[:from:from], next.Items[from+1:]...)

	insertAt := to
	if from < to {
		insertAt = to - 1
	}
	// rest[insertAt] is the target either way.
	if insertAt > 0 {
		if c := rest[insertAt].Category; c != "" {
			moved.Category = c
		}
	}

	items := make([]domain.EstimateItem, 0, len(p.Items))
	items = append(items, rest[:insertAt]...)
	items = append(items, moved)
	items = append(items, rest[insertAt:]...)

	if sameOrder(p.Items, items) {
		return unchanged(p)
	}
	next.Items = items
	return m.changed(next)
}

func sameOrder(a, b []domain.EstimateItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
