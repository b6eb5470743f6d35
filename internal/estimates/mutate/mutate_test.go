package mutate

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7svn/smeta-backend/internal/estimates/aggregate"
	"github.com/7svn/smeta-backend/internal/estimates/domain"
)

func testMutator() Mutator {
	n := 0
	return Mutator{
		Clock: func() int64 { return 1000 },
		NewID: func() string { n++; return fmt.Sprintf("new-%d", n) },
	}
}

func it(id, cat string) domain.EstimateItem {
	return domain.EstimateItem{ID: id, Category: cat, Name: id, Unit: domain.UnitSquareMeter}
}

func project(items ...domain.EstimateItem) domain.RenovationProject {
	return domain.RenovationProject{ID: "p", Name: "Квартира", Items: items, CreatedAt: 10, LastModified: 10}
}

func ids(items []domain.EstimateItem) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func TestRename(t *testing.T) {
	m := testMutator()
	p := project()

	res := m.Rename(p, "Дача")
	assert.True(t, res.Changed)
	assert.Equal(t, "Дача", res.Project.Name)
	assert.Equal(t, int64(1000), res.Project.LastModified)
	assert.Equal(t, "Квартира", p.Name)

	res = m.Rename(p, "Квартира")
	assert.False(t, res.Changed)
	assert.Equal(t, int64(10), res.Project.LastModified)
}

func TestStampStrictlyIncreases(t *testing.T) {
	m := testMutator()
	p := project()
	p.LastModified = 5000

	res := m.AddItem(p, "Пол")
	assert.Equal(t, int64(5001), res.Project.LastModified)
}

func TestAddItem(t *testing.T) {
	m := testMutator()
	p := project(it("a", "Пол"))

	res := m.AddItem(p, "Стены")
	require.True(t, res.Changed)
	assert.Equal(t, "new-1", res.ItemID)
	require.Len(t, res.Project.Items, 2)
	assert.Equal(t, domain.EstimateItem{ID: "new-1", Category: "Стены", Unit: domain.DefaultUnit}, res.Project.Items[1])
	assert.Len(t, p.Items, 1)
}

func TestUpdateItem(t *testing.T) {
	m := testMutator()
	p := project(it("a", "Пол"))

	qty, price := -4.0, math.Inf(1)
	name := "Ламинат"
	res, err := m.UpdateItem(p, "a", domain.ItemPatch{Name: &name, Quantity: &qty, PricePerUnit: &price})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	got := res.Project.Items[0]
	assert.Equal(t, "Ламинат", got.Name)
	assert.Equal(t, 0.0, got.Quantity)
	assert.Equal(t, 0.0, got.PricePerUnit)

	// same values again: no change, no stamp
	res2, err := m.UpdateItem(res.Project, "a", domain.ItemPatch{Name: &name})
	require.NoError(t, err)
	assert.False(t, res2.Changed)
	assert.Equal(t, res.Project.LastModified, res2.Project.LastModified)

	_, err = m.UpdateItem(p, "zzz", domain.ItemPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	_, err = m.UpdateItem(p, "zzz", domain.ItemPatch{})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	res3, err := m.UpdateItem(p, "a", domain.ItemPatch{})
	require.NoError(t, err)
	assert.False(t, res3.Changed)

	bad := domain.Unit("ведро")
	_, err = m.UpdateItem(p, "a", domain.ItemPatch{Unit: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidUnit)
}

func TestDeleteItem(t *testing.T) {
	m := testMutator()
	p := project(it("a", "Пол"), it("b", "Стены"))

	res := m.DeleteItem(p, "b")
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"a"}, ids(res.Project.Items))
	assert.False(t, aggregate.HasCategory(res.Project.Items, "Стены"))
	assert.Equal(t, []string{"a", "b"}, ids(p.Items))

	assert.False(t, m.DeleteItem(p, "zzz").Changed)
}

func TestRenameCategory(t *testing.T) {
	m := testMutator()
	p := project(it("a", "Демонтаж"), it("b", "Отделка"), it("c", "Демонтаж"))

	res := m.RenameCategory(p, "Демонтаж", "Отделка")
	assert.True(t, res.Changed)
	assert.True(t, res.Merged)
	assert.Equal(t, []string{"Отделка"}, aggregate.Categories(res.Project.Items))
	assert.Len(t, res.Project.Items, 3)

	res = m.RenameCategory(p, "Демонтаж", "  Снос ")
	assert.False(t, res.Merged)
	assert.Equal(t, "Снос", res.Project.Items[0].Category)

	assert.False(t, m.RenameCategory(p, "Демонтаж", "   ").Changed)
	assert.False(t, m.RenameCategory(p, "Демонтаж", "Демонтаж").Changed)
	assert.False(t, m.RenameCategory(p, "Потолок", "Пол").Changed)
}

func TestDeleteCategory(t *testing.T) {
	m := testMutator()
	p := project(it("a", "Пол"), it("b", "Стены"), it("c", "Пол"))

	res := m.DeleteCategory(p, "Пол")
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"b"}, ids(res.Project.Items))
	assert.Equal(t, []string{"a", "b", "c"}, ids(p.Items))

	assert.False(t, m.DeleteCategory(p, "Потолок").Changed)
}

func TestCategoryReappearsAfterReAdd(t *testing.T) {
	m := testMutator()
	p := project(it("a", "Пол"), it("b", "Стены"))

	res := m.DeleteItem(p, "b")
	assert.Equal(t, []string{"Пол"}, aggregate.Categories(res.Project.Items))

	res = m.AddItem(res.Project, "Стены")
	assert.Equal(t, []string{"Пол", "Стены"}, aggregate.Categories(res.Project.Items))
	assert.Equal(t, 1, len(aggregate.ItemsIn(res.Project.Items, "Стены")))
}

func TestAddCategory(t *testing.T) {
	m := testMutator()

	res := m.AddCategory(project())
	assert.Equal(t, "Раздел 1", res.Project.Items[0].Category)

	p := project(it("a", "Пол"), it("b", "Стены"), it("c", "Пол"))
	res = m.AddCategory(p)
	require.Len(t, res.Project.Items, 4)
	assert.Equal(t, "Раздел 3", res.Project.Items[3].Category)
	assert.Equal(t, res.ItemID, res.Project.Items[3].ID)
}

func TestAddCategoryJoinsExistingLabel(t *testing.T) {
	m := testMutator()
	p := project(it("a", "Раздел 2"))

	res := m.AddCategory(p)
	require.Len(t, res.Project.Items, 2)
	assert.Equal(t, "Раздел 2", res.Project.Items[1].Category)
	assert.Equal(t, []string{"Раздел 2"}, aggregate.Categories(res.Project.Items))
}

func TestMoveItem(t *testing.T) {
	m := testMutator()

	t.Run("forward drop adopts the target category", func(t *testing.T) {
		p := project(it("A", "X"), it("B", "Y"), it("C", "Y"))
		res := m.MoveItem(p, "A", "C")
		require.True(t, res.Changed)
		assert.Equal(t, []string{"B", "A", "C"}, ids(res.Project.Items))
		assert.Equal(t, "Y", res.Project.Items[1].Category)
		assert.Equal(t, "X", p.Items[0].Category)
	})

	t.Run("backward drop to the start keeps category", func(t *testing.T) {
		p := project(it("A", "X"), it("B", "Y"), it("C", "Y"))
		res := m.MoveItem(p, "C", "A")
		require.True(t, res.Changed)
		assert.Equal(t, []string{"C", "A", "B"}, ids(res.Project.Items))
		assert.Equal(t, "Y", res.Project.Items[0].Category)
	})

	t.Run("backward drop into the middle joins the target", func(t *testing.T) {
		p := project(it("A", "X"), it("B", "Y"), it("C", "Z"))
		res := m.MoveItem(p, "C", "B")
		assert.Equal(t, []string{"A", "C", "B"}, ids(res.Project.Items))
		assert.Equal(t, "Y", res.Project.Items[1].Category)
	})

	t.Run("forward drop joins the target, not its neighbour", func(t *testing.T) {
		p := project(it("A", "X"), it("B", "Y"), it("C", "Z"), it("D", "Z"))
		res := m.MoveItem(p, "A", "C")
		require.True(t, res.Changed)
		assert.Equal(t, []string{"B", "A", "C", "D"}, ids(res.Project.Items))
		assert.Equal(t, "Z", res.Project.Items[1].Category)
	})

	t.Run("drop onto the first row of a category", func(t *testing.T) {
		p := project(it("A", "X"), it("B", "X"), it("C", "Y"), it("D", "Y"))
		res := m.MoveItem(p, "A", "C")
		assert.Equal(t, []string{"B", "A", "C", "D"}, ids(res.Project.Items))
		assert.Equal(t, "Y", res.Project.Items[1].Category)
	})

	t.Run("empty target category is not adopted", func(t *testing.T) {
		p := project(it("A", "X"), it("B", ""), it("C", "Z"))
		res := m.MoveItem(p, "C", "B")
		assert.Equal(t, []string{"A", "C", "B"}, ids(res.Project.Items))
		assert.Equal(t, "Z", res.Project.Items[1].Category)
	})

	t.Run("no-ops", func(t *testing.T) {
		p := project(it("A", "X"), it("B", "X"))
		assert.False(t, m.MoveItem(p, "A", "A").Changed)
		assert.False(t, m.MoveItem(p, "A", "zzz").Changed)
		assert.False(t, m.MoveItem(p, "zzz", "A").Changed)
		// adjacent forward drop lands where it was
		assert.False(t, m.MoveItem(p, "A", "B").Changed)
	})

	t.Run("preserves item set", func(t *testing.T) {
		p := project(it("A", "X"), it("B", "Y"), it("C", "Z"), it("D", "Z"))
		res := m.MoveItem(p, "D", "B")
		assert.ElementsMatch(t, ids(p.Items), ids(res.Project.Items))
	})
}
