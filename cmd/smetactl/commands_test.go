package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
	"github.com/7svn/smeta-backend/internal/estimates/store"
	"github.com/7svn/smeta-backend/internal/estimates/templates"
	"github.com/7svn/smeta-backend/internal/export"
)

func seededApp(t *testing.T) *app {
	t.Helper()
	st := store.NewMemoryStore()
	require.NoError(t, st.Upsert(context.Background(), "alice", domain.RenovationProject{
		ID:   "p1",
		Name: "Ванная",
		Items: []domain.EstimateItem{
			{ID: "a", Category: "Плитка", Name: "Укладка плитки", Unit: domain.UnitSquareMeter, Quantity: 10, PricePerUnit: 1500},
			{ID: "b", Category: "Плитка", Name: "Затирка", Unit: domain.UnitSquareMeter, Quantity: 0, PricePerUnit: 200},
		},
		CreatedAt:    1,
		LastModified: 2,
	}))
	return &app{
		open: func(context.Context) (store.Store, func(), error) { return st, func() {}, nil },
		now:  func() time.Time { return time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func run(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTemplatesCmd(t *testing.T) {
	out, err := run(t, seededApp(t), "templates")
	require.NoError(t, err)
	assert.Contains(t, out, templates.ProfessionalID)
	assert.Contains(t, out, "Профессиональный стандарт 2024")
}

func TestSummaryCmd(t *testing.T) {
	a := seededApp(t)

	out, err := run(t, a, "summary", "--owner", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Ванная")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "15000.00")

	out, err = run(t, a, "summary", "--owner", "bob")
	require.NoError(t, err)
	assert.Equal(t, "No projects.\n", out)

	_, err = run(t, a, "summary")
	assert.Error(t, err)
}

func TestExportCmd(t *testing.T) {
	a := seededApp(t)
	dir := t.TempDir()

	xlsx := filepath.Join(dir, "out.xlsx")
	out, err := run(t, a, "export", "--owner", "alice", "--project", "p1", "--out", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "total 15000.00")

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer f.Close()
	title, err := f.GetCellValue(export.SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Ванная", title)

	page := filepath.Join(dir, "out.html")
	_, err = run(t, a, "export", "--owner", "alice", "--project", "p1", "--html", "-o", page)
	require.NoError(t, err)
	b, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "<!DOCTYPE html>"))

	_, err = run(t, a, "export", "--owner", "bob", "--project", "p1", "--out", xlsx)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}
