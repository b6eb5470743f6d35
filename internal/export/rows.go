// Package export renders a project as a spreadsheet or a printable page.
package export

import (
	"regexp"
	"strings"
	"time"

	"github.com/7svn/smeta-backend/internal/estimates/aggregate"
	"github.com/7svn/smeta-backend/internal/estimates/domain"
)

const (
	SheetName       = "Смета"
	DateLayout      = "02.01.2006"
	subtotalLabel   = "Итого по разделу:"
	grandTotalLabel = "ОБЩИЙ ИТОГ СМЕТЫ:"
)

// Header is the column header repeated above every category.
var Header = []string{"Наименование", "Ед.изм.", "Кол-во", "Цена (₽)", "Сумма (₽)"}

// ColumnWidths are the widths of columns A to E in characters.
var ColumnWidths = []float64{50, 10, 10, 15, 15}

type RowKind int

const (
	RowTitle RowKind = iota
	RowDate
	RowBlank
	RowCategory
	RowHeader
	RowItem
	RowSubtotal
	RowGrandTotal
)

// Row is one spreadsheet row; cells hold either string or float64.
type Row struct {
	Kind  RowKind
	Cells []any
}

// Rows lays the project out as rows, categories in display order.
func Rows(p domain.RenovationProject, exportedAt time.Time) []Row {
	rows := []Row{
		{Kind: RowTitle, Cells: []any{p.Name}},
		{Kind: RowDate, Cells: []any{"Дата экспорта: " + exportedAt.Format(DateLayout)}},
		{Kind: RowBlank},
	}

	for _, g := range aggregate.Grouped(p.Items) {
		header := make([]any, len(Header))
		for i, h := range Header {
			header[i] = h
		}
		rows = append(rows,
			Row{Kind: RowCategory, Cells: []any{strings.ToUpper(g.Name)}},
			Row{Kind: RowHeader, Cells: header},
		)
		for _, it := range g.Items {
			rows = append(rows, Row{Kind: RowItem, Cells: []any{
				it.Name, string(it.Unit), it.Quantity, it.PricePerUnit, it.LineTotal(),
			}})
		}
		rows = append(rows,
			Row{Kind: RowSubtotal, Cells: []any{"", "", "", subtotalLabel, g.Subtotal}},
			Row{Kind: RowBlank},
		)
	}
	// Summed in item order like every other view, not per category.
	rows = append(rows, Row{Kind: RowGrandTotal, Cells: []any{"", "", "", grandTotalLabel, aggregate.Total(p.Items)}})
	return rows
}

// GrandTotalFromRows reads the grand total back out of the rows.
func GrandTotalFromRows(rows []Row) (float64, bool) {
	for i := len(rows) - 1; i >= 0; i-- {
		r := rows[i]
		if r.Kind != RowGrandTotal || len(r.Cells) < 5 {
			continue
		}
		v, ok := r.Cells[4].(float64)
		return v, ok
	}
	return 0, false
}

var unsafeFileChars = regexp.MustCompile(`[/\\?%*:|"<>]`)

// FileName is the download name of the spreadsheet.
func FileName(projectName string) string {
	return unsafeFileChars.ReplaceAllString(projectName, "-") + ".xlsx"
}
