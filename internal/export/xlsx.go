package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
)

const moneyFormat = "#,##0.00"

type styles struct {
	title, category, header, money, subtotal int
}

func newStyles(f *excelize.File) (styles, error) {
	var (
		s   styles
		err error
	)
	money := moneyFormat
	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return s, err
	}
	if s.category, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12, Color: "#1E40AF"}}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	}); err != nil {
		return s, err
	}
	if s.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &money}); err != nil {
		return s, err
	}
	if s.subtotal, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &money}); err != nil {
		return s, err
	}
	return s, nil
}

// Workbook builds the spreadsheet for p.
func Workbook(p domain.RenovationProject, exportedAt time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create styles: %w", err)
	}

	for i, r := range Rows(p, exportedAt) {
		rowNum := i + 1
		for j, v := range r.Cells {
			col, _ := excelize.ColumnNumberToName(j + 1)
			cell := col + strconv.Itoa(rowNum)
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("set %s: %w", cell, err)
			}
		}
		if err := applyRowStyle(f, st, r, rowNum); err != nil {
			f.Close()
			return nil, err
		}
	}

	for i, w := range ColumnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, w); err != nil {
			f.Close()
			return nil, fmt.Errorf("set width %s: %w", col, err)
		}
	}
	return f, nil
}

func applyRowStyle(f *excelize.File, st styles, r Row, rowNum int) error {
	cell := func(col string) string { return col + strconv.Itoa(rowNum) }

	switch r.Kind {
	case RowTitle:
		return f.SetCellStyle(SheetName, cell("A"), cell("A"), st.title)
	case RowCategory:
		return f.SetCellStyle(SheetName, cell("A"), cell("A"), st.category)
	case RowHeader:
		return f.SetCellStyle(SheetName, cell("A"), cell("E"), st.header)
	case RowItem:
		return f.SetCellStyle(SheetName, cell("D"), cell("E"), st.money)
	case RowSubtotal, RowGrandTotal:
		return f.SetCellStyle(SheetName, cell("D"), cell("E"), st.subtotal)
	}
	return nil
}

// WriteXLSX writes the spreadsheet for p to w.
func WriteXLSX(w io.Writer, p domain.RenovationProject, exportedAt time.Time) error {
	f, err := Workbook(p, exportedAt)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
