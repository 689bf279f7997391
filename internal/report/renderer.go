// Package report projects statement rows into the formats served to clients.
package report

import (
	"fmt"
	"unicode/utf8"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	// SheetName is the only sheet of a tabular statement.
	SheetName = "Account Statement"
	// DateLayout renders dates as dd/MM/yyyy HH:mm:ss.
	DateLayout = "02/01/2006 15:04:05"

	amountNumFmt = "#,##0.00"
	minColWidth  = 10
	colPadding   = 2
)

// Columns is the fixed header of a tabular statement.
var Columns = []string{
	"Date",
	"Customer",
	"AccountNumber",
	"AccountType",
	"OpeningBalance",
	"Active",
	"MovementAmount",
	"MovementKind",
	"ClosingBalance",
}

type cellKind int

const (
	textCell cellKind = iota
	amountCell
)

type cell struct {
	kind   cellKind
	text   string
	amount decimal.Decimal
}

// display is what a reader sees, used to size the column.
func (c cell) display() string {
	if c.kind == amountCell {
		return utils.FormatAmount(c.amount)
	}
	return c.text
}

func rowCells(r domain.StatementRow) []cell {
	active := "False"
	if r.Active {
		active = "True"
	}
	return []cell{
		{kind: textCell, text: r.Date.Format(DateLayout)},
		{kind: textCell, text: r.CustomerName},
		{kind: textCell, text: r.AccountNumber},
		{kind: textCell, text: r.AccountType},
		{kind: amountCell, amount: r.OpeningBalance},
		{kind: textCell, text: active},
		{kind: amountCell, amount: r.Amount},
		{kind: textCell, text: r.MovementKind},
		{kind: amountCell, amount: r.ClosingBalance},
	}
}

// Renderer implements StatementRenderer. It holds no state and is safe for concurrent use.
type Renderer struct{}

// NewRenderer returns a statement renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

var _ portssvc.StatementRenderer = (*Renderer)(nil)

// Render projects rows into the requested format.
func (r *Renderer) Render(rows []domain.StatementRow, format portssvc.StatementFormat) (*portssvc.RenderedStatement, error) {
	switch format {
	case portssvc.FormatStructured:
		out := make([]domain.StatementRow, len(rows))
		copy(out, rows)
		return &portssvc.RenderedStatement{Format: format, ContentType: ContentTypeJSON, Rows: out}, nil
	case portssvc.FormatTabular:
		content, err := renderWorkbook(rows)
		if err != nil {
			return nil, err
		}
		return &portssvc.RenderedStatement{Format: format, ContentType: ContentTypeXLSX, Content: content}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported statement format '%s'", apperrors.ErrValidation, format)
	}
}

func renderFailure(step string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperrors.ErrRenderFailure, step, err)
}

func renderWorkbook(rows []domain.StatementRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, renderFailure("rename sheet", err)
	}

	headerStyle, dataStyle, amountStyle, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	widths := make([]int, len(Columns))
	for col, title := range Columns {
		ref, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, renderFailure("header cell", err)
		}
		if err := f.SetCellValue(SheetName, ref, title); err != nil {
			return nil, renderFailure("header cell", err)
		}
		widths[col] = utf8.RuneCountInString(title)
	}
	if err := styleRange(f, 1, headerStyle); err != nil {
		return nil, err
	}

	for i, row := range rows {
		rowNum := i + 2
		for col, c := range rowCells(row) {
			ref, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return nil, renderFailure("data cell", err)
			}
			if c.kind == amountCell {
				err = f.SetCellFloat(SheetName, ref, c.amount.Round(2).InexactFloat64(), 2, 64)
			} else {
				err = f.SetCellStr(SheetName, ref, c.text)
			}
			if err != nil {
				return nil, renderFailure("data cell", err)
			}
			style := dataStyle
			if c.kind == amountCell {
				style = amountStyle
			}
			if err := f.SetCellStyle(SheetName, ref, ref, style); err != nil {
				return nil, renderFailure("data style", err)
			}
			if w := utf8.RuneCountInString(c.display()); w > widths[col] {
				widths[col] = w
			}
		}
	}

	for col, w := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, renderFailure("column width", err)
		}
		width := w + colPadding
		if width < minColWidth {
			width = minColWidth
		}
		if err := f.SetColWidth(SheetName, name, name, float64(width)); err != nil {
			return nil, renderFailure("column width", err)
		}
	}

	written, err := f.GetRows(SheetName)
	if err != nil {
		return nil, renderFailure("verify rows", err)
	}
	if len(written) != len(rows)+1 {
		return nil, renderFailure("verify rows", fmt.Errorf("wrote %d data rows, expected %d", len(written)-1, len(rows)))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, renderFailure("write workbook", err)
	}
	return buf.Bytes(), nil
}

func newStyles(f *excelize.File) (header, data, amount int, err error) {
	borders := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D9D9D9"}, Pattern: 1},
		Border:    borders,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return 0, 0, 0, renderFailure("header style", err)
	}

	data, err = f.NewStyle(&excelize.Style{Border: borders})
	if err != nil {
		return 0, 0, 0, renderFailure("data style", err)
	}

	numFmt := amountNumFmt
	amount, err = f.NewStyle(&excelize.Style{Border: borders, CustomNumFmt: &numFmt})
	if err != nil {
		return 0, 0, 0, renderFailure("amount style", err)
	}
	return header, data, amount, nil
}

func styleRange(f *excelize.File, row int, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return renderFailure("style range", err)
	}
	last, err := excelize.CoordinatesToCellName(len(Columns), row)
	if err != nil {
		return renderFailure("style range", err)
	}
	if err := f.SetCellStyle(SheetName, first, last, style); err != nil {
		return renderFailure("style range", err)
	}
	return nil
}
