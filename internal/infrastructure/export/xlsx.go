package export

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/iho/goaccounts/internal/domain"
)

// SheetName is the worksheet holding the statement.
const SheetName = "Estado de cuenta"

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
	// numFmtFixed2 is the built-in "0.00" number format.
	numFmtFixed2 = 2
	// movementsHeaderRow is where the movements table starts.
	movementsHeaderRow = 8
)

var movementHeaders = []string{"Fecha", "Tipo", "Descripción", "Referencia", "Debe", "Haber", "Saldo"}

var agingHeaders = []string{"0-30 días", "31-60 días", "61-90 días", "Más de 90 días", "Total"}

// XLSXRenderer renders current-account reports as Excel workbooks.
type XLSXRenderer struct{}

// NewXLSXRenderer creates a new XLSXRenderer.
func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

// FileName returns the download name of a report's statement.
func (r *XLSXRenderer) FileName(report *domain.CurrentAccountReport) string {
	return fmt.Sprintf("estado-de-cuenta-%s-%s-%s.xlsx",
		report.EntityType, sanitize(report.EntityID), report.GeneratedAt.Format("20060102"))
}

// Render builds the workbook: a header block, the movements table and the
// aging buckets.
func (r *XLSXRenderer) Render(report *domain.CurrentAccountReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	w := &sheetWriter{f: f}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: numFmtFixed2})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	w.set(1, 1, SheetName, bold)
	w.set(1, 2, "Entidad", bold)
	w.set(2, 2, report.EntityName, 0)
	w.set(1, 3, "Tipo", bold)
	w.set(2, 3, kindLabel(report.EntityType), 0)
	w.set(1, 4, "Saldo actual", bold)
	w.set(2, 4, report.CurrentBalance.InexactFloat64(), amount)
	w.set(1, 5, "Límite de crédito", bold)
	if report.CreditLimit != nil {
		w.set(2, 5, report.CreditLimit.InexactFloat64(), amount)
	} else {
		w.set(2, 5, "-", 0)
	}
	w.set(1, 6, "Generado", bold)
	w.set(2, 6, report.GeneratedAt.Format(dateTimeLayout), 0)

	for i, h := range movementHeaders {
		w.set(i+1, movementsHeaderRow, h, bold)
	}

	row := movementsHeaderRow + 1
	for _, m := range report.Movements {
		w.set(1, row, m.Date.Format(dateLayout), 0)
		w.set(2, row, movementLabel(m.Type), 0)
		w.set(3, row, m.Description, 0)
		w.set(4, row, m.Reference, 0)
		w.set(5, row, m.Debit.InexactFloat64(), amount)
		w.set(6, row, m.Credit.InexactFloat64(), amount)
		w.set(7, row, m.Balance.InexactFloat64(), amount)
		row++
	}

	row++
	w.set(1, row, "Antigüedad de saldos", bold)
	row++
	for i, h := range agingHeaders {
		w.set(i+1, row, h, bold)
	}
	row++
	buckets := []decimal.Decimal{
		report.Aging.Current,
		report.Aging.Days30To60,
		report.Aging.Days61To90,
		report.Aging.Over90,
		report.Aging.Total(),
	}
	for i, b := range buckets {
		w.set(i+1, row, b.InexactFloat64(), amount)
	}

	if w.err != nil {
		return nil, w.err
	}

	if err := f.SetColWidth(SheetName, "A", "A", 18); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "C", "C", 28); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// sheetWriter keeps the first error so cell writes can be chained.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) set(col, row int, value any, style int) {
	if w.err != nil {
		return
	}

	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}

	if err := w.f.SetCellValue(SheetName, cell, value); err != nil {
		w.err = fmt.Errorf("set %s: %w", cell, err)
		return
	}

	if style != 0 {
		if err := w.f.SetCellStyle(SheetName, cell, cell, style); err != nil {
			w.err = fmt.Errorf("style %s: %w", cell, err)
		}
	}
}

func kindLabel(kind domain.EntityKind) string {
	if kind == domain.EntityKindSupplier {
		return "Proveedor"
	}
	return "Cliente"
}

func movementLabel(t domain.MovementType) string {
	switch t {
	case domain.MovementTypeSale:
		return "Venta"
	case domain.MovementTypePurchase:
		return "Compra"
	case domain.MovementTypePayment:
		return "Pago"
	default:
		return string(t)
	}
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
