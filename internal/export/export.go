// Package export serializes order listings and the balance report to CSV
// and spreadsheet form. It only consumes ledger views; nothing here writes
// to the store.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/nkyriakou/glassfab-oms/internal/i18n"
	"github.com/nkyriakou/glassfab-oms/internal/ledger"
	"github.com/nkyriakou/glassfab-oms/internal/models"
	"github.com/xuri/excelize/v2"
)

func orderHeader(lang string) []string {
	return []string{
		i18n.T(lang, "report.order_code"),
		i18n.T(lang, "report.customer"),
		"Address", "Phone", "Description", "Status",
		i18n.T(lang, "report.price"),
		i18n.T(lang, "report.advance"),
		i18n.T(lang, "report.balance"),
		"Created",
	}
}

func orderRecord(o models.Order, lang string) []string {
	return []string{
		o.OrderCode,
		o.Customer,
		o.Address,
		o.Phone,
		o.Description,
		i18n.T(lang, "status."+o.Status),
		o.Price.StringFixed(2),
		o.Advance.StringFixed(2),
		o.OutstandingBalance().StringFixed(2),
		o.CreatedAt.Format("2006-01-02 15:04"),
	}
}

// OrdersCSV writes the full order listing as CSV.
func OrdersCSV(w io.Writer, orders []models.Order, lang string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(orderHeader(lang)); err != nil {
		return err
	}
	for _, o := range orders {
		if err := cw.Write(orderRecord(o, lang)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// OrdersXLSX builds a one-sheet workbook with the order listing.
func OrdersXLSX(orders []models.Order, lang string) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Orders"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	if err := writeRow(f, sheet, 1, orderHeader(lang)); err != nil {
		return nil, err
	}
	for i, o := range orders {
		if err := writeRow(f, sheet, i+2, orderRecord(o, lang)); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// BalanceCSV writes the balance report as CSV.
func BalanceCSV(w io.Writer, rows []ledger.BalanceRow, lang string) error {
	cw := csv.NewWriter(w)
	header := []string{
		i18n.T(lang, "report.order_code"),
		i18n.T(lang, "report.customer"),
		i18n.T(lang, "report.price"),
		i18n.T(lang, "report.advance"),
		i18n.T(lang, "report.balance"),
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{r.OrderCode, r.Customer, r.Price.StringFixed(2), r.Advance.StringFixed(2), r.Balance.StringFixed(2)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
