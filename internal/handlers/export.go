package handlers

import (
	"net/http"

	"github.com/nkyriakou/glassfab-oms/internal/export"
	"github.com/nkyriakou/glassfab-oms/internal/httpx"
	"github.com/nkyriakou/glassfab-oms/internal/ledger"
	"github.com/nkyriakou/glassfab-oms/internal/middleware"
)

type ExportHandler struct {
	Svc *ledger.Service
}

func NewExportHandler(svc *ledger.Service) *ExportHandler { return &ExportHandler{Svc: svc} }

// OrdersCSV: GET /orders/export.csv
func (h *ExportHandler) OrdersCSV(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Svc.ListOrders()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)
	if err := export.OrdersCSV(w, orders, middleware.LangFrom(r)); err != nil {
		// headers already sent; nothing more to do
		_ = err
	}
}

// OrdersXLSX: GET /orders/export.xlsx
func (h *ExportHandler) OrdersXLSX(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Svc.ListOrders()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	f, err := export.OrdersXLSX(orders, middleware.LangFrom(r))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	defer f.Close()
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.xlsx"`)
	if err := f.Write(w); err != nil {
		_ = err
	}
}

// BalanceCSV: GET /reports/balance.csv
func (h *ExportHandler) BalanceCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Svc.BalanceReport()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="balance.csv"`)
	if err := export.BalanceCSV(w, rows, middleware.LangFrom(r)); err != nil {
		_ = err
	}
}
