package handlers

import (
	"net/http"

	"github.com/nkyriakou/glassfab-oms/internal/httpx"
	"github.com/nkyriakou/glassfab-oms/internal/ledger"
)

type ReportHandler struct {
	Svc *ledger.Service
}

func NewReportHandler(svc *ledger.Service) *ReportHandler { return &ReportHandler{Svc: svc} }

// Balance: GET /reports/balance — per-order balances plus the outstanding
// total, both computed from a fresh scan.
func (h *ReportHandler) Balance(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Svc.BalanceReport()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	total, err := h.Svc.TotalOutstandingBalance()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total_outstanding": total})
}

// Deliveries: GET /reports/deliveries — delivery status joined view.
func (h *ReportHandler) Deliveries(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Svc.DeliveryStatusView()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows})
}
