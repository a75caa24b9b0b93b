package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nkyriakou/glassfab-oms/internal/auth"
	"github.com/nkyriakou/glassfab-oms/internal/httpx"
	"github.com/nkyriakou/glassfab-oms/internal/ledger"
)

type DeliveryHandler struct {
	Svc *ledger.Service
}

func NewDeliveryHandler(svc *ledger.Service) *DeliveryHandler { return &DeliveryHandler{Svc: svc} }

// Link: POST /deliveries
func (h *DeliveryHandler) Link(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderCode  string `json:"order_code"`
		SupplierID uint   `json:"supplier_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	id, err := h.Svc.LinkDelivery(req.OrderCode, req.SupplierID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"delivery_id": id})
}

// MarkReceived: POST /deliveries/received
func (h *DeliveryHandler) MarkReceived(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeliveryID uint `json:"delivery_id"`
		Received   bool `json:"received"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	actor, _ := auth.UserIDFromContext(r.Context())
	if err := h.Svc.MarkReceived(req.DeliveryID, req.Received, actor); err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"delivery_id": req.DeliveryID, "received": req.Received})
}

// List: GET /deliveries — the joined supplier delivery view.
func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Svc.DeliveryStatusView()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}
