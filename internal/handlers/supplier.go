package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nkyriakou/glassfab-oms/internal/httpx"
	"github.com/nkyriakou/glassfab-oms/internal/ledger"
)

type SupplierHandler struct {
	Svc *ledger.Service
}

func NewSupplierHandler(svc *ledger.Service) *SupplierHandler { return &SupplierHandler{Svc: svc} }

// List: GET /suppliers
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	sups, err := h.Svc.ListSuppliers()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": sups, "total": len(sups)})
}

// Create: POST /suppliers. Duplicate names return the existing supplier
// with 200 instead of 201; the contact of the first write wins.
func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Contact string `json:"contact"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	id, created, err := h.Svc.AddSupplier(req.Name, req.Contact)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	httpx.JSON(w, status, map[string]any{"supplier_id": id})
}
