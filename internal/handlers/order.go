package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/nkyriakou/glassfab-oms/internal/auth"
	"github.com/nkyriakou/glassfab-oms/internal/httpx"
	"github.com/nkyriakou/glassfab-oms/internal/ledger"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	Svc *ledger.Service
}

func NewOrderHandler(svc *ledger.Service) *OrderHandler { return &OrderHandler{Svc: svc} }

// writeLineError tells a bad attributes payload apart from a product type
// outside the enum.
func writeLineError(w http.ResponseWriter, err error) {
	if errors.Is(err, ledger.ErrUnknownProductType) {
		writeLedgerError(w, err)
		return
	}
	httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
}

// Create: POST /orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prefix      string          `json:"prefix"`
		Customer    string          `json:"customer"`
		Address     string          `json:"address"`
		Phone       string          `json:"phone"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price"`
		Advance     decimal.Decimal `json:"advance"`
		Deadline    *time.Time      `json:"deadline"`
		SupplierID  uint            `json:"supplier_id"`
		Lines       []lineReq       `json:"lines"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	in := ledger.CreateOrderInput{
		Prefix:      req.Prefix,
		Customer:    req.Customer,
		Address:     req.Address,
		Phone:       req.Phone,
		Description: req.Description,
		Price:       req.Price,
		Advance:     req.Advance,
		Deadline:    req.Deadline,
		SupplierID:  req.SupplierID,
	}
	for _, lr := range req.Lines {
		l, err := decodeLine(lr)
		if err != nil {
			writeLineError(w, err)
			return
		}
		in.Lines = append(in.Lines, l)
	}
	code, err := h.Svc.CreateOrder(in)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"order_code": code})
}

// List: GET /orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Svc.ListOrders()
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": orders, "total": len(orders)})
}

// Get: GET /orders/get?code=M-0001
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_code", nil)
		return
	}
	order, err := h.Svc.GetOrder(code)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

// AddLine: POST /orders/lines
func (h *OrderHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderCode string `json:"order_code"`
		lineReq
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	l, err := decodeLine(req.lineReq)
	if err != nil {
		writeLineError(w, err)
		return
	}
	id, err := h.Svc.AddProductLine(req.OrderCode, l)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"line_id": id})
}

// UpdateStatus: POST /orders/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderCode string `json:"order_code"`
		Status    string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	actor, _ := auth.UserIDFromContext(r.Context())
	if err := h.Svc.UpdateStatus(req.OrderCode, req.Status, actor); err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"order_code": req.OrderCode, "status": req.Status})
}

// RecordPayment: POST /orders/payments
func (h *OrderHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderCode string          `json:"order_code"`
		Amount    decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	actor, _ := auth.UserIDFromContext(r.Context())
	if err := h.Svc.RecordPayment(req.OrderCode, req.Amount, actor); err != nil {
		writeLedgerError(w, err)
		return
	}
	order, err := h.Svc.GetOrder(req.OrderCode)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"order_code": order.OrderCode,
		"advance":    order.Advance,
		"balance":    order.OutstandingBalance(),
	})
}
