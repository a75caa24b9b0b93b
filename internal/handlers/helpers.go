package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nkyriakou/glassfab-oms/internal/httpx"
	"github.com/nkyriakou/glassfab-oms/internal/ledger"
	"github.com/nkyriakou/glassfab-oms/internal/models"
)

// writeLedgerError maps the ledger error taxonomy onto HTTP status codes.
// Storage errors stay 500 and are never rewritten into domain errors.
func writeLedgerError(w http.ResponseWriter, err error) {
	if v, ok := ledger.AsValidation(err); ok {
		httpx.ValidationFailed(w, v)
		return
	}
	switch {
	case errors.Is(err, ledger.ErrUnknownOrder):
		httpx.JSONError(w, http.StatusNotFound, "unknown_order", nil)
	case errors.Is(err, ledger.ErrUnknownSupplier):
		httpx.JSONError(w, http.StatusNotFound, "unknown_supplier", nil)
	case errors.Is(err, ledger.ErrUnknownDelivery):
		httpx.JSONError(w, http.StatusNotFound, "unknown_delivery", nil)
	case errors.Is(err, ledger.ErrInvalidCategory):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_category", nil)
	case errors.Is(err, ledger.ErrUnknownProductType):
		httpx.JSONError(w, http.StatusBadRequest, "unknown_product_type", nil)
	case errors.Is(err, ledger.ErrInvalidStatus):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_status", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "storage_error", nil)
	}
}

// lineReq is the wire form of a product line; attributes are decoded into
// the type-specific struct after the product type is known.
type lineReq struct {
	ProductType string          `json:"product_type"`
	Attributes  json.RawMessage `json:"attributes"`
}

func decodeLine(lr lineReq) (ledger.LineInput, error) {
	switch lr.ProductType {
	case models.ProductGlass:
		var a models.GlassAttributes
		if err := json.Unmarshal(lr.Attributes, &a); err != nil {
			return ledger.LineInput{}, err
		}
		return ledger.LineInput{ProductType: lr.ProductType, Attributes: a}, nil
	case models.ProductWindowFrame:
		var a models.FrameAttributes
		if err := json.Unmarshal(lr.Attributes, &a); err != nil {
			return ledger.LineInput{}, err
		}
		return ledger.LineInput{ProductType: lr.ProductType, Attributes: a}, nil
	case models.ProductLaminatedDoor:
		var a models.DoorAttributes
		if err := json.Unmarshal(lr.Attributes, &a); err != nil {
			return ledger.LineInput{}, err
		}
		return ledger.LineInput{ProductType: lr.ProductType, Attributes: a}, nil
	default:
		return ledger.LineInput{}, ledger.ErrUnknownProductType
	}
}
