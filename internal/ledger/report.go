package ledger

import (
	"time"

	"github.com/nkyriakou/glassfab-oms/internal/models"
	"github.com/shopspring/decimal"
)

// BalanceRow is one line of the financial report.
type BalanceRow struct {
	OrderCode string          `json:"order_code"`
	Customer  string          `json:"customer"`
	Price     decimal.Decimal `json:"price"`
	Advance   decimal.Decimal `json:"advance"`
	Balance   decimal.Decimal `json:"balance"`
}

// DeliveryRow is one line of the supplier delivery view.
type DeliveryRow struct {
	DeliveryID      uint       `json:"delivery_id"`
	OrderCode       string     `json:"order_code"`
	SupplierName    string     `json:"supplier_name"`
	SupplierContact string     `json:"supplier_contact"`
	Received        bool       `json:"received"`
	ReceivedDate    *time.Time `json:"received_date"`
}

// BalanceReport lists every order, most recent first, with the balance
// recomputed as price - advance at read time. Stored balances are never
// trusted here.
func (s *Service) BalanceReport() ([]BalanceRow, error) {
	var orders []models.Order
	if err := s.db.Order("id desc").Find(&orders).Error; err != nil {
		return nil, storageErr("list orders", err)
	}
	rows := make([]BalanceRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, BalanceRow{
			OrderCode: o.OrderCode,
			Customer:  o.Customer,
			Price:     o.Price,
			Advance:   o.Advance,
			Balance:   o.OutstandingBalance(),
		})
	}
	return rows, nil
}

// TotalOutstandingBalance sums balances from a fresh scan; nothing is
// cached across mutations.
func (s *Service) TotalOutstandingBalance() (decimal.Decimal, error) {
	rows, err := s.BalanceReport()
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Balance)
	}
	return total, nil
}

// DeliveryStatusView joins deliveries against orders and suppliers, one
// row per delivery, most recent first. No deliveries yields an empty
// slice, not an error.
func (s *Service) DeliveryStatusView() ([]DeliveryRow, error) {
	var deliveries []models.Delivery
	if err := s.db.Preload("Supplier").Order("id desc").Find(&deliveries).Error; err != nil {
		return nil, storageErr("list deliveries", err)
	}
	rows := make([]DeliveryRow, 0, len(deliveries))
	for _, d := range deliveries {
		rows = append(rows, DeliveryRow{
			DeliveryID:      d.ID,
			OrderCode:       d.OrderCode,
			SupplierName:    d.Supplier.Name,
			SupplierContact: d.Supplier.Contact,
			Received:        d.MaterialReceived,
			ReceivedDate:    d.ReceivedDate,
		})
	}
	return rows, nil
}
