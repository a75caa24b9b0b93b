package ledger

import (
	"testing"

	"github.com/nkyriakou/glassfab-oms/internal/models"
	"github.com/stretchr/testify/require"
)

func TestBalanceReportRecomputesFromSource(t *testing.T) {
	db := setupLedgerDB(t)
	svc := New(db)
	code, err := svc.CreateOrder(CreateOrderInput{Prefix: models.PrefixTransport, Customer: "Alpha", Price: dec("500"), Advance: dec("100")})
	require.NoError(t, err)

	// corrupt the stored balance; the report must not trust it
	require.NoError(t, db.Exec("UPDATE orders SET balance = 9999 WHERE order_code = ?", code).Error)

	rows, err := svc.BalanceReport()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, code, rows[0].OrderCode)
	require.Equal(t, "400.00", rows[0].Balance.StringFixed(2))
}

func TestBalanceReportOrderingAndTotal(t *testing.T) {
	db := setupLedgerDB(t)
	svc := New(db)
	c1, _ := svc.CreateOrder(CreateOrderInput{Prefix: models.PrefixTransport, Customer: "Alpha", Price: dec("500"), Advance: dec("100")})
	c2, _ := svc.CreateOrder(CreateOrderInput{Prefix: models.PrefixRetail, Customer: "Beta", Price: dec("250"), Advance: dec("250")})
	c3, _ := svc.CreateOrder(CreateOrderInput{Prefix: models.PrefixTransport, Customer: "Gamma", Price: dec("80.50")})

	rows, err := svc.BalanceReport()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	// most recent first
	require.Equal(t, []string{c3, c2, c1}, []string{rows[0].OrderCode, rows[1].OrderCode, rows[2].OrderCode})
	// fully paid orders stay visible at zero
	require.Equal(t, "0.00", rows[1].Balance.StringFixed(2))

	total, err := svc.TotalOutstandingBalance()
	require.NoError(t, err)
	require.Equal(t, "480.50", total.StringFixed(2))

	// totals follow mutations immediately
	require.NoError(t, svc.RecordPayment(c1, dec("400"), 1))
	total, err = svc.TotalOutstandingBalance()
	require.NoError(t, err)
	require.Equal(t, "80.50", total.StringFixed(2))
}

func TestTotalOutstandingBalanceEmpty(t *testing.T) {
	svc := New(setupLedgerDB(t))
	total, err := svc.TotalOutstandingBalance()
	require.NoError(t, err)
	require.True(t, total.IsZero())
}

func TestDeliveryStatusView(t *testing.T) {
	db := setupLedgerDB(t)
	svc := New(db)

	rows, err := svc.DeliveryStatusView()
	require.NoError(t, err)
	require.NotNil(t, rows)
	require.Empty(t, rows)

	code, _ := svc.CreateOrder(CreateOrderInput{Prefix: models.PrefixTransport, Customer: "Alpha", Price: dec("100")})
	supID, _, _ := svc.AddSupplier("Acme Glassworks", "210-555-0101")
	id, err := svc.LinkDelivery(code, supID)
	require.NoError(t, err)

	rows, err = svc.DeliveryStatusView()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, id, rows[0].DeliveryID)
	require.Equal(t, code, rows[0].OrderCode)
	require.Equal(t, "Acme Glassworks", rows[0].SupplierName)
	require.Equal(t, "210-555-0101", rows[0].SupplierContact)
	require.False(t, rows[0].Received)
	require.Nil(t, rows[0].ReceivedDate)

	require.NoError(t, svc.MarkReceived(id, true, 1))
	rows, err = svc.DeliveryStatusView()
	require.NoError(t, err)
	require.True(t, rows[0].Received)
	require.NotNil(t, rows[0].ReceivedDate)
}
