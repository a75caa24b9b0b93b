package ledger

import (
	"fmt"
	"testing"

	"github.com/nkyriakou/glassfab-oms/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLedgerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.ProductLine{}, &models.Supplier{}, &models.Delivery{}, &models.Payment{}, &models.AuditLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreateOrderMintsSequentialCodes(t *testing.T) {
	svc := New(setupLedgerDB(t))

	code, err := svc.CreateOrder(CreateOrderInput{Prefix: models.PrefixTransport, Customer: "Alpha Glass", Price: dec("500"), Advance: dec("100")})
	require.NoError(t, err)
	require.Equal(t, "M-0001", code)

	code2, err := svc.CreateOrder(CreateOrderInput{Prefix: models.PrefixTransport, Customer: "Beta Build", Price: dec("200")})
	require.NoError(t, err)
	require.Equal(t, "M-0002", code2)

	// sequence is scoped per category prefix
	code3, err := svc.CreateOrder(CreateOrderInput{Prefix: models.PrefixRetail, Customer: "Vista Panels", Price: dec("80")})
	require.NoError(t, err)
	require.Equal(t, "Κ-0001", code3)
}

func TestCreateOrderValidation(t *testing.T) {
	svc := New(setupLedgerDB(t))

	_, err := svc.CreateOrder(CreateOrderInput{Prefix: models.PrefixTransport, Customer: "", Price: dec("10")})
	v, ok := AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	require.Equal(t, "required", v["customer"])

	_, err = svc.CreateOrder(CreateOrderInput{Prefix: models.PrefixTransport, Customer: "X", Price: dec("-1")})
	v, ok = AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "must_be_non_negative", v["price"])

	_, err = svc.CreateOrder(CreateOrderInput{Prefix: models.PrefixTransport, Customer: "X", Price: dec("10"), Advance: dec("20")})
	v, ok = AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "advance_exceeds_price", v["advance"])

	_, err = svc.CreateOrder(CreateOrderInput{Prefix: "Z", Customer: "X", Price: dec("10")})
	require.ErrorIs(t, err, ErrInvalidCategory)
}

func TestCreateOrderDefaults(t *testing.T) {
	db := setupLedgerDB(t)
	svc := New(db)
	code, err := svc.CreateOrder(CreateOrderInput{Prefix: models.PrefixInstallation, Customer: "ClearView", Price: dec("350.50")})
	require.NoError(t, err)

	var o models.Order
	require.NoError(t, db.Where("order_code = ?", code).First(&o).Error)
	require.Equal(t, models.StatusNew, o.Status)
	require.True(t, o.Advance.IsZero())
	require.False(t, o.CreatedAt.IsZero())
	require.True(t, o.Balance.Valid)
	require.Equal(t, "350.50", o.Balance.Decimal.StringFixed(2))
}

func TestCreateOrderRollsBackOnBadSupplier(t *testing.T) {
	db := setupLedgerDB(t)
	svc := New(db)
	_, err := svc.CreateOrder(CreateOrderInput{
		Prefix: models.PrefixTransport, Customer: "Zenith", Price: dec("100"),
		Lines:      []LineInput{{ProductType: models.ProductGlass, Attributes: models.GlassAttributes{Kind: "clear", ThicknessMM: 6, WidthCM: 100, HeightCM: 200, Quantity: 2}}},
		SupplierID: 999,
	})
	require.ErrorIs(t, err, ErrUnknownSupplier)

	// nothing of the multi-step operation survived
	var orders, lines int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.ProductLine{}).Count(&lines)
	require.Zero(t, orders)
	require.Zero(t, lines)

	// and the sequence was not consumed
	code, err := svc.CreateOrder(CreateOrderInput{Prefix: models.PrefixTransport, Customer: "Zenith", Price: dec("100")})
	require.NoError(t, err)
	require.Equal(t, "M-0001", code)
}

func TestAddProductLine(t *testing.T) {
	db := setupLedgerDB(t)
	svc := New(db)
	code, err := svc.CreateOrder(CreateOrderInput{Prefix: models.PrefixPickup, Customer: "Alpha", Price: dec("60")})
	require.NoError(t, err)

	id, err := svc.AddProductLine(code, LineInput{ProductType: models.ProductWindowFrame, Attributes: models.FrameAttributes{Material: "aluminium", WidthCM: 120, HeightCM: 240, Color: "RAL9016", EnergyRated: true, Model: "E45"}})
	require.NoError(t, err)
	require.NotZero(t, id)

	var line models.ProductLine
	require.NoError(t, db.First(&line, id).Error)
	require.Equal(t, code, line.OrderCode)
	require.Contains(t, line.Details, "aluminium")
	require.Contains(t, string(line.Attributes), `"energy_rated":true`)

	_, err = svc.AddProductLine("M-9999", LineInput{ProductType: models.ProductGlass, Attributes: models.GlassAttributes{Quantity: 1}})
	require.ErrorIs(t, err, ErrUnknownOrder)

	_, err = svc.AddProductLine(code, LineInput{ProductType: "mirror", Attributes: models.GlassAttributes{Quantity: 1}})
	require.ErrorIs(t, err, ErrUnknownProductType)

	_, err = svc.AddProductLine(code, LineInput{ProductType: models.ProductGlass, Attributes: models.GlassAttributes{Quantity: 0}})
	v, ok := AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "below_minimum", v["quantity"])
}

func TestAddSupplierIdempotentByName(t *testing.T) {
	db := setupLedgerDB(t)
	svc := New(db)

	id1, created, err := svc.AddSupplier("Acme", "210-555-0101")
	require.NoError(t, err)
	require.True(t, created)
	id2, created, err := svc.AddSupplier("Acme", "completely different contact")
	require.NoError(t, err)
	require.False(t, created, "duplicate name must report the existing row")
	require.Equal(t, id1, id2)

	var count int64
	db.Model(&models.Supplier{}).Where("name = ?", "Acme").Count(&count)
	require.EqualValues(t, 1, count)

	// first write wins: contact untouched
	var sup models.Supplier
	require.NoError(t, db.First(&sup, id1).Error)
	require.Equal(t, "210-555-0101", sup.Contact)
}

func TestLinkDelivery(t *testing.T) {
	db := setupLedgerDB(t)
	svc := New(db)
	code, err := svc.CreateOrder(CreateOrderInput{Prefix: models.PrefixTransport, Customer: "Alpha", Price: dec("100")})
	require.NoError(t, err)
	supID, _, err := svc.AddSupplier("Acme", "c")
	require.NoError(t, err)

	_, err = svc.LinkDelivery("M-9999", supID)
	require.ErrorIs(t, err, ErrUnknownOrder)
	var count int64
	db.Model(&models.Delivery{}).Count(&count)
	require.Zero(t, count, "failed link must not leave a delivery row")

	_, err = svc.LinkDelivery(code, 12345)
	require.ErrorIs(t, err, ErrUnknownSupplier)

	id, err := svc.LinkDelivery(code, supID)
	require.NoError(t, err)
	var d models.Delivery
	require.NoError(t, db.First(&d, id).Error)
	require.False(t, d.MaterialReceived)
	require.Nil(t, d.ReceivedDate)

	// one delivery link per order
	_, err = svc.LinkDelivery(code, supID)
	v, ok := AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "order_already_linked", v["order_code"])
}

func TestMarkReceivedStampsAndClearsDate(t *testing.T) {
	db := setupLedgerDB(t)
	svc := New(db)
	code, _ := svc.CreateOrder(CreateOrderInput{Prefix: models.PrefixTransport, Customer: "Alpha", Price: dec("100")})
	supID, _, _ := svc.AddSupplier("Acme", "c")
	id, err := svc.LinkDelivery(code, supID)
	require.NoError(t, err)

	require.NoError(t, svc.MarkReceived(id, true, 1))
	var d models.Delivery
	require.NoError(t, db.First(&d, id).Error)
	require.True(t, d.MaterialReceived)
	require.NotNil(t, d.ReceivedDate)

	// the reset path clears the date and leaves an audit trail; reload
	// into a fresh struct so the cleared column really comes back NULL
	require.NoError(t, svc.MarkReceived(id, false, 1))
	var reset models.Delivery
	require.NoError(t, db.First(&reset, id).Error)
	require.False(t, reset.MaterialReceived)
	require.Nil(t, reset.ReceivedDate)
	var audits int64
	db.Model(&models.AuditLog{}).Where("action = ?", "receipt_correction").Count(&audits)
	require.EqualValues(t, 1, audits)

	require.ErrorIs(t, svc.MarkReceived(424242, true, 1), ErrUnknownDelivery)
}

func TestRecordPaymentBounds(t *testing.T) {
	db := setupLedgerDB(t)
	svc := New(db)
	code, _ := svc.CreateOrder(CreateOrderInput{Prefix: models.PrefixTransport, Customer: "Alpha", Price: dec("500"), Advance: dec("100")})

	require.NoError(t, svc.RecordPayment(code, dec("150"), 1))
	var o models.Order
	require.NoError(t, db.Where("order_code = ?", code).First(&o).Error)
	require.Equal(t, "250.00", o.Advance.StringFixed(2))
	require.Equal(t, "250.00", o.OutstandingBalance().StringFixed(2))

	// overpayment is rejected, not applied
	err := svc.RecordPayment(code, dec("300"), 1)
	v, ok := AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "advance_exceeds_price", v["advance"])
	require.NoError(t, db.Where("order_code = ?", code).First(&o).Error)
	require.Equal(t, "250.00", o.Advance.StringFixed(2))

	// a refund below zero is rejected too
	err = svc.RecordPayment(code, dec("-400"), 1)
	v, ok = AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "must_be_non_negative", v["advance"])

	require.ErrorIs(t, svc.RecordPayment("M-9999", dec("10"), 1), ErrUnknownOrder)

	var payments int64
	db.Model(&models.Payment{}).Count(&payments)
	require.EqualValues(t, 1, payments, "rejected payments must not be recorded")
}

func TestUpdateStatus(t *testing.T) {
	db := setupLedgerDB(t)
	svc := New(db)
	code, _ := svc.CreateOrder(CreateOrderInput{Prefix: models.PrefixTransport, Customer: "Alpha", Price: dec("10")})

	require.NoError(t, svc.UpdateStatus(code, models.StatusInProduction, 1))
	// transitions are permissive: any canonical status may follow any other
	require.NoError(t, svc.UpdateStatus(code, models.StatusNew, 1))
	require.NoError(t, svc.UpdateStatus(code, models.StatusDelivered, 1))

	require.ErrorIs(t, svc.UpdateStatus(code, "lost", 1), ErrInvalidStatus)
	require.ErrorIs(t, svc.UpdateStatus("M-9999", models.StatusNew, 1), ErrUnknownOrder)

	// same-status updates are no-ops and not audited
	require.NoError(t, svc.UpdateStatus(code, models.StatusDelivered, 1))
	var audits int64
	db.Model(&models.AuditLog{}).Where("action = ?", "status_change").Count(&audits)
	require.EqualValues(t, 3, audits)
}
