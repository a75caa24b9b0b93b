package ledger

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/nkyriakou/glassfab-oms/internal/models"
	"github.com/nkyriakou/glassfab-oms/internal/validation"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service owns order, supplier, product-line and delivery records. It is
// constructed once per process and injected into the HTTP layer; all
// mutations run inside a gorm transaction so multi-step operations
// (order + supplier link + lines) roll back as one unit.
type Service struct {
	db *gorm.DB
	// mu serializes order creation: the count-then-format code generator
	// is not safe under concurrent callers.
	mu sync.Mutex
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

// LineInput is one product line submitted with or after an order.
// Attributes must be the type-specific struct for ProductType
// (models.GlassAttributes, FrameAttributes or DoorAttributes).
type LineInput struct {
	ProductType string
	Attributes  Renderable
}

// Renderable is satisfied by the per-type attribute structs.
type Renderable interface{ Render() string }

// CreateOrderInput carries everything a submission form provides.
type CreateOrderInput struct {
	Prefix      string
	Customer    string
	Address     string
	Phone       string
	Description string
	Price       decimal.Decimal
	Advance     decimal.Decimal
	Deadline    *time.Time
	Lines       []LineInput
	SupplierID  uint // optional material supplier to link; 0 = none
}

// CreateOrder validates the input, mints the order code and persists the
// order plus optional lines and supplier link in one transaction.
func (s *Service) CreateOrder(in CreateOrderInput) (string, error) {
	v := validation.Violations{}
	validation.Required("customer", in.Customer, v)
	validation.NonNegative("price", in.Price, v)
	validation.NonNegative("advance", in.Advance, v)
	if in.Advance.GreaterThan(in.Price) {
		v["advance"] = "advance_exceeds_price"
	}
	if !v.Empty() {
		return "", &ValidationError{Violations: v}
	}
	if !models.ValidPrefix(in.Prefix) {
		return "", ErrInvalidCategory
	}
	for _, l := range in.Lines {
		if !models.ValidProductType(l.ProductType) {
			return "", ErrUnknownProductType
		}
		if err := validateLine(l); err != nil {
			return "", err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var code string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		code, err = GenerateCode(tx, in.Prefix)
		if err != nil {
			return err
		}
		order := models.Order{
			OrderCode:   code,
			Prefix:      in.Prefix,
			Customer:    in.Customer,
			Address:     in.Address,
			Phone:       in.Phone,
			Description: in.Description,
			Price:       in.Price,
			Advance:     in.Advance,
			Balance:     decimal.NewNullDecimal(in.Price.Sub(in.Advance)),
			Status:      models.StatusNew,
			Deadline:    in.Deadline,
		}
		if err := tx.Create(&order).Error; err != nil {
			return storageErr("insert order", err)
		}
		for _, l := range in.Lines {
			if err := insertLine(tx, code, l); err != nil {
				return err
			}
		}
		if in.SupplierID != 0 {
			if err := linkDeliveryTx(tx, code, in.SupplierID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

func validateLine(l LineInput) error {
	v := validation.Violations{}
	if g, ok := l.Attributes.(models.GlassAttributes); ok {
		validation.MinInt("quantity", g.Quantity, 1, v)
	}
	if !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return nil
}

func insertLine(tx *gorm.DB, orderCode string, l LineInput) error {
	attrs, err := json.Marshal(l.Attributes)
	if err != nil {
		return storageErr("encode line attributes", err)
	}
	line := models.ProductLine{
		OrderCode:   orderCode,
		ProductType: l.ProductType,
		Details:     l.Attributes.Render(),
		Attributes:  attrs,
	}
	if err := tx.Create(&line).Error; err != nil {
		return storageErr("insert product line", err)
	}
	return nil
}

// AddProductLine appends a line to an existing order.
func (s *Service) AddProductLine(orderCode string, l LineInput) (uint, error) {
	if !models.ValidProductType(l.ProductType) {
		return 0, ErrUnknownProductType
	}
	if err := validateLine(l); err != nil {
		return 0, err
	}
	var lineID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := mustOrderExist(tx, orderCode); err != nil {
			return err
		}
		attrs, err := json.Marshal(l.Attributes)
		if err != nil {
			return storageErr("encode line attributes", err)
		}
		line := models.ProductLine{
			OrderCode:   orderCode,
			ProductType: l.ProductType,
			Details:     l.Attributes.Render(),
			Attributes:  attrs,
		}
		if err := tx.Create(&line).Error; err != nil {
			return storageErr("insert product line", err)
		}
		lineID = line.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return lineID, nil
}

// AddSupplier inserts a supplier or, when the name already exists, returns
// the existing row untouched. First write wins; duplicates are not an
// error. The created flag reports which case applied.
func (s *Service) AddSupplier(name, contact string) (uint, bool, error) {
	v := validation.Violations{}
	validation.Required("name", name, v)
	if !v.Empty() {
		return 0, false, &ValidationError{Violations: v}
	}
	var id uint
	var created bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Supplier
		err := tx.Where("name = ?", name).First(&existing).Error
		if err == nil {
			id = existing.ID
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return storageErr("lookup supplier", err)
		}
		sup := models.Supplier{Name: name, Contact: contact}
		if err := tx.Create(&sup).Error; err != nil {
			return storageErr("insert supplier", err)
		}
		id = sup.ID
		created = true
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return id, created, nil
}

// LinkDelivery associates an order with a supplier, material not yet
// received. An order carries at most one delivery link.
func (s *Service) LinkDelivery(orderCode string, supplierID uint) (uint, error) {
	var id uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := linkDeliveryTx(tx, orderCode, supplierID); err != nil {
			return err
		}
		var d models.Delivery
		if err := tx.Where("order_code = ?", orderCode).First(&d).Error; err != nil {
			return storageErr("reload delivery", err)
		}
		id = d.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func linkDeliveryTx(tx *gorm.DB, orderCode string, supplierID uint) error {
	if err := mustOrderExist(tx, orderCode); err != nil {
		return err
	}
	var supCount int64
	if err := tx.Model(&models.Supplier{}).Where("id = ?", supplierID).Count(&supCount).Error; err != nil {
		return storageErr("lookup supplier", err)
	}
	if supCount == 0 {
		return ErrUnknownSupplier
	}
	var linked int64
	if err := tx.Model(&models.Delivery{}).Where("order_code = ?", orderCode).Count(&linked).Error; err != nil {
		return storageErr("lookup delivery", err)
	}
	if linked > 0 {
		return &ValidationError{Violations: validation.Violations{"order_code": "order_already_linked"}}
	}
	d := models.Delivery{OrderCode: orderCode, SupplierID: supplierID, MaterialReceived: false}
	if err := tx.Create(&d).Error; err != nil {
		return storageErr("insert delivery", err)
	}
	return nil
}

// MarkReceived flips the material_received flag. The false→true transition
// stamps received_date; the true→false reset clears it and leaves an audit
// row, since that direction is a correction rather than normal flow.
func (s *Service) MarkReceived(deliveryID uint, received bool, actor uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var d models.Delivery
		if err := tx.First(&d, deliveryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownDelivery
			}
			return storageErr("lookup delivery", err)
		}
		if d.MaterialReceived == received {
			return nil
		}
		updates := map[string]any{"material_received": received}
		if received {
			now := time.Now()
			updates["received_date"] = &now
		} else {
			updates["received_date"] = nil
			audit := models.AuditLog{
				UserID:     actor,
				EntityType: "delivery",
				EntityRef:  d.OrderCode,
				Action:     "receipt_correction",
				OldValue:   "received",
				NewValue:   "not_received",
			}
			if err := tx.Create(&audit).Error; err != nil {
				return storageErr("insert audit", err)
			}
		}
		if err := tx.Model(&models.Delivery{}).Where("id = ?", d.ID).Updates(updates).Error; err != nil {
			return storageErr("update delivery", err)
		}
		return nil
	})
}

// RecordPayment adds an advance installment. The resulting advance may not
// exceed the contracted price and may not go negative, so the derived
// balance stays in [0, price].
func (s *Service) RecordPayment(orderCode string, delta decimal.Decimal, actor uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("order_code = ?", orderCode).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownOrder
			}
			return storageErr("lookup order", err)
		}
		next := order.Advance.Add(delta)
		v := validation.Violations{}
		if next.IsNegative() {
			v["advance"] = "must_be_non_negative"
		}
		if next.GreaterThan(order.Price) {
			v["advance"] = "advance_exceeds_price"
		}
		if !v.Empty() {
			return &ValidationError{Violations: v}
		}
		payment := models.Payment{OrderCode: orderCode, Amount: delta}
		if err := tx.Create(&payment).Error; err != nil {
			return storageErr("insert payment", err)
		}
		updates := map[string]any{
			"advance": next,
			"balance": order.Price.Sub(next),
		}
		if err := tx.Model(&models.Order{}).Where("order_code = ?", orderCode).Updates(updates).Error; err != nil {
			return storageErr("update order", err)
		}
		audit := models.AuditLog{
			UserID:     actor,
			EntityType: "order",
			EntityRef:  orderCode,
			Action:     "payment",
			OldValue:   order.Advance.StringFixed(2),
			NewValue:   next.StringFixed(2),
		}
		if err := tx.Create(&audit).Error; err != nil {
			return storageErr("insert audit", err)
		}
		return nil
	})
}

// UpdateStatus moves an order to a new canonical status. Any status may
// follow any other; only enum membership is enforced.
func (s *Service) UpdateStatus(orderCode, newStatus string, actor uint) error {
	if !models.ValidStatus(newStatus) {
		return ErrInvalidStatus
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("order_code = ?", orderCode).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownOrder
			}
			return storageErr("lookup order", err)
		}
		if order.Status == newStatus {
			return nil
		}
		if err := tx.Model(&models.Order{}).Where("order_code = ?", orderCode).Update("status", newStatus).Error; err != nil {
			return storageErr("update order", err)
		}
		audit := models.AuditLog{
			UserID:     actor,
			EntityType: "order",
			EntityRef:  orderCode,
			Action:     "status_change",
			OldValue:   order.Status,
			NewValue:   newStatus,
		}
		if err := tx.Create(&audit).Error; err != nil {
			return storageErr("insert audit", err)
		}
		return nil
	})
}

// GetOrder loads one order with its lines.
func (s *Service) GetOrder(orderCode string) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Lines").Where("order_code = ?", orderCode).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnknownOrder
	}
	if err != nil {
		return nil, storageErr("lookup order", err)
	}
	return &order, nil
}

// ListOrders returns all orders, most recent first (insertion order
// descending, matching the reporting surface).
func (s *Service) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Order("id desc").Find(&orders).Error; err != nil {
		return nil, storageErr("list orders", err)
	}
	return orders, nil
}

// ListSuppliers returns all suppliers ordered by name.
func (s *Service) ListSuppliers() ([]models.Supplier, error) {
	var sups []models.Supplier
	if err := s.db.Order("name asc").Find(&sups).Error; err != nil {
		return nil, storageErr("list suppliers", err)
	}
	return sups, nil
}

func mustOrderExist(tx *gorm.DB, orderCode string) error {
	var count int64
	if err := tx.Model(&models.Order{}).Where("order_code = ?", orderCode).Count(&count).Error; err != nil {
		return storageErr("lookup order", err)
	}
	if count == 0 {
		return ErrUnknownOrder
	}
	return nil
}
