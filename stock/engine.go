package stock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/janenicoldelacruz-web/lakson-inventory/models"
)

// Notifier receives best-effort "entity changed" events after a stock
// transaction commits. Emission must never block or fail the transaction.
type Notifier interface {
	EntityChanged(entity string, id uint)
}

// Engine orchestrates purchases and sales as single atomic units: ledger
// entries, batches, movement rows and aggregate totals commit together or
// not at all.
type Engine struct {
	db       *gorm.DB
	conv     *Converter
	log      *logrus.Logger
	notifier Notifier
	lockWait time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier attaches a post-commit notification sink.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithLockWait sets the per-product lock wait budget.
func WithLockWait(d time.Duration) Option {
	return func(e *Engine) { e.lockWait = d }
}

// NewEngine builds the transaction orchestrator.
func NewEngine(db *gorm.DB, conv *Converter, log *logrus.Logger, opts ...Option) *Engine {
	e := &Engine{
		db:       db,
		conv:     conv,
		log:      log,
		lockWait: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Converter exposes the engine's unit converter for read-side consumers
// (stock reports, dashboards).
func (e *Engine) Converter() *Converter {
	return e.conv
}

// PurchaseLine is one stock-in line as entered by the operator.
type PurchaseLine struct {
	ProductID  uint
	Quantity   decimal.Decimal
	Unit       DisplayUnit
	UnitCost   decimal.Decimal
	ExpiryDate *time.Time
}

// PurchaseInput is a full stock-in event.
type PurchaseInput struct {
	Date         time.Time
	SupplierName string
	Lines        []PurchaseLine
}

// SaleLine is one stock-out line as requested, in display units.
type SaleLine struct {
	ProductID uint
	Quantity  decimal.Decimal
	Unit      DisplayUnit
	UnitPrice decimal.Decimal
}

// SaleInput is a full stock-out event.
type SaleInput struct {
	Date            time.Time
	Type            models.SaleType
	CustomerName    *string
	CustomerContact *string
	Lines           []SaleLine
}

// RecordPurchase persists a stock-in event atomically: per line it converts
// the entered quantity to stored units, opens a new batch, writes the
// purchase item against that batch, raises the product's stock aggregate and
// appends a positive movement row. The actor is recorded on every movement.
func (e *Engine) RecordPurchase(ctx context.Context, actor string, in PurchaseInput) (*models.Purchase, error) {
	if err := validatePurchase(&in); err != nil {
		return nil, err
	}

	purchase := models.Purchase{
		PurchaseNo:   transactionNo("PR", in.Date),
		SupplierName: in.SupplierName,
		PurchaseDate: in.Date,
		TotalCost:    decimal.Zero,
	}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := e.applyLockWait(tx); err != nil {
			return err
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		var total decimal.Decimal
		for _, line := range in.Lines {
			product, err := lockProduct(tx, line.ProductID)
			if err != nil {
				return err
			}
			if line.Unit == "" {
				line.Unit = e.conv.DefaultUnit(product)
			}

			stored, err := e.conv.ToStored(product, line.Quantity, line.Unit)
			if err != nil {
				return err
			}

			batch, err := ReceiveBatch(tx, product, stored, line.ExpiryDate)
			if err != nil {
				return err
			}

			lineTotal := line.UnitCost.Mul(line.Quantity)
			item := models.PurchaseItem{
				PurchaseID: purchase.PurchaseID,
				ProductID:  product.ProductID,
				BatchID:    batch.BatchID,
				Quantity:   line.Quantity,
				Unit:       string(line.Unit),
				UnitCost:   line.UnitCost,
				LineTotal:  lineTotal,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			if err := adjustProductStock(tx, product, stored); err != nil {
				return err
			}

			if err := appendMovement(tx, movementInput{
				ProductID:     product.ProductID,
				BatchID:       &batch.BatchID,
				Type:          models.MovementPurchase,
				ReferenceType: "purchase",
				ReferenceID:   purchase.PurchaseID,
				Delta:         stored,
				Actor:         actor,
				Remarks:       "Purchase stock-in",
			}); err != nil {
				return err
			}

			total = total.Add(lineTotal)
		}

		purchase.TotalCost = total
		return tx.Model(&models.Purchase{}).
			Where("purchase_id = ?", purchase.PurchaseID).
			Update("total_cost", total).Error
	})
	if err != nil {
		return nil, e.classify(err)
	}

	e.log.WithFields(logrus.Fields{
		"purchase_no": purchase.PurchaseNo,
		"lines":       len(in.Lines),
		"total_cost":  purchase.TotalCost,
		"actor":       actor,
	}).Info("purchase recorded")
	e.notify("purchase", purchase.PurchaseID)

	if err := e.db.WithContext(ctx).Preload("Items.Batch").First(&purchase, purchase.PurchaseID).Error; err != nil {
		return nil, e.classify(err)
	}
	return &purchase, nil
}

// RecordSale persists a stock-out event atomically. Each requested line runs
// through FEFO allocation; every allocation slice becomes its own sale item
// carrying the valuation snapshot, the batch is drawn down, the product
// aggregate falls and a negative movement row is appended. A failure in any
// line unwinds the whole sale.
func (e *Engine) RecordSale(ctx context.Context, actor string, in SaleInput) (*models.Sale, error) {
	if err := validateSale(&in); err != nil {
		return nil, err
	}

	sale := models.Sale{
		SaleNo:          transactionNo("SL", in.Date),
		SaleDate:        in.Date,
		SaleType:        in.Type,
		CustomerName:    in.CustomerName,
		CustomerContact: in.CustomerContact,
		Status:          models.SaleCompleted,
		TotalAmount:     decimal.Zero,
	}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := e.applyLockWait(tx); err != nil {
			return err
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		var revenue decimal.Decimal
		for _, line := range in.Lines {
			product, err := lockProduct(tx, line.ProductID)
			if err != nil {
				return err
			}
			if line.Unit == "" {
				line.Unit = e.conv.DefaultUnit(product)
			}

			plan, err := e.conv.Allocate(tx, product, line.Quantity, line.Unit)
			if err != nil {
				return err
			}

			storedCost, err := e.conv.AverageUnitCost(tx, product)
			if err != nil {
				return err
			}
			displayCost, err := e.conv.CostPerDisplayUnit(product, storedCost, line.Unit)
			if err != nil {
				return err
			}

			for _, alloc := range plan {
				lineTotal := alloc.DisplayQty.Mul(line.UnitPrice)
				lineCost := alloc.DisplayQty.Mul(displayCost)

				batchID := alloc.Batch.BatchID
				item := models.SaleItem{
					SaleID:         sale.SaleID,
					ProductID:      product.ProductID,
					BatchID:        &batchID,
					Quantity:       alloc.StoredQty,
					Unit:           string(line.Unit),
					UnitPrice:      line.UnitPrice,
					LineTotal:      lineTotal,
					UnitCostAtSale: displayCost,
					LineCost:       lineCost,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}

				if err := adjustProductStock(tx, product, alloc.StoredQty.Neg()); err != nil {
					return err
				}

				if err := appendMovement(tx, movementInput{
					ProductID:     product.ProductID,
					BatchID:       &batchID,
					Type:          models.MovementSale,
					ReferenceType: "sale_item",
					ReferenceID:   item.ItemID,
					Delta:         alloc.StoredQty.Neg(),
					Actor:         actor,
					Remarks:       "Sale stock-out",
				}); err != nil {
					return err
				}

				revenue = revenue.Add(lineTotal)
			}
		}

		sale.TotalAmount = revenue
		return tx.Model(&models.Sale{}).
			Where("sale_id = ?", sale.SaleID).
			Update("total_amount", revenue).Error
	})
	if err != nil {
		return nil, e.classify(err)
	}

	e.log.WithFields(logrus.Fields{
		"sale_no":      sale.SaleNo,
		"sale_type":    sale.SaleType,
		"lines":        len(in.Lines),
		"total_amount": sale.TotalAmount,
		"actor":        actor,
	}).Info("sale recorded")
	e.notify("sale", sale.SaleID)

	if err := e.db.WithContext(ctx).Preload("Items.Batch").First(&sale, sale.SaleID).Error; err != nil {
		return nil, e.classify(err)
	}
	return &sale, nil
}

// applyLockWait bounds how long the transaction blocks on a competing
// product lock. Postgres only; the test dialect has no lock queue.
func (e *Engine) applyLockWait(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" || e.lockWait <= 0 {
		return nil
	}
	return tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", e.lockWait.Milliseconds())).Error
}

func (e *Engine) notify(entity string, id uint) {
	if e.notifier == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				e.log.WithField("entity", entity).Warnf("notifier panic: %v", r)
			}
		}()
		e.notifier.EntityChanged(entity, id)
	}()
}

// classify maps storage-level failures onto the error taxonomy. Domain
// errors pass through untouched; a lock wait expiry becomes ErrLockTimeout;
// everything else is a rolled-back persistence failure.
func (e *Engine) classify(err error) error {
	var vErr *ValidationError
	var isErr *InsufficientStockError
	var pErr *PersistenceError
	switch {
	case errors.As(err, &vErr), errors.As(err, &isErr), errors.As(err, &pErr),
		errors.Is(err, ErrInvalidUnit),
		errors.Is(err, ErrBatchOverdraw),
		errors.Is(err, ErrLockTimeout):
		return err
	}
	if isLockTimeout(err) {
		return fmt.Errorf("%w: %v", ErrLockTimeout, err)
	}
	return &PersistenceError{Err: err}
}

// isLockTimeout detects postgres SQLSTATE 55P03 (lock_not_available).
func isLockTimeout(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "55P03"
}

type movementInput struct {
	ProductID     uint
	BatchID       *uint
	Type          models.MovementType
	ReferenceType string
	ReferenceID   uint
	Delta         decimal.Decimal
	Actor         string
	Remarks       string
}

func appendMovement(tx *gorm.DB, in movementInput) error {
	remarks := in.Remarks
	return tx.Create(&models.StockMovement{
		ProductID:      in.ProductID,
		BatchID:        in.BatchID,
		MovementType:   in.Type,
		ReferenceType:  in.ReferenceType,
		ReferenceID:    in.ReferenceID,
		QuantityChange: in.Delta,
		RecordedBy:     in.Actor,
		Remarks:        &remarks,
	}).Error
}

// lockProduct loads the product row under an exclusive lock so the stock
// aggregate and the batch set move together for the life of the transaction.
func lockProduct(tx *gorm.DB, productID uint) (*models.Product, error) {
	var product models.Product
	q := tx.Where("product_id = ?", productID)
	if supportsRowLocks(tx) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Field: "product_id", Reason: fmt.Sprintf("product %d not found", productID)}
		}
		return nil, err
	}
	if product.Status != models.ProductActive {
		return nil, &ValidationError{Field: "product_id", Reason: fmt.Sprintf("product %q is inactive", product.Name)}
	}
	return &product, nil
}

// adjustProductStock moves the running aggregate by delta (stored units).
// The product row is already locked by the caller.
func adjustProductStock(tx *gorm.DB, product *models.Product, delta decimal.Decimal) error {
	product.CurrentStock = product.CurrentStock.Add(delta)
	return tx.Model(&models.Product{}).
		Where("product_id = ?", product.ProductID).
		Update("current_stock", product.CurrentStock).Error
}

func validatePurchase(in *PurchaseInput) error {
	if strings.TrimSpace(in.SupplierName) == "" {
		return &ValidationError{Field: "supplier_name", Reason: "required"}
	}
	if len(in.Lines) == 0 {
		return &ValidationError{Field: "items", Reason: "at least one line is required"}
	}
	for i, line := range in.Lines {
		if !line.Quantity.IsPositive() {
			return &ValidationError{Field: fmt.Sprintf("items[%d].quantity", i), Reason: "must be positive"}
		}
		if line.UnitCost.IsNegative() {
			return &ValidationError{Field: fmt.Sprintf("items[%d].unit_cost", i), Reason: "must not be negative"}
		}
	}
	return nil
}

func validateSale(in *SaleInput) error {
	if in.Type != models.SaleWalkIn && in.Type != models.SaleOnline {
		return &ValidationError{Field: "sale_type", Reason: "must be walk_in or online"}
	}
	if len(in.Lines) == 0 {
		return &ValidationError{Field: "items", Reason: "at least one line is required"}
	}
	for i, line := range in.Lines {
		if !line.Quantity.IsPositive() {
			return &ValidationError{Field: fmt.Sprintf("items[%d].quantity", i), Reason: "must be positive"}
		}
		if line.UnitPrice.IsNegative() {
			return &ValidationError{Field: fmt.Sprintf("items[%d].unit_price", i), Reason: "must not be negative"}
		}
	}
	return nil
}

// transactionNo builds a unique, human-sortable document number the way the
// POS front desk expects them: prefix, date, then a random suffix. The
// suffix must not be clock-derived; two documents on the same date may land
// on the same sub-second offset.
func transactionNo(prefix string, date time.Time) string {
	return fmt.Sprintf("%s%s-%s", prefix, date.Format("20060102"), uuid.NewString()[:8])
}
