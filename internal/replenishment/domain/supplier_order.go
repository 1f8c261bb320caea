package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Supplier order batch statuses. Monotonic: PENDING → ORDERED → RECEIVED,
// regression is rejected.
const (
	StatusPending  = "PENDING"
	StatusOrdered  = "ORDERED"
	StatusReceived = "RECEIVED"
)

// SupplierUnknown is the display-only bucket for low-stock items whose
// purchase history resolves no supplier. No batch may be created for it.
const SupplierUnknown = "TANPA SUPPLIER"

var (
	ErrBatchNotFound = errors.New("supplier order batch not found")

	// ErrStatusRegression means a batch status update tried to move
	// backwards (e.g. RECEIVED back to PENDING).
	ErrStatusRegression = errors.New("batch status cannot regress")
)

var statusRank = map[string]int{
	StatusPending:  0,
	StatusOrdered:  1,
	StatusReceived: 2,
}

// ValidStatus reports whether s is a known batch status.
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// CanAdvance reports whether a batch may move from one status to another.
// Forward moves only; skipping ORDERED is allowed.
func CanAdvance(from, to string) bool {
	return statusRank[to] > statusRank[from]
}

// SupplierOrder is a confirmed replenishment batch addressed to one supplier.
// Receiving the goods happens through the normal goods-receipt path, never
// through this record; its lifecycle ends at the order document.
type SupplierOrder struct {
	ID         uint                `json:"id" gorm:"primaryKey"`
	Reference  string              `json:"reference" gorm:"not null;uniqueIndex"`
	Supplier   string              `json:"supplier" gorm:"not null;index"`
	Status     string              `json:"status" gorm:"not null;default:'PENDING'"`
	TotalValue decimal.Decimal     `json:"total_value" gorm:"type:numeric(14,2)"`
	Lines      []SupplierOrderLine `json:"lines" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// TableName specifies the table name
func (SupplierOrder) TableName() string {
	return "supplier_orders"
}

// SupplierOrderLine is one part on a replenishment batch.
type SupplierOrderLine struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	SupplierOrderID uint            `json:"supplier_order_id" gorm:"not null;index"`
	PartNumber      string          `json:"part_number" gorm:"not null"`
	Quantity        int             `json:"quantity" gorm:"not null"`
	UnitPrice       decimal.Decimal `json:"unit_price" gorm:"type:numeric(14,2)"`
}

// TableName specifies the table name
func (SupplierOrderLine) TableName() string {
	return "supplier_order_lines"
}

// SupplierOrderRepository defines the contract for batch data access
type SupplierOrderRepository interface {
	Create(order *SupplierOrder) error
	FindByID(id uint) (*SupplierOrder, error)
	FindAll(status string, limit, offset int) ([]SupplierOrder, error)
	UpdateStatus(id uint, status string) error
}
