package domain

import (
	"errors"
	"time"
)

// Return types. An order-attached return always restocks; typed single-item
// returns choose whether and when the restock happens.
const (
	TypeOrder        = "ORDER"
	TypeRestock      = "BALIK_STOK"
	TypeDamaged      = "RUSAK"
	TypeSupplierSwap = "TUKAR_SUPPLIER"
)

// Sentinel errors for return processing.
var (
	ErrReturnNotFound   = errors.New("return record not found")
	ErrAlreadyExchanged = errors.New("supplier exchange already confirmed")
	ErrNotExchangeable  = errors.New("return is not a pending supplier exchange")
)

// ValidType reports whether t is a recognized typed-return kind.
func ValidType(t string) bool {
	switch t {
	case TypeRestock, TypeDamaged, TypeSupplierSwap:
		return true
	}
	return false
}

// ReturnRecord is the immutable record of one confirmed return line. OrderID
// and OrderItemID are back-references for order-attached returns and nil for
// typed marketplace returns. ResultingStatus holds the order status the
// return left behind; typed returns have no parent order and leave it empty.
// Exchanged only applies to TUKAR_SUPPLIER: it flips to true when the
// replacement arrives and stock is restored.
type ReturnRecord struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	OrderID         *uint     `json:"order_id,omitempty" gorm:"index"`
	OrderItemID     *uint     `json:"order_item_id,omitempty"`
	PartNumber      string    `json:"part_number" gorm:"not null;index"`
	Quantity        int       `json:"quantity" gorm:"not null"`
	Type            string    `json:"type" gorm:"not null;default:'ORDER'"`
	ResultingStatus string    `json:"resulting_status,omitempty"`
	Exchanged       bool      `json:"exchanged" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName specifies the table name
func (ReturnRecord) TableName() string {
	return "return_records"
}

// ReturnRepository defines the contract for return record data access.
// Records are immutable except for the Exchanged flag of supplier swaps.
type ReturnRepository interface {
	Create(record *ReturnRecord) error
	FindByID(id uint) (*ReturnRecord, error)
	FindByOrderID(orderID uint) ([]ReturnRecord, error)
	FindPendingExchanges(limit, offset int) ([]ReturnRecord, error)
	MarkExchanged(id uint) error
}
