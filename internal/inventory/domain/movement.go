package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement directions
const (
	DirectionIn  = "IN"
	DirectionOut = "OUT"
)

// Movement reasons written by the engine. Reason is free text in the audit
// trail; these are the tags the engine itself emits.
const (
	ReasonSale       = "PENJUALAN"
	ReasonPurchase   = "PEMBELIAN"
	ReasonReturn     = "RETUR"
	ReasonReturnFull = "RETUR FULL"
)

// PaymentTermCash is the conventional tempo tag for cash purchases. Anything
// else is treated as a credit (tempo) label.
const PaymentTermCash = "CASH"

// StockMovement is the append-only audit record of one ledger adjustment.
// Rows are never updated or deleted.
type StockMovement struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Direction    string          `json:"direction" gorm:"not null;index"`
	PartNumber   string          `json:"part_number" gorm:"not null;index"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	UnitPrice    decimal.Decimal `json:"unit_price" gorm:"type:numeric(14,2)"`
	Counterparty string          `json:"counterparty"`
	Reason       string          `json:"reason"`
	PaymentTerm  string          `json:"payment_term"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TableName specifies the table name
func (StockMovement) TableName() string {
	return "stock_movements"
}

// MovementRepository defines the contract for the audit log. Append-only:
// there are no update or delete operations.
type MovementRepository interface {
	Append(movement *StockMovement) error
	FindAll(limit, offset int) ([]StockMovement, error)
	FindByPartNumber(partNumber string, limit int) ([]StockMovement, error)
	// FindLatestIncoming returns the most recent IN movement for a part,
	// used to resolve the last-known supplier.
	FindLatestIncoming(partNumber string) (*StockMovement, error)
	// FindLatestIncomingByTerm resolves the most recent IN movement priced
	// under cash (payment_term = CASH) or tempo (any other non-empty term).
	FindLatestIncomingByTerm(partNumber string, cash bool) (*StockMovement, error)
}
