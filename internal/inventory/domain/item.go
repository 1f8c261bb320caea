package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sentinel errors surfaced by inventory repositories and the ledger.
var (
	// ErrItemNotFound means a part number no longer resolves to a ledger row.
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrVersionConflict means a write was rejected because the row changed
	// since it was read. Callers may retry with a fresh read.
	ErrVersionConflict = errors.New("inventory item version conflict")
)

// Item is a per-store inventory row. PartNumber is the business key; order
// lines reference it without owning it. Version is the optimistic concurrency
// token checked on every update.
type Item struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	PartNumber  string          `json:"part_number" gorm:"not null;uniqueIndex"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity" gorm:"not null;default:0"`
	QtyIn       int64           `json:"qty_in" gorm:"not null;default:0"`
	QtyOut      int64           `json:"qty_out" gorm:"not null;default:0"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(14,2)"`
	CostPrice   decimal.Decimal `json:"cost_price" gorm:"type:numeric(14,2)"`
	Shelf       string          `json:"shelf"`
	Brand       string          `json:"brand"`
	Application string          `json:"application"`
	Version     uint            `json:"version" gorm:"not null;default:0"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Item) TableName() string {
	return "items"
}

// ItemRepository defines the contract for item data access.
// Update must reject writes whose Version no longer matches the stored row.
type ItemRepository interface {
	Create(item *Item) error
	FindByID(id uint) (*Item, error)
	FindByPartNumber(partNumber string) (*Item, error)
	FindAll(limit, offset int) ([]Item, error)
	FindBelowQuantity(threshold int) ([]Item, error)
	Update(item *Item) error
	Delete(id uint) error
}

// ContextItemRepository is the context-aware variant of the hot-path item
// reads and writes. Repositories that implement it carry a span per call;
// callers holding an ItemRepository type-assert for it and prefer these
// methods when present.
type ContextItemRepository interface {
	FindByPartNumberWithContext(ctx context.Context, partNumber string) (*Item, error)
	FindBelowQuantityWithContext(ctx context.Context, threshold int) ([]Item, error)
	UpdateWithContext(ctx context.Context, item *Item) error
}
