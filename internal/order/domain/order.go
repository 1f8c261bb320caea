package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Sentinel errors surfaced by the order store and transition engine.
var (
	ErrOrderNotFound = errors.New("order not found")

	// ErrTerminalStatus means a transition was attempted out of completed or
	// cancelled. Terminal orders never move again.
	ErrTerminalStatus = errors.New("order is in a terminal status")

	ErrInvalidTransition = errors.New("status transition not allowed")
)

// transitions is the only legal status graph. Same-status refreshes of a
// non-terminal order are handled separately and carry no ledger effect.
var transitions = map[string][]string{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
}

// IsTerminal reports whether no further transition may leave the status.
func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether from may move to to.
func CanTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Metadata is the structured form of what the legacy system embedded into the
// customer name as parenthetical suffixes. Resi is the shipment tracking
// number, Shop the marketplace storefront, Channel the courier/via label.
type Metadata struct {
	Resi    string `json:"resi,omitempty"`
	Shop    string `json:"shop,omitempty"`
	Channel string `json:"channel,omitempty"`
}

// Empty reports whether no metadata field is set.
func (m Metadata) Empty() bool {
	return m.Resi == "" && m.Shop == "" && m.Channel == ""
}

// Order is a customer order, offline counter or online marketplace. Items
// reference ledger rows by part number without owning them; TotalAmount is
// derived and recomputed on every mutation.
type Order struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	CustomerName string          `json:"customer_name" gorm:"not null"`
	Resi         string          `json:"resi,omitempty"`
	Shop         string          `json:"shop,omitempty"`
	Channel      string          `json:"channel,omitempty"`
	Tempo        string          `json:"tempo" gorm:"default:'CASH';index"`
	Status       string          `json:"status" gorm:"default:'pending';index"`
	TotalAmount  decimal.Decimal `json:"total_amount" gorm:"type:numeric(14,2)"`
	Items        []OrderItem     `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
	DeletedAt    gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// Meta returns the order's structured marketplace metadata.
func (o *Order) Meta() Metadata {
	return Metadata{Resi: o.Resi, Shop: o.Shop, Channel: o.Channel}
}

// SetMeta stores structured metadata on the order.
func (o *Order) SetMeta(m Metadata) {
	o.Resi = m.Resi
	o.Shop = m.Shop
	o.Channel = m.Channel
}

// CounterpartyLabel is the audit-trail label for movements caused by this
// order: the customer name with the legacy metadata suffixes re-applied, so
// movement records stay readable alongside rows written by the old system.
func (o *Order) CounterpartyLabel() string {
	return EncodeLegacyCustomerName(o.CustomerName, o.Meta())
}

// RecomputeTotal re-derives TotalAmount from the current lines.
func (o *Order) RecomputeTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.EffectivePrice().Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	o.TotalAmount = total
}

// OrderItem is one line of an order. PartNumber is a non-owning reference
// into the inventory ledger, resolved by lookup at transition time.
type OrderItem struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	OrderID     uint             `json:"order_id" gorm:"not null;index"`
	ItemID      uint             `json:"item_id"`
	PartNumber  string           `json:"part_number" gorm:"not null"`
	Quantity    int              `json:"quantity" gorm:"not null"`
	Price       decimal.Decimal  `json:"price" gorm:"type:numeric(14,2)"`
	CustomPrice *decimal.Decimal `json:"custom_price,omitempty" gorm:"type:numeric(14,2)"`
}

// TableName specifies the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// EffectivePrice is the custom price when set, else the list price.
func (i OrderItem) EffectivePrice() decimal.Decimal {
	if i.CustomPrice != nil {
		return *i.CustomPrice
	}
	return i.Price
}

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	Create(order *Order) error
	FindByID(id uint) (*Order, error)
	FindAll(status string, limit, offset int) ([]Order, error)
	// FindGroup returns the non-terminal orders sharing a customer+tempo key,
	// the unit of batch transitions.
	FindGroup(customerName, tempo string) ([]Order, error)
	UpdateStatus(id uint, status string, completedAt *time.Time) error
	// Touch refreshes UpdatedAt without any other effect.
	Touch(id uint) error
	UpdateItem(item *OrderItem) error
	// ReplaceItems rewrites the order's line set and derived total after a
	// return shrank or removed lines.
	ReplaceItems(order *Order) error
}
