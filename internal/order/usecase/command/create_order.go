package command

import (
	"fmt"

	"github.com/shopspring/decimal"

	invdomain "github.com/tokoparts/backoffice/internal/inventory/domain"
	"github.com/tokoparts/backoffice/internal/order/domain"
)

// OrderLineInput is one requested line at checkout. Price is resolved from
// the ledger row; CustomPrice overrides it when set.
type OrderLineInput struct {
	PartNumber  string
	Quantity    int
	CustomPrice *decimal.Decimal
}

// CreateOrderCommand creates a pending order. No stock moves until the order
// transitions to processing.
type CreateOrderCommand struct {
	CustomerName string
	Metadata     domain.Metadata
	Tempo        string
	Lines        []OrderLineInput
}

// CreateOrderHandler handles create order command
type CreateOrderHandler struct {
	orders domain.OrderRepository
	items  invdomain.ItemRepository
}

// NewCreateOrderHandler creates a new create order handler
func NewCreateOrderHandler(orders domain.OrderRepository, items invdomain.ItemRepository) *CreateOrderHandler {
	return &CreateOrderHandler{orders: orders, items: items}
}

// Handle executes the create order command. Validation failures reject the
// whole order before any state is written.
func (h *CreateOrderHandler) Handle(cmd CreateOrderCommand) (*domain.Order, error) {
	if cmd.CustomerName == "" {
		return nil, fmt.Errorf("customer name is required")
	}
	if len(cmd.Lines) == 0 {
		return nil, fmt.Errorf("order must have at least one line")
	}
	for _, line := range cmd.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity for %s must be greater than 0", line.PartNumber)
		}
	}

	tempo := cmd.Tempo
	if tempo == "" {
		tempo = invdomain.PaymentTermCash
	}

	order := &domain.Order{
		CustomerName: cmd.CustomerName,
		Tempo:        tempo,
		Status:       domain.StatusPending,
	}
	order.SetMeta(cmd.Metadata)

	for _, line := range cmd.Lines {
		item, err := h.items.FindByPartNumber(line.PartNumber)
		if err != nil {
			return nil, fmt.Errorf("line %s: %w", line.PartNumber, err)
		}
		order.Items = append(order.Items, domain.OrderItem{
			ItemID:      item.ID,
			PartNumber:  item.PartNumber,
			Quantity:    line.Quantity,
			Price:       item.Price,
			CustomPrice: line.CustomPrice,
		})
	}

	order.RecomputeTotal()

	if err := h.orders.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}
