package command

import (
	"fmt"

	"github.com/shopspring/decimal"

	invdomain "github.com/tokoparts/backoffice/internal/inventory/domain"
	"github.com/tokoparts/backoffice/internal/order/domain"
)

// EditItemCommand corrects a line of a still-pending order. Once the order
// has moved past pending the line is frozen.
type EditItemCommand struct {
	OrderID     uint
	OrderItemID uint
	PartNumber  *string
	Quantity    *int
	CustomPrice *decimal.Decimal
}

// EditItemHandler handles edit item command
type EditItemHandler struct {
	orders domain.OrderRepository
	items  invdomain.ItemRepository
}

// NewEditItemHandler creates a new edit item handler
func NewEditItemHandler(orders domain.OrderRepository, items invdomain.ItemRepository) *EditItemHandler {
	return &EditItemHandler{orders: orders, items: items}
}

// Handle executes the edit item command
func (h *EditItemHandler) Handle(cmd EditItemCommand) (*domain.Order, error) {
	if cmd.OrderID == 0 || cmd.OrderItemID == 0 {
		return nil, fmt.Errorf("order id and item id are required")
	}

	order, err := h.orders.FindByID(cmd.OrderID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.StatusPending {
		return nil, fmt.Errorf("only pending orders can be edited, order is %s", order.Status)
	}

	var line *domain.OrderItem
	for i := range order.Items {
		if order.Items[i].ID == cmd.OrderItemID {
			line = &order.Items[i]
			break
		}
	}
	if line == nil {
		return nil, fmt.Errorf("order line %d not found", cmd.OrderItemID)
	}

	if cmd.Quantity != nil {
		if *cmd.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be greater than 0")
		}
		line.Quantity = *cmd.Quantity
	}

	if cmd.PartNumber != nil && *cmd.PartNumber != line.PartNumber {
		item, err := h.items.FindByPartNumber(*cmd.PartNumber)
		if err != nil {
			return nil, fmt.Errorf("line %s: %w", *cmd.PartNumber, err)
		}
		line.ItemID = item.ID
		line.PartNumber = item.PartNumber
		line.Price = item.Price
	}

	if cmd.CustomPrice != nil {
		line.CustomPrice = cmd.CustomPrice
	}

	if err := h.orders.UpdateItem(line); err != nil {
		return nil, fmt.Errorf("failed to update order line: %w", err)
	}

	order.RecomputeTotal()
	if err := h.orders.ReplaceItems(order); err != nil {
		return nil, fmt.Errorf("failed to recompute order total: %w", err)
	}

	return order, nil
}
