package command

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tokoparts/backoffice/internal/inventory/domain"
)

// CreateItemCommand represents the command to create an inventory item
type CreateItemCommand struct {
	PartNumber  string
	Name        string
	Quantity    int
	Price       decimal.Decimal
	CostPrice   decimal.Decimal
	Shelf       string
	Brand       string
	Application string
}

// CreateItemHandler handles create item command
type CreateItemHandler struct {
	repo domain.ItemRepository
}

// NewCreateItemHandler creates a new create item handler
func NewCreateItemHandler(repo domain.ItemRepository) *CreateItemHandler {
	return &CreateItemHandler{repo: repo}
}

// Handle executes the create item command
func (h *CreateItemHandler) Handle(cmd CreateItemCommand) (*domain.Item, error) {
	if cmd.PartNumber == "" {
		return nil, fmt.Errorf("part_number is required")
	}
	if cmd.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	item := &domain.Item{
		PartNumber:  cmd.PartNumber,
		Name:        cmd.Name,
		Quantity:    cmd.Quantity,
		QtyIn:       int64(cmd.Quantity),
		Price:       cmd.Price,
		CostPrice:   cmd.CostPrice,
		Shelf:       cmd.Shelf,
		Brand:       cmd.Brand,
		Application: cmd.Application,
	}

	if err := h.repo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}
