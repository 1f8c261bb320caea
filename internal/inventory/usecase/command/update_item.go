package command

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tokoparts/backoffice/internal/inventory/domain"
)

// UpdateItemCommand updates descriptive fields and prices of an item. Stock
// levels are not touched here; those only move through the ledger.
type UpdateItemCommand struct {
	ID          uint
	Name        *string
	Price       *decimal.Decimal
	CostPrice   *decimal.Decimal
	Shelf       *string
	Brand       *string
	Application *string
}

// UpdateItemHandler handles update item command
type UpdateItemHandler struct {
	repo domain.ItemRepository
}

// NewUpdateItemHandler creates a new update item handler
func NewUpdateItemHandler(repo domain.ItemRepository) *UpdateItemHandler {
	return &UpdateItemHandler{repo: repo}
}

// Handle executes the update item command
func (h *UpdateItemHandler) Handle(cmd UpdateItemCommand) (*domain.Item, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("item id is required")
	}

	item, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		item.Name = *cmd.Name
	}
	if cmd.Price != nil {
		item.Price = *cmd.Price
	}
	if cmd.CostPrice != nil {
		item.CostPrice = *cmd.CostPrice
	}
	if cmd.Shelf != nil {
		item.Shelf = *cmd.Shelf
	}
	if cmd.Brand != nil {
		item.Brand = *cmd.Brand
	}
	if cmd.Application != nil {
		item.Application = *cmd.Application
	}

	if err := h.repo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return item, nil
}
