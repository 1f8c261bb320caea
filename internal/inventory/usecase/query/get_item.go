package query

import (
	"fmt"

	"github.com/tokoparts/backoffice/internal/inventory/domain"
)

// GetItemQuery represents the query to get a single item
type GetItemQuery struct {
	ID         uint
	PartNumber string
}

// GetItemHandler handles get item query
type GetItemHandler struct {
	repo domain.ItemRepository
}

// NewGetItemHandler creates a new get item handler
func NewGetItemHandler(repo domain.ItemRepository) *GetItemHandler {
	return &GetItemHandler{repo: repo}
}

// Handle executes the get item query
func (h *GetItemHandler) Handle(q GetItemQuery) (*domain.Item, error) {
	if q.ID != 0 {
		return h.repo.FindByID(q.ID)
	}
	if q.PartNumber != "" {
		return h.repo.FindByPartNumber(q.PartNumber)
	}
	return nil, fmt.Errorf("item id or part_number is required")
}
