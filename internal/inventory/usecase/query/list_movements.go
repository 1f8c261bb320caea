package query

import (
	"fmt"

	"github.com/tokoparts/backoffice/internal/inventory/domain"
)

// ListMovementsQuery represents the query to list stock movements
type ListMovementsQuery struct {
	PartNumber string
	Limit      int
	Offset     int
}

// ListMovementsHandler handles list movements query
type ListMovementsHandler struct {
	repo domain.MovementRepository
}

// NewListMovementsHandler creates a new list movements handler
func NewListMovementsHandler(repo domain.MovementRepository) *ListMovementsHandler {
	return &ListMovementsHandler{repo: repo}
}

// Handle executes the list movements query
func (h *ListMovementsHandler) Handle(q ListMovementsQuery) ([]domain.StockMovement, error) {
	if q.Limit == 0 {
		q.Limit = 50
	}
	if q.Limit > 500 {
		q.Limit = 500
	}

	if q.PartNumber != "" {
		movements, err := h.repo.FindByPartNumber(q.PartNumber, q.Limit)
		if err != nil {
			return nil, fmt.Errorf("failed to list movements: %w", err)
		}
		return movements, nil
	}

	movements, err := h.repo.FindAll(q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, nil
}
