package query

import (
	"fmt"

	"github.com/tokoparts/backoffice/internal/replenishment/domain"
)

// ListBatchesQuery represents a query to list replenishment batches
type ListBatchesQuery struct {
	Status string
	Limit  int
	Offset int
}

// ListBatchesHandler handles batch listing
type ListBatchesHandler struct {
	batches domain.SupplierOrderRepository
}

// NewListBatchesHandler creates a new list batches handler
func NewListBatchesHandler(batches domain.SupplierOrderRepository) *ListBatchesHandler {
	return &ListBatchesHandler{batches: batches}
}

// Handle executes the list batches query
func (h *ListBatchesHandler) Handle(q ListBatchesQuery) ([]domain.SupplierOrder, error) {
	if q.Status != "" && !domain.ValidStatus(q.Status) {
		return nil, fmt.Errorf("unknown batch status: %s", q.Status)
	}
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Limit > 500 {
		q.Limit = 500
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	return h.batches.FindAll(q.Status, q.Limit, q.Offset)
}
