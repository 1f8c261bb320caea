package query

import (
	"fmt"

	"github.com/tokoparts/backoffice/internal/order/domain"
)

// GetOrderQuery represents the query to get a single order
type GetOrderQuery struct {
	ID uint
}

// GetOrderHandler handles get order query
type GetOrderHandler struct {
	repo domain.OrderRepository
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(repo domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{repo: repo}
}

// Handle executes the get order query
func (h *GetOrderHandler) Handle(q GetOrderQuery) (*domain.Order, error) {
	if q.ID == 0 {
		return nil, fmt.Errorf("order id is required")
	}
	return h.repo.FindByID(q.ID)
}
