package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tokoparts/backoffice/internal/order/domain"
	"github.com/tokoparts/backoffice/internal/order/usecase/command"
	"github.com/tokoparts/backoffice/internal/order/usecase/query"
	"github.com/tokoparts/backoffice/kafka"
	"github.com/tokoparts/backoffice/pkg/logger"
)

// OrderHandler handles HTTP requests for orders using CQRS pattern
type OrderHandler struct {
	createHandler     *command.CreateOrderHandler
	transitionHandler *command.TransitionOrderHandler
	groupHandler      *command.TransitionGroupHandler
	editHandler       *command.EditItemHandler

	getHandler  *query.GetOrderHandler
	listHandler *query.ListOrdersHandler

	publisher *kafka.Publisher
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	createHandler *command.CreateOrderHandler,
	transitionHandler *command.TransitionOrderHandler,
	groupHandler *command.TransitionGroupHandler,
	editHandler *command.EditItemHandler,
	getHandler *query.GetOrderHandler,
	listHandler *query.ListOrdersHandler,
	publisher *kafka.Publisher,
) *OrderHandler {
	return &OrderHandler{
		createHandler:     createHandler,
		transitionHandler: transitionHandler,
		groupHandler:      groupHandler,
		editHandler:       editHandler,
		getHandler:        getHandler,
		listHandler:       listHandler,
		publisher:         publisher,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateOrder handles POST /api/orders (checkout)
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerName string `json:"customer_name"`
		Resi         string `json:"resi"`
		Shop         string `json:"shop"`
		Channel      string `json:"channel"`
		Tempo        string `json:"tempo"`
		Lines        []struct {
			PartNumber  string           `json:"part_number"`
			Quantity    int              `json:"quantity"`
			CustomPrice *decimal.Decimal `json:"custom_price"`
		} `json:"lines"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	cmd := command.CreateOrderCommand{
		CustomerName: req.CustomerName,
		Metadata:     domain.Metadata{Resi: req.Resi, Shop: req.Shop, Channel: req.Channel},
		Tempo:        req.Tempo,
	}
	for _, line := range req.Lines {
		cmd.Lines = append(cmd.Lines, command.OrderLineInput{
			PartNumber:  line.PartNumber,
			Quantity:    line.Quantity,
			CustomPrice: line.CustomPrice,
		})
	}

	order, err := h.createHandler.Handle(cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create order")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Order created successfully",
		Data:    order,
	})
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid order ID"})
		return
	}

	order, err := h.getHandler.Handle(query.GetOrderQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Order not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: order})
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	orders, err := h.listHandler.Handle(query.ListOrdersQuery{
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list orders")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list orders"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: orders})
}

// TransitionOrder handles POST /api/orders/{id}/transition
func (h *OrderHandler) TransitionOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid order ID"})
		return
	}

	var req struct {
		Target string `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	result, err := h.transitionHandler.Handle(r.Context(), command.TransitionOrderCommand{
		OrderID: id,
		Target:  req.Target,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint("order_id", id).Msg("Transition failed")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	h.publishTransition(r, result)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order transitioned successfully",
		Data:    result,
	})
}

// TransitionGroup handles POST /api/orders/transition-group
func (h *OrderHandler) TransitionGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerName string `json:"customer_name"`
		Tempo        string `json:"tempo"`
		Target       string `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	result, err := h.groupHandler.Handle(r.Context(), command.TransitionGroupCommand{
		CustomerName: req.CustomerName,
		Tempo:        req.Tempo,
		Target:       req.Target,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Group transition failed")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	for i := range result.Orders {
		h.publishTransition(r, &result.Orders[i])
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Group transition finished",
		Data:    result,
	})
}

// EditItem handles PATCH /api/orders/{id}/items/{item_id}
func (h *OrderHandler) EditItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid order ID"})
		return
	}
	itemID, err := parseID(r, "item_id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid item ID"})
		return
	}

	var req struct {
		PartNumber  *string          `json:"part_number"`
		Quantity    *int             `json:"quantity"`
		CustomPrice *decimal.Decimal `json:"custom_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	order, err := h.editHandler.Handle(command.EditItemCommand{
		OrderID:     orderID,
		OrderItemID: itemID,
		PartNumber:  req.PartNumber,
		Quantity:    req.Quantity,
		CustomPrice: req.CustomPrice,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint("order_id", orderID).Msg("Failed to edit order line")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order line updated successfully",
		Data:    order,
	})
}

func (h *OrderHandler) publishTransition(r *http.Request, result *command.TransitionResult) {
	if h.publisher == nil {
		return
	}

	event := kafka.OrderTransitionedEvent{
		OrderID: result.OrderID,
		From:    result.From,
		To:      result.To,
	}
	for _, line := range result.Lines {
		if line.Status != command.LineApplied {
			continue
		}
		event.Lines = append(event.Lines, kafka.TransitionedLine{
			PartNumber: line.PartNumber,
			Quantity:   line.Quantity,
			Remaining:  line.Remaining,
		})
	}

	if err := h.publisher.PublishOrderTransitioned(r.Context(), event); err != nil {
		logger.Warn(r.Context()).Err(err).Uint("order_id", result.OrderID).Msg("Failed to publish transition event")
	}
}

// RegisterRoutes registers all order routes. Mutations go on the admin
// subrouter; reads stay public.
func (h *OrderHandler) RegisterRoutes(router, admin *mux.Router) {
	router.HandleFunc("/api/orders", h.ListOrders).Methods("GET")
	router.HandleFunc("/api/orders/{id:[0-9]+}", h.GetOrder).Methods("GET")

	admin.HandleFunc("/api/orders", h.CreateOrder).Methods("POST")
	admin.HandleFunc("/api/orders/transition-group", h.TransitionGroup).Methods("POST")
	admin.HandleFunc("/api/orders/{id:[0-9]+}/transition", h.TransitionOrder).Methods("POST")
	admin.HandleFunc("/api/orders/{id:[0-9]+}/items/{item_id:[0-9]+}", h.EditItem).Methods("PATCH")
}

func parseID(r *http.Request, key string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[key], 10, 32)
	return uint(id), err
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
