package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tokoparts/backoffice/internal/inventory/usecase/command"
	"github.com/tokoparts/backoffice/internal/inventory/usecase/query"
	"github.com/tokoparts/backoffice/pkg/logger"
)

// InventoryHandler handles HTTP requests for inventory using CQRS pattern
type InventoryHandler struct {
	createHandler  *command.CreateItemHandler
	updateHandler  *command.UpdateItemHandler
	deleteHandler  *command.DeleteItemHandler
	receiveHandler *command.ReceiveStockHandler

	getHandler           *query.GetItemHandler
	listHandler          *query.ListItemsHandler
	listMovementsHandler *query.ListMovementsHandler
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	createHandler *command.CreateItemHandler,
	updateHandler *command.UpdateItemHandler,
	deleteHandler *command.DeleteItemHandler,
	receiveHandler *command.ReceiveStockHandler,
	getHandler *query.GetItemHandler,
	listHandler *query.ListItemsHandler,
	listMovementsHandler *query.ListMovementsHandler,
) *InventoryHandler {
	return &InventoryHandler{
		createHandler:        createHandler,
		updateHandler:        updateHandler,
		deleteHandler:        deleteHandler,
		receiveHandler:       receiveHandler,
		getHandler:           getHandler,
		listHandler:          listHandler,
		listMovementsHandler: listMovementsHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateItem handles POST /api/items
func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PartNumber  string          `json:"part_number"`
		Name        string          `json:"name"`
		Quantity    int             `json:"quantity"`
		Price       decimal.Decimal `json:"price"`
		CostPrice   decimal.Decimal `json:"cost_price"`
		Shelf       string          `json:"shelf"`
		Brand       string          `json:"brand"`
		Application string          `json:"application"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	item, err := h.createHandler.Handle(command.CreateItemCommand{
		PartNumber:  req.PartNumber,
		Name:        req.Name,
		Quantity:    req.Quantity,
		Price:       req.Price,
		CostPrice:   req.CostPrice,
		Shelf:       req.Shelf,
		Brand:       req.Brand,
		Application: req.Application,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create item")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Item created successfully",
		Data:    item,
	})
}

// GetItem handles GET /api/items/{id}
func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid item ID"})
		return
	}

	item, err := h.getHandler.Handle(query.GetItemQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Item not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: item})
}

// ListItems handles GET /api/items
func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	items, err := h.listHandler.Handle(query.ListItemsQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list items")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list items"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: items})
}

// UpdateItem handles PATCH /api/items/{id}
func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid item ID"})
		return
	}

	var req struct {
		Name        *string          `json:"name"`
		Price       *decimal.Decimal `json:"price"`
		CostPrice   *decimal.Decimal `json:"cost_price"`
		Shelf       *string          `json:"shelf"`
		Brand       *string          `json:"brand"`
		Application *string          `json:"application"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	item, err := h.updateHandler.Handle(command.UpdateItemCommand{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		CostPrice:   req.CostPrice,
		Shelf:       req.Shelf,
		Brand:       req.Brand,
		Application: req.Application,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update item")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item updated successfully",
		Data:    item,
	})
}

// DeleteItem handles DELETE /api/items/{id}
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid item ID"})
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteItemCommand{ID: id}); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Item deleted successfully"})
}

// ReceiveStock handles POST /api/movements/receive (barang masuk)
func (h *InventoryHandler) ReceiveStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PartNumber  string          `json:"part_number"`
		Quantity    int             `json:"quantity"`
		UnitPrice   decimal.Decimal `json:"unit_price"`
		Supplier    string          `json:"supplier"`
		PaymentTerm string          `json:"payment_term"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	item, err := h.receiveHandler.Handle(r.Context(), command.ReceiveStockCommand{
		PartNumber:  req.PartNumber,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Supplier:    req.Supplier,
		PaymentTerm: req.PaymentTerm,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to receive stock")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock received successfully",
		Data:    item,
	})
}

// ListMovements handles GET /api/movements
func (h *InventoryHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	movements, err := h.listMovementsHandler.Handle(query.ListMovementsQuery{
		PartNumber: r.URL.Query().Get("part_number"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list movements")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list movements"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: movements})
}

// RegisterRoutes registers all inventory routes. Mutations go on the admin
// subrouter; reads stay public.
func (h *InventoryHandler) RegisterRoutes(router, admin *mux.Router) {
	router.HandleFunc("/api/items", h.ListItems).Methods("GET")
	router.HandleFunc("/api/items/{id}", h.GetItem).Methods("GET")
	router.HandleFunc("/api/movements", h.ListMovements).Methods("GET")

	admin.HandleFunc("/api/items", h.CreateItem).Methods("POST")
	admin.HandleFunc("/api/items/{id}", h.UpdateItem).Methods("PATCH")
	admin.HandleFunc("/api/items/{id}", h.DeleteItem).Methods("DELETE")
	admin.HandleFunc("/api/movements/receive", h.ReceiveStock).Methods("POST")
}

// RegisterHealthCheck registers health check endpoint
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "Database unavailable"})
			return
		}

		respondJSON(w, http.StatusOK, Response{Success: true, Message: "Back office service is healthy"})
	}).Methods("GET")
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
