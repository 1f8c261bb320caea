package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tokoparts/backoffice/internal/replenishment/usecase/command"
	"github.com/tokoparts/backoffice/internal/replenishment/usecase/query"
	"github.com/tokoparts/backoffice/pkg/logger"
)

// ReplenishmentHandler handles HTTP requests for supplier replenishment
type ReplenishmentHandler struct {
	planHandler    *query.PlanHandler
	confirmHandler *command.ConfirmBatchHandler
	statusHandler  *command.UpdateBatchStatusHandler
	listHandler    *query.ListBatchesHandler
}

// NewReplenishmentHandler creates a new replenishment handler
func NewReplenishmentHandler(
	planHandler *query.PlanHandler,
	confirmHandler *command.ConfirmBatchHandler,
	statusHandler *command.UpdateBatchStatusHandler,
	listHandler *query.ListBatchesHandler,
) *ReplenishmentHandler {
	return &ReplenishmentHandler{
		planHandler:    planHandler,
		confirmHandler: confirmHandler,
		statusHandler:  statusHandler,
		listHandler:    listHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// GetPlan handles GET /api/replenishment/plan
func (h *ReplenishmentHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	threshold, _ := strconv.Atoi(r.URL.Query().Get("threshold"))

	plan, err := h.planHandler.Handle(r.Context(), query.PlanQuery{Threshold: threshold})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to assemble replenishment plan")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to assemble plan"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: plan})
}

// ConfirmBatch handles POST /api/replenishment/batches
func (h *ReplenishmentHandler) ConfirmBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Supplier string `json:"supplier"`
		Lines    []struct {
			PartNumber string          `json:"part_number"`
			Quantity   int             `json:"quantity"`
			UnitPrice  decimal.Decimal `json:"unit_price"`
		} `json:"lines"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	cmd := command.ConfirmBatchCommand{Supplier: req.Supplier}
	for _, line := range req.Lines {
		cmd.Lines = append(cmd.Lines, command.BatchLineInput{
			PartNumber: line.PartNumber,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
		})
	}

	batch, err := h.confirmHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to confirm batch")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Replenishment batch created",
		Data:    batch,
	})
}

// ListBatches handles GET /api/replenishment/batches
func (h *ReplenishmentHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	batches, err := h.listHandler.Handle(query.ListBatchesQuery{
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list batches")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list batches"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: batches})
}

// UpdateBatchStatus handles PATCH /api/replenishment/batches/{id}/status
func (h *ReplenishmentHandler) UpdateBatchStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid batch ID"})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	batch, err := h.statusHandler.Handle(r.Context(), command.UpdateBatchStatusCommand{
		BatchID: uint(id),
		Status:  req.Status,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint64("batch_id", id).Msg("Failed to update batch status")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Batch status updated",
		Data:    batch,
	})
}

// RegisterRoutes registers all replenishment routes. The plan and batch list
// are readable by guests; batch mutations require admin.
func (h *ReplenishmentHandler) RegisterRoutes(router, admin *mux.Router) {
	router.HandleFunc("/api/replenishment/plan", h.GetPlan).Methods("GET")
	router.HandleFunc("/api/replenishment/batches", h.ListBatches).Methods("GET")

	admin.HandleFunc("/api/replenishment/batches", h.ConfirmBatch).Methods("POST")
	admin.HandleFunc("/api/replenishment/batches/{id:[0-9]+}/status", h.UpdateBatchStatus).Methods("PATCH")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
