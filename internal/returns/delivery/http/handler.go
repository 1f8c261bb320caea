package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tokoparts/backoffice/internal/returns/guard"
	"github.com/tokoparts/backoffice/internal/returns/usecase/command"
	"github.com/tokoparts/backoffice/kafka"
	"github.com/tokoparts/backoffice/pkg/logger"
)

// ReturnHandler handles HTTP requests for returns
type ReturnHandler struct {
	processHandler  *command.ProcessReturnHandler
	typedHandler    *command.TypedReturnHandler
	exchangeHandler *command.ConfirmExchangeHandler

	guard     *guard.IdempotencyGuard
	publisher *kafka.Publisher
}

// NewReturnHandler creates a new return handler
func NewReturnHandler(
	processHandler *command.ProcessReturnHandler,
	typedHandler *command.TypedReturnHandler,
	exchangeHandler *command.ConfirmExchangeHandler,
	g *guard.IdempotencyGuard,
	publisher *kafka.Publisher,
) *ReturnHandler {
	return &ReturnHandler{
		processHandler:  processHandler,
		typedHandler:    typedHandler,
		exchangeHandler: exchangeHandler,
		guard:           g,
		publisher:       publisher,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ProcessReturn handles POST /api/orders/{id}/returns
//
// The return engine double-applies replays, so this handler claims an
// idempotency key derived from the order and payload before dispatching.
func (h *ReturnHandler) ProcessReturn(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid order ID"})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	var req struct {
		Lines []struct {
			OrderItemID uint `json:"order_item_id"`
			Quantity    int  `json:"quantity"`
		} `json:"lines"`
	}
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	key := r.Header.Get("Idempotency-Key")
	if key == "" {
		key = guard.Key("return:"+strconv.FormatUint(uint64(id), 10), body)
	} else {
		key = "guard:return:" + key
	}
	if !h.guard.Claim(r.Context(), key) {
		respondJSON(w, http.StatusConflict, Response{
			Success: false,
			Error:   "Duplicate return request",
		})
		return
	}

	cmd := command.ProcessReturnCommand{OrderID: id}
	for _, line := range req.Lines {
		cmd.Lines = append(cmd.Lines, command.ReturnLineInput{
			OrderItemID: line.OrderItemID,
			Quantity:    line.Quantity,
		})
	}

	result, err := h.processHandler.Handle(r.Context(), cmd)
	if err != nil {
		// Free the key so a corrected request is not blocked by the TTL.
		h.guard.Release(r.Context(), key)
		logger.Error(r.Context()).Err(err).Uint("order_id", id).Msg("Return failed")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	if h.publisher != nil {
		for _, line := range result.Lines {
			if line.Status != "applied" {
				continue
			}
			event := kafka.ReturnProcessedEvent{
				OrderID:    result.OrderID,
				PartNumber: line.PartNumber,
				Quantity:   line.Quantity,
				ReturnType: "ORDER",
			}
			if err := h.publisher.PublishReturnProcessed(r.Context(), event); err != nil {
				logger.Warn(r.Context()).Err(err).Msg("Failed to publish return event")
			}
		}
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Return processed successfully",
		Data:    result,
	})
}

// TypedReturn handles POST /api/returns
func (h *ReturnHandler) TypedReturn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PartNumber   string          `json:"part_number"`
		Quantity     int             `json:"quantity"`
		Type         string          `json:"type"`
		Counterparty string          `json:"counterparty"`
		UnitPrice    decimal.Decimal `json:"unit_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	record, err := h.typedHandler.Handle(r.Context(), command.TypedReturnCommand{
		PartNumber:   req.PartNumber,
		Quantity:     req.Quantity,
		Type:         req.Type,
		Counterparty: req.Counterparty,
		UnitPrice:    req.UnitPrice,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Typed return failed")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	if h.publisher != nil {
		event := kafka.ReturnProcessedEvent{
			PartNumber: record.PartNumber,
			Quantity:   record.Quantity,
			ReturnType: record.Type,
		}
		if err := h.publisher.PublishReturnProcessed(r.Context(), event); err != nil {
			logger.Warn(r.Context()).Err(err).Msg("Failed to publish return event")
		}
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Return recorded successfully",
		Data:    record,
	})
}

// ConfirmExchange handles POST /api/returns/{id}/exchange (sudah ditukar)
func (h *ReturnHandler) ConfirmExchange(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid return ID"})
		return
	}

	record, err := h.exchangeHandler.Handle(r.Context(), command.ConfirmExchangeCommand{ReturnID: id})
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint("return_id", id).Msg("Exchange confirmation failed")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Supplier exchange confirmed",
		Data:    record,
	})
}

// RegisterRoutes registers all return routes on the admin subrouter
func (h *ReturnHandler) RegisterRoutes(admin *mux.Router) {
	admin.HandleFunc("/api/orders/{id:[0-9]+}/returns", h.ProcessReturn).Methods("POST")
	admin.HandleFunc("/api/returns", h.TypedReturn).Methods("POST")
	admin.HandleFunc("/api/returns/{id:[0-9]+}/exchange", h.ConfirmExchange).Methods("POST")
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
