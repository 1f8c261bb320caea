package kafka

import "time"

// TransitionedLine is one order line's ledger outcome carried on an event.
// Remaining is the on-hand quantity after the adjustment.
type TransitionedLine struct {
	PartNumber string `json:"part_number"`
	Quantity   int    `json:"quantity"`
	Remaining  int    `json:"remaining"`
}

// OrderTransitionedEvent is emitted after an order status transition.
type OrderTransitionedEvent struct {
	EventID   string             `json:"event_id"`
	EventType string             `json:"event_type"`
	OrderID   uint               `json:"order_id"`
	From      string             `json:"from"`
	To        string             `json:"to"`
	Lines     []TransitionedLine `json:"lines,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

// ReturnProcessedEvent is emitted after a return restores (or records) stock.
type ReturnProcessedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OrderID    uint      `json:"order_id,omitempty"`
	PartNumber string    `json:"part_number,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
	ReturnType string    `json:"return_type"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderTransitioned = "order.transitioned"
	EventTypeReturnProcessed   = "return.processed"
)

// Kafka topics
const (
	TopicOrderTransitioned = "order-transitioned"
	TopicReturnProcessed   = "return-processed"
)
