package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// OrderTransitionsTotal counts order status transitions by outcome
	OrderTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_order_transitions_total",
			Help: "Total number of order status transitions",
		},
		[]string{"from", "to", "result"},
	)

	// ReturnsTotal counts processed returns by type
	ReturnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_returns_total",
			Help: "Total number of processed returns",
		},
		[]string{"type"},
	)

	// StockMovementsTotal counts ledger movements by direction
	StockMovementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_stock_movements_total",
			Help: "Total number of stock movements written to the audit log",
		},
		[]string{"direction"},
	)

	// LedgerClampsTotal counts decrements that were floored at zero
	LedgerClampsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "backoffice_ledger_clamps_total",
			Help: "Total number of ledger decrements clamped at zero",
		},
	)

	// VersionConflictsTotal counts optimistic concurrency conflicts on ledger rows
	VersionConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "backoffice_ledger_version_conflicts_total",
			Help: "Total number of stale writes rejected by the item version check",
		},
	)
)

func init() {
	prometheus.MustRegister(
		OrderTransitionsTotal,
		ReturnsTotal,
		StockMovementsTotal,
		LedgerClampsTotal,
		VersionConflictsTotal,
	)
}
