//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	invdomain "github.com/tokoparts/backoffice/internal/inventory/domain"
	"github.com/tokoparts/backoffice/internal/inventory/ledger"
	invrepository "github.com/tokoparts/backoffice/internal/inventory/repository"
	"github.com/tokoparts/backoffice/internal/order/delivery/http"
	"github.com/tokoparts/backoffice/internal/order/domain"
	"github.com/tokoparts/backoffice/internal/order/repository"
	"github.com/tokoparts/backoffice/internal/order/usecase/command"
	"github.com/tokoparts/backoffice/internal/order/usecase/query"
	"github.com/tokoparts/backoffice/kafka"
)

// ProvideOrderRepository provides the order repository
func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewGormOrderRepository(db)
}

// ProvideItemRepository provides the item repository with tracing
func ProvideItemRepository(db *gorm.DB) invdomain.ItemRepository {
	return invrepository.NewGormItemRepositoryWithTracing(db)
}

// ProvideMovementRepository provides the stock movement repository
func ProvideMovementRepository(db *gorm.DB) invdomain.MovementRepository {
	return invrepository.NewGormMovementRepository(db)
}

// ProvideLedger provides the stock ledger
func ProvideLedger(items invdomain.ItemRepository, movements invdomain.MovementRepository) *ledger.Ledger {
	return ledger.New(items, movements)
}

// Command Handlers Providers
func ProvideCreateOrderHandler(orders domain.OrderRepository, items invdomain.ItemRepository) *command.CreateOrderHandler {
	return command.NewCreateOrderHandler(orders, items)
}

func ProvideTransitionOrderHandler(orders domain.OrderRepository, l *ledger.Ledger) *command.TransitionOrderHandler {
	return command.NewTransitionOrderHandler(orders, l)
}

func ProvideTransitionGroupHandler(orders domain.OrderRepository, transition *command.TransitionOrderHandler) *command.TransitionGroupHandler {
	return command.NewTransitionGroupHandler(orders, transition)
}

func ProvideEditItemHandler(orders domain.OrderRepository, items invdomain.ItemRepository) *command.EditItemHandler {
	return command.NewEditItemHandler(orders, items)
}

// Query Handlers Providers
func ProvideGetOrderHandler(repo domain.OrderRepository) *query.GetOrderHandler {
	return query.NewGetOrderHandler(repo)
}

func ProvideListOrdersHandler(repo domain.OrderRepository) *query.ListOrdersHandler {
	return query.NewListOrdersHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
	ProvideItemRepository,
	ProvideMovementRepository,
	ProvideLedger,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateOrderHandler,
	ProvideTransitionOrderHandler,
	ProvideTransitionGroupHandler,
	ProvideEditItemHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetOrderHandler,
	ProvideListOrdersHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHandler initializes order handler with all dependencies
func InitializeHandler(db *gorm.DB, publisher *kafka.Publisher) (*http.OrderHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewOrderHandler,
	)
	return nil, nil
}
