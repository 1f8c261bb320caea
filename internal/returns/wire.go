//go:build wireinject
// +build wireinject

package returns

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	invdomain "github.com/tokoparts/backoffice/internal/inventory/domain"
	"github.com/tokoparts/backoffice/internal/inventory/ledger"
	invrepository "github.com/tokoparts/backoffice/internal/inventory/repository"
	orderdomain "github.com/tokoparts/backoffice/internal/order/domain"
	orderrepository "github.com/tokoparts/backoffice/internal/order/repository"
	"github.com/tokoparts/backoffice/internal/returns/delivery/http"
	"github.com/tokoparts/backoffice/internal/returns/domain"
	"github.com/tokoparts/backoffice/internal/returns/guard"
	"github.com/tokoparts/backoffice/internal/returns/repository"
	"github.com/tokoparts/backoffice/internal/returns/usecase/command"
	"github.com/tokoparts/backoffice/kafka"
)

// ProvideReturnRepository provides the return repository
func ProvideReturnRepository(db *gorm.DB) domain.ReturnRepository {
	return repository.NewGormReturnRepository(db)
}

// ProvideOrderRepository provides the order repository
func ProvideOrderRepository(db *gorm.DB) orderdomain.OrderRepository {
	return orderrepository.NewGormOrderRepository(db)
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
func ProvideProcessReturnHandler(orders orderdomain.OrderRepository, returns domain.ReturnRepository, l *ledger.Ledger) *command.ProcessReturnHandler {
	return command.NewProcessReturnHandler(orders, returns, l)
}

func ProvideTypedReturnHandler(returns domain.ReturnRepository, l *ledger.Ledger) *command.TypedReturnHandler {
	return command.NewTypedReturnHandler(returns, l)
}

func ProvideConfirmExchangeHandler(returns domain.ReturnRepository, l *ledger.Ledger) *command.ConfirmExchangeHandler {
	return command.NewConfirmExchangeHandler(returns, l)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideReturnRepository,
	ProvideOrderRepository,
	ProvideItemRepository,
	ProvideMovementRepository,
	ProvideLedger,
)

var CommandHandlerSet = wire.NewSet(
	ProvideProcessReturnHandler,
	ProvideTypedReturnHandler,
	ProvideConfirmExchangeHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
)

// InitializeHandler initializes return handler with all dependencies
func InitializeHandler(db *gorm.DB, g *guard.IdempotencyGuard, publisher *kafka.Publisher) (*http.ReturnHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewReturnHandler,
	)
	return nil, nil
}
