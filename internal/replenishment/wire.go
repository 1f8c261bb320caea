//go:build wireinject
// +build wireinject

package replenishment

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	invdomain "github.com/tokoparts/backoffice/internal/inventory/domain"
	invrepository "github.com/tokoparts/backoffice/internal/inventory/repository"
	"github.com/tokoparts/backoffice/internal/replenishment/delivery/http"
	"github.com/tokoparts/backoffice/internal/replenishment/domain"
	"github.com/tokoparts/backoffice/internal/replenishment/repository"
	"github.com/tokoparts/backoffice/internal/replenishment/usecase/command"
	"github.com/tokoparts/backoffice/internal/replenishment/usecase/query"
)

// ProvideSupplierOrderRepository provides the supplier order repository
func ProvideSupplierOrderRepository(db *gorm.DB) domain.SupplierOrderRepository {
	return repository.NewGormSupplierOrderRepository(db)
}

// ProvideItemRepository provides the item repository with tracing
func ProvideItemRepository(db *gorm.DB) invdomain.ItemRepository {
	return invrepository.NewGormItemRepositoryWithTracing(db)
}

// ProvideMovementRepository provides the stock movement repository
func ProvideMovementRepository(db *gorm.DB) invdomain.MovementRepository {
	return invrepository.NewGormMovementRepository(db)
}

// Command Handlers Providers
func ProvideConfirmBatchHandler(repo domain.SupplierOrderRepository) *command.ConfirmBatchHandler {
	return command.NewConfirmBatchHandler(repo)
}

func ProvideUpdateBatchStatusHandler(repo domain.SupplierOrderRepository) *command.UpdateBatchStatusHandler {
	return command.NewUpdateBatchStatusHandler(repo)
}

// Query Handlers Providers
func ProvidePlanHandler(items invdomain.ItemRepository, movements invdomain.MovementRepository) *query.PlanHandler {
	return query.NewPlanHandler(items, movements)
}

func ProvideListBatchesHandler(repo domain.SupplierOrderRepository) *query.ListBatchesHandler {
	return query.NewListBatchesHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideSupplierOrderRepository,
	ProvideItemRepository,
	ProvideMovementRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideConfirmBatchHandler,
	ProvideUpdateBatchStatusHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvidePlanHandler,
	ProvideListBatchesHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHandler initializes replenishment handler with all dependencies
func InitializeHandler(db *gorm.DB) (*http.ReplenishmentHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewReplenishmentHandler,
	)
	return nil, nil
}
