//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tokoparts/backoffice/internal/inventory/delivery/http"
	"github.com/tokoparts/backoffice/internal/inventory/domain"
	"github.com/tokoparts/backoffice/internal/inventory/ledger"
	"github.com/tokoparts/backoffice/internal/inventory/repository"
	"github.com/tokoparts/backoffice/internal/inventory/usecase/command"
	"github.com/tokoparts/backoffice/internal/inventory/usecase/query"
)

// ProvideItemRepository provides the item repository with tracing
func ProvideItemRepository(db *gorm.DB) domain.ItemRepository {
	return repository.NewGormItemRepositoryWithTracing(db)
}

// ProvideMovementRepository provides the stock movement repository
func ProvideMovementRepository(db *gorm.DB) domain.MovementRepository {
	return repository.NewGormMovementRepository(db)
}

// ProvideLedger provides the stock ledger
func ProvideLedger(items domain.ItemRepository, movements domain.MovementRepository) *ledger.Ledger {
	return ledger.New(items, movements)
}

// Command Handlers Providers
func ProvideCreateItemHandler(repo domain.ItemRepository) *command.CreateItemHandler {
	return command.NewCreateItemHandler(repo)
}

func ProvideUpdateItemHandler(repo domain.ItemRepository) *command.UpdateItemHandler {
	return command.NewUpdateItemHandler(repo)
}

func ProvideDeleteItemHandler(repo domain.ItemRepository) *command.DeleteItemHandler {
	return command.NewDeleteItemHandler(repo)
}

func ProvideReceiveStockHandler(l *ledger.Ledger) *command.ReceiveStockHandler {
	return command.NewReceiveStockHandler(l)
}

// Query Handlers Providers
func ProvideGetItemHandler(repo domain.ItemRepository) *query.GetItemHandler {
	return query.NewGetItemHandler(repo)
}

func ProvideListItemsHandler(repo domain.ItemRepository) *query.ListItemsHandler {
	return query.NewListItemsHandler(repo)
}

func ProvideListMovementsHandler(repo domain.MovementRepository) *query.ListMovementsHandler {
	return query.NewListMovementsHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideItemRepository,
	ProvideMovementRepository,
	ProvideLedger,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateItemHandler,
	ProvideUpdateItemHandler,
	ProvideDeleteItemHandler,
	ProvideReceiveStockHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetItemHandler,
	ProvideListItemsHandler,
	ProvideListMovementsHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHandler initializes inventory handler with all dependencies
func InitializeHandler(db *gorm.DB) (*http.InventoryHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewInventoryHandler,
	)
	return nil, nil
}
