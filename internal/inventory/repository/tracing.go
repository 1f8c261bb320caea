package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tokoparts/backoffice/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// GormItemRepositoryWithTracing wraps GormItemRepository with tracing
type GormItemRepositoryWithTracing struct {
	*GormItemRepository
}

// NewGormItemRepositoryWithTracing creates a new item repository with tracing
func NewGormItemRepositoryWithTracing(db *gorm.DB) *GormItemRepositoryWithTracing {
	return &GormItemRepositoryWithTracing{
		GormItemRepository: NewGormItemRepository(db),
	}
}

// FindByPartNumberWithContext resolves a part number with tracing
func (r *GormItemRepositoryWithTracing) FindByPartNumberWithContext(ctx context.Context, partNumber string) (*domain.Item, error) {
	_, span := tracer.Start(ctx, "repository.FindByPartNumber",
		trace.WithAttributes(
			attribute.String("item.part_number", partNumber),
		),
	)
	defer span.End()

	item, err := r.GormItemRepository.FindByPartNumber(partNumber)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("item.quantity", item.Quantity),
		attribute.Int("item.version", int(item.Version)),
	)
	return item, nil
}

// UpdateWithContext writes an item back with tracing
func (r *GormItemRepositoryWithTracing) UpdateWithContext(ctx context.Context, item *domain.Item) error {
	_, span := tracer.Start(ctx, "repository.Update",
		trace.WithAttributes(
			attribute.String("item.part_number", item.PartNumber),
			attribute.Int("item.quantity", item.Quantity),
			attribute.Int("item.version", int(item.Version)),
		),
	)
	defer span.End()

	err := r.GormItemRepository.Update(item)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// FindBelowQuantityWithContext lists low-stock items with tracing
func (r *GormItemRepositoryWithTracing) FindBelowQuantityWithContext(ctx context.Context, threshold int) ([]domain.Item, error) {
	_, span := tracer.Start(ctx, "repository.FindBelowQuantity",
		trace.WithAttributes(
			attribute.Int("query.threshold", threshold),
		),
	)
	defer span.End()

	items, err := r.GormItemRepository.FindBelowQuantity(threshold)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(items)))
	return items, nil
}
