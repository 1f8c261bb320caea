package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tokoparts/backoffice/internal/inventory/domain"
)

type GormItemRepository struct {
	db *gorm.DB
}

func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

func (r *GormItemRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Item{}, &domain.StockMovement{})
}

func (r *GormItemRepository) Create(item *domain.Item) error {
	return r.db.Create(item).Error
}

func (r *GormItemRepository) FindByID(id uint) (*domain.Item, error) {
	var item domain.Item
	err := r.db.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormItemRepository) FindByPartNumber(partNumber string) (*domain.Item, error) {
	var item domain.Item
	err := r.db.Where("part_number = ?", partNumber).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormItemRepository) FindAll(limit, offset int) ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.Order("part_number").Limit(limit).Offset(offset).Find(&items).Error
	return items, err
}

func (r *GormItemRepository) FindBelowQuantity(threshold int) ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.Where("quantity < ?", threshold).Order("part_number").Find(&items).Error
	return items, err
}

// Update writes the item back guarded by its version. A stale version means
// another writer won the race; the caller gets ErrVersionConflict and must
// re-read before retrying.
func (r *GormItemRepository) Update(item *domain.Item) error {
	readVersion := item.Version
	item.Version++

	result := r.db.Model(&domain.Item{}).
		Where("id = ? AND version = ?", item.ID, readVersion).
		Select("*").
		Omit("id", "created_at", "deleted_at").
		Updates(item)
	if result.Error != nil {
		item.Version = readVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		item.Version = readVersion
		return domain.ErrVersionConflict
	}
	return nil
}

func (r *GormItemRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Item{}, id).Error
}

type GormMovementRepository struct {
	db *gorm.DB
}

func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

func (r *GormMovementRepository) Append(movement *domain.StockMovement) error {
	return r.db.Create(movement).Error
}

func (r *GormMovementRepository) FindAll(limit, offset int) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&movements).Error
	return movements, err
}

func (r *GormMovementRepository) FindByPartNumber(partNumber string, limit int) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	err := r.db.Where("part_number = ?", partNumber).
		Order("created_at DESC").
		Limit(limit).
		Find(&movements).Error
	return movements, err
}

func (r *GormMovementRepository) FindLatestIncoming(partNumber string) (*domain.StockMovement, error) {
	var movement domain.StockMovement
	err := r.db.Where("part_number = ? AND direction = ?", partNumber, domain.DirectionIn).
		Order("created_at DESC").
		First(&movement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movement, nil
}

func (r *GormMovementRepository) FindLatestIncomingByTerm(partNumber string, cash bool) (*domain.StockMovement, error) {
	query := r.db.Where("part_number = ? AND direction = ?", partNumber, domain.DirectionIn)
	if cash {
		query = query.Where("payment_term = ?", domain.PaymentTermCash)
	} else {
		query = query.Where("payment_term <> ? AND payment_term <> ''", domain.PaymentTermCash)
	}

	var movement domain.StockMovement
	err := query.Order("created_at DESC").First(&movement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movement, nil
}
