package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tokoparts/backoffice/internal/replenishment/domain"
)

type GormSupplierOrderRepository struct {
	db *gorm.DB
}

func NewGormSupplierOrderRepository(db *gorm.DB) *GormSupplierOrderRepository {
	return &GormSupplierOrderRepository{db: db}
}

func (r *GormSupplierOrderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.SupplierOrder{}, &domain.SupplierOrderLine{})
}

func (r *GormSupplierOrderRepository) Create(order *domain.SupplierOrder) error {
	return r.db.Create(order).Error
}

func (r *GormSupplierOrderRepository) FindByID(id uint) (*domain.SupplierOrder, error) {
	var order domain.SupplierOrder
	err := r.db.Preload("Lines").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrBatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormSupplierOrderRepository) FindAll(status string, limit, offset int) ([]domain.SupplierOrder, error) {
	query := r.db.Preload("Lines").Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []domain.SupplierOrder
	err := query.Find(&orders).Error
	return orders, err
}

func (r *GormSupplierOrderRepository) UpdateStatus(id uint, status string) error {
	result := r.db.Model(&domain.SupplierOrder{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrBatchNotFound
	}
	return nil
}
