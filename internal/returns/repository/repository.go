package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tokoparts/backoffice/internal/returns/domain"
)

type GormReturnRepository struct {
	db *gorm.DB
}

func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

func (r *GormReturnRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.ReturnRecord{})
}

func (r *GormReturnRepository) Create(record *domain.ReturnRecord) error {
	return r.db.Create(record).Error
}

func (r *GormReturnRepository) FindByID(id uint) (*domain.ReturnRecord, error) {
	var record domain.ReturnRecord
	err := r.db.First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrReturnNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *GormReturnRepository) FindByOrderID(orderID uint) ([]domain.ReturnRecord, error) {
	var records []domain.ReturnRecord
	err := r.db.Where("order_id = ?", orderID).Order("created_at").Find(&records).Error
	return records, err
}

func (r *GormReturnRepository) FindPendingExchanges(limit, offset int) ([]domain.ReturnRecord, error) {
	var records []domain.ReturnRecord
	err := r.db.Where("type = ? AND exchanged = false", domain.TypeSupplierSwap).
		Order("created_at").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	return records, err
}

func (r *GormReturnRepository) MarkExchanged(id uint) error {
	result := r.db.Model(&domain.ReturnRecord{}).
		Where("id = ?", id).
		Update("exchanged", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrReturnNotFound
	}
	return nil
}
