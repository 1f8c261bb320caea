package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tokoparts/backoffice/internal/order/domain"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Order{}, &domain.OrderItem{})
}

func (r *GormOrderRepository) Create(order *domain.Order) error {
	return r.db.Create(order).Error
}

func (r *GormOrderRepository) FindByID(id uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	normalize(&order)
	return &order, nil
}

func (r *GormOrderRepository) FindAll(status string, limit, offset int) ([]domain.Order, error) {
	query := r.db.Preload("Items").Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []domain.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	for i := range orders {
		normalize(&orders[i])
	}
	return orders, nil
}

func (r *GormOrderRepository) FindGroup(customerName, tempo string) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.Preload("Items").
		Where("customer_name = ? AND tempo = ? AND status IN ?",
			customerName, tempo, []string{domain.StatusPending, domain.StatusProcessing}).
		Order("created_at").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	for i := range orders {
		normalize(&orders[i])
	}
	return orders, nil
}

func (r *GormOrderRepository) UpdateStatus(id uint, status string, completedAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if completedAt != nil {
		updates["completed_at"] = completedAt
	}

	result := r.db.Model(&domain.Order{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *GormOrderRepository) Touch(id uint) error {
	return r.db.Model(&domain.Order{}).
		Where("id = ?", id).
		Update("updated_at", time.Now()).Error
}

func (r *GormOrderRepository) UpdateItem(item *domain.OrderItem) error {
	return r.db.Save(item).Error
}

// ReplaceItems rewrites the order's line set and total inside one
// transaction. Lines absent from order.Items are deleted; the rest are saved.
func (r *GormOrderRepository) ReplaceItems(order *domain.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		keep := make([]uint, 0, len(order.Items))
		for _, item := range order.Items {
			keep = append(keep, item.ID)
		}

		del := tx.Where("order_id = ?", order.ID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		if err := del.Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}

		for i := range order.Items {
			if err := tx.Save(&order.Items[i]).Error; err != nil {
				return err
			}
		}

		return tx.Model(&domain.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"total_amount": order.TotalAmount,
				"status":       order.Status,
			}).Error
	})
}

// normalize folds legacy suffix-encoded customer names into the structured
// metadata columns, so only one canonical shape circulates above this layer.
func normalize(order *domain.Order) {
	name, meta := domain.ParseLegacyCustomerName(order.CustomerName)
	if meta.Empty() {
		return
	}
	order.CustomerName = name
	if order.Resi == "" {
		order.Resi = meta.Resi
	}
	if order.Shop == "" {
		order.Shop = meta.Shop
	}
	if order.Channel == "" {
		order.Channel = meta.Channel
	}
}
