package store

import (
	"context"
	"fmt"

	"table-ordering-api/models"

	"gorm.io/gorm"
)

type Orders struct {
	db *gorm.DB
}

func NewOrders(db *gorm.DB) *Orders {
	return &Orders{db: db}
}

// OrderUpdate carries a status PATCH. Nil fields are left unchanged.
type OrderUpdate struct {
	Status        *models.OrderStatus
	PaymentStatus *models.PaymentStatus
	ChangedBy     string
	Role          models.UserRole
}

func itemsInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id asc")
}

// Create stores a new order with its items in Pending/Pending
func (s *Orders) Create(ctx context.Context, order *models.Order) error {
	order.Status = models.StatusPending
	order.PaymentStatus = models.PaymentPending
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// List returns orders newest first, optionally restricted to statuses
func (s *Orders) List(ctx context.Context, statuses ...models.OrderStatus) ([]models.Order, error) {
	orders := []models.Order{}
	query := s.db.WithContext(ctx).Preload("Items", itemsInOrder)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *Orders) Get(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items", itemsInOrder).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

// History returns the status change audit trail, oldest first
func (s *Orders) History(ctx context.Context, id string) ([]models.OrderStatusHistory, error) {
	history := []models.OrderStatusHistory{}
	err := s.db.WithContext(ctx).Where("order_id = ?", id).Order("id asc").Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("order history: %w", err)
	}
	return history, nil
}

// Update applies a status and/or payment change. check, when non-nil,
// sees the current order and may veto the change. There is no version
// comparison: a later write overwrites an earlier one.
func (s *Orders) Update(ctx context.Context, id string, upd OrderUpdate, check func(current *models.Order) error) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
			return notFound(err)
		}
		if check != nil {
			if err := check(&order); err != nil {
				return err
			}
		}

		history := models.OrderStatusHistory{
			OrderID:     order.ID,
			FromStatus:  order.Status,
			ToStatus:    order.Status,
			FromPayment: order.PaymentStatus,
			ToPayment:   order.PaymentStatus,
			ChangedBy:   upd.ChangedBy,
			Role:        upd.Role,
		}
		changes := map[string]interface{}{}
		if upd.Status != nil {
			changes["status"] = *upd.Status
			history.ToStatus = *upd.Status
		}
		if upd.PaymentStatus != nil {
			changes["payment_status"] = *upd.PaymentStatus
			history.ToPayment = *upd.PaymentStatus
		}
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&order).Updates(changes).Error; err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
