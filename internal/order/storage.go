package order

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
	"github.com/mserebryaakov/aggregator-pim/internal/storage"
)

// NewRepository returns the order repository shared by the generic order
// endpoints and the order service.
func NewRepository(db *gorm.DB) *storage.Repository[entity.Order] {
	return storage.NewRepository[entity.Order](db,
		map[string]string{"createDate": "create_date", "status": "status"},
		"User", "Basket", "Address", "Address.User")
}

type Storage interface {
	// Transaction runs fn against a storage bound to one transaction.
	Transaction(ctx context.Context, fn func(tx Storage) error) error
	FindOrder(ctx context.Context, id int64) (*entity.Order, error)
	FindBasket(ctx context.Context, id int64) (*entity.Basket, error)
	FindAddress(ctx context.Context, id int64) (*entity.Address, error)
	CreateOrder(ctx context.Context, order *entity.Order) error
	UpdateStatus(ctx context.Context, orderID int64, status entity.OrderStatus) error
	UpdateAddress(ctx context.Context, orderID, addressID int64) error
}

type OrderStorage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) Storage {
	return &OrderStorage{
		db: db,
	}
}

func (s *OrderStorage) Transaction(ctx context.Context, fn func(tx Storage) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&OrderStorage{db: tx})
	})
}

func (s *OrderStorage) FindOrder(ctx context.Context, id int64) (*entity.Order, error) {
	order, err := NewRepository(s.db).Find(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errOrderNotFound
	}
	return order, err
}

func (s *OrderStorage) FindBasket(ctx context.Context, id int64) (*entity.Basket, error) {
	basket, err := storage.NewRepository[entity.Basket](s.db, nil).Find(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errBasketNotFound
	}
	return basket, err
}

func (s *OrderStorage) FindAddress(ctx context.Context, id int64) (*entity.Address, error) {
	address, err := storage.NewRepository[entity.Address](s.db, nil).Find(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errAddressNotFound
	}
	return address, err
}

func (s *OrderStorage) CreateOrder(ctx context.Context, order *entity.Order) error {
	if err := NewRepository(s.db).Create(ctx, order); err != nil {
		return fmt.Errorf("failed to create order - %w", err)
	}
	return nil
}

func (s *OrderStorage) UpdateStatus(ctx context.Context, orderID int64, status entity.OrderStatus) error {
	result := s.db.WithContext(ctx).Model(&entity.Order{}).Where("id = ?", orderID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errOrderNotFound
	}
	return nil
}

func (s *OrderStorage) UpdateAddress(ctx context.Context, orderID, addressID int64) error {
	result := s.db.WithContext(ctx).Model(&entity.Order{}).Where("id = ?", orderID).Update("address_id", addressID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errOrderNotFound
	}
	return nil
}
