// Package basket keeps the active basket of each user and its items.
package basket

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
	"github.com/mserebryaakov/aggregator-pim/internal/storage"
)

type BasketLogHook struct{}

func (h *BasketLogHook) Fire(entry *logrus.Entry) error {
	entry.Message = "Basket: " + entry.Message
	return nil
}

func (h *BasketLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

var (
	errProductNotFound = errors.New("product not found")
	errItemNotInBasket = errors.New("basket item is not in the active basket")
)

type Service struct {
	db  *gorm.DB
	log *logrus.Entry
}

func NewService(db *gorm.DB, log *logrus.Entry) *Service {
	return &Service{
		db:  db,
		log: log,
	}
}

func baskets(tx *gorm.DB) *storage.Repository[entity.Basket] {
	return storage.NewRepository[entity.Basket](tx, nil, "User", "BasketItems", "BasketItems.Product")
}

// Active returns the active basket of user, creating an empty one when the
// user has none.
func (s *Service) Active(ctx context.Context, user *entity.User) (*entity.Basket, error) {
	var basket *entity.Basket
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		basket, err = s.active(ctx, tx, user)
		return err
	})
	return basket, err
}

func (s *Service) active(ctx context.Context, tx *gorm.DB, user *entity.User) (*entity.Basket, error) {
	repo := baskets(tx)

	found, err := repo.FindAll(ctx,
		storage.Where("user_id = ? AND status = ?", user.ID, entity.BasketActive))
	if err != nil {
		return nil, fmt.Errorf("failed to find active basket - %w", err)
	}
	if len(found) > 0 {
		return &found[0], nil
	}

	today := entity.Today()
	basket := entity.Basket{
		CreateDate: &today,
		Status:     entity.Ptr(entity.BasketActive),
		TotalCost:  entity.Ptr(0.0),
		User:       user,
	}
	if err := repo.Create(ctx, &basket); err != nil {
		return nil, fmt.Errorf("failed to create basket - %w", err)
	}
	s.log.Debugf("created basket %d for %s", basket.ID, user.Login)
	return repo.Find(ctx, basket.ID)
}

// AddItem puts one unit of the product into the active basket and
// recalculates the basket total.
func (s *Service) AddItem(ctx context.Context, user *entity.User, productID int64) (*entity.Basket, error) {
	var basket *entity.Basket
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		active, err := s.active(ctx, tx, user)
		if err != nil {
			return err
		}

		product, err := storage.NewRepository[entity.Product](tx, nil).Find(ctx, productID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return errProductNotFound
			}
			return err
		}

		item := entity.BasketItem{
			Quantity:  entity.Ptr(1),
			TotalCost: entity.Ptr(int(entity.Deref(product.Price))),
			Basket:    active,
			Product:   product,
		}
		if err := storage.NewRepository[entity.BasketItem](tx, nil).Create(ctx, &item); err != nil {
			return fmt.Errorf("failed to add basket item - %w", err)
		}

		basket, err = s.recalculate(ctx, tx, active.ID)
		return err
	})
	return basket, err
}

// DeleteItem removes the item from the active basket and recalculates the
// basket total.
func (s *Service) DeleteItem(ctx context.Context, user *entity.User, itemID int64) (*entity.Basket, error) {
	var basket *entity.Basket
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		active, err := s.active(ctx, tx, user)
		if err != nil {
			return err
		}

		res := tx.WithContext(ctx).Where("id = ? AND basket_id = ?", itemID, active.ID).Delete(&entity.BasketItem{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete basket item - %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return errItemNotInBasket
		}

		basket, err = s.recalculate(ctx, tx, active.ID)
		return err
	})
	return basket, err
}

func (s *Service) recalculate(ctx context.Context, tx *gorm.DB, basketID int64) (*entity.Basket, error) {
	repo := baskets(tx)

	basket, err := repo.Find(ctx, basketID)
	if err != nil {
		return nil, err
	}

	total := basket.ItemsCost()
	if err := tx.WithContext(ctx).Model(&entity.Basket{}).Where("id = ?", basketID).
		Update("total_cost", total).Error; err != nil {
		return nil, fmt.Errorf("failed to update basket total - %w", err)
	}
	basket.TotalCost = &total
	return basket, nil
}
