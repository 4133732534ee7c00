package order

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

type OrderService interface {
	CreateOrder(ctx context.Context, user *entity.User, order entity.Order, authorization string) (*entity.Order, error)
	Cancel(ctx context.Context, user *entity.User, orderID int64, authorization string) (*entity.Order, error)
	UpdateAddress(ctx context.Context, user *entity.User, orderID, addressID int64) (*entity.Order, error)
}

// Notifier reports order changes to the order-management application.
type Notifier interface {
	CreateOrder(ctx context.Context, order *entity.Order, authorization string) error
	CancelOrder(ctx context.Context, orderID int64, authorization string) error
}

type orderService struct {
	storage  Storage
	notifier Notifier
	logger   *logrus.Entry
}

// NewService builds the order service. A nil notifier keeps orders local.
func NewService(storage Storage, notifier Notifier, log *logrus.Entry) OrderService {
	return &orderService{
		storage:  storage,
		notifier: notifier,
		logger:   log,
	}
}

func owns(user *entity.User, ownerID *int64) bool {
	return ownerID != nil && *ownerID == user.ID
}

// CreateOrder places a NEW order dated today for user. The basket and the
// address must belong to user. A failed notification rolls the order back.
func (s *orderService) CreateOrder(ctx context.Context, user *entity.User, order entity.Order, authorization string) (*entity.Order, error) {
	if _, ok := order.Identifier(); ok {
		return nil, errOrderHasID
	}
	basketID := entity.RefID(order.Basket)
	if basketID == nil {
		return nil, errBasketRequired
	}
	addressID := entity.RefID(order.Address)
	if addressID == nil {
		return nil, errAddressRequired
	}

	var created *entity.Order
	err := s.storage.Transaction(ctx, func(tx Storage) error {
		basket, err := tx.FindBasket(ctx, *basketID)
		if err != nil {
			return err
		}
		if !owns(user, basket.UserID) {
			return errNoAccessToBasket
		}

		address, err := tx.FindAddress(ctx, *addressID)
		if err != nil {
			return err
		}
		if !owns(user, address.UserID) {
			return errNoAccessToAddress
		}

		today := entity.Today()
		placed := entity.Order{
			CreateDate: &today,
			Status:     entity.Ptr(entity.OrderNew),
			User:       user,
			Basket:     basket,
			Address:    address,
		}
		if err := tx.CreateOrder(ctx, &placed); err != nil {
			return err
		}

		created, err = tx.FindOrder(ctx, placed.ID)
		if err != nil {
			return err
		}

		if s.notifier != nil {
			return s.notifier.CreateOrder(ctx, created, authorization)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("order %d placed by %s", created.ID, user.Login)
	return created, nil
}

// Cancel marks the order CANCELLED. Only the owner or an admin may cancel.
func (s *orderService) Cancel(ctx context.Context, user *entity.User, orderID int64, authorization string) (*entity.Order, error) {
	var cancelled *entity.Order
	err := s.storage.Transaction(ctx, func(tx Storage) error {
		order, err := tx.FindOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if !owns(user, order.UserID) && !user.HasAuthority(entity.RoleAdmin) {
			return errNoAccessToOrder
		}

		if err := tx.UpdateStatus(ctx, orderID, entity.OrderCancelled); err != nil {
			return err
		}
		order.Status = entity.Ptr(entity.OrderCancelled)
		cancelled = order

		if s.notifier != nil {
			return s.notifier.CancelOrder(ctx, orderID, authorization)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("order %d cancelled by %s", orderID, user.Login)
	return cancelled, nil
}

// UpdateAddress moves the order to another address of its owner.
func (s *orderService) UpdateAddress(ctx context.Context, user *entity.User, orderID, addressID int64) (*entity.Order, error) {
	var updated *entity.Order
	err := s.storage.Transaction(ctx, func(tx Storage) error {
		order, err := tx.FindOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if !owns(user, order.UserID) {
			return errNoAccessToOrder
		}

		address, err := tx.FindAddress(ctx, addressID)
		if err != nil {
			return err
		}
		if !owns(user, address.UserID) {
			return errNoAccessToAddress
		}

		if err := tx.UpdateAddress(ctx, orderID, addressID); err != nil {
			return err
		}
		updated, err = tx.FindOrder(ctx, orderID)
		return err
	})
	return updated, err
}
