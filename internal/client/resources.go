package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

const (
	AddressResource    = "api/addresses"
	BasketResource     = "api/baskets"
	BasketItemResource = "api/basket-items"
	CategoryResource   = "api/categories"
	ProductResource    = "api/products"
	OrderResource      = "api/orders"
	UserResource       = "api/users"
)

func NewAddressService(c *Client) *EntityService[entity.Address] {
	return NewEntityService[entity.Address](c, AddressResource)
}

func NewBasketItemService(c *Client) *EntityService[entity.BasketItem] {
	return NewEntityService[entity.BasketItem](c, BasketItemResource)
}

func NewCategoryService(c *Client) *EntityService[entity.Category] {
	return NewEntityService[entity.Category](c, CategoryResource)
}

func NewProductService(c *Client) *EntityService[entity.Product] {
	return NewEntityService[entity.Product](c, ProductResource)
}

// NewUserService is read-only in practice: the server only lists users.
func NewUserService(c *Client) *EntityService[entity.User] {
	return NewEntityService[entity.User](c, UserResource)
}

type BasketService struct {
	*EntityService[entity.Basket]
}

func NewBasketService(c *Client) *BasketService {
	return &BasketService{EntityService: NewEntityService[entity.Basket](c, BasketResource)}
}

// CreateOrGetActive returns the caller's active basket, creating it if needed.
func (s *BasketService) CreateOrGetActive(ctx context.Context) (*Response[entity.Basket], error) {
	return send[entity.Basket](ctx, s.client, http.MethodGet, s.resourceURL+"/createOrGetActiveBasket", nil, "")
}

func (s *BasketService) AddItem(ctx context.Context, productID int64) (*Response[entity.Basket], error) {
	return send[entity.Basket](ctx, s.client, http.MethodPost, fmt.Sprintf("%s/addItem/%d", s.resourceURL, productID), nil, "")
}

func (s *BasketService) DeleteItem(ctx context.Context, basketItemID int64) (*Response[entity.Basket], error) {
	return send[entity.Basket](ctx, s.client, http.MethodGet, fmt.Sprintf("%s/deleteItem/%d", s.resourceURL, basketItemID), nil, "")
}

type OrderService struct {
	*EntityService[entity.Order]
}

func NewOrderService(c *Client) *OrderService {
	return &OrderService{EntityService: NewEntityService[entity.Order](c, OrderResource)}
}

func (s *OrderService) Cancel(ctx context.Context, orderID int64) (*Response[entity.Order], error) {
	return send[entity.Order](ctx, s.client, http.MethodGet, fmt.Sprintf("%s/cancel/%d", s.resourceURL, orderID), nil, "")
}

func (s *OrderService) UpdateAddress(ctx context.Context, orderID, addressID int64) (*Response[entity.Order], error) {
	return send[entity.Order](ctx, s.client, http.MethodGet, fmt.Sprintf("%s/updateAddress/%d/%d", s.resourceURL, orderID, addressID), nil, "")
}
