package console

import (
	"strconv"

	"github.com/mserebryaakov/aggregator-pim/internal/client"
	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

// Services bundles the API clients of every entity.
type Services struct {
	Addresses   *client.EntityService[entity.Address]
	Baskets     *client.BasketService
	BasketItems *client.EntityService[entity.BasketItem]
	Categories  *client.EntityService[entity.Category]
	Products    *client.EntityService[entity.Product]
	Orders      *client.OrderService
	Users       *client.EntityService[entity.User]
}

func NewServices(c *client.Client) *Services {
	return &Services{
		Addresses:   client.NewAddressService(c),
		Baskets:     client.NewBasketService(c),
		BasketItems: client.NewBasketItemService(c),
		Categories:  client.NewCategoryService(c),
		Products:    client.NewProductService(c),
		Orders:      client.NewOrderService(c),
		Users:       client.NewUserService(c),
	}
}

// RegisterEntities adds the routes of all six entities and the home view.
func RegisterEntities(r *Router, s *Services, itemsPerPage int) []MenuItem {
	menu := []MenuItem{
		Register(r, categoryModule(s), itemsPerPage),
		Register(r, productModule(s), itemsPerPage),
		Register(r, basketModule(s), itemsPerPage),
		Register(r, basketItemModule(s), itemsPerPage),
		Register(r, addressModule(s), itemsPerPage),
		Register(r, orderModule(s), itemsPerPage),
	}

	r.Handle(Route{Path: HomeRoute, Open: staticPage(&HomePage{Items: menu})})

	return menu
}

func idColumn[T entity.Entity]() Column[T] {
	return Column[T]{
		Header: "ID",
		Sort:   "id",
		Value: func(e T) string {
			id, _ := e.Identifier()
			return formatID(id)
		},
	}
}

// refLabel renders a related record, or nothing when it is absent.
func refLabel[R entity.Entity](ref *R, label func(R) string) string {
	if ref == nil {
		return ""
	}
	return label(*ref)
}

func userLogin(u entity.User) string { return u.Login }

func basketLabel(b entity.Basket) string {
	return formatID(b.ID)
}

func productName(p entity.Product) string {
	return entity.Deref(p.Name)
}

func categoryName(c entity.Category) string {
	return entity.Deref(c.Name)
}

func addressLabel(a entity.Address) string {
	if a.Name != nil {
		return *a.Name
	}
	return formatID(a.ID)
}

func categoryModule(s *Services) Module[entity.Category] {
	return Module[entity.Category]{
		Route:   "category",
		Title:   "Categories",
		Service: s.Categories,
		Columns: []Column[entity.Category]{
			idColumn[entity.Category](),
			{Header: "Name", Sort: "name", Value: func(c entity.Category) string { return entity.Deref(c.Name) }},
		},
		Fields: []Field[entity.Category]{
			Text("name", "Name", true, func(c *entity.Category) **string { return &c.Name }),
		},
	}
}

func productModule(s *Services) Module[entity.Product] {
	return Module[entity.Product]{
		Route:   "product",
		Title:   "Products",
		Service: s.Products,
		Columns: []Column[entity.Product]{
			idColumn[entity.Product](),
			{Header: "Name", Sort: "name", Value: productName},
			{Header: "Description", Sort: "description", Value: func(p entity.Product) string { return entity.Deref(p.Description) }},
			{Header: "Price", Sort: "price", Value: func(p entity.Product) string { return formatPtr(p.Price, formatFloat) }},
			{Header: "Stock", Sort: "stock", Value: func(p entity.Product) string { return formatPtr(p.Stock, strconv.Itoa) }},
			{Header: "Photo", Value: func(p entity.Product) string { return describeBlob(p.Photo, entity.Deref(p.PhotoContentType)) }},
			{Header: "Category", Value: func(p entity.Product) string { return refLabel(p.Category, categoryName) }},
		},
		Fields: []Field[entity.Product]{
			Text("name", "Name", true, func(p *entity.Product) **string { return &p.Name }),
			Text("description", "Description", false, func(p *entity.Product) **string { return &p.Description }),
			Float("price", "Price", true, func(p *entity.Product) **float64 { return &p.Price }),
			Int("stock", "Stock", true, func(p *entity.Product) **int { return &p.Stock }),
			File("photo", "Photo",
				func(p *entity.Product) *[]byte { return &p.Photo },
				func(p *entity.Product) **string { return &p.PhotoContentType }),
		},
		Relations: func() []Relation[entity.Product] {
			return []Relation[entity.Product]{
				RelationOf("category", "Category", s.Categories,
					func(p *entity.Product) **entity.Category { return &p.Category }, categoryName),
			}
		},
	}
}

func basketModule(s *Services) Module[entity.Basket] {
	return Module[entity.Basket]{
		Route:   "basket",
		Title:   "Baskets",
		Service: s.Baskets,
		Columns: []Column[entity.Basket]{
			idColumn[entity.Basket](),
			{Header: "Create Date", Sort: "createDate", Value: func(b entity.Basket) string { return formatPtr(b.CreateDate, entity.Date.String) }},
			{Header: "Status", Sort: "status", Value: func(b entity.Basket) string { return string(entity.Deref(b.Status)) }},
			{Header: "Total Cost", Sort: "totalCost", Value: func(b entity.Basket) string { return formatPtr(b.TotalCost, formatFloat) }},
			{Header: "User", Value: func(b entity.Basket) string { return refLabel(b.User, userLogin) }},
		},
		Fields: []Field[entity.Basket]{
			DateOf("createDate", "Create Date", true, func(b *entity.Basket) **entity.Date { return &b.CreateDate }),
			Enum("status", "Status", true, entity.BasketStatuses, func(b *entity.Basket) **entity.BasketStatus { return &b.Status }),
			Float("totalCost", "Total Cost", true, func(b *entity.Basket) **float64 { return &b.TotalCost }),
		},
	}
}

func basketItemModule(s *Services) Module[entity.BasketItem] {
	return Module[entity.BasketItem]{
		Route:   "basket-item",
		Title:   "Basket Items",
		Service: s.BasketItems,
		Columns: []Column[entity.BasketItem]{
			idColumn[entity.BasketItem](),
			{Header: "Quantity", Sort: "quantity", Value: func(i entity.BasketItem) string { return formatPtr(i.Quantity, strconv.Itoa) }},
			{Header: "Total Cost", Sort: "totalCost", Value: func(i entity.BasketItem) string { return formatPtr(i.TotalCost, strconv.Itoa) }},
			{Header: "Basket", Value: func(i entity.BasketItem) string { return refLabel(i.Basket, basketLabel) }},
			{Header: "Product", Value: func(i entity.BasketItem) string { return refLabel(i.Product, productName) }},
		},
		Fields: []Field[entity.BasketItem]{
			Int("quantity", "Quantity", true, func(i *entity.BasketItem) **int { return &i.Quantity }),
			Int("totalCost", "Total Cost", true, func(i *entity.BasketItem) **int { return &i.TotalCost }),
		},
		Relations: func() []Relation[entity.BasketItem] {
			return []Relation[entity.BasketItem]{
				RelationOf("basket", "Basket", s.Baskets,
					func(i *entity.BasketItem) **entity.Basket { return &i.Basket }, basketLabel),
				RelationOf("product", "Product", s.Products,
					func(i *entity.BasketItem) **entity.Product { return &i.Product }, productName),
			}
		},
	}
}

func addressModule(s *Services) Module[entity.Address] {
	return Module[entity.Address]{
		Route:   "address",
		Title:   "Addresses",
		Service: s.Addresses,
		Columns: []Column[entity.Address]{
			idColumn[entity.Address](),
			{Header: "Name", Sort: "name", Value: func(a entity.Address) string { return entity.Deref(a.Name) }},
			{Header: "City", Sort: "city", Value: func(a entity.Address) string { return entity.Deref(a.City) }},
			{Header: "District", Sort: "district", Value: func(a entity.Address) string { return entity.Deref(a.District) }},
			{Header: "Details", Sort: "details", Value: func(a entity.Address) string { return entity.Deref(a.Details) }},
			{Header: "User", Value: func(a entity.Address) string { return refLabel(a.User, userLogin) }},
		},
		Fields: []Field[entity.Address]{
			Text("name", "Name", true, func(a *entity.Address) **string { return &a.Name }),
			Text("city", "City", true, func(a *entity.Address) **string { return &a.City }),
			Text("district", "District", true, func(a *entity.Address) **string { return &a.District }),
			Text("details", "Details", true, func(a *entity.Address) **string { return &a.Details }),
		},
		Relations: func() []Relation[entity.Address] {
			return []Relation[entity.Address]{
				RelationOf("user", "User", s.Users,
					func(a *entity.Address) **entity.User { return &a.User }, userLogin),
			}
		},
	}
}

func orderModule(s *Services) Module[entity.Order] {
	return Module[entity.Order]{
		Route:   "order",
		Title:   "Orders",
		Service: s.Orders,
		Columns: []Column[entity.Order]{
			idColumn[entity.Order](),
			{Header: "Create Date", Sort: "createDate", Value: func(o entity.Order) string { return formatPtr(o.CreateDate, entity.Date.String) }},
			{Header: "Status", Sort: "status", Value: func(o entity.Order) string { return string(entity.Deref(o.Status)) }},
			{Header: "User", Value: func(o entity.Order) string { return refLabel(o.User, userLogin) }},
			{Header: "Basket", Value: func(o entity.Order) string { return refLabel(o.Basket, basketLabel) }},
			{Header: "Address", Value: func(o entity.Order) string { return refLabel(o.Address, addressLabel) }},
		},
		Fields: []Field[entity.Order]{
			DateOf("createDate", "Create Date", true, func(o *entity.Order) **entity.Date { return &o.CreateDate }),
			Enum("status", "Status", true, entity.OrderStatuses, func(o *entity.Order) **entity.OrderStatus { return &o.Status }),
		},
		Relations: func() []Relation[entity.Order] {
			return []Relation[entity.Order]{
				RelationOf("user", "User", s.Users,
					func(o *entity.Order) **entity.User { return &o.User }, userLogin),
				RelationOf("basket", "Basket", s.Baskets,
					func(o *entity.Order) **entity.Basket { return &o.Basket }, basketLabel),
				RelationOf("address", "Address", s.Addresses,
					func(o *entity.Order) **entity.Address { return &o.Address }, addressLabel),
			}
		},
	}
}
