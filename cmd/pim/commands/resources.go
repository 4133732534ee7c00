package commands

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/mserebryaakov/aggregator-pim/internal/client"
	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

// resource adapts one typed entity service to the untyped commands.
type resource struct {
	headers []string
	list    func(ctx context.Context, opts *client.RequestOptions) ([]interface{}, [][]string, int64, error)
	get     func(ctx context.Context, id int64) (interface{}, error)
	delete  func(ctx context.Context, id int64) error
}

func entry[T entity.Entity](s *client.EntityService[T], headers []string, row func(T) []string) resource {
	return resource{
		headers: headers,
		list: func(ctx context.Context, opts *client.RequestOptions) ([]interface{}, [][]string, int64, error) {
			res, err := s.Query(ctx, opts)
			if err != nil {
				return nil, nil, 0, err
			}
			items := make([]interface{}, 0, len(res.Body))
			rows := make([][]string, 0, len(res.Body))
			for _, item := range res.Body {
				items = append(items, item)
				rows = append(rows, row(item))
			}
			return items, rows, res.TotalCount, nil
		},
		get: func(ctx context.Context, id int64) (interface{}, error) {
			res, err := s.Find(ctx, id)
			if err != nil {
				return nil, err
			}
			return res.Body, nil
		},
		delete: func(ctx context.Context, id int64) error {
			_, err := s.Delete(ctx, id)
			return err
		},
	}
}

func resources(c *client.Client) map[string]resource {
	return map[string]resource{
		"category": entry(client.NewCategoryService(c),
			[]string{"ID", "NAME"},
			func(v entity.Category) []string {
				return []string{id(v.ID), entity.Deref(v.Name)}
			}),
		"product": entry(client.NewProductService(c),
			[]string{"ID", "NAME", "PRICE", "STOCK", "CATEGORY"},
			func(v entity.Product) []string {
				return []string{id(v.ID), entity.Deref(v.Name), money(v.Price), strconv.Itoa(entity.Deref(v.Stock)), refID(v.Category)}
			}),
		"basket": entry(client.NewBasketService(c).EntityService,
			[]string{"ID", "CREATED", "STATUS", "TOTAL", "USER"},
			func(v entity.Basket) []string {
				return []string{id(v.ID), date(v.CreateDate), string(entity.Deref(v.Status)), money(v.TotalCost), refID(v.User)}
			}),
		"basket-item": entry(client.NewBasketItemService(c),
			[]string{"ID", "QUANTITY", "TOTAL", "BASKET", "PRODUCT"},
			func(v entity.BasketItem) []string {
				return []string{id(v.ID), strconv.Itoa(entity.Deref(v.Quantity)), strconv.Itoa(entity.Deref(v.TotalCost)), refID(v.Basket), refID(v.Product)}
			}),
		"address": entry(client.NewAddressService(c),
			[]string{"ID", "NAME", "CITY", "DISTRICT", "USER"},
			func(v entity.Address) []string {
				return []string{id(v.ID), entity.Deref(v.Name), entity.Deref(v.City), entity.Deref(v.District), refID(v.User)}
			}),
		"order": entry(client.NewOrderService(c).EntityService,
			[]string{"ID", "CREATED", "STATUS", "USER", "BASKET", "ADDRESS"},
			func(v entity.Order) []string {
				return []string{id(v.ID), date(v.CreateDate), string(entity.Deref(v.Status)), refID(v.User), refID(v.Basket), refID(v.Address)}
			}),
	}
}

func lookup(c *client.Client, name string) (resource, error) {
	all := resources(c)
	r, ok := all[name]
	if !ok {
		names := make([]string, 0, len(all))
		for n := range all {
			names = append(names, n)
		}
		sort.Strings(names)
		return resource{}, fmt.Errorf("unknown entity %q, expected one of %v", name, names)
	}
	return r, nil
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func refID[R entity.Entity](ref *R) string {
	if p := entity.RefID(ref); p != nil {
		return id(*p)
	}
	return ""
}

func money(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func date(d *entity.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func parseID(raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return v, nil
}

// entityNames lists the accepted entity arguments, for shell completion.
func entityNames() []string {
	return []string{"address", "basket", "basket-item", "category", "order", "product"}
}
