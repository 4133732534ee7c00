package entity

import "gorm.io/gorm"

type Basket struct {
	ID          int64         `json:"id,omitempty" gorm:"primaryKey"`
	CreateDate  *Date         `json:"createDate,omitempty" gorm:"not null"`
	Status      *BasketStatus `json:"status,omitempty" gorm:"size:16;not null"`
	TotalCost   *float64      `json:"totalCost,omitempty" gorm:"not null"`
	UserID      *int64        `json:"-"`
	User        *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	BasketItems []BasketItem  `json:"basketItems,omitempty" gorm:"foreignKey:BasketID"`
}

func (b Basket) Identifier() (int64, bool) { return identifier(b.ID) }

func (b *Basket) BeforeSave(*gorm.DB) error {
	b.UserID = RefID(b.User)
	return nil
}

func (b Basket) Validate() []FieldError {
	var errs []FieldError
	if b.CreateDate == nil || b.CreateDate.IsZero() {
		errs = append(errs, required("createDate"))
	}
	switch {
	case b.Status == nil:
		errs = append(errs, required("status"))
	case !b.Status.Valid():
		errs = append(errs, FieldError{Field: "status", Message: "unknown basket status " + string(*b.Status)})
	}
	if b.TotalCost == nil {
		errs = append(errs, required("totalCost"))
	}
	return errs
}

// ItemsCost sums the price of the product behind every item.
func (b Basket) ItemsCost() float64 {
	var total float64
	for _, item := range b.BasketItems {
		if item.Product != nil && item.Product.Price != nil {
			total += *item.Product.Price
		}
	}
	return total
}
