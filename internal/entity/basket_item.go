package entity

import "gorm.io/gorm"

type BasketItem struct {
	ID        int64    `json:"id,omitempty" gorm:"primaryKey"`
	Quantity  *int     `json:"quantity,omitempty" gorm:"not null"`
	TotalCost *int     `json:"totalCost,omitempty" gorm:"not null"`
	BasketID  *int64   `json:"-"`
	Basket    *Basket  `json:"basket,omitempty" gorm:"foreignKey:BasketID"`
	ProductID *int64   `json:"-"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (i BasketItem) Identifier() (int64, bool) { return identifier(i.ID) }

func (i *BasketItem) BeforeSave(*gorm.DB) error {
	i.BasketID = RefID(i.Basket)
	i.ProductID = RefID(i.Product)
	return nil
}

func (i BasketItem) Validate() []FieldError {
	var errs []FieldError
	if i.Quantity == nil {
		errs = append(errs, required("quantity"))
	}
	if i.TotalCost == nil {
		errs = append(errs, required("totalCost"))
	}
	return errs
}
