package entity

import "gorm.io/gorm"

type Order struct {
	ID         int64        `json:"id,omitempty" gorm:"primaryKey"`
	CreateDate *Date        `json:"createDate,omitempty" gorm:"not null"`
	Status     *OrderStatus `json:"status,omitempty" gorm:"size:16;not null"`
	UserID     *int64       `json:"-"`
	User       *User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	BasketID   *int64       `json:"-"`
	Basket     *Basket      `json:"basket,omitempty" gorm:"foreignKey:BasketID"`
	AddressID  *int64       `json:"-"`
	Address    *Address     `json:"address,omitempty" gorm:"foreignKey:AddressID"`
}

func (Order) TableName() string {
	return "orders"
}

func (o Order) Identifier() (int64, bool) { return identifier(o.ID) }

func (o *Order) BeforeSave(*gorm.DB) error {
	o.UserID = RefID(o.User)
	o.BasketID = RefID(o.Basket)
	o.AddressID = RefID(o.Address)
	return nil
}

func (o Order) Validate() []FieldError {
	var errs []FieldError
	if o.CreateDate == nil || o.CreateDate.IsZero() {
		errs = append(errs, required("createDate"))
	}
	switch {
	case o.Status == nil:
		errs = append(errs, required("status"))
	case !o.Status.Valid():
		errs = append(errs, FieldError{Field: "status", Message: "unknown order status " + string(*o.Status)})
	}
	return errs
}
