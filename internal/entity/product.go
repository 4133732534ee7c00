package entity

import "gorm.io/gorm"

type Product struct {
	ID               int64        `json:"id,omitempty" gorm:"primaryKey"`
	Name             *string      `json:"name,omitempty" gorm:"not null"`
	Description      *string      `json:"description,omitempty" gorm:"type:text"`
	Price            *float64     `json:"price,omitempty" gorm:"not null"`
	Stock            *int         `json:"stock,omitempty" gorm:"not null"`
	Photo            []byte       `json:"photo,omitempty"`
	PhotoContentType *string      `json:"photoContentType,omitempty"`
	CategoryID       *int64       `json:"-"`
	Category         *Category    `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	BasketItems      []BasketItem `json:"basketItems,omitempty" gorm:"foreignKey:ProductID"`
}

func (p Product) Identifier() (int64, bool) { return identifier(p.ID) }

func (p *Product) BeforeSave(*gorm.DB) error {
	p.CategoryID = RefID(p.Category)
	return nil
}

func (p Product) Validate() []FieldError {
	var errs []FieldError
	if blank(p.Name) {
		errs = append(errs, required("name"))
	}
	if p.Price == nil {
		errs = append(errs, required("price"))
	}
	if p.Stock == nil {
		errs = append(errs, required("stock"))
	}
	if len(p.Photo) > 0 && blank(p.PhotoContentType) {
		errs = append(errs, required("photoContentType"))
	}
	return errs
}
