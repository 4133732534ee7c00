package entity

import "gorm.io/gorm"

type Address struct {
	ID       int64   `json:"id,omitempty" gorm:"primaryKey"`
	Name     *string `json:"name,omitempty" gorm:"not null"`
	City     *string `json:"city,omitempty" gorm:"not null"`
	District *string `json:"district,omitempty" gorm:"not null"`
	Details  *string `json:"details,omitempty" gorm:"not null"`
	UserID   *int64  `json:"-"`
	User     *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (a Address) Identifier() (int64, bool) { return identifier(a.ID) }

func (a *Address) BeforeSave(*gorm.DB) error {
	a.UserID = RefID(a.User)
	return nil
}

func (a Address) Validate() []FieldError {
	var errs []FieldError
	if blank(a.Name) {
		errs = append(errs, required("name"))
	}
	if blank(a.City) {
		errs = append(errs, required("city"))
	}
	if blank(a.District) {
		errs = append(errs, required("district"))
	}
	if blank(a.Details) {
		errs = append(errs, required("details"))
	}
	return errs
}
