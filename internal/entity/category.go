package entity

type Category struct {
	ID       int64     `json:"id,omitempty" gorm:"primaryKey"`
	Name     *string   `json:"name,omitempty" gorm:"not null"`
	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

func (c Category) Identifier() (int64, bool) { return identifier(c.ID) }

func (c Category) Validate() []FieldError {
	if blank(c.Name) {
		return []FieldError{required("name")}
	}
	return nil
}
