package entity

import "strings"

const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)

// User is referenced by addresses, baskets and orders. Only id and login are
// exposed on the wire.
type User struct {
	ID           int64  `json:"id,omitempty" gorm:"primaryKey"`
	Login        string `json:"login,omitempty" gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"size:60;not null"`
	Authorities  string `json:"-" gorm:"size:255"`
	Activated    bool   `json:"-" gorm:"not null;default:true"`
}

func (u User) Identifier() (int64, bool) { return identifier(u.ID) }

func (u User) AuthorityList() []string {
	if u.Authorities == "" {
		return nil
	}
	return strings.Split(u.Authorities, ",")
}

func (u User) HasAuthority(authority string) bool {
	for _, a := range u.AuthorityList() {
		if a == authority {
			return true
		}
	}
	return false
}

// Account is the view of the signed-in user returned by the account endpoint.
type Account struct {
	ID          int64    `json:"id"`
	Login       string   `json:"login"`
	Activated   bool     `json:"activated"`
	Authorities []string `json:"authorities"`
}

func (u User) Validate() []FieldError {
	if blank(&u.Login) {
		return []FieldError{required("login")}
	}
	return nil
}
