package storage

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

// Models lists every table in creation order.
func Models() []interface{} {
	return []interface{}{
		&entity.User{},
		&entity.Category{},
		&entity.Product{},
		&entity.Address{},
		&entity.Basket{},
		&entity.BasketItem{},
		&entity.Order{},
	}
}

func RunMigration(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, model := range Models() {
		if err := migrator.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T - %w", model, err)
		}
	}

	return nil
}

// SeedUser creates the user unless the login is already taken.
func SeedUser(db *gorm.DB, login, passwordHash string, authorities ...string) (*entity.User, error) {
	var user entity.User
	err := db.Where("login = ?", login).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = entity.User{
		Login:        login,
		PasswordHash: passwordHash,
		Activated:    true,
		Authorities:  strings.Join(authorities, ","),
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to seed user %s - %w", login, err)
	}
	return &user, nil
}
