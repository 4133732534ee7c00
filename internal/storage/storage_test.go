package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, RunMigration(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedCategories(t *testing.T, repo *Repository[entity.Category], names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, repo.Create(testContext(t), &entity.Category{Name: entity.Ptr(name)}))
	}
}

func TestRepository_CreateFindDelete(t *testing.T) {
	repo := NewRepository[entity.Category](newTestDB(t), map[string]string{"name": "name"})

	category := entity.Category{Name: entity.Ptr("Books")}
	require.NoError(t, repo.Create(testContext(t), &category))
	require.NotZero(t, category.ID)

	found, err := repo.Find(testContext(t), category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Books", *found.Name)

	exists, err := repo.Exists(testContext(t), category.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(testContext(t), category.ID))

	_, err = repo.Find(testContext(t), category.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(testContext(t), category.ID), ErrNotFound)
}

func TestRepository_FindPage(t *testing.T) {
	repo := NewRepository[entity.Category](newTestDB(t), map[string]string{"name": "name"})
	seedCategories(t, repo, "c", "a", "e", "b", "d")

	items, total, err := repo.FindPage(testContext(t), Pageable{Page: 0, Size: 2, Sort: []string{"name,desc", "id"}})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, items, 2)
	assert.Equal(t, "e", *items[0].Name)
	assert.Equal(t, "d", *items[1].Name)

	items, _, err = repo.FindPage(testContext(t), Pageable{Page: 2, Size: 2, Sort: []string{"name,desc"}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", *items[0].Name)
}

func TestRepository_FindPageIgnoresUnknownSort(t *testing.T) {
	repo := NewRepository[entity.Category](newTestDB(t), nil)
	seedCategories(t, repo, "b", "a")

	items, _, err := repo.FindPage(testContext(t), Pageable{Sort: []string{"name; DROP TABLE categories,desc"}})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", *items[0].Name)
}

func TestRepository_FindPageWhere(t *testing.T) {
	db := newTestDB(t)
	users := NewRepository[entity.User](db, nil)
	addresses := NewRepository[entity.Address](db, nil, "User")

	alice := entity.User{Login: "alice", PasswordHash: "x"}
	bob := entity.User{Login: "bob", PasswordHash: "x"}
	require.NoError(t, users.Create(testContext(t), &alice))
	require.NoError(t, users.Create(testContext(t), &bob))

	for _, owner := range []*entity.User{&alice, &alice, &bob} {
		require.NoError(t, addresses.Create(testContext(t), &entity.Address{
			Name: entity.Ptr("home"), City: entity.Ptr("Kazan"), District: entity.Ptr("center"), Details: entity.Ptr("1"),
			User: owner,
		}))
	}

	items, total, err := addresses.FindPage(testContext(t), Pageable{}, Where("user_id = ?", alice.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].User)
	assert.Equal(t, "alice", items[0].User.Login)
}

func TestRepository_SaveKeepsRelationsByReference(t *testing.T) {
	db := newTestDB(t)
	categories := NewRepository[entity.Category](db, nil)
	products := NewRepository[entity.Product](db, nil, "Category")

	books := entity.Category{Name: entity.Ptr("Books")}
	require.NoError(t, categories.Create(testContext(t), &books))

	product := entity.Product{
		Name:     entity.Ptr("Go in Action"),
		Price:    entity.Ptr(30.5),
		Stock:    entity.Ptr(3),
		Category: &entity.Category{ID: books.ID, Name: entity.Ptr("renamed")},
	}
	require.NoError(t, products.Create(testContext(t), &product))

	found, err := products.Find(testContext(t), product.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Category)
	assert.Equal(t, books.ID, found.Category.ID)
	assert.Equal(t, "Books", *found.Category.Name)

	found.Category = nil
	require.NoError(t, products.Save(testContext(t), found))

	found, err = products.Find(testContext(t), product.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Category)
}

func TestRepository_DateColumn(t *testing.T) {
	repo := NewRepository[entity.Basket](newTestDB(t), nil)

	created := entity.NewDate(2023, time.March, 14)
	basket := entity.Basket{
		CreateDate: &created,
		Status:     entity.Ptr(entity.BasketActive),
		TotalCost:  entity.Ptr(0.0),
	}
	require.NoError(t, repo.Create(testContext(t), &basket))

	found, err := repo.Find(testContext(t), basket.ID)
	require.NoError(t, err)
	require.NotNil(t, found.CreateDate)
	assert.True(t, found.CreateDate.Equal(created))
	assert.Equal(t, entity.BasketActive, *found.Status)
}

func TestSeedUser(t *testing.T) {
	db := newTestDB(t)

	user, err := SeedUser(db, "admin", "hash", entity.RoleAdmin, entity.RoleUser)
	require.NoError(t, err)
	assert.True(t, user.Activated)
	assert.Equal(t, []string{entity.RoleAdmin, entity.RoleUser}, user.AuthorityList())

	again, err := SeedUser(db, "admin", "other")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, "hash", again.PasswordHash)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"})
	assert.Error(t, err)
}
