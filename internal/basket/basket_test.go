package basket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mserebryaakov/aggregator-pim/internal/auth"
	"github.com/mserebryaakov/aggregator-pim/internal/entity"
	"github.com/mserebryaakov/aggregator-pim/internal/storage"
	"github.com/mserebryaakov/aggregator-pim/pkg/logger"
)

type fixture struct {
	db      *gorm.DB
	service *Service
	alice   *entity.User
	bob     *entity.User
	pen     entity.Product
	book    entity.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := storage.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, storage.RunMigration(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	f := &fixture{db: db, service: NewService(db, logger.Discard())}

	f.alice, err = storage.SeedUser(db, "alice", "x", entity.RoleUser)
	require.NoError(t, err)
	f.bob, err = storage.SeedUser(db, "bob", "x", entity.RoleUser)
	require.NoError(t, err)

	products := storage.NewRepository[entity.Product](db, nil)
	f.pen = entity.Product{Name: entity.Ptr("Pen"), Price: entity.Ptr(2.75), Stock: entity.Ptr(10)}
	f.book = entity.Product{Name: entity.Ptr("Book"), Price: entity.Ptr(15.0), Stock: entity.Ptr(3)}
	require.NoError(t, products.Create(testContext(t), &f.pen))
	require.NoError(t, products.Create(testContext(t), &f.book))
	return f
}

func TestService_ActiveCreatesOnce(t *testing.T) {
	f := newFixture(t)

	first, err := f.service.Active(testContext(t), f.alice)
	require.NoError(t, err)
	assert.Equal(t, entity.BasketActive, *first.Status)
	assert.Equal(t, 0.0, *first.TotalCost)
	assert.True(t, first.CreateDate.Equal(entity.Today()))
	require.NotNil(t, first.User)
	assert.Equal(t, "alice", first.User.Login)

	second, err := f.service.Active(testContext(t), f.alice)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	other, err := f.service.Active(testContext(t), f.bob)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestService_ActiveSkipsExpired(t *testing.T) {
	f := newFixture(t)

	expired, err := f.service.Active(testContext(t), f.alice)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&entity.Basket{}).Where("id = ?", expired.ID).
		Update("status", entity.BasketExpired).Error)

	fresh, err := f.service.Active(testContext(t), f.alice)
	require.NoError(t, err)
	assert.NotEqual(t, expired.ID, fresh.ID)
}

func TestService_AddAndDeleteItem(t *testing.T) {
	f := newFixture(t)

	basket, err := f.service.AddItem(testContext(t), f.alice, f.pen.ID)
	require.NoError(t, err)
	basket, err = f.service.AddItem(testContext(t), f.alice, f.book.ID)
	require.NoError(t, err)

	require.Len(t, basket.BasketItems, 2)
	assert.Equal(t, 17.75, *basket.TotalCost)
	for _, item := range basket.BasketItems {
		assert.Equal(t, 1, *item.Quantity)
		require.NotNil(t, item.Product)
		assert.Equal(t, int(*item.Product.Price), *item.TotalCost)
	}

	var penItem int64
	for _, item := range basket.BasketItems {
		if item.Product.ID == f.pen.ID {
			penItem = item.ID
		}
	}

	basket, err = f.service.DeleteItem(testContext(t), f.alice, penItem)
	require.NoError(t, err)
	require.Len(t, basket.BasketItems, 1)
	assert.Equal(t, 15.0, *basket.TotalCost)

	stored, err := storage.NewRepository[entity.Basket](f.db, nil).Find(testContext(t), basket.ID)
	require.NoError(t, err)
	assert.Equal(t, 15.0, *stored.TotalCost)
}

func TestService_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.AddItem(testContext(t), f.alice, 999)
	assert.ErrorIs(t, err, errProductNotFound)

	basket, err := f.service.AddItem(testContext(t), f.alice, f.pen.ID)
	require.NoError(t, err)

	_, err = f.service.DeleteItem(testContext(t), f.bob, basket.BasketItems[0].ID)
	assert.ErrorIs(t, err, errItemNotInBasket)
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t)

	router := gin.New()
	api := router.Group("/api", func(c *gin.Context) {
		auth.SetUser(c, f.alice)
	})
	NewHandler(f.service, logger.Discard()).Register(api)

	call := func(method, path string) (*httptest.ResponseRecorder, entity.Basket) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
		var b entity.Basket
		if w.Code == http.StatusOK {
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
		}
		return w, b
	}

	w, basket := call(http.MethodGet, "/api/baskets/createOrGetActiveBasket")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotZero(t, basket.ID)

	w, basket = call(http.MethodPost, "/api/baskets/addItem/"+strconv.FormatInt(f.book.ID, 10))
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, basket.BasketItems, 1)
	assert.Equal(t, 15.0, *basket.TotalCost)

	w, basket = call(http.MethodGet, "/api/baskets/deleteItem/"+strconv.FormatInt(basket.BasketItems[0].ID, 10))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, basket.BasketItems)

	w, _ = call(http.MethodPost, "/api/baskets/addItem/999")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = call(http.MethodGet, "/api/baskets/deleteItem/x")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
