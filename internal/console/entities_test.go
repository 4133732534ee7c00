package console

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mserebryaakov/aggregator-pim/internal/client"
	"github.com/mserebryaakov/aggregator-pim/internal/entity"
	"github.com/mserebryaakov/aggregator-pim/pkg/logger"
)

func newConsole(t *testing.T, routes map[string]interface{}) (*Router, *Session) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/authenticate", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id_token": "tok"})
	})
	mux.HandleFunc("/api/account", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(entity.Account{ID: 1, Login: "admin", Activated: true, Authorities: []string{entity.RoleAdmin}})
	})
	for path, body := range routes {
		body := body
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if body == nil {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("X-Total-Count", "1")
			_ = json.NewEncoder(w).Encode(body)
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := client.New(client.Config{BaseURL: srv.URL}, logger.Discard())
	require.NoError(t, err)

	session := NewSession(c)
	router := NewRouter(session, logger.Discard())
	RegisterLogin(router, session)
	RegisterEntities(router, NewServices(c), 0)

	return router, session
}

func TestConsole_LoginThenList(t *testing.T) {
	router, session := newConsole(t, map[string]interface{}{
		"/api/categories": []entity.Category{{ID: 1, Name: entity.Ptr("Books")}},
	})

	require.NoError(t, router.Navigate(testContext(t), "category"))
	login, ok := router.Current().(*LoginPage)
	require.True(t, ok)

	require.NoError(t, login.Submit(testContext(t), "admin", "admin", false))
	assert.True(t, session.Authenticated())

	list, ok := router.Current().(ListPage)
	require.True(t, ok)
	assert.Equal(t, "Categories", list.Title())
	assert.Equal(t, [][]string{{"1", "Books"}}, list.Rows())
	assert.Equal(t, int64(1), list.TotalItems())
}

func TestConsole_EditOrderLoadsRelations(t *testing.T) {
	order := entity.Order{
		ID:      4,
		Status:  entity.Ptr(entity.OrderNew),
		Address: &entity.Address{ID: 30, Name: entity.Ptr("Home")},
	}
	router, session := newConsole(t, map[string]interface{}{
		"/api/orders/4":  order,
		"/api/users":     []entity.User{{ID: 1, Login: "admin"}},
		"/api/baskets":   []entity.Basket{{ID: 2}},
		"/api/addresses": []entity.Address{{ID: 31, Name: entity.Ptr("Work")}},
	})
	require.NoError(t, session.Login(testContext(t), "admin", "admin", false))

	require.NoError(t, router.Navigate(testContext(t), "order/4/edit"))

	form, ok := router.Current().(FormPage)
	require.True(t, ok)
	assert.False(t, form.IsNew())

	byName := map[string]FormField{}
	for _, f := range form.Fields() {
		byName[f.Name] = f
	}
	assert.Equal(t, "NEW", byName["status"].Value)
	assert.Equal(t, []Option{{ID: 1, Label: "admin"}}, byName["user"].Options)
	assert.Equal(t, []Option{{ID: 2, Label: "2"}}, byName["basket"].Options)
	assert.Equal(t, []Option{{ID: 30, Label: "Home"}, {ID: 31, Label: "Work"}}, byName["address"].Options)
	assert.Equal(t, "Home", byName["address"].Value)
}

func TestConsole_MissingRecordShowsNotFound(t *testing.T) {
	router, session := newConsole(t, map[string]interface{}{
		"/api/products/9": nil,
	})
	require.NoError(t, session.Login(testContext(t), "admin", "admin", false))

	require.NoError(t, router.Navigate(testContext(t), "product/9/view"))

	assert.IsType(t, NotFoundPage{}, router.Current())
}

func TestConsole_NewRecordNeedsNoFetch(t *testing.T) {
	router, session := newConsole(t, map[string]interface{}{
		"/api/categories": []entity.Category{},
	})
	require.NoError(t, session.Login(testContext(t), "admin", "admin", false))

	require.NoError(t, router.Navigate(testContext(t), "product/new"))

	form, ok := router.Current().(FormPage)
	require.True(t, ok)
	assert.True(t, form.IsNew())
	assert.Equal(t, "Products", form.Title())
}
