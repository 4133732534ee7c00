package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mserebryaakov/aggregator-pim/cmd/pim/output"
	"github.com/mserebryaakov/aggregator-pim/internal/client"
	"github.com/mserebryaakov/aggregator-pim/internal/entity"
	"github.com/mserebryaakov/aggregator-pim/pkg/logger"
)

type recorded struct {
	mu       sync.Mutex
	method   string
	path     string
	rawQuery string
	auth     string
}

func newAPI(t *testing.T) (*recorded, *httptest.Server) {
	t.Helper()
	rec := &recorded{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.method, rec.path, rec.rawQuery, rec.auth = r.Method, r.URL.Path, r.URL.RawQuery, r.Header.Get("Authorization")
		rec.mu.Unlock()

		w.Header().Set("X-Total-Count", "42")
		_ = json.NewEncoder(w).Encode([]entity.Product{{
			ID:       3,
			Name:     entity.Ptr("Lamp"),
			Price:    entity.Ptr(12.5),
			Stock:    entity.Ptr(4),
			Category: &entity.Category{ID: 9},
		}})
	})
	mux.HandleFunc("/api/products/3", func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.method, rec.path = r.Method, r.URL.Path
		rec.mu.Unlock()

		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_ = json.NewEncoder(w).Encode(entity.Product{ID: 3, Name: entity.Ptr("Lamp")})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return rec, srv
}

func setup(t *testing.T, srvURL string) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prevOut := output.Out
	output.Out = &buf

	apiURL, token, configDir = srvURL, "tok", t.TempDir()
	page, size, sorts, jsonOutput, assumeYes = 1, 0, []string{"id,asc"}, false, false
	t.Cleanup(func() {
		output.Out = prevOut
		apiURL, token = "", ""
	})
	return &buf
}

func TestLookup(t *testing.T) {
	c, err := client.New(client.Config{BaseURL: "http://localhost"}, logger.Discard())
	require.NoError(t, err)

	for _, name := range entityNames() {
		_, err := lookup(c, name)
		assert.NoError(t, err, name)
	}

	_, err = lookup(c, "widget")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "basket-item")
}

func TestRunList_Table(t *testing.T) {
	rec, srv := newAPI(t)
	buf := setup(t, srv.URL)
	page, size, sorts = 3, 10, []string{"price,desc", "id"}

	require.NoError(t, runList(testContext(t), "product"))

	assert.Equal(t, "/api/products", rec.path)
	assert.Equal(t, "Bearer tok", rec.auth)
	assert.Equal(t, "page=2&size=10&sort=price%2Cdesc&sort=id", rec.rawQuery)

	out := buf.String()
	assert.Contains(t, out, "Lamp")
	assert.Contains(t, out, "12.50")
	assert.Contains(t, out, "page 3, 1 of 42 records")
}

func TestRunList_JSONUsesConfiguredPageSize(t *testing.T) {
	rec, srv := newAPI(t)
	buf := setup(t, srv.URL)
	jsonOutput = true

	require.NoError(t, runList(testContext(t), "product"))
	assert.Contains(t, rec.rawQuery, "size=20")

	var items []entity.Product
	require.NoError(t, json.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, int64(9), items[0].Category.ID)
}

func TestRunList_RequiresCredentials(t *testing.T) {
	_, srv := newAPI(t)
	setup(t, srv.URL)
	token, login, password = "", "", ""

	err := runList(testContext(t), "product")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sign in")
}

func TestGetAndDelete(t *testing.T) {
	rec, srv := newAPI(t)
	buf := setup(t, srv.URL)
	assumeYes = true

	rootCmd.SetArgs([]string{"get", "product", "3", "--api", srv.URL, "--token", "tok", "--config", configDir})
	require.NoError(t, rootCmd.ExecuteContext(testContext(t)))
	assert.Contains(t, buf.String(), `"name": "Lamp"`)

	buf.Reset()
	rootCmd.SetArgs([]string{"delete", "product", "3", "-y", "--api", srv.URL, "--token", "tok", "--config", configDir})
	require.NoError(t, rootCmd.ExecuteContext(testContext(t)))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.True(t, strings.Contains(buf.String(), "Deleted product 3"))

	rootCmd.SetArgs([]string{"get", "product", "abc", "--api", srv.URL, "--token", "tok", "--config", configDir})
	assert.Error(t, rootCmd.ExecuteContext(testContext(t)))
}
