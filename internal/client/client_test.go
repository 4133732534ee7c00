package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mserebryaakov/aggregator-pim/pkg/logger"
)

// recorded is one request seen by the fake API.
type recorded struct {
	Method      string
	Path        string
	Query       map[string][]string
	ContentType string
	Auth        string
	RequestID   string
	Body        []byte
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []recorded
	handler  http.HandlerFunc
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recorded{
		Method:      r.Method,
		Path:        r.URL.Path,
		Query:       r.URL.Query(),
		ContentType: r.Header.Get("Content-Type"),
		Auth:        r.Header.Get("Authorization"),
		RequestID:   r.Header.Get(headerRequestID),
		Body:        body,
	})
	f.mu.Unlock()
	f.handler(w, r)
}

func (f *fakeAPI) calls() []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recorded(nil), f.requests...)
}

func newFakeAPI(t *testing.T, handler http.HandlerFunc) (*fakeAPI, *Client) {
	t.Helper()

	api := &fakeAPI{handler: handler}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL + "/"}, logger.Discard())
	require.NoError(t, err)

	return api, c
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNew_RejectsInvalidURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8080", "://nope"} {
		_, err := New(Config{BaseURL: raw}, logger.Discard())
		require.Error(t, err, raw)
	}
}

func TestClient_EndpointFor(t *testing.T) {
	c, err := New(Config{BaseURL: "http://localhost:8080/"}, logger.Discard())
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8080/api/baskets", c.endpointFor("api/baskets"))
	require.Equal(t, "http://localhost:8080/api/baskets", c.endpointFor("/api/baskets"))
}

func TestDecodeBody_EmptyAndNull(t *testing.T) {
	for _, body := range []string{"", "  ", "null", " null\n"} {
		v, err := decodeBody[map[string]int]([]byte(body))
		require.NoError(t, err)
		require.Nil(t, v)
	}

	_, err := decodeBody[map[string]int]([]byte("{broken"))
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, JsonAppError, e.Kind)
}

func TestClient_SendsRequestIDAndToken(t *testing.T) {
	api, c := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	c.SetToken("secret")

	_, err := NewCategoryService(c).Find(testContext(t), 1)
	require.NoError(t, err)

	calls := api.calls()
	require.Len(t, calls, 1)
	require.Equal(t, "Bearer secret", calls[0].Auth)
	require.NotEmpty(t, calls[0].RequestID)
}
