package console

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mserebryaakov/aggregator-pim/internal/client"
	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

func requestWithID(id string) Request {
	params := url.Values{}
	if id != "" {
		params.Set("id", id)
	}
	return Request{Params: params, Query: url.Values{}}
}

func TestResolver_WithoutIDYieldsBlank(t *testing.T) {
	svc := &fakeService[entity.Basket]{}
	nav := &recordingNav{}

	rec, ok, err := NewResolver[entity.Basket](svc, nav, nil).Resolve(testContext(t), requestWithID(""))

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entity.Basket{}, rec)
	assert.Empty(t, svc.finds)
}

func TestResolver_FetchesOnce(t *testing.T) {
	svc := &fakeService[entity.Basket]{found: &entity.Basket{ID: 123}}
	nav := &recordingNav{}

	rec, ok, err := NewResolver[entity.Basket](svc, nav, nil).Resolve(testContext(t), requestWithID("123"))

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(123), rec.ID)
	assert.Equal(t, []int64{123}, svc.finds)
	paths, _ := nav.snapshot()
	assert.Empty(t, paths)
}

func TestResolver_EmptyBodyRedirects(t *testing.T) {
	svc := &fakeService[entity.Basket]{}
	nav := &recordingNav{}

	_, ok, err := NewResolver[entity.Basket](svc, nav, nil).Resolve(testContext(t), requestWithID("123"))

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []int64{123}, svc.finds)
	paths, _ := nav.snapshot()
	assert.Equal(t, []string{NotFoundRoute}, paths)
}

func TestResolver_NotFoundRedirects(t *testing.T) {
	svc := &fakeService[entity.Order]{findErr: client.NewError(client.HttpError, "GET api/orders/5", 404, nil)}
	nav := &recordingNav{}

	_, ok, err := NewResolver[entity.Order](svc, nav, nil).Resolve(testContext(t), requestWithID("5"))

	require.NoError(t, err)
	assert.False(t, ok)
	paths, _ := nav.snapshot()
	assert.Equal(t, []string{NotFoundRoute}, paths)
}

func TestResolver_OtherErrorsPropagate(t *testing.T) {
	boom := errors.New("connection refused")
	svc := &fakeService[entity.Order]{findErr: boom}
	nav := &recordingNav{}

	_, ok, err := NewResolver[entity.Order](svc, nav, nil).Resolve(testContext(t), requestWithID("5"))

	require.ErrorIs(t, err, boom)
	assert.False(t, ok)
	paths, _ := nav.snapshot()
	assert.Empty(t, paths)
}

func TestResolver_BlankFactory(t *testing.T) {
	svc := &fakeService[entity.Basket]{}
	blank := func() entity.Basket {
		return entity.Basket{Status: entity.Ptr(entity.BasketActive)}
	}

	rec, ok, err := NewResolver[entity.Basket](svc, &recordingNav{}, blank).Resolve(testContext(t), requestWithID(""))

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entity.BasketActive, *rec.Status)
}
