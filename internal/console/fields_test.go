package console

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

func TestFields(t *testing.T) {
	var basket entity.Basket

	date := DateOf("createDate", "Create Date", true, func(b *entity.Basket) **entity.Date { return &b.CreateDate })
	require.NoError(t, date.Set(&basket, "2024-02-29"))
	assert.True(t, basket.CreateDate.Equal(entity.NewDate(2024, time.February, 29)))
	assert.Equal(t, "2024-02-29", date.Value(&basket))
	assert.Error(t, date.Set(&basket, "29.02.2024"))

	status := Enum("status", "Status", true, entity.BasketStatuses, func(b *entity.Basket) **entity.BasketStatus { return &b.Status })
	assert.Equal(t, []string{"ACTIVE", "EXPIRED"}, status.Choices)
	require.NoError(t, status.Set(&basket, "expired"))
	assert.Equal(t, entity.BasketExpired, *basket.Status)
	assert.Error(t, status.Set(&basket, "ORDERED"))

	cost := Float("totalCost", "Total Cost", true, func(b *entity.Basket) **float64 { return &b.TotalCost })
	require.NoError(t, cost.Set(&basket, "12.50"))
	assert.Equal(t, "12.5", cost.Value(&basket))
	require.NoError(t, cost.Set(&basket, ""))
	assert.Nil(t, basket.TotalCost)
}

func TestFileField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	png := []byte("\x89PNG\r\n\x1a\n0000")
	require.NoError(t, os.WriteFile(path, png, 0o600))

	var product entity.Product
	photo := File("photo", "Photo",
		func(p *entity.Product) *[]byte { return &p.Photo },
		func(p *entity.Product) **string { return &p.PhotoContentType })

	require.NoError(t, photo.Set(&product, path))
	assert.Equal(t, png, product.Photo)
	assert.Equal(t, "image/png", *product.PhotoContentType)
	assert.Equal(t, "image/png, 12 bytes", photo.Value(&product))

	require.NoError(t, photo.Set(&product, ""))
	assert.Nil(t, product.Photo)
	assert.Nil(t, product.PhotoContentType)

	assert.Error(t, photo.Set(&product, filepath.Join(t.TempDir(), "missing.png")))
}
