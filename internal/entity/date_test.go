package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSONUsesFixedFormat(t *testing.T) {
	basket := Basket{
		ID:         7,
		CreateDate: Ptr(NewDate(2022, time.March, 14)),
		Status:     Ptr(BasketActive),
		TotalCost:  Ptr(12.5),
	}

	raw, err := json.Marshal(basket)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"createDate":"2022-03-14","status":"ACTIVE","totalCost":12.5}`, string(raw))
}

func TestDate_RoundTripKeepsCalendarDate(t *testing.T) {
	sent := Basket{CreateDate: Ptr(NewDate(2021, time.December, 31)), Status: Ptr(BasketExpired), TotalCost: Ptr(0.0)}

	raw, err := json.Marshal(sent)
	require.NoError(t, err)

	var received Basket
	require.NoError(t, json.Unmarshal(raw, &received))

	require.NotNil(t, received.CreateDate)
	assert.True(t, received.CreateDate.Equal(*sent.CreateDate))
	assert.Equal(t, "2021-12-31", received.CreateDate.String())
}

func TestDate_UnmarshalEdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "null", input: `null`, want: ""},
		{name: "empty string", input: `""`, want: ""},
		{name: "plain date", input: `"2020-02-29"`, want: "2020-02-29"},
		{name: "timestamp is truncated", input: `"2020-02-29T10:11:12Z"`, want: "2020-02-29"},
		{name: "garbage", input: `"29/02/2020"`, wantErr: true},
		{name: "not a string", input: `20200229`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2023, time.May, 2, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "2023-05-02", d.String())

	require.NoError(t, d.Scan("2023-06-01 00:00:00+00:00"))
	assert.Equal(t, "2023-06-01", d.String())

	require.NoError(t, d.Scan([]byte("2023-07-09")))
	assert.Equal(t, "2023-07-09", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDate_Value(t *testing.T) {
	v, err := NewDate(2024, time.January, 5).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
