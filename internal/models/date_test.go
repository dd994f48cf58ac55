package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", d.String())

	d, err = ParseDate("2024-03-15T22:30:00-03:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", d.String())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		Day Date `json:"day"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"day":"1990-07-01"}`), &payload))
	assert.Equal(t, "1990-07-01", payload.Day.String())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":"1990-07-01"}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"day":null}`), &payload))
	assert.True(t, payload.Day.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"day":"nope"}`), &payload))
}

func TestDate_ScanValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-02", d.String())

	require.NoError(t, d.Scan("2024-05-06 00:00:00+00:00"))
	assert.Equal(t, "2024-05-06", d.String())

	require.NoError(t, d.Scan([]byte("2024-07-08")))
	assert.Equal(t, "2024-07-08", d.String())

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-07-08", v)

	require.NoError(t, d.Scan(nil))
	v, err = d.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Error(t, d.Scan(42))
}

func TestDate_Equal(t *testing.T) {
	a := NewDate(time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC))
	b, _ := ParseDate("2024-01-02")
	assert.True(t, a.Equal(b))
}
