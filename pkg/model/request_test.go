package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePageRequest(t *testing.T) {
	req, err := DecodePageRequest(strings.NewReader(`{
		"first": 3,
		"before": "tok",
		"sort": {"by": "lastName"},
		"filters": {"age": 30, "score": 1.5, "range": [18, 2.5], "nested": {"n": 1}}
	}`))
	require.NoError(t, err)

	require.NotNil(t, req.First)
	assert.Equal(t, 3, *req.First)
	assert.Nil(t, req.Last)
	assert.Equal(t, "tok", req.Before)
	assert.Equal(t, &Sort{By: "lastName"}, req.Sort)
	assert.Equal(t, int64(30), req.Filters["age"])
	assert.Equal(t, 1.5, req.Filters["score"])
	assert.Equal(t, []interface{}{int64(18), 2.5}, req.Filters["range"])
	assert.Equal(t, map[string]interface{}{"n": int64(1)}, req.Filters["nested"])
}

func TestDecodePageRequest_Empty(t *testing.T) {
	req, err := DecodePageRequest(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, PageRequest{}, req)
}

func TestDecodePageRequest_Invalid(t *testing.T) {
	_, err := DecodePageRequest(strings.NewReader(`{"first": "one"}`))
	assert.Error(t, err)

	_, err = DecodePageRequest(strings.NewReader(`{"first":`))
	assert.Error(t, err)
}

func TestPageRequest_CheckLimits(t *testing.T) {
	assert.NoError(t, PageRequest{}.CheckLimits(0))
	assert.NoError(t, PageRequest{First: IntPtr(0)}.CheckLimits(10))
	assert.NoError(t, PageRequest{Last: IntPtr(10)}.CheckLimits(10))
	assert.NoError(t, PageRequest{First: IntPtr(5000)}.CheckLimits(0))

	assert.ErrorIs(t, PageRequest{First: IntPtr(-1)}.CheckLimits(0), ErrInvalidArgument)
	assert.ErrorIs(t, PageRequest{Last: IntPtr(11)}.CheckLimits(10), ErrInvalidArgument)
}
