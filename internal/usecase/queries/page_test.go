//go:build unit

package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{"defaults", PageRequest{}, PageRequest{Page: 1, PageSize: 10}},
		{"negative page", PageRequest{Page: -3, PageSize: 5}, PageRequest{Page: 1, PageSize: 5}},
		{"size capped", PageRequest{Page: 2, PageSize: 500}, PageRequest{Page: 2, PageSize: 100}},
		{"unchanged", PageRequest{Page: 4, PageSize: 25}, PageRequest{Page: 4, PageSize: 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{}.Offset())
	assert.Equal(t, 20, PageRequest{Page: 3, PageSize: 10}.Offset())
	assert.Equal(t, 100, PageRequest{Page: 2, PageSize: 1000}.Offset())
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{7, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestNewPage_OutOfRangeIsEmptyNotNil(t *testing.T) {
	page := NewPage[*BookingView](nil, PageRequest{Page: 9, PageSize: 10}, 12)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 9, page.Page)
	assert.Equal(t, 12, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
}
