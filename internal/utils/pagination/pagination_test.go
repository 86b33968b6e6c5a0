package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination_Offset(t *testing.T) {
	tests := []struct {
		name   string
		skip   int
		take   int
		offset int
	}{
		{"first page", 1, 10, 0},
		{"third page", 3, 10, 20},
		{"missing skip", 0, 10, 0},
		{"default take", 2, 0, 10},
		{"large page", 5, 25, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pagination{Skip: tt.skip, Take: tt.take}
			assert.Equal(t, tt.offset, p.Offset())
		})
	}
}

func TestPagination_Limit(t *testing.T) {
	assert.Equal(t, DefaultTake, Pagination{}.Limit())
	assert.Equal(t, 25, Pagination{Take: 25}.Limit())
	assert.Equal(t, MaxTake, Pagination{Take: 500}.Limit())
}

func TestPagination_Info(t *testing.T) {
	info := Pagination{Skip: 0, Take: 0}.Info(42)
	assert.Equal(t, 1, info.Skip)
	assert.Equal(t, DefaultTake, info.Take)
	assert.Equal(t, int64(42), info.Total)
}
