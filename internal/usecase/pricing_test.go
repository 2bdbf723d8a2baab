package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name           string
		basePrice      int64
		multiplier     int64
		passengerCount int
		want           int64
	}{
		{"economy single", 2500, 1, 1, 2500},
		{"business pair", 3000, 3, 2, 18000},
		{"first class family", 4000, 4, 4, 64000},
		{"premium economy", 2800, 2, 3, 16800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotal(tt.basePrice, tt.multiplier, tt.passengerCount)
			assert.Equal(t, tt.want, got)
		})
	}
}
