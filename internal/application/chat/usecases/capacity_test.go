package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotsAvailable(t *testing.T) {
	tests := []struct {
		name        string
		active      int64
		max         int
		wantSlots   int
	}{
		{name: "empty pool", active: 0, max: 10, wantSlots: 10},
		{name: "partially full", active: 7, max: 10, wantSlots: 3},
		{name: "exactly full", active: 10, max: 10, wantSlots: 0},
		{name: "transient overshoot clamps to zero", active: 12, max: 10, wantSlots: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantSlots, SlotsAvailable(tt.active, tt.max))
		})
	}
}
