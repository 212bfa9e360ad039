package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/hotel-room-allocator/internal/model"
)

func TestOriginCost(t *testing.T) {
	m := DefaultCostModel()

	assert.Equal(t, 2, m.OriginCost(model.Room{Floor: 1, Position: 0}))
	assert.Equal(t, 11, m.OriginCost(model.Room{Floor: 1, Position: 9}))
	assert.Equal(t, 26, m.OriginCost(model.Room{Floor: 10, Position: 6}))
}

func TestTravelTime(t *testing.T) {
	m := DefaultCostModel()

	tests := []struct {
		name  string
		rooms []model.Room
		want  int
	}{
		{"empty", nil, 0},
		{"single room", []model.Room{{Floor: 7, Position: 4}}, 0},
		{"same floor", []model.Room{{Floor: 3, Position: 2}, {Floor: 3, Position: 5}}, 3},
		{"stacked", []model.Room{{Floor: 2, Position: 0}, {Floor: 5, Position: 0}}, 6},
		{"bounding box", []model.Room{{Floor: 1, Position: 9}, {Floor: 3, Position: 1}, {Floor: 2, Position: 0}}, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.TravelTime(tt.rooms))
		})
	}
}

func TestTravelTime_CustomWeights(t *testing.T) {
	m := CostModel{VStep: 5, HStep: 3}
	rooms := []model.Room{{Floor: 1, Position: 1}, {Floor: 2, Position: 3}}

	assert.Equal(t, 11, m.TravelTime(rooms))
	assert.Equal(t, 8, m.OriginCost(rooms[0]))
}
