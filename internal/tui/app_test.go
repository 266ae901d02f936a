package tui

import (
	"testing"

	"github.com/pathshare/pathshare/internal/models"
	"github.com/pathshare/pathshare/internal/nav"
	"github.com/stretchr/testify/assert"
)

func TestEveryScreenHasAView(t *testing.T) {
	for _, screen := range nav.Screens {
		assert.True(t, ScreenCovered(screen), "no page wired for screen %q", screen)
	}
	assert.False(t, ScreenCovered(nav.Screen("payments")))
}

func TestSearchFilters(t *testing.T) {
	tests := []struct {
		name      string
		womenOnly bool
		filter    vehicleFilter
		check     func(t *testing.T, got []models.RideMatch)
	}{
		{
			name:   "no filters returns everything",
			filter: filterAll,
			check: func(t *testing.T, got []models.RideMatch) {
				assert.Len(t, got, len(mockMatches))
			},
		},
		{
			name:      "women only",
			womenOnly: true,
			filter:    filterAll,
			check: func(t *testing.T, got []models.RideMatch) {
				assert.NotEmpty(t, got)
				for _, m := range got {
					assert.True(t, m.IsWoman, "match %s", m.Name)
				}
			},
		},
		{
			name:   "bikes only",
			filter: filterBike,
			check: func(t *testing.T, got []models.RideMatch) {
				assert.NotEmpty(t, got)
				for _, m := range got {
					assert.Equal(t, models.VehicleBike, m.Vehicle)
				}
			},
		},
		{
			name:      "filters compose",
			womenOnly: true,
			filter:    filterCar,
			check: func(t *testing.T, got []models.RideMatch) {
				assert.NotEmpty(t, got)
				for _, m := range got {
					assert.True(t, m.IsWoman)
					assert.Equal(t, models.VehicleCar, m.Vehicle)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := SearchModel{isWomenOnly: tc.womenOnly, filter: tc.filter}
			tc.check(t, m.filtered())
		})
	}
}
