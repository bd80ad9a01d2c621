// Package daypart computes which day-part window a wall-clock time falls in
// and whether a menu item is orderable at that time.
package daypart

import (
	"time"

	"canteen-api/models"
)

// BucketFor maps an hour of day to its day-part window.
// The partition is: [5,12) Breakfast, [12,17) Lunch, [17,22) Dinner,
// [22,24) and [0,5) Snacks. Every hour belongs to exactly one bucket.
func BucketFor(hour int) models.TimeWindow {
	switch {
	case hour >= 5 && hour < 12:
		return models.WindowBreakfast
	case hour >= 12 && hour < 17:
		return models.WindowLunch
	case hour >= 17 && hour < 22:
		return models.WindowDinner
	default:
		return models.WindowSnacks
	}
}

// CurrentWindow returns the day-part window for t.
func CurrentWindow(t time.Time) models.TimeWindow {
	return BucketFor(t.Hour())
}

// AvailableAt reports whether an item with the given window tags is
// orderable at t. AllDay items are always in window.
func AvailableAt(windows []models.TimeWindow, t time.Time) bool {
	now := CurrentWindow(t)
	for _, w := range windows {
		if w == models.WindowAllDay || w == now {
			return true
		}
	}
	return false
}

// Filter returns the items that are offered and in window at t.
// It is recomputed on every call so day-part flips take effect without
// a restart.
func Filter(items []models.MenuItem, t time.Time) []models.MenuItem {
	out := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if item.Offered && AvailableAt(item.WindowTags(), t) {
			out = append(out, item)
		}
	}
	return out
}
