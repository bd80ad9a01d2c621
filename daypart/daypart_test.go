package daypart

import (
	"testing"
	"time"

	"canteen-api/models"
)

func TestBucketFor(t *testing.T) {
	cases := []struct {
		hour int
		want models.TimeWindow
	}{
		{0, models.WindowSnacks},
		{4, models.WindowSnacks},
		{5, models.WindowBreakfast},
		{11, models.WindowBreakfast},
		{12, models.WindowLunch},
		{16, models.WindowLunch},
		{17, models.WindowDinner},
		{21, models.WindowDinner},
		{22, models.WindowSnacks},
		{23, models.WindowSnacks},
	}
	for _, c := range cases {
		if got := BucketFor(c.hour); got != c.want {
			t.Errorf("BucketFor(%d) = %v, want %v", c.hour, got, c.want)
		}
	}
}

func at(hour int) time.Time {
	return time.Date(2024, 6, 1, hour, 30, 0, 0, time.UTC)
}

func TestAvailableAt(t *testing.T) {
	breakfast := []models.TimeWindow{models.WindowBreakfast}
	allDay := []models.TimeWindow{models.WindowAllDay}
	multi := []models.TimeWindow{models.WindowLunch, models.WindowDinner}

	if !AvailableAt(breakfast, at(8)) {
		t.Error("breakfast item should be available at 08:30")
	}
	if AvailableAt(breakfast, at(13)) {
		t.Error("breakfast item should not be available at 13:30")
	}
	if !AvailableAt(allDay, at(3)) {
		t.Error("all-day item should be available at 03:30")
	}
	if !AvailableAt(multi, at(19)) {
		t.Error("lunch+dinner item should be available at 19:30")
	}
	if AvailableAt(multi, at(9)) {
		t.Error("lunch+dinner item should not be available at 09:30")
	}
}

func TestFilter(t *testing.T) {
	items := []models.MenuItem{
		{Name: "Dosa", Offered: true, Windows: []models.ItemWindow{{Window: models.WindowBreakfast}}},
		{Name: "Biryani", Offered: true, Windows: []models.ItemWindow{{Window: models.WindowLunch}}},
		{Name: "Salad", Offered: false, Windows: []models.ItemWindow{{Window: models.WindowAllDay}}},
		{Name: "Tea", Offered: true, Windows: []models.ItemWindow{{Window: models.WindowAllDay}}},
	}

	got := Filter(items, at(8))
	if len(got) != 2 {
		t.Fatalf("expected 2 items at breakfast, got %d", len(got))
	}
	if got[0].Name != "Dosa" || got[1].Name != "Tea" {
		t.Errorf("unexpected items: %v, %v", got[0].Name, got[1].Name)
	}

	// withdrawn item stays hidden even in its window
	for _, item := range Filter(items, at(14)) {
		if item.Name == "Salad" {
			t.Error("withdrawn item must not appear")
		}
	}
}
