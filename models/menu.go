package models

import "time"

// TimeWindow is a day-part tag gating when a menu item may be ordered.
type TimeWindow string

const (
	WindowBreakfast TimeWindow = "Breakfast"
	WindowLunch     TimeWindow = "Lunch"
	WindowDinner    TimeWindow = "Dinner"
	WindowSnacks    TimeWindow = "Snacks"
	WindowAllDay    TimeWindow = "AllDay"
)

// ValidWindow reports whether w is a known day-part tag.
func ValidWindow(w TimeWindow) bool {
	switch w {
	case WindowBreakfast, WindowLunch, WindowDinner, WindowSnacks, WindowAllDay:
		return true
	}
	return false
}

type MenuItem struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"not null"`
	Description string       `json:"description" gorm:"not null"`
	Category    string       `json:"category"`
	ImageURL    string       `json:"image_url"`
	Ingredients string       `json:"ingredients"` // comma-separated
	Offered     bool         `json:"offered" gorm:"default:true"`
	Windows     []ItemWindow `json:"windows,omitempty" gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
	Portions    []Portion    `json:"portions,omitempty" gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Portion is a named, separately priced serving size of a menu item.
type Portion struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	MenuItemID uint    `json:"menu_item_id" gorm:"not null;index"`
	Name       string  `json:"name" gorm:"not null"`
	Price      float64 `json:"price" gorm:"not null"`
}

// ItemWindow ties a menu item to one of its day-part windows.
type ItemWindow struct {
	ID         uint       `json:"-" gorm:"primaryKey"`
	MenuItemID uint       `json:"-" gorm:"not null;index"`
	Window     TimeWindow `json:"window" gorm:"not null"`
}

// PortionByName returns the item's portion with the given name, or nil.
func (m *MenuItem) PortionByName(name string) *Portion {
	for i := range m.Portions {
		if m.Portions[i].Name == name {
			return &m.Portions[i]
		}
	}
	return nil
}

// WindowTags flattens the item's windows into plain tags.
func (m *MenuItem) WindowTags() []TimeWindow {
	tags := make([]TimeWindow, 0, len(m.Windows))
	for _, w := range m.Windows {
		tags = append(tags, w.Window)
	}
	return tags
}
