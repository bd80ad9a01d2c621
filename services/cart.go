package services

import (
	"context"
	"errors"

	"canteen-api/cart"
	"canteen-api/models"

	"gorm.io/gorm"
)

// CartService guards additions against the catalog before delegating to
// the in-memory store. The UI disables add for withdrawn items, but the
// guard here is authoritative.
type CartService struct {
	db    *gorm.DB
	store *cart.Store
}

func NewCartService(db *gorm.DB, store *cart.Store) *CartService {
	return &CartService{db: db, store: store}
}

// CartView is the cart as shown to its owner.
type CartView struct {
	Lines    []cart.Line `json:"lines"`
	Subtotal float64     `json:"subtotal"`
}

// Add resolves the item and portion, rejects items no longer offered, and
// merges a snapshot line into the account's cart.
func (s *CartService) Add(ctx context.Context, accountID, itemID uint, portionName string, quantity int) (CartView, error) {
	var item models.MenuItem
	err := s.db.WithContext(ctx).Preload("Portions").First(&item, itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CartView{}, ErrNotFound
		}
		return CartView{}, err
	}
	if !item.Offered {
		return CartView{}, ErrItemUnavailable
	}
	portion := item.PortionByName(portionName)
	if portion == nil {
		return CartView{}, ErrNotFound
	}
	s.store.Add(accountID, cart.Line{
		MenuItemID:  item.ID,
		ItemName:    item.Name,
		PortionName: portion.Name,
		UnitPrice:   portion.Price,
		Quantity:    quantity,
	})
	return s.View(accountID), nil
}

// Remove deletes the matching line; absent lines are a silent no-op.
func (s *CartService) Remove(accountID, itemID uint, portionName string) CartView {
	s.store.Remove(accountID, itemID, portionName)
	return s.View(accountID)
}

// SetQuantity overwrites a line's quantity; zero or less removes the line.
func (s *CartService) SetQuantity(accountID, itemID uint, portionName string, quantity int) CartView {
	s.store.SetQuantity(accountID, itemID, portionName, quantity)
	return s.View(accountID)
}

// Clear empties the account's cart.
func (s *CartService) Clear(accountID uint) {
	s.store.Clear(accountID)
}

// View returns the account's current lines and subtotal.
func (s *CartService) View(accountID uint) CartView {
	return CartView{
		Lines:    s.store.Lines(accountID),
		Subtotal: s.store.Subtotal(accountID),
	}
}
