// Package cart holds the transient pre-order selections for each account.
// Carts live only in process memory and reset on restart.
package cart

import "sync"

// Line is one (item, portion) selection. Name and unit price are copied in
// when the line is added so a later menu edit cannot change a cart total
// out from under the customer.
type Line struct {
	MenuItemID  uint    `json:"menu_item_id"`
	ItemName    string  `json:"item_name"`
	PortionName string  `json:"portion_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

// Store keeps one cart per account id.
type Store struct {
	mu    sync.RWMutex
	carts map[uint][]Line
}

func NewStore() *Store {
	return &Store{carts: make(map[uint][]Line)}
}

// Add merges the line into the account's cart. A line with the same
// (item id, portion name) key has its quantity increased; otherwise the
// line is appended. Quantities below one are treated as one.
func (s *Store) Add(accountID uint, line Line) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[accountID]
	for i := range lines {
		if lines[i].MenuItemID == line.MenuItemID && lines[i].PortionName == line.PortionName {
			lines[i].Quantity += line.Quantity
			return
		}
	}
	s.carts[accountID] = append(lines, line)
}

// Remove deletes the matching line. Removing an absent line is a no-op,
// not an error: it is idempotent and harmless.
func (s *Store) Remove(accountID, itemID uint, portionName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[accountID]
	for i := range lines {
		if lines[i].MenuItemID == itemID && lines[i].PortionName == portionName {
			s.carts[accountID] = append(lines[:i], lines[i+1:]...)
			return
		}
	}
}

// SetQuantity overwrites the line's quantity. A quantity of zero or less
// removes the line, matching Remove exactly.
func (s *Store) SetQuantity(accountID, itemID uint, portionName string, quantity int) {
	if quantity <= 0 {
		s.Remove(accountID, itemID, portionName)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[accountID]
	for i := range lines {
		if lines[i].MenuItemID == itemID && lines[i].PortionName == portionName {
			lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the account's cart. Called after a successful placement.
func (s *Store) Clear(accountID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, accountID)
}

// Lines returns a copy of the account's cart lines.
func (s *Store) Lines(accountID uint) []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines := s.carts[accountID]
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

// Subtotal sums unit price times quantity over the account's lines.
func (s *Store) Subtotal(accountID uint) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sum float64
	for _, l := range s.carts[accountID] {
		sum += l.UnitPrice * float64(l.Quantity)
	}
	return sum
}
