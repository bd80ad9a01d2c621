package services

import (
	"context"
	"errors"
	"time"

	"canteen-api/cart"
	"canteen-api/models"
	"canteen-api/statemachine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderService owns the order ledger: placement, the status state machine,
// the cancellation window and settlement. All mutations run inside a
// transaction with a fresh re-read so a cancellation racing a staff
// transition cannot produce a lost update.
type OrderService struct {
	db      *gorm.DB
	carts   *cart.Store
	taxRate float64
	now     func() time.Time
}

func NewOrderService(db *gorm.DB, carts *cart.Store, taxRate float64) *OrderService {
	return &OrderService{db: db, carts: carts, taxRate: taxRate, now: time.Now}
}

// ListFilter narrows and sorts an order listing. Zero values mean "no
// constraint". Filtering is a pure query surface: it never mutates orders.
type ListFilter struct {
	CodeContains   string
	StatusContains string
	PlacedAfter    *time.Time
	PlacedBefore   *time.Time
	Ascending      bool
}

// Place turns the account's cart into a Pending order. The cart lines are
// copied by value so later menu edits cannot alter the placed order, and
// the cart is cleared only after the order is committed.
func (s *OrderService) Place(ctx context.Context, user *models.User, instructions string) (*models.Order, error) {
	lines := s.carts.Lines(user.ID)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := s.carts.Subtotal(user.ID)
	tax := subtotal * s.taxRate

	order := models.Order{
		Code:         "ORD-" + uuid.NewString(),
		UserID:       user.ID,
		Status:       models.StatusPending,
		Subtotal:     subtotal,
		Tax:          tax,
		Total:        subtotal + tax,
		Instructions: instructions,
		PlacedAt:     s.now(),
	}
	for _, l := range lines {
		order.Lines = append(order.Lines, models.OrderLine{
			MenuItemID:  l.MenuItemID,
			ItemName:    l.ItemName,
			PortionName: l.PortionName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.StatusPending,
			ChangedBy: user.ID,
			Note:      "Order placed by customer",
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}

	s.carts.Clear(user.ID)
	return &order, nil
}

// Get returns one order by code. Customers may only see their own orders.
func (s *OrderService) Get(ctx context.Context, code string, actor *models.User) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Lines").
		Preload("StatusHistory").
		Where("code = ?", code).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !actor.Role.IsStaff() && order.UserID != actor.ID {
		return nil, ErrNotOwner
	}
	return &order, nil
}

// ListFor returns the orders visible to the actor, filtered and sorted by
// placement time (descending unless the filter asks otherwise).
func (s *OrderService) ListFor(ctx context.Context, actor *models.User, f ListFilter) ([]models.Order, error) {
	query := s.db.WithContext(ctx).Preload("Lines")
	if !actor.Role.IsStaff() {
		query = query.Where("user_id = ?", actor.ID)
	}
	if f.CodeContains != "" {
		query = query.Where("code LIKE ?", "%"+f.CodeContains+"%")
	}
	if f.StatusContains != "" {
		query = query.Where("status LIKE ?", "%"+f.StatusContains+"%")
	}
	if f.PlacedAfter != nil {
		query = query.Where("placed_at >= ?", *f.PlacedAfter)
	}
	if f.PlacedBefore != nil {
		query = query.Where("placed_at <= ?", *f.PlacedBefore)
	}
	direction := "placed_at desc, id desc"
	if f.Ascending {
		direction = "placed_at asc, id asc"
	}
	var orders []models.Order
	if err := query.Order(direction).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Cancellable reports whether the order can still be self-cancelled at the
// current wall clock, and how many whole seconds remain. Read-only; the
// window is computed at call time, never cached.
func (s *OrderService) Cancellable(order *models.Order) (bool, int) {
	now := s.now()
	return statemachine.CancellableAt(order.Status, order.PlacedAt, now),
		statemachine.CancelSecondsLeft(order.Status, order.PlacedAt, now)
}

// Cancel performs a customer self-cancel. It succeeds only for the order's
// owner, only from Pending, and only within the cancellation window. On any
// failure the order's status is untouched.
func (s *OrderService) Cancel(ctx context.Context, code string, actor *models.User) (*models.Order, error) {
	if actor.Role != models.RoleCustomer {
		return nil, ErrForbidden
	}
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("code = ?", code).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if order.UserID != actor.ID {
			return ErrNotOwner
		}
		if err := statemachine.CanTransition(order.Status, models.StatusCancelled, "customer"); err != nil {
			return err
		}
		if !statemachine.CancellableAt(order.Status, order.PlacedAt, s.now()) {
			return ErrCancelWindowClosed
		}
		return s.applyTransition(tx, &order, models.StatusCancelled, actor.ID, "Order cancelled by customer")
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus performs a staff transition. Terminal orders reject every
// transition; other illegal moves fail with the state machine's error.
func (s *OrderService) UpdateStatus(ctx context.Context, code string, newStatus models.OrderStatus, actor *models.User, note string) (*models.Order, error) {
	if !actor.Role.IsStaff() {
		return nil, ErrForbidden
	}
	if !models.ValidStatus(newStatus) {
		return nil, ErrInvalidInput
	}
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("code = ?", code).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := statemachine.CanTransition(order.Status, newStatus, "staff"); err != nil {
			return err
		}
		return s.applyTransition(tx, &order, newStatus, actor.ID, note)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Settle closes a delivered order's bill. Any other starting status fails
// and leaves the status unchanged.
func (s *OrderService) Settle(ctx context.Context, code string, actor *models.User) (*models.Order, error) {
	if !actor.Role.IsStaff() {
		return nil, ErrForbidden
	}
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("code = ?", code).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if order.Status != models.StatusDelivered {
			return ErrNotSettleable
		}
		return s.applyTransition(tx, &order, models.StatusSettled, actor.ID, "Bill settled")
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SettleAllForAccount settles every Delivered order owned by the account
// and returns how many were affected. Orders in other statuses are left
// untouched.
func (s *OrderService) SettleAllForAccount(ctx context.Context, accountID uint, actor *models.User) (int, error) {
	if !actor.Role.IsStaff() {
		return 0, ErrForbidden
	}
	var count int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orders []models.Order
		if err := tx.Where("user_id = ? AND status = ?", accountID, models.StatusDelivered).Find(&orders).Error; err != nil {
			return err
		}
		for i := range orders {
			if err := s.applyTransition(tx, &orders[i], models.StatusSettled, actor.ID, "Bill settled (bulk)"); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// applyTransition writes the status change plus its audit row. Callers
// have already validated the transition and hold the transaction.
func (s *OrderService) applyTransition(tx *gorm.DB, order *models.Order, to models.OrderStatus, changedBy uint, note string) error {
	from := order.Status
	if err := tx.Model(order).Update("status", to).Error; err != nil {
		return err
	}
	order.Status = to
	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: from,
		ToStatus:   to,
		ChangedBy:  changedBy,
		Note:       note,
	}
	return tx.Create(&history).Error
}
