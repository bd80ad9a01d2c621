package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"canteen-api/daypart"
	"canteen-api/models"

	"gorm.io/gorm"
)

// CatalogService owns the menu: staff CRUD plus the "orderable now"
// computation. Edits here never touch placed-order line snapshots.
type CatalogService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db, now: time.Now}
}

// PortionInput is one priced serving size in a create/update request.
type PortionInput struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"required"`
}

// MenuItemInput carries everything needed to create or replace an item.
type MenuItemInput struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description" binding:"required"`
	Category    string              `json:"category"`
	ImageURL    string              `json:"image_url"`
	Ingredients []string            `json:"ingredients"`
	Offered     *bool               `json:"offered"`
	Windows     []models.TimeWindow `json:"windows" binding:"required,min=1"`
	Portions    []PortionInput      `json:"portions" binding:"required,min=1"`
}

func validateItemInput(in MenuItemInput) error {
	if len(strings.TrimSpace(in.Name)) < 2 || len(strings.TrimSpace(in.Description)) < 5 {
		return ErrInvalidInput
	}
	if len(in.Portions) == 0 || len(in.Windows) == 0 {
		return ErrInvalidInput
	}
	seen := map[string]bool{}
	for _, p := range in.Portions {
		name := strings.TrimSpace(p.Name)
		if name == "" || p.Price <= 0 || seen[name] {
			return ErrInvalidInput
		}
		seen[name] = true
	}
	for _, w := range in.Windows {
		if !models.ValidWindow(w) {
			return ErrInvalidInput
		}
	}
	return nil
}

func buildItem(in MenuItemInput) models.MenuItem {
	offered := true
	if in.Offered != nil {
		offered = *in.Offered
	}
	item := models.MenuItem{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Ingredients: strings.Join(in.Ingredients, ","),
		Offered:     offered,
	}
	for _, w := range in.Windows {
		item.Windows = append(item.Windows, models.ItemWindow{Window: w})
	}
	for _, p := range in.Portions {
		item.Portions = append(item.Portions, models.Portion{Name: strings.TrimSpace(p.Name), Price: p.Price})
	}
	return item
}

// CreateItem validates and stores a new menu item. Staff only.
func (s *CatalogService) CreateItem(ctx context.Context, actor *models.User, in MenuItemInput) (*models.MenuItem, error) {
	if !actor.Role.IsStaff() {
		return nil, ErrForbidden
	}
	if err := validateItemInput(in); err != nil {
		return nil, err
	}
	item := buildItem(in)
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem replaces an item's fields, portions and windows wholesale.
func (s *CatalogService) UpdateItem(ctx context.Context, actor *models.User, id uint, in MenuItemInput) (*models.MenuItem, error) {
	if !actor.Role.IsStaff() {
		return nil, ErrForbidden
	}
	if err := validateItemInput(in); err != nil {
		return nil, err
	}
	var item models.MenuItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		replacement := buildItem(in)
		replacement.ID = item.ID
		replacement.CreatedAt = item.CreatedAt
		if err := tx.Where("menu_item_id = ?", item.ID).Delete(&models.Portion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("menu_item_id = ?", item.ID).Delete(&models.ItemWindow{}).Error; err != nil {
			return err
		}
		if err := tx.Save(&replacement).Error; err != nil {
			return err
		}
		item = replacement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes a menu item with its portions and windows. Existing
// order snapshots are unaffected.
func (s *CatalogService) DeleteItem(ctx context.Context, actor *models.User, id uint) error {
	if !actor.Role.IsStaff() {
		return ErrForbidden
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.MenuItem
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("menu_item_id = ?", id).Delete(&models.Portion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("menu_item_id = ?", id).Delete(&models.ItemWindow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

// GetItem returns one item with portions and windows.
func (s *CatalogService) GetItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.WithContext(ctx).Preload("Portions").Preload("Windows").First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ListAll returns every menu item, offered or not. Staff menu management view.
func (s *CatalogService) ListAll(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.db.WithContext(ctx).Preload("Portions").Preload("Windows").Order("id").Find(&items).Error
	return items, err
}

// ListAvailableNow returns items that are offered and whose windows cover
// the current day part. Recomputed against the wall clock on every call.
func (s *CatalogService) ListAvailableNow(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return daypart.Filter(items, s.now()), nil
}
