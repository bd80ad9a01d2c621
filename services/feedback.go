package services

import (
	"context"
	"errors"

	"canteen-api/models"

	"gorm.io/gorm"
)

// FeedbackService records customer ratings for their own orders.
type FeedbackService struct {
	db *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

// Submit stores a 1-5 star rating for one of the actor's orders.
func (s *FeedbackService) Submit(ctx context.Context, actor *models.User, orderCode string, rating int, comment string) (*models.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidInput
	}
	var order models.Order
	if err := s.db.WithContext(ctx).Where("code = ?", orderCode).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.UserID != actor.ID {
		return nil, ErrNotOwner
	}
	fb := models.Feedback{
		UserID:  actor.ID,
		OrderID: order.ID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.db.WithContext(ctx).Create(&fb).Error; err != nil {
		return nil, err
	}
	return &fb, nil
}

// ListAll returns every feedback entry. Staff only.
func (s *FeedbackService) ListAll(ctx context.Context, actor *models.User) ([]models.Feedback, error) {
	if !actor.Role.IsStaff() {
		return nil, ErrForbidden
	}
	var fbs []models.Feedback
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&fbs).Error
	return fbs, err
}
