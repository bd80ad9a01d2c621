package services

import (
	"context"
	"errors"
	"strings"

	"canteen-api/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minSecretLen = 6

// AccountService owns users, roles, credentials and the self-service
// password-reset queue. Email comparison is an exact match; case folding
// is a known simplification left to callers.
type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

func hashSecret(secret string) (string, error) {
	if len(secret) < minSecretLen {
		return "", ErrWeakSecret
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register creates a customer account. The duplicate-email check and the
// insert run in one transaction so concurrent signups cannot collide.
func (s *AccountService) Register(ctx context.Context, name, email, secret string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, ErrInvalidInput
	}
	hash, err := hashSecret(secret)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleCustomer,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("email = ?", email).First(&existing).Error; err == nil {
			return ErrDuplicateEmail
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login returns the matching account. Unknown email and wrong secret fail
// identically so callers cannot enumerate accounts.
func (s *AccountService) Login(ctx context.Context, email, secret string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(secret)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Get returns one account by id.
func (s *AccountService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns all accounts. Superadmin only.
func (s *AccountService) List(ctx context.Context, actor *models.User) ([]models.User, error) {
	if actor.Role != models.RoleSuperAdmin {
		return nil, ErrForbidden
	}
	var users []models.User
	err := s.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

// AccountInput carries a superadmin add/update request.
type AccountInput struct {
	Name        string          `json:"name" binding:"required"`
	Email       string          `json:"email" binding:"required,email"`
	Secret      string          `json:"password"`
	Role        models.UserRole `json:"role" binding:"required"`
	Preferences string          `json:"dietary_preferences"`
}

// Add creates an account with an explicit role. Superadmin only.
func (s *AccountService) Add(ctx context.Context, actor *models.User, in AccountInput) (*models.User, error) {
	if actor.Role != models.RoleSuperAdmin {
		return nil, ErrForbidden
	}
	if !models.ValidRole(in.Role) {
		return nil, ErrInvalidInput
	}
	hash, err := hashSecret(in.Secret)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		Role:         in.Role,
		Preferences:  in.Preferences,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("email = ?", user.Email).First(&existing).Error; err == nil {
			return ErrDuplicateEmail
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update edits name, email, role and preferences. The duplicate-email
// guard excludes the account's own current email. Superadmin only.
func (s *AccountService) Update(ctx context.Context, actor *models.User, id uint, in AccountInput) (*models.User, error) {
	if actor.Role != models.RoleSuperAdmin {
		return nil, ErrForbidden
	}
	if !models.ValidRole(in.Role) {
		return nil, ErrInvalidInput
	}
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		email := strings.TrimSpace(in.Email)
		var existing models.User
		if err := tx.Where("email = ? AND id <> ?", email, id).First(&existing).Error; err == nil {
			return ErrDuplicateEmail
		}
		user.Name = strings.TrimSpace(in.Name)
		user.Email = email
		user.Role = in.Role
		user.Preferences = in.Preferences
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes an account. Self-deletion is rejected so the directory
// can never lose its last superadmin by accident. Superadmin only.
func (s *AccountService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if actor.Role != models.RoleSuperAdmin {
		return ErrForbidden
	}
	if actor.ID == id {
		return ErrCannotDeleteSelf
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(&user).Error
	})
}

// ChangeSecret sets a new credential secret for one account. Superadmin only.
func (s *AccountService) ChangeSecret(ctx context.Context, actor *models.User, id uint, newSecret string) error {
	if actor.Role != models.RoleSuperAdmin {
		return ErrForbidden
	}
	hash, err := hashSecret(newSecret)
	if err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetAllSecrets sets every account's secret to the same value and
// returns how many accounts were touched. Superadmin only.
func (s *AccountService) ResetAllSecrets(ctx context.Context, actor *models.User, newSecret string) (int, error) {
	if actor.Role != models.RoleSuperAdmin {
		return 0, ErrForbidden
	}
	hash, err := hashSecret(newSecret)
	if err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Model(&models.User{}).Where("1 = 1").Update("password_hash", hash)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

// RequestReset files a reset request for the email's account. The boolean
// return leaks account existence; kept as a documented simplification.
func (s *AccountService) RequestReset(ctx context.Context, email string) (bool, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	req := models.PasswordResetRequest{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserEmail: user.Email,
	}
	if err := s.db.WithContext(ctx).Create(&req).Error; err != nil {
		return false, err
	}
	return true, nil
}

// ListResetRequests returns the unresolved reset queue. Superadmin only.
func (s *AccountService) ListResetRequests(ctx context.Context, actor *models.User) ([]models.PasswordResetRequest, error) {
	if actor.Role != models.RoleSuperAdmin {
		return nil, ErrForbidden
	}
	var reqs []models.PasswordResetRequest
	err := s.db.WithContext(ctx).Order("created_at").Find(&reqs).Error
	return reqs, err
}

// ResolveReset applies a new secret to the requesting account and deletes
// the request. A second resolution of the same id fails because the
// request row is already gone. Superadmin only.
func (s *AccountService) ResolveReset(ctx context.Context, actor *models.User, requestID, newSecret string) error {
	if actor.Role != models.RoleSuperAdmin {
		return ErrForbidden
	}
	hash, err := hashSecret(newSecret)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req models.PasswordResetRequest
		if err := tx.Where("id = ?", requestID).First(&req).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResetRequestNotFound
			}
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", req.UserID).Update("password_hash", hash).Error; err != nil {
			return err
		}
		return tx.Delete(&req).Error
	})
}
