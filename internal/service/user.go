package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/recipebook/backend/internal/models"
)

var (
	ErrInvalidEmail     = errors.New("enter a valid email address")
	ErrEmailTaken       = errors.New("a user with this email already exists")
	ErrPasswordTooShort = errors.New("password must be at least 5 characters")
	ErrUserNotFound     = errors.New("user not found")
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 5

// emailPattern accepts local@label(.label)+ where domain labels are
// alphanumeric with interior hyphens and the final label is at least two
// letters. Stricter than RFC 5321 on purpose: it rejects missing TLDs,
// one-letter TLDs, hyphen-edged or underscored labels, doubled dots, and
// trailing junk after the TLD.
var emailPattern = regexp.MustCompile(
	`^[A-Za-z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@(?:[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?\.)+[A-Za-z]{2,}$`,
)

// NormalizeEmail lowercases the domain segment of an email address. The local
// part keeps its case.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// ValidateEmail reports whether the address is acceptable for registration.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrInvalidEmail
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// UserService handles user accounts.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser validates and normalizes the email, hashes the password and
// persists a regular active user.
func (s *UserService) CreateUser(ctx context.Context, email, password, name string) (*models.User, error) {
	return s.createUser(ctx, email, password, name, false)
}

// CreateSuperuser creates a user with staff and superuser flags set.
func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	return s.createUser(ctx, email, password, "", true)
}

func (s *UserService) createUser(ctx context.Context, email, password, name string, super bool) (*models.User, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	email = NormalizeEmail(email)

	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		IsActive:     true,
		IsStaff:      super,
		IsSuperuser:  super,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID fetches a user by primary key.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUserParams is a partial update: nil fields stay untouched.
type UpdateUserParams struct {
	Name     *string
	Password *string
}

// UpdateUser applies a partial update to name and password. A new password is
// re-hashed before storing.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Password != nil {
		if len(*params.Password) < MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
