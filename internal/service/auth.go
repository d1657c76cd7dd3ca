package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/recipebook/backend/internal/middleware"
	"github.com/recipebook/backend/internal/models"
)

// ErrInvalidCredentials deliberately covers both unknown email and wrong
// password so responses cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenTTL = 24 * time.Hour

// AuthService issues and validates bearer tokens. A token is an HS256 JWT
// whose token ID (jti) is anchored to the user's AuthToken row; reissuing
// replaces the row and thereby revokes the previous token even though its
// signature is still valid.
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
	}
}

// IssueToken exchanges verified credentials for a bearer token.
func (s *AuthService) IssueToken(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	tokenID := uuid.New()
	signed, err := s.signToken(user.ID, tokenID)
	if err != nil {
		return "", err
	}

	// One live token per user: conflict on user_id replaces the stored jti.
	record := models.AuthToken{UserID: user.ID, TokenID: tokenID}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token_id", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return "", err
	}

	return signed, nil
}

func (s *AuthService) signToken(userID, tokenID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"jti":     tokenID.String(),
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken verifies the signature and claims, then requires the token ID
// to match the user's stored AuthToken row.
func (s *AuthService) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	tokenIDStr, ok := claims["jti"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}
	tokenID, err := uuid.Parse(tokenIDStr)
	if err != nil {
		return nil, err
	}

	var record models.AuthToken
	if err := s.db.Where("user_id = ? AND token_id = ?", userID, tokenID).First(&record).Error; err != nil {
		return nil, errors.New("token revoked")
	}

	return &middleware.TokenClaims{UserID: userID}, nil
}
