package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/recipebook/backend/internal/models"
	"github.com/recipebook/backend/internal/service"
	"github.com/recipebook/backend/internal/testhelpers"
)

func setupAuthTest(t *testing.T) (*gorm.DB, *service.UserService, *service.AuthService) {
	db := testhelpers.SetupTestDatabase(t)
	return db, service.NewUserService(db), service.NewAuthService(db, "test-secret")
}

func TestIssueTokenSuccess(t *testing.T) {
	_, users, auth := setupAuthTest(t)

	user, err := users.CreateUser(context.Background(), "login@example.com", "testpass123", "")
	require.NoError(t, err)

	token, err := auth.IssueToken(context.Background(), "login@example.com", "testpass123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestIssueTokenNormalizesEmail(t *testing.T) {
	_, users, auth := setupAuthTest(t)

	_, err := users.CreateUser(context.Background(), "login@example.com", "testpass123", "")
	require.NoError(t, err)

	_, err = auth.IssueToken(context.Background(), "login@EXAMPLE.com", "testpass123")
	assert.NoError(t, err)
}

func TestIssueTokenBadCredentials(t *testing.T) {
	_, users, auth := setupAuthTest(t)

	_, err := users.CreateUser(context.Background(), "login@example.com", "goodpass123", "")
	require.NoError(t, err)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "login@example.com", "badpass123"},
		{"unknown email", "nobody@example.com", "goodpass123"},
		{"blank email", "", "goodpass123"},
		{"blank password", "login@example.com", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.IssueToken(context.Background(), tc.email, tc.password)
			assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		})
	}
}

func TestReissueReplacesToken(t *testing.T) {
	db, users, auth := setupAuthTest(t)

	user, err := users.CreateUser(context.Background(), "login@example.com", "testpass123", "")
	require.NoError(t, err)

	first, err := auth.IssueToken(context.Background(), "login@example.com", "testpass123")
	require.NoError(t, err)
	second, err := auth.IssueToken(context.Background(), "login@example.com", "testpass123")
	require.NoError(t, err)

	// The earlier token is revoked even though its signature still verifies.
	_, err = auth.ValidateToken(first)
	assert.Error(t, err)
	_, err = auth.ValidateToken(second)
	assert.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.AuthToken{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	db, users, auth := setupAuthTest(t)

	_, err := users.CreateUser(context.Background(), "login@example.com", "testpass123", "")
	require.NoError(t, err)

	other := service.NewAuthService(db, "other-secret")
	token, err := other.IssueToken(context.Background(), "login@example.com", "testpass123")
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, _, auth := setupAuthTest(t)

	_, err := auth.ValidateToken("not-a-token")
	assert.Error(t, err)
	_, err = auth.ValidateToken("")
	assert.Error(t, err)
}
