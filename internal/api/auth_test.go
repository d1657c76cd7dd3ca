package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/recipebook/backend/internal/models"
)

func TestRegisterSuccess(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(env.router, "POST", "/api/v1/users", map[string]interface{}{
		"email":    "name@domain.com",
		"password": "testpass123",
		"name":     "Test Name",
	}, "")

	assert.Equal(t, http.StatusCreated, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, "name@domain.com", body["email"])
	assert.Equal(t, "Test Name", body["name"])

	var user models.User
	require.NoError(t, env.db.Where("email = ?", "name@domain.com").First(&user).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("testpass123")))
}

func TestRegisterPasswordNotReturned(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(env.router, "POST", "/api/v1/users", map[string]interface{}{
		"email":    "name@domain.com",
		"password": "testpass123",
		"name":     "Test Name",
	}, "")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "testpass123")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "name@domain.com", "testpass123", "Test Name")

	w := performRequest(env.router, "POST", "/api/v1/users", map[string]interface{}{
		"email":    "name@domain.com",
		"password": "testpass123",
		"name":     "Test Name",
	}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Where("email = ?", "name@domain.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterInvalidEmails(t *testing.T) {
	env := setupTestEnv(t)

	emails := []string{
		"name@domain",
		"name@domain.",
		"name@domain.c",
		"name@-domain.com",
		"name@_domain.com",
		"name@domain-.com",
		"name@domain.com_",
		"name@.domain.com",
		"name@domain..com",
		"name@domain@domain.com",
		"name @ domain.com",
		"“”name””@domain.com",
		"“name”@domain@com",
		"“name”@domain”com",
		"verylongname@domain.com_",
		"name@verylongdomainpart.com_",
		" ",
	}

	for _, email := range emails {
		w := performRequest(env.router, "POST", "/api/v1/users", map[string]interface{}{
			"email":    email,
			"password": "testpass12 ",
			"name":     "Test Name",
		}, "")

		assert.Equal(t, http.StatusBadRequest, w.Code, "email %q should be rejected", email)

		var count int64
		require.NoError(t, env.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error)
		assert.Zero(t, count, "email %q should not create a row", email)
	}
}

func TestRegisterPasswordTooShort(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(env.router, "POST", "/api/v1/users", map[string]interface{}{
		"email":    "name@domain.com",
		"password": "test",
		"name":     "Test Name",
	}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegisterPasswordExactlyMinLength(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(env.router, "POST", "/api/v1/users", map[string]interface{}{
		"email":    "name@domain.com",
		"password": "tests",
		"name":     "Test Name",
	}, "")

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestTokenSuccess(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "name@domain.com", "testpass123", "Test Name")

	w := performRequest(env.router, "POST", "/api/v1/users/token", map[string]interface{}{
		"email":    "name@domain.com",
		"password": "testpass123",
	}, "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Contains(t, body, "token")
	assert.NotEmpty(t, body["token"])
}

func TestTokenFailures(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "name@domain.com", "goodpass123", "Test Name")

	cases := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"wrong password", map[string]interface{}{"email": "name@domain.com", "password": "badpass123"}},
		{"unknown email", map[string]interface{}{"email": "nobody@domain.com", "password": "goodpass123"}},
		{"blank email", map[string]interface{}{"email": "", "password": "goodpass123"}},
		{"blank password", map[string]interface{}{"email": "name@domain.com", "password": ""}},
		{"missing fields", map[string]interface{}{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performRequest(env.router, "POST", "/api/v1/users/token", tc.payload, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeJSON(t, w)
			assert.NotContains(t, body, "token")
		})
	}
}
