package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/recipebook/backend/internal/api"
	"github.com/recipebook/backend/internal/middleware"
	"github.com/recipebook/backend/internal/models"
	"github.com/recipebook/backend/internal/router"
	"github.com/recipebook/backend/internal/service"
	"github.com/recipebook/backend/internal/testhelpers"
)

type testEnv struct {
	db      *gorm.DB
	router  *gin.Engine
	users   *service.UserService
	auth    *service.AuthService
	recipes *service.RecipeService
}

func setupTestEnv(t *testing.T) *testEnv {
	return setupTestEnvWithImages(t, nil)
}

func setupTestEnvWithImages(t *testing.T, images api.ImageUploader) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	users := service.NewUserService(db)
	auth := service.NewAuthService(db, "test-secret")
	recipes := service.NewRecipeService(db)

	engine := router.SetupRouter(
		api.NewAuthHandler(users, auth),
		api.NewProfileHandler(users),
		api.NewRecipeHandler(recipes, images),
		auth,
		middleware.NewLoginRateLimiter(nil),
	)

	return &testEnv{
		db:      db,
		router:  engine,
		users:   users,
		auth:    auth,
		recipes: recipes,
	}
}

// createUser registers a user directly through the store and returns it with
// a freshly issued token.
func (e *testEnv) createUser(t *testing.T, email, password, name string) (*models.User, string) {
	t.Helper()

	user, err := e.users.CreateUser(context.Background(), email, password, name)
	require.NoError(t, err)

	token, err := e.auth.IssueToken(context.Background(), email, password)
	require.NoError(t, err)

	return user, token
}

// performRequest drives the router with an optional JSON body and bearer
// token.
func performRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// performMultipartImage posts a small multipart body with an image part to
// the given path.
func performMultipartImage(t *testing.T, router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="test.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("not-really-a-jpeg"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeJSONList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
