package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipe-api/backend/config"
	"github.com/pageza/recipe-api/backend/internal/api"
	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/router"
	"github.com/pageza/recipe-api/backend/internal/service"
	"github.com/pageza/recipe-api/backend/internal/storage"
	"github.com/pageza/recipe-api/backend/internal/testhelpers"
)

const (
	usersURL   = "/api/user"
	recipesURL = "/api/recipe/recipes"
	tagsURL    = "/api/recipe/tags"
	ingredsURL = "/api/recipe/ingredients"
)

type testEnv struct {
	router http.Handler
	db     *gorm.DB
	auth   *service.AuthService
}

func newTestConfig() *config.Config {
	return &config.Config{
		Environment:        config.Test,
		JWTSecret:          "test-secret",
		TokenTTL:           time.Hour,
		CORSAllowedOrigins: []string{"http://localhost:5173"},
	}
}

func setupTestEnv(t *testing.T) *testEnv {
	return setupTestEnvWithStore(t, newTestConfig(), testhelpers.NewMemoryFileStore())
}

func setupTestEnvWithStore(t *testing.T, cfg *config.Config, store storage.FileStore) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	log := zap.NewNop()
	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, log)
	images := service.NewImageService(store, log)

	deps := api.Dependencies{
		DB:                db,
		AuthService:       authService,
		RecipeService:     service.NewRecipeService(db, images, log),
		TagService:        service.NewTagService(db),
		IngredientService: service.NewIngredientService(db),
	}
	return &testEnv{
		router: router.SetupRouter(cfg, deps, log),
		db:     db,
		auth:   authService,
	}
}

// CreateTestUserAndToken creates a user and returns it with a valid bearer token
func (e *testEnv) CreateTestUserAndToken(t *testing.T, email string) (*models.User, string) {
	t.Helper()
	user := testhelpers.CreateTestUser(t, e.db, email)
	token, err := e.auth.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

// PerformRequestWithToken sends body as JSON. An empty token sends no Authorization header.
func PerformRequestWithToken(router http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
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

// PerformUpload posts data as the "image" field of a multipart form.
func PerformUpload(t *testing.T, router http.Handler, path, filename string, data []byte, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if data != nil {
		part, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("image", ""))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields"`
}

type attributeBody struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type recipeBody struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       string          `json:"price"`
	Link        string          `json:"link"`
	Description *string         `json:"description"`
	Image       *string         `json:"image"`
	Tags        []attributeBody `json:"tags"`
	Ingredients []attributeBody `json:"ingredients"`
}

func names(items []attributeBody) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}
