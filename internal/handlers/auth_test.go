package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"klinik-sentosa-server/internal/access"
	"klinik-sentosa-server/internal/middleware"
	"klinik-sentosa-server/internal/models"
	"klinik-sentosa-server/internal/repository"
	"klinik-sentosa-server/internal/session"
	"klinik-sentosa-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeIdentities struct {
	users map[string]*models.User
}

func newFakeIdentities() *fakeIdentities {
	return &fakeIdentities{users: map[string]*models.User{}}
}

func (f *fakeIdentities) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeIdentities) CreateIdentity(_ context.Context, user *models.User, fullName string) (*models.Profile, error) {
	if _, ok := f.users[user.Email]; ok {
		return nil, repository.ErrEmailTaken
	}
	user.ID = "user-" + user.Email
	f.users[user.Email] = user
	profile := &models.Profile{FullName: fullName}
	profile.ID = user.ID
	return profile, nil
}

func performJSON(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, data interface{}) utils.ResponseData {
	t.Helper()
	var raw struct {
		utils.ResponseData
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	if data != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.ResponseData
}

func setupAuthRouter(users IdentityStore) (*gin.Engine, *session.Manager) {
	sessions := session.NewManager(session.NewMemoryStore(), "test-secret", time.Hour, zap.NewNop())
	h := NewAuthHandler(users, sessions, zap.NewNop())

	router := gin.New()
	router.POST("/auth/signup", h.Signup)
	router.POST("/auth/login", h.Login)
	private := router.Group("/auth", middleware.AuthMiddleware(sessions, zap.NewNop()))
	private.POST("/logout", h.Logout)
	private.GET("/session", h.GetSession)
	return router, sessions
}

func TestAuthHandler_SignupSignsIn(t *testing.T) {
	router, _ := setupAuthRouter(newFakeIdentities())

	w := performJSON(router, http.MethodPost, "/auth/signup", gin.H{
		"full_name": "Sri Wahyuni",
		"email":     "sri@klinik.test",
		"password":  "rahasia",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var login LoginResponse
	decodeBody(t, w, &login)
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "/dashboard", login.Redirect)
	assert.Equal(t, "sri@klinik.test", login.User.Email)

	w = performJSON(router, http.MethodGet, "/auth/session", nil, login.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_SignupRejectsDuplicateEmail(t *testing.T) {
	router, _ := setupAuthRouter(newFakeIdentities())
	body := gin.H{"full_name": "Budi", "email": "budi@klinik.test", "password": "rahasia"}

	require.Equal(t, http.StatusCreated, performJSON(router, http.MethodPost, "/auth/signup", body, "").Code)
	w := performJSON(router, http.MethodPost, "/auth/signup", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_SignupValidatesPayload(t *testing.T) {
	router, _ := setupAuthRouter(newFakeIdentities())

	w := performJSON(router, http.MethodPost, "/auth/signup", gin.H{
		"full_name": "Budi",
		"email":     "not-an-email",
		"password":  "123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	users := newFakeIdentities()
	u := &models.User{Email: "dokter@klinik.test"}
	u.ID = "user-dokter"
	require.NoError(t, u.SetPassword("stetoskop"))
	users.users[u.Email] = u

	router, _ := setupAuthRouter(users)

	tests := []struct {
		name     string
		email    string
		password string
		status   int
	}{
		{"correct credentials", "dokter@klinik.test", "stetoskop", http.StatusOK},
		{"wrong password", "dokter@klinik.test", "salah", http.StatusUnauthorized},
		{"unknown email", "siapa@klinik.test", "stetoskop", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(router, http.MethodPost, "/auth/login", gin.H{"email": tt.email, "password": tt.password}, "")
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAuthHandler_LogoutEndsSession(t *testing.T) {
	router, _ := setupAuthRouter(newFakeIdentities())

	w := performJSON(router, http.MethodPost, "/auth/signup", gin.H{
		"full_name": "Kasir", "email": "kasir@klinik.test", "password": "rahasia",
	}, "")
	var login LoginResponse
	decodeBody(t, w, &login)

	w = performJSON(router, http.MethodPost, "/auth/logout", nil, login.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(router, http.MethodGet, "/auth/session", nil, login.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w, nil)
	assert.Equal(t, access.AuthRoute, body.Redirect)
	assert.Empty(t, body.Error)
}
