package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"microblog/internal/config"
	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Status{},
		&models.Follow{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// mailRecorder captures dispatched activation tokens on a channel.
type mailRecorder struct {
	sent chan string
}

func newMailRecorder() *mailRecorder {
	return &mailRecorder{sent: make(chan string, 8)}
}

func (m *mailRecorder) SendActivationMail(user *models.User, token string) error {
	m.sent <- token
	return nil
}

func (m *mailRecorder) waitForToken(t *testing.T) string {
	t.Helper()
	select {
	case token := <-m.sent:
		return token
	case <-time.After(2 * time.Second):
		t.Fatal("expected an activation mail")
		return ""
	}
}

// newTestServer wires a Server over an in-memory database and a recording
// mailer, with routes registered on a fresh Fiber app.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB, *mailRecorder) {
	t.Helper()

	db := setupHandlerTestDB(t)
	mail := newMailRecorder()

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	statusRepo := repository.NewStatusRepository(db)

	s := &Server{
		config:     &config.Config{JWTSecret: "test_secret"},
		db:         db,
		userRepo:   userRepo,
		followRepo: followRepo,
		statusRepo: statusRepo,
	}
	s.accountService = service.NewAccountService(userRepo, mail, s.isAdminByUserID)
	s.followService = service.NewFollowService(followRepo, userRepo)
	s.feedService = service.NewFeedService(followRepo, statusRepo)
	s.statusService = service.NewStatusService(statusRepo, s.isAdminByUserID)

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app, db, mail
}

// createActivatedUser inserts a confirmed account directly and returns it with
// a session token.
func createActivatedUser(t *testing.T, s *Server, db *gorm.DB, name string, isAdmin bool) (*models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:      name,
		Email:     name + "@example.com",
		Password:  string(hashed),
		Activated: true,
		IsAdmin:   isAdmin,
	}
	require.NoError(t, db.Create(user).Error)

	token, err := s.generateToken(user.ID, user.Name)
	require.NoError(t, err)

	return user, token
}

func jsonRequest(t *testing.T, method, target string, body any, token string) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestSignupConfirmLoginFlow(t *testing.T) {
	_, app, db, mail := newTestServer(t)

	// Signup creates a pending account and dispatches the activation mail.
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":                  "alice",
		"email":                 "alice@example.com",
		"password":              "password1",
		"password_confirmation": "password1",
	}, ""))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var signupBody struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&signupBody))
	assert.False(t, signupBody.User.Activated)

	token := mail.waitForToken(t)
	assert.Len(t, token, 10)

	// The stored account holds the same token.
	var stored models.User
	require.NoError(t, db.First(&stored, signupBody.User.ID).Error)
	require.NotNil(t, stored.ActivationToken)
	assert.Equal(t, token, *stored.ActivationToken)

	// Login before confirmation is rejected.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "password1",
	}, ""))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Confirming activates the account and opens a session.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/auth/confirm/"+token, nil, ""))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var confirmBody struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&confirmBody))
	assert.NotEmpty(t, confirmBody.Token)
	assert.True(t, confirmBody.User.Activated)

	require.NoError(t, db.First(&stored, signupBody.User.ID).Error)
	assert.True(t, stored.Activated)
	assert.Nil(t, stored.ActivationToken, "activation clears the token")

	// The token is single-use.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/auth/confirm/"+token, nil, ""))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Login now succeeds.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "password1",
	}, ""))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSignupValidation(t *testing.T) {
	_, app, _, _ := newTestServer(t)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name:           "missing fields",
			body:           map[string]string{"name": "alice"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid email",
			body: map[string]string{
				"name":                  "alice",
				"email":                 "not-an-email",
				"password":              "password1",
				"password_confirmation": "password1",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "password mismatch",
			body: map[string]string{
				"name":                  "alice",
				"email":                 "alice@example.com",
				"password":              "password1",
				"password_confirmation": "password2",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/signup", tt.body, ""))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestSignupDuplicate(t *testing.T) {
	s, app, db, _ := newTestServer(t)
	createActivatedUser(t, s, db, "alice", false)

	// Same email, different name.
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":                  "other",
		"email":                 "alice@example.com",
		"password":              "password1",
		"password_confirmation": "password1",
	}, ""))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Same name, different email.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":                  "alice",
		"email":                 "other@example.com",
		"password":              "password1",
		"password_confirmation": "password1",
	}, ""))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginInvalidCredentials(t *testing.T) {
	s, app, db, _ := newTestServer(t)
	createActivatedUser(t, s, db, "alice", false)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	}, ""))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "password1",
	}, ""))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	_, app, _, _ := newTestServer(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users/me"},
		{http.MethodGet, "/api/feed"},
		{http.MethodPost, "/api/users/1/follow"},
		{http.MethodPost, "/api/statuses/"},
	} {
		resp, err := app.Test(jsonRequest(t, route.method, route.path, nil, ""))
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
	}
}
