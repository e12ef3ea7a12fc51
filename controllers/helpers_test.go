package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"buildbidz-api/config"
	"buildbidz-api/models"
	"buildbidz-api/routes"
	"buildbidz-api/services"
	"buildbidz-api/supabase"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-signing-secret"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Bid{},
		&models.Message{},
		&models.Document{},
		&models.Payment{},
	))
	return db
}

// fakeIdP is an in-memory stand-in for the hosted identity provider. It
// issues real HS256 tokens signed with the same secret the middleware
// verifies against.
type fakeIdP struct {
	mu       sync.Mutex
	accounts map[string]*fakeAccount // by email
	deleted  []string
}

type fakeAccount struct {
	ID       string
	Email    string
	Password string
	Metadata map[string]interface{}
}

func newFakeIdP() *fakeIdP {
	return &fakeIdP{accounts: map[string]*fakeAccount{}}
}

func (f *fakeIdP) Deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func (f *fakeIdP) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string                 `json:"email"`
			Password string                 `json:"password"`
			Data     map[string]interface{} `json:"data"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		defer f.mu.Unlock()
		if _, exists := f.accounts[req.Email]; exists {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"msg": "User already registered"})
			return
		}
		account := &fakeAccount{
			ID:       uuid.NewString(),
			Email:    req.Email,
			Password: req.Password,
			Metadata: req.Data,
		}
		f.accounts[req.Email] = account
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":            account.ID,
			"email":         account.Email,
			"user_metadata": account.Metadata,
		})
	})

	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		account, ok := f.accounts[req.Email]
		f.mu.Unlock()
		if !ok || account.Password != req.Password {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  mintProviderToken(account.ID, account.Email),
			"refresh_token": uuid.NewString(),
			"expires_in":    3600,
			"user": map[string]interface{}{
				"id":            account.ID,
				"email":         account.Email,
				"user_metadata": account.Metadata,
			},
		})
	})

	mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		claims := &jwt.RegisteredClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testJWTSecret), nil
		})
		if err != nil || !parsed.Valid {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"msg": "invalid JWT"})
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		for _, account := range f.accounts {
			if account.ID == claims.Subject {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"id":            account.ID,
					"email":         account.Email,
					"user_metadata": account.Metadata,
				})
				return
			}
		}
		w.WriteHeader(http.StatusUnauthorized)
	})

	mux.HandleFunc("/auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("/auth/v1/admin/users/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/auth/v1/admin/users/")
		f.mu.Lock()
		defer f.mu.Unlock()
		f.deleted = append(f.deleted, id)
		for email, account := range f.accounts {
			if account.ID == id {
				delete(f.accounts, email)
				break
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

func mintProviderToken(userID, email string) string {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		panic(err)
	}
	return token
}

type testEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	IdP    *fakeIdP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	idp := newFakeIdP()
	server := httptest.NewServer(idp.handler())
	t.Cleanup(server.Close)

	settings := &config.Settings{
		SupabaseURL:        server.URL,
		SupabaseKey:        "anon-key",
		SupabaseServiceKey: "service-key",
		JWTSecret:          testJWTSecret,
		APIPrefix:          "/api",
		UploadPath:         t.TempDir(),
	}

	authClient := supabase.NewClient(server.URL, "anon-key", "service-key")
	notifier := services.NewNotifier(db, config.NewMailer(settings))

	router := gin.New()
	routes.SetupRoutes(router, routes.Deps{
		DB:       db,
		Auth:     authClient,
		Settings: settings,
		Notifier: notifier,
	})

	return &testEnv{DB: db, Router: router, IdP: idp}
}

// createUser inserts a profile row directly and returns it with a valid
// provider token, skipping the registration flow.
func (env *testEnv) createUser(t *testing.T, username string, role models.UserRole) (*models.User, string) {
	t.Helper()
	user := models.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, env.DB.Create(&user).Error)
	return &user, mintProviderToken(user.ID, user.Email)
}

func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
