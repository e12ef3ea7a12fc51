package controllers_test

import (
	"net/http"
	"testing"

	"buildbidz-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEchoesProfile(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":        "alice@example.com",
		"password":     "secret-pass",
		"username":     "alice",
		"role":         "company",
		"company_name": "Alice Construction",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		Username    string `json:"username"`
		Role        string `json:"role"`
		CompanyName string `json:"company_name"`
	}
	decodeBody(t, w, &profile)

	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "company", profile.Role)
	assert.Equal(t, "Alice Construction", profile.CompanyName)

	// The profile row was persisted with the provider-assigned id.
	var user models.User
	require.NoError(t, env.DB.Where("id = ?", profile.ID).First(&user).Error)
	assert.Equal(t, "alice", user.Username)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"BadEmail", map[string]interface{}{"email": "nope", "password": "secret-pass", "username": "u", "role": "company"}},
		{"ShortPassword", map[string]interface{}{"email": "a@b.co", "password": "short", "username": "u", "role": "company"}},
		{"BadRole", map[string]interface{}{"email": "a@b.co", "password": "secret-pass", "username": "u", "role": "wizard"}},
		{"MissingFields", map[string]interface{}{"email": "a@b.co"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/auth/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "detail")
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]interface{}{
		"email": "dup@example.com", "password": "secret-pass",
		"username": "dup", "role": "supplier",
	}
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/auth/register", "", body).Code)

	w := env.do(t, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")
}

func TestRegisterCompensatesFailedProfileInsert(t *testing.T) {
	env := newTestEnv(t)

	// Same username, different email: the provider accepts the signup but
	// the profile insert hits the unique username constraint.
	first := map[string]interface{}{
		"email": "one@example.com", "password": "secret-pass",
		"username": "taken", "role": "supplier",
	}
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/auth/register", "", first).Code)

	second := map[string]interface{}{
		"email": "two@example.com", "password": "secret-pass",
		"username": "taken", "role": "supplier",
	}
	w := env.do(t, http.MethodPost, "/api/auth/register", "", second)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The orphaned identity was deleted again.
	require.Len(t, env.IdP.Deleted(), 1)

	var count int64
	env.DB.Model(&models.User{}).Where("email = ?", "two@example.com").Count(&count)
	assert.Zero(t, count)
}

func TestLoginReturnsTokensAndUser(t *testing.T) {
	env := newTestEnv(t)

	reg := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email": "bob@example.com", "password": "secret-pass",
		"username": "bob", "role": "supplier",
	})
	require.Equal(t, http.StatusOK, reg.Code)
	var profile struct {
		ID string `json:"id"`
	}
	decodeBody(t, reg, &profile)

	w := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "bob@example.com", "password": "secret-pass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		User         struct {
			ID       string `json:"id"`
			Email    string `json:"email"`
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	decodeBody(t, w, &resp)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, profile.ID, resp.User.ID)
	assert.Equal(t, "bob", resp.User.Username)
	assert.Equal(t, "supplier", resp.User.Role)
}

func TestLoginFailureIsAlwaysUnauthorized(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email": "carol@example.com", "password": "secret-pass",
		"username": "carol", "role": "company",
	})

	// Wrong password and unknown account produce the same response.
	for _, body := range []map[string]interface{}{
		{"email": "carol@example.com", "password": "wrong-pass"},
		{"email": "ghost@example.com", "password": "whatever1"},
	} {
		w := env.do(t, http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	}
}

func TestMeRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email": "dave@example.com", "password": "secret-pass",
		"username": "dave", "role": "ngo",
	})

	login := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "dave@example.com", "password": "secret-pass",
	})
	var session struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, login, &session)

	w := env.do(t, http.MethodGet, "/api/auth/me", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	decodeBody(t, w, &profile)
	assert.Equal(t, "dave@example.com", profile.Email)
	assert.Equal(t, "dave", profile.Username)
	assert.Equal(t, "ngo", profile.Role)
}

func TestMeRejectsGarbageToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/auth/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeOrphanedIdentity(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email": "erin@example.com", "password": "secret-pass",
		"username": "erin", "role": "company",
	})
	login := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "erin@example.com", "password": "secret-pass",
	})
	var session struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, login, &session)

	// Remove the profile row out from under the valid identity.
	require.NoError(t, env.DB.Where("email = ?", "erin@example.com").Delete(&models.User{}).Error)

	w := env.do(t, http.MethodGet, "/api/auth/me", session.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/logout", "anything", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Logged out")

	// Repeated logout is harmless.
	w = env.do(t, http.MethodPost, "/api/auth/logout", "anything", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
