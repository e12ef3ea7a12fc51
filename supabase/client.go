// Package supabase is a thin client for the hosted identity provider's
// auth REST API. It covers only the operations the platform needs: signup,
// password sign-in, token validation, sign-out, and the admin user delete
// used to compensate a failed registration.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client talks to one Supabase project. The anon key authenticates regular
// auth calls; the service key (optional) unlocks the admin endpoints.
type Client struct {
	BaseURL    string
	apiKey     string
	serviceKey string
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey, serviceKey string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		serviceKey: serviceKey,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Identity is the provider's view of an account.
type Identity struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

// MetadataString returns a string metadata value, or "" when absent.
func (i *Identity) MetadataString(key string) string {
	if i.UserMetadata == nil {
		return ""
	}
	if v, ok := i.UserMetadata[key].(string); ok {
		return v
	}
	return ""
}

// Session is an authenticated provider session.
type Session struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int      `json:"expires_in"`
	User         Identity `json:"user"`
}

type signUpRequest struct {
	Email    string                 `json:"email"`
	Password string                 `json:"password"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// signUpResponse covers both provider shapes: with email confirmation off
// the identity arrives nested in a session, otherwise at the top level.
type signUpResponse struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	User         *Identity              `json:"user"`
}

type providerError struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"error_code"`
}

func (e *providerError) text() string {
	if e.Message != "" {
		return e.Message
	}
	if e.ErrorDescription != "" {
		return e.ErrorDescription
	}
	return e.ErrorCode
}

// SignUp creates an identity-provider account carrying the given metadata
// and returns the new identity.
func (c *Client) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*Identity, error) {
	body := signUpRequest{Email: email, Password: password, Data: metadata}

	var resp signUpResponse
	if err := c.do(ctx, http.MethodPost, "/auth/v1/signup", c.apiKey, "", body, &resp); err != nil {
		if apiErr, ok := err.(*apiError); ok {
			return nil, &RegistrationError{Message: apiErr.message}
		}
		return nil, err
	}

	identity := Identity{ID: resp.ID, Email: resp.Email, UserMetadata: resp.UserMetadata}
	if resp.User != nil {
		identity = *resp.User
	}
	if identity.ID == "" {
		return nil, &RegistrationError{Message: "provider returned no user id"}
	}
	return &identity, nil
}

// SignInWithPassword authenticates and returns the provider session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", c.apiKey, "", body, &session); err != nil {
		return nil, &AuthenticationError{Message: "invalid credentials"}
	}
	if session.AccessToken == "" || session.User.ID == "" {
		return nil, &AuthenticationError{Message: "invalid credentials"}
	}
	return &session, nil
}

// GetUser validates an access token and returns the identity behind it.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*Identity, error) {
	var identity Identity
	if err := c.do(ctx, http.MethodGet, "/auth/v1/user", c.apiKey, accessToken, nil, &identity); err != nil {
		return nil, &AuthenticationError{Message: "invalid token"}
	}
	if identity.ID == "" {
		return nil, &AuthenticationError{Message: "invalid token"}
	}
	return &identity, nil
}

// SignOut invalidates the session behind the access token. Repeated calls
// are harmless.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if err := c.do(ctx, http.MethodPost, "/auth/v1/logout", c.apiKey, accessToken, nil, nil); err != nil {
		return &LogoutError{Message: err.Error()}
	}
	return nil
}

// AdminDeleteUser removes the identity record. Used to compensate a
// registration whose local profile insert failed.
func (c *Client) AdminDeleteUser(ctx context.Context, userID string) error {
	if c.serviceKey == "" {
		return fmt.Errorf("service key not configured")
	}
	return c.do(ctx, http.MethodDelete, "/auth/v1/admin/users/"+userID, c.serviceKey, c.serviceKey, nil, nil)
}

// apiError is a non-2xx provider response.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("provider error, status code: %d: %s", e.status, e.message)
}

func (c *Client) do(ctx context.Context, method, path, apiKey, bearer string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", apiKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var pe providerError
		_ = json.Unmarshal(raw, &pe)
		msg := pe.text()
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		return &apiError{status: resp.StatusCode, message: msg}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
