package hiveapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAPI struct {
	mux          *http.ServeMux
	loginCalls   int
	loginBody    map[string]any
	refreshCalls int
	rejectLogin  bool
	rejectToken  string
	products     []map[string]any
	devices      []map[string]any
}

func newFakeAPI() *fakeAPI {
	api := &fakeAPI{mux: http.NewServeMux()}
	api.mux.HandleFunc("POST /global/login", func(w http.ResponseWriter, r *http.Request) {
		api.loginCalls++
		_ = json.NewDecoder(r.Body).Decode(&api.loginBody)
		if api.rejectLogin {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token":        "tok-1",
			"accessToken":  "acc-1",
			"refreshToken": "ref-1",
			"expiresIn":    3600,
		})
	})
	api.mux.HandleFunc("POST /cognito/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		api.refreshCalls++
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["token"] != "ref-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token":     "tok-2",
			"expiresIn": 3600,
		})
	})
	api.mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "tok-1" && r.Header.Get("Authorization") != "tok-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(api.products)
	})
	api.mux.HandleFunc("GET /devices", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.devices)
	})
	api.mux.HandleFunc("POST /nodes/{type}/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return api
}

func TestClientLogin(t *testing.T) {
	api := newFakeAPI()
	srv := httptest.NewServer(api.mux)
	defer srv.Close()

	client := NewClient(srv.URL, "user@example.com", "hunter2", "", zap.NewNop())
	err := client.Login(context.Background())
	require.NoError(t, err)

	token := client.Token()
	require.NotNil(t, token)
	assert.Equal(t, "tok-1", token.AccessToken)
	assert.Equal(t, "ref-1", token.RefreshToken)
	assert.True(t, token.Valid())
}

func TestClientLoginSendsLanguage(t *testing.T) {
	api := newFakeAPI()
	srv := httptest.NewServer(api.mux)
	defer srv.Close()

	client := NewClient(srv.URL, "user@example.com", "hunter2", "en-GB", zap.NewNop())
	require.NoError(t, client.Login(context.Background()))
	assert.Equal(t, "en-GB", api.loginBody["language"])

	// the language key is omitted when not configured
	api2 := newFakeAPI()
	srv2 := httptest.NewServer(api2.mux)
	defer srv2.Close()

	client = NewClient(srv2.URL, "user@example.com", "hunter2", "", zap.NewNop())
	require.NoError(t, client.Login(context.Background()))
	_, ok := api2.loginBody["language"]
	assert.False(t, ok)
}

func TestClientLoginRejectedIsReauth(t *testing.T) {
	api := newFakeAPI()
	api.rejectLogin = true
	srv := httptest.NewServer(api.mux)
	defer srv.Close()

	client := NewClient(srv.URL, "user@example.com", "wrong", "", zap.NewNop())
	err := client.Login(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReauthRequired)
	assert.False(t, IsRetryable(err))
}

func TestClientRefreshRejectedIsReauth(t *testing.T) {
	api := newFakeAPI()
	srv := httptest.NewServer(api.mux)
	defer srv.Close()

	client := NewClient(srv.URL, "user@example.com", "hunter2", "", zap.NewNop())
	require.NoError(t, client.Login(context.Background()))

	// break the stored refresh token
	client.mu.Lock()
	client.token.RefreshToken = "stale"
	client.mu.Unlock()

	err := client.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrReauthRequired)
}

func TestClientRefreshKeepsRefreshToken(t *testing.T) {
	api := newFakeAPI()
	srv := httptest.NewServer(api.mux)
	defer srv.Close()

	client := NewClient(srv.URL, "user@example.com", "hunter2", "", zap.NewNop())
	require.NoError(t, client.Login(context.Background()))
	require.NoError(t, client.Refresh(context.Background()))

	token := client.Token()
	assert.Equal(t, "tok-2", token.AccessToken)
	// refresh response carried no new refresh token, the old one stays
	assert.Equal(t, "ref-1", token.RefreshToken)
}

func TestClientServerErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "user@example.com", "hunter2", "", zap.NewNop())
	err := client.Login(context.Background())
	require.Error(t, err)

	var httpErr HTTPStatusError
	assert.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadGateway, httpErr.Status)
	assert.True(t, IsRetryable(err))
}
