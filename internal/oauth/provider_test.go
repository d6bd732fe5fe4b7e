package oauth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/elysian-softech/account-service/internal/model"
	"github.com/elysian-softech/account-service/internal/oauth"

	"github.com/stretchr/testify/require"
)

func TestGoogle_AuthorizeURL(t *testing.T) {
	g := oauth.NewGoogle("client-id", "secret", "http://localhost:8001/auth/google/callback")

	u, err := url.Parse(g.AuthorizeURL())
	require.NoError(t, err)

	q := u.Query()
	require.Equal(t, "client-id", q.Get("client_id"))
	require.Equal(t, "http://localhost:8001/auth/google/callback", q.Get("redirect_uri"))
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "openid email profile", q.Get("scope"))
	require.Equal(t, "accounts.google.com", u.Host)
}

func TestFacebook_AuthorizeURL(t *testing.T) {
	f := oauth.NewFacebook("app-id", "secret", "http://localhost:8001/auth/facebook/callback")

	u, err := url.Parse(f.AuthorizeURL())
	require.NoError(t, err)

	q := u.Query()
	require.Equal(t, "app-id", q.Get("client_id"))
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "email", q.Get("scope"))
}

func TestGoogle_ExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "the-code", r.PostForm.Get("code"))
		require.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		require.Equal(t, "client-id", r.PostForm.Get("client_id"))

		json.NewEncoder(w).Encode(map[string]string{"access_token": "token-123"})
	}))
	defer srv.Close()

	g := oauth.NewGoogle("client-id", "secret", "http://localhost/cb")
	g.Endpoints.Token = srv.URL

	token, err := g.ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)
	require.Equal(t, "token-123", token)
}

func TestGoogle_ExchangeCode_TokenAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
	}))
	defer srv.Close()

	g := oauth.NewGoogle("client-id", "secret", "http://localhost/cb")
	g.Endpoints.Token = srv.URL

	token, err := g.ExchangeCode(context.Background(), "bad-code")
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestGoogle_FetchIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"email": "ana@b.com", "name": "Ana"})
	}))
	defer srv.Close()

	g := oauth.NewGoogle("client-id", "secret", "http://localhost/cb")
	g.Endpoints.UserInfo = srv.URL

	id, err := g.FetchIdentity(context.Background(), "token-123")
	require.NoError(t, err)
	require.Equal(t, oauth.Identity{Email: "ana@b.com", Name: "Ana"}, id)
}

func TestFacebook_ExchangeCodeAndFetchIdentity(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		q := r.URL.Query()
		require.Equal(t, "the-code", q.Get("code"))
		require.Equal(t, "app-id", q.Get("client_id"))
		json.NewEncoder(w).Encode(map[string]string{"access_token": "fb-token"})
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "fb-token", q.Get("access_token"))
		require.Equal(t, "id,email,name", q.Get("fields"))
		json.NewEncoder(w).Encode(map[string]string{"email": "ana@b.com", "name": "Ana"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := oauth.NewFacebook("app-id", "secret", "http://localhost/cb")
	f.Endpoints.Token = srv.URL + "/oauth/access_token"
	f.Endpoints.UserInfo = srv.URL + "/me"

	token, err := f.ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)
	require.Equal(t, "fb-token", token)

	id, err := f.FetchIdentity(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "ana@b.com", id.Email)
}

func TestProviderSources(t *testing.T) {
	require.Equal(t, model.SourceGoogle, oauth.NewGoogle("", "", "").Source())
	require.Equal(t, model.SourceFacebook, oauth.NewFacebook("", "", "").Source())
}
