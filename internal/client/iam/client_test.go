// Package iam provides tests for the IAM web service client.
package iam

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noLegacyConfig points the legacy-config guard at a path that does not
// exist for the duration of the test.
func noLegacyConfig(t *testing.T) {
	t.Helper()
	prev := legacyConfigPath
	missing := filepath.Join(t.TempDir(), ".ethz_iam")
	legacyConfigPath = func() string { return missing }
	t.Cleanup(func() { legacyConfigPath = prev })
}

func authenticate(t *testing.T, baseURL string) *Client {
	t.Helper()
	noLegacyConfig(t)
	c, err := Authenticate(context.Background(), "admin", "pw", baseURL, "", Options{})
	require.NoError(t, err)
	return c
}

func TestAuthenticateRejectsLegacyConfig(t *testing.T) {
	prev := legacyConfigPath
	legacy := filepath.Join(t.TempDir(), ".ethz_iam")
	legacyConfigPath = func() string { return legacy }
	t.Cleanup(func() { legacyConfigPath = prev })
	require.NoError(t, os.WriteFile(legacy, []byte("[default]\n"), 0600))

	_, err := Authenticate(context.Background(), "admin", "pw", "https://unused", "", Options{})

	var unsupported *UnsupportedConfigError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, legacy, unsupported.Path)
}

func TestAuthenticateRequiresResolvedCredentials(t *testing.T) {
	noLegacyConfig(t)

	_, err := Authenticate(context.Background(), "", "pw", "https://unused", "", Options{})
	require.Error(t, err)

	_, err = Authenticate(context.Background(), "admin", "", "https://unused", "", Options{})
	require.Error(t, err)
}

func TestAuthenticateBadCredentials(t *testing.T) {
	noLegacyConfig(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := Authenticate(context.Background(), "admin", "wrong", srv.URL, "", Options{})

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestAuthenticateUnreachableHost(t *testing.T) {
	noLegacyConfig(t)

	_, err := Authenticate(context.Background(), "admin", "pw", "http://127.0.0.1:1", "", Options{})

	// A transport failure is not an authentication failure.
	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	var authErr *AuthError
	assert.False(t, errors.As(err, &authErr))
}

func TestAuthenticateSendsBasicAuth(t *testing.T) {
	noLegacyConfig(t)
	var gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := Authenticate(context.Background(), "admin", "pw", srv.URL, "", Options{})
	require.NoError(t, err)

	assert.Equal(t, "admin", gotUser)
	assert.Equal(t, "pw", gotPass)
}

func TestGetUserParsesServices(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /usernames/alice", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"username": "alice",
			"firstname": "Alice",
			"services": []map[string]interface{}{
				{"name": "LDAP", "hasPassword": true},
				{"name": "Mailbox", "hasPassword": false},
			},
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := authenticate(t, srv.URL)
	user, err := c.GetUser(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	require.Len(t, user.Services, 2)
	assert.Equal(t, ServiceBinding{Name: "LDAP", HasPassword: true}, user.Services[0])
	assert.Equal(t, "Alice", user.Raw["firstname"])
}

func TestGetUserNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/usernames/ghost" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := authenticate(t, srv.URL)
	_, err := c.GetUser(context.Background(), "ghost")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "user", notFound.Kind)
	assert.Equal(t, "ghost", notFound.ID)
}

func TestGroupMembershipRefreshesFromResponse(t *testing.T) {
	members := map[string]struct{}{"x": {}, "y": {}}
	groupJSON := func() map[string]interface{} {
		var list []string
		for m := range members {
			list = append(list, m)
		}
		return map[string]interface{}{"name": "science-it", "members": list}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /groups/science-it", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(groupJSON())
	})
	mux.HandleFunc("PUT /groups/science-it/members", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Users []string `json:"users"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		for _, u := range body.Users {
			members[u] = struct{}{}
		}
		json.NewEncoder(w).Encode(groupJSON())
	})
	mux.HandleFunc("DELETE /groups/science-it/members", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Users []string `json:"users"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		for _, u := range body.Users {
			delete(members, u)
		}
		json.NewEncoder(w).Encode(groupJSON())
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := authenticate(t, srv.URL)
	group, err := c.GetGroup(context.Background(), "science-it")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, group.Members())

	require.NoError(t, group.AddMembers(context.Background(), "z"))
	assert.Equal(t, []string{"x", "y", "z"}, group.Members())

	require.NoError(t, group.DelMembers(context.Background(), "x"))
	assert.Equal(t, []string{"y", "z"}, group.Members())
	assert.False(t, group.HasMember("x"))
}

func TestSetPasswordInvalidService(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /usernames/alice", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"username": "alice"})
	})
	mux.HandleFunc("PUT /usernames/alice/services/bogus/password", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "no such service"})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := authenticate(t, srv.URL)
	user, err := c.GetUser(context.Background(), "alice")
	require.NoError(t, err)

	err = user.SetPassword(context.Background(), "pw", "bogus")

	var invalid *InvalidServiceError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "bogus", invalid.Service)
	assert.Contains(t, invalid.Reason, "no such service")
}

func TestUserMutationsHitExpectedRoutes(t *testing.T) {
	var calls []string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /usernames/alice", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"username": "alice"})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			calls = append(calls, r.Method+" "+r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := authenticate(t, srv.URL)
	user, err := c.GetUser(context.Background(), "alice")
	require.NoError(t, err)

	require.NoError(t, user.GrantService(context.Background(), "LDAP"))
	require.NoError(t, user.RevokeService(context.Background(), "LDAP"))
	require.NoError(t, user.Delete(context.Background()))

	assert.Equal(t, []string{
		"POST /usernames/alice/services",
		"DELETE /usernames/alice/services/LDAP",
		"DELETE /usernames/alice",
	}, calls)
}
