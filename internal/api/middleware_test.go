package api

import (
	"net/http"
	"testing"
)

func TestAuthRequiredRejectsMissingAndMalformedTokens(t *testing.T) {
	t.Parallel()

	fixture := newAPITestApp(t)

	bare := performRequest(t, fixture.app, jsonRequest(t, http.MethodGet, "/api/users/me", nil))
	defer bare.Body.Close()
	if bare.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", bare.StatusCode)
	}

	garbage := performRequest(t, fixture.app, authedJSONRequest(t, http.MethodGet, "/api/users/me", "not-a-jwt", nil))
	defer garbage.Body.Close()
	if garbage.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for malformed token, got %d", garbage.StatusCode)
	}
}

func TestAuthRequiredRejectsRefreshTokenAsBearer(t *testing.T) {
	t.Parallel()

	fixture := newAPITestApp(t)
	createAPITestUser(t, fixture, "mara", "correct horse", false)
	_, refreshCookie := loginForTokens(t, fixture.app, "mara", "correct horse")

	response := performRequest(t, fixture.app, authedJSONRequest(t, http.MethodGet, "/api/users/me", refreshCookie.Value, nil))
	defer response.Body.Close()

	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected refresh token to fail bearer auth, got %d", response.StatusCode)
	}
}

func TestAuthRequiredRejectsDisabledUserMidSession(t *testing.T) {
	t.Parallel()

	fixture := newAPITestApp(t)
	user := createAPITestUser(t, fixture, "mara", "correct horse", false)
	accessToken, _ := loginForTokens(t, fixture.app, "mara", "correct horse")

	user.IsDisabled = true
	if err := fixture.handler.authService.SaveUser(&user); err != nil {
		t.Fatalf("disable user: %v", err)
	}

	response := performRequest(t, fixture.app, authedJSONRequest(t, http.MethodGet, "/api/users/me", accessToken, nil))
	defer response.Body.Close()

	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected disabled account to lose access, got %d", response.StatusCode)
	}
	if message := readAPIError(t, response.Body); message != "account disabled" {
		t.Fatalf("expected disabled account message, got %q", message)
	}
}

func TestAdminOnlyRejectsRegularUsers(t *testing.T) {
	t.Parallel()

	fixture := newAPITestApp(t)
	createAPITestUser(t, fixture, "mara", "correct horse", false)
	accessToken, _ := loginForTokens(t, fixture.app, "mara", "correct horse")

	for _, target := range []string{"/api/users", "/api/temperatures", "/api/symptoms"} {
		response := performRequest(t, fixture.app, authedJSONRequest(t, http.MethodGet, target, accessToken, nil))
		if response.StatusCode != http.StatusForbidden {
			t.Fatalf("expected status 403 for %s, got %d", target, response.StatusCode)
		}
		if message := readAPIError(t, response.Body); message != "admin access required" {
			t.Fatalf("expected admin gate message for %s, got %q", target, message)
		}
		response.Body.Close()
	}
}
