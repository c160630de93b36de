package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"cabinet/internal/notify"
	"cabinet/internal/session/directory"
	"cabinet/internal/session/otp"
	"cabinet/internal/session/provider"
	"cabinet/internal/session/service"
	profilestore "cabinet/internal/session/store/profile"
	sessionstore "cabinet/internal/session/store/session"
	"cabinet/internal/token"
	"cabinet/pkg/platform/middleware/auth"
)

// newSessionRouter wires the full mock-variant stack: real controller, real
// stores, no provider.
func newSessionRouter(t *testing.T) *chi.Mux {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	controller := service.New(service.Deps{
		Backend:   provider.NewUnconfigured(),
		Directory: directory.New(),
		Sessions:  sessionstore.NewMemory(),
		Profiles:  profilestore.NewMemory(),
		OTP:       otp.NewStore(),
		Notifier:  notify.NewMemory(),
		Logger:    logger,
	}, service.Config{})

	tokens := token.NewService("test-signing-key", "cabinet-test", time.Hour)
	h := New(controller, tokens, logger)

	router := chi.NewRouter()
	router.Group(h.RegisterPublic)
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(token.NewAdapter(tokens), logger))
		h.RegisterProtected(r)
	})
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path, bearer string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func loginDemo(t *testing.T, router http.Handler) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/session/login", "", map[string]string{
		"email": "demo@cabinet.com", "password": "demo123", "role": "user",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 logging in, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp SessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected an access token in the login response")
	}
	return resp.Token
}

func TestLoginStatusMapping(t *testing.T) {
	router := newSessionRouter(t)

	t.Run("seeded credentials log in", func(t *testing.T) {
		loginDemo(t, router)
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/session/login", "", map[string]string{
			"email": "demo@cabinet.com", "password": "nope", "role": "user",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("missing fields are 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/session/login", "", map[string]string{
			"email": "demo@cabinet.com",
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("google login without a provider is 503", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/session/login/google", "", map[string]string{
			"idToken": "tok",
		})
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})
}

func TestRegisterConflict(t *testing.T) {
	router := newSessionRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/session/register", "", map[string]string{
		"email": "demo@cabinet.com", "password": "secret99", "name": "Imposter", "role": "user",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 registering a seeded email, got %d", rec.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newSessionRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/session/me", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/session/me", "not-a-jwt", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with a junk token, got %d", rec.Code)
	}
}

func TestProfileAndSocialFlow(t *testing.T) {
	router := newSessionRouter(t)
	bearer := loginDemo(t, router)

	t.Run("me returns the active profile", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/session/me", bearer, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp SessionResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.User.Email != "demo@cabinet.com" {
			t.Fatalf("expected demo profile, got %q", resp.User.Email)
		}
	})

	t.Run("patch merges into the profile", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPatch, "/session/me", bearer, map[string]string{
			"phone": "+91 90000 00000",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp SessionResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.User.Phone != "+91 90000 00000" {
			t.Fatalf("expected patched phone, got %q", resp.User.Phone)
		}
	})

	t.Run("duplicate friend is 409", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/session/friends", bearer, map[string]string{
			"email": "priya@cabinet.com",
		})
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409 re-adding the seeded friend, got %d", rec.Code)
		}
	})

	t.Run("friend add then accept", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/session/friends", bearer, map[string]string{
			"email": "aryan@cabinet.com",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp SessionResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		friend, ok := resp.User.FindFriendByEmail("aryan@cabinet.com")
		if !ok {
			t.Fatalf("expected the new friend in the response")
		}

		rec = doJSON(t, router, http.MethodPost, "/session/friends/"+friend.ID+"/accept", bearer, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 accepting, got %d", rec.Code)
		}
	})

	t.Run("unknown favorite driver is 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/session/drivers/favorite", bearer, map[string]string{
			"email": "nobody.driver@cabinet.com",
		})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("ride lands in history with loyalty credit", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/session/rides", bearer, map[string]any{
			"pickup": "Saket", "destination": "Airport", "cost": 347,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp SessionResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.User.RideHistory[0].Pickup != "Saket" {
			t.Fatalf("expected the new ride first in history")
		}
		if resp.User.LoyaltyPoints != 860+34 {
			t.Fatalf("expected 894 loyalty points, got %d", resp.User.LoyaltyPoints)
		}

		rideID := resp.User.RideHistory[0].ID
		rec = doJSON(t, router, http.MethodPost, "/session/rides/"+rideID+"/rate", bearer, map[string]int{
			"rating": 5,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 rating the ride, got %d", rec.Code)
		}
	})

	t.Run("logout clears the session", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/session/logout", bearer, nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}

		rec = doJSON(t, router, http.MethodGet, "/session/me", bearer, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 after logout, got %d", rec.Code)
		}
	})
}

func TestOTPEndpoints(t *testing.T) {
	router := newSessionRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/session/otp/send", "", map[string]string{
		"email": "demo@cabinet.com",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 issuing a code, got %d", rec.Code)
	}
	var resp OTPResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Code) != 6 {
		t.Fatalf("expected a 6-digit code, got %q", resp.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/session/otp/verify", "", map[string]string{
		"email": "demo@cabinet.com", "code": resp.Code,
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 verifying, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/session/otp/verify", "", map[string]string{
		"email": "demo@cabinet.com", "code": resp.Code,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 verifying a spent code, got %d", rec.Code)
	}
}
