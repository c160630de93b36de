package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabinet/pkg/platform/sentinel"
)

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsCredentialError(&Error{Code: CodeEmailNotFound}))
	assert.True(t, IsCredentialError(&Error{Code: CodeInvalidPassword}))
	assert.True(t, IsCredentialError(&Error{Code: CodeInvalidEmail}))
	assert.True(t, IsCredentialError(&Error{Code: CodeOperationNotAllowed}))
	assert.False(t, IsCredentialError(&Error{Code: "QUOTA_EXCEEDED"}))
	assert.False(t, IsCredentialError(errors.New("network down")))

	assert.True(t, IsEmailExists(&Error{Code: CodeEmailExists}))
	assert.False(t, IsEmailExists(&Error{Code: CodeEmailNotFound}))

	assert.True(t, IsCancelled(&Error{Code: CodePopupClosed}))
	assert.True(t, IsCancelled(&Error{Code: CodePopupBlocked}))
	assert.True(t, IsCancelled(&Error{Code: CodeUserCancelled}))
	assert.False(t, IsCancelled(&Error{Code: CodeEmailExists}))
}

func TestUnconfiguredBackend(t *testing.T) {
	b := NewUnconfigured()
	assert.False(t, b.Available())

	_, err := b.SignIn(context.Background(), "demo@cabinet.com", "demo123")
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	_, err = b.SignInWithGoogle(context.Background(), "token")
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	assert.ErrorIs(t, b.SendPasswordReset(context.Background(), "demo@cabinet.com"), sentinel.ErrUnavailable)
}

func TestHTTPBackendSignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/accounts:signInWithPassword":
			w.Write([]byte(`{"localId":"uid-1","email":"jane@example.com","displayName":"Jane","idToken":"tok-1"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	b := NewHTTP(srv.URL, "test-key")
	require.True(t, b.Available())

	identity, err := b.SignIn(context.Background(), "jane@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", identity.UID)
	assert.Equal(t, "Jane", identity.DisplayName)

	// Sign-in emits a state change with the identity attached.
	change := <-b.StateChanges()
	require.NotNil(t, change.Identity)
	assert.Equal(t, "uid-1", change.Identity.UID)
}

func TestHTTPBackendRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"EMAIL_NOT_FOUND"}}`))
	}))
	defer srv.Close()

	b := NewHTTP(srv.URL, "test-key")
	_, err := b.SignIn(context.Background(), "nobody@example.com", "secret")

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, CodeEmailNotFound, pe.Code)
	assert.True(t, IsCredentialError(err))
}
