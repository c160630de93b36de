package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// HTTPBackend talks to the identity provider's REST surface
// (accounts:signInWithPassword and friends). It also emits state changes on
// its own sign-in/sign-out transitions, which is all the push channel the
// REST surface offers.
type HTTPBackend struct {
	endpoint string
	apiKey   string
	client   *http.Client

	mu      sync.Mutex
	tokens  map[string]string // uid -> idToken, for token-bearing calls
	changes chan StateChange
}

func NewHTTP(endpoint, apiKey string) *HTTPBackend {
	return &HTTPBackend{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 10 * time.Second},
		tokens:   make(map[string]string),
		changes:  make(chan StateChange, 4),
	}
}

func (b *HTTPBackend) Available() bool {
	return b.endpoint != "" && b.apiKey != ""
}

type accountResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoUrl"`
	IDToken     string `json:"idToken"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (b *HTTPBackend) SignIn(ctx context.Context, email, password string) (Identity, error) {
	resp, err := b.post(ctx, "accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return Identity{}, err
	}
	return b.signedIn(resp), nil
}

func (b *HTTPBackend) SignUp(ctx context.Context, email, password, displayName string) (Identity, error) {
	resp, err := b.post(ctx, "accounts:signUp", map[string]any{
		"email":             email,
		"password":          password,
		"displayName":       displayName,
		"returnSecureToken": true,
	})
	if err != nil {
		return Identity{}, err
	}
	resp.DisplayName = displayName
	return b.signedIn(resp), nil
}

func (b *HTTPBackend) SignInWithGoogle(ctx context.Context, idToken string) (Identity, error) {
	resp, err := b.post(ctx, "accounts:signInWithIdp", map[string]any{
		"postBody":            "id_token=" + idToken + "&providerId=google.com",
		"requestUri":          "http://localhost",
		"returnSecureToken":   true,
		"returnIdpCredential": true,
	})
	if err != nil {
		return Identity{}, err
	}
	return b.signedIn(resp), nil
}

func (b *HTTPBackend) SignOut(_ context.Context) error {
	// The REST surface has no sign-out call; dropping tokens and notifying
	// subscribers matches the client SDK behavior.
	b.mu.Lock()
	b.tokens = make(map[string]string)
	b.mu.Unlock()
	b.notify(StateChange{})
	return nil
}

func (b *HTTPBackend) SendPasswordReset(ctx context.Context, email string) error {
	_, err := b.post(ctx, "accounts:sendOobCode", map[string]any{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	})
	return err
}

func (b *HTTPBackend) SendEmailVerification(ctx context.Context, uid string) error {
	b.mu.Lock()
	token := b.tokens[uid]
	b.mu.Unlock()

	_, err := b.post(ctx, "accounts:sendOobCode", map[string]any{
		"requestType": "VERIFY_EMAIL",
		"idToken":     token,
	})
	return err
}

func (b *HTTPBackend) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	b.mu.Lock()
	token := b.tokens[uid]
	b.mu.Unlock()

	_, err := b.post(ctx, "accounts:update", map[string]any{
		"idToken":           token,
		"displayName":       displayName,
		"returnSecureToken": false,
	})
	return err
}

func (b *HTTPBackend) StateChanges() <-chan StateChange { return b.changes }

func (b *HTTPBackend) signedIn(resp accountResponse) Identity {
	identity := Identity{
		UID:         resp.LocalID,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
		PhotoURL:    resp.PhotoURL,
	}

	b.mu.Lock()
	b.tokens[identity.UID] = resp.IDToken
	b.mu.Unlock()

	b.notify(StateChange{Identity: &identity})
	return identity
}

func (b *HTTPBackend) notify(change StateChange) {
	select {
	case b.changes <- change:
	default:
		// A slow subscriber only ever misses intermediate states.
	}
}

func (b *HTTPBackend) post(ctx context.Context, method string, body map[string]any) (accountResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return accountResponse{}, fmt.Errorf("marshal %s request: %w", method, err)
	}

	url := fmt.Sprintf("%s/v1/%s?key=%s", b.endpoint, method, b.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return accountResponse{}, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := b.client.Do(req)
	if err != nil {
		return accountResponse{}, fmt.Errorf("call %s: %w", method, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 400 {
		var errResp errorResponse
		if decodeErr := json.NewDecoder(httpResp.Body).Decode(&errResp); decodeErr == nil && errResp.Error.Message != "" {
			return accountResponse{}, &Error{Code: errResp.Error.Message}
		}
		return accountResponse{}, fmt.Errorf("call %s: status %d", method, httpResp.StatusCode)
	}

	var resp accountResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return accountResponse{}, fmt.Errorf("decode %s response: %w", method, err)
	}
	return resp, nil
}
