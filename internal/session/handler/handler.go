package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cabinet/internal/session/models"
	dErrors "cabinet/pkg/domain-errors"
	"cabinet/pkg/platform/httputil"
	"cabinet/pkg/platform/middleware/auth"
	"cabinet/pkg/requestcontext"
)

// Controller defines the session operations the HTTP surface exposes.
type Controller interface {
	State() models.SessionState
	Login(ctx context.Context, email, password, loginRole string) error
	LoginWithGoogle(ctx context.Context, idToken string) error
	Register(ctx context.Context, email, password, name, loginRole string) error
	Logout(ctx context.Context) error
	UpdateUser(ctx context.Context, patch models.ProfilePatch) error
	SendVerificationEmail(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, email, code string) error
	SendPasswordReset(ctx context.Context, email string) error
	AddFriend(ctx context.Context, friendEmail string) error
	AcceptFriendRequest(ctx context.Context, friendID string) error
	AddFavoriteDriver(ctx context.Context, driverEmail string) error
	AddToHistory(ctx context.Context, entry models.RideHistoryEntry) error
	RateRide(ctx context.Context, rideID string, stars int) error
}

// TokenIssuer mints access tokens for authenticated responses.
type TokenIssuer interface {
	Issue(userID, email, role string) (string, error)
}

// Handler wires session endpoints to the session controller.
type Handler struct {
	controller Controller
	tokens     TokenIssuer
	logger     *slog.Logger
}

// New constructs a session handler with its dependencies.
func New(controller Controller, tokens TokenIssuer, logger *slog.Logger) *Handler {
	return &Handler{
		controller: controller,
		tokens:     tokens,
		logger:     logger,
	}
}

// RegisterPublic mounts the unauthenticated endpoints.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/session/login", h.HandleLogin)
	r.Post("/session/login/google", h.HandleGoogleLogin)
	r.Post("/session/register", h.HandleRegister)
	r.Post("/session/otp/send", h.HandleSendOTP)
	r.Post("/session/otp/verify", h.HandleVerifyOTP)
	r.Post("/session/password-reset", h.HandlePasswordReset)
}

// RegisterProtected mounts the endpoints guarded by the bearer middleware.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Get("/session/me", h.HandleMe)
	r.Patch("/session/me", h.HandleUpdateProfile)
	r.Post("/session/logout", h.HandleLogout)
	r.Post("/session/friends", h.HandleAddFriend)
	r.Post("/session/friends/{friendID}/accept", h.HandleAcceptFriend)
	r.Post("/session/drivers/favorite", h.HandleFavoriteDriver)
	r.Post("/session/rides", h.HandleAddRide)
	r.Post("/session/rides/{rideID}/rate", h.HandleRateRide)
}

// HandleLogin handles POST /session/login requests.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.controller.Login(ctx, req.Email, req.Password, req.Role); err != nil {
		h.logger.WarnContext(ctx, "login failed",
			"request_id", requestID,
			"email", req.Email,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "login succeeded",
		"request_id", requestID,
		"email", req.Email,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	h.writeSession(w, ctx)
}

// HandleGoogleLogin handles POST /session/login/google requests.
func (h *Handler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[GoogleLoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.controller.LoginWithGoogle(ctx, req.IDToken); err != nil {
		h.logger.WarnContext(ctx, "google login failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.writeSession(w, ctx)
}

// HandleRegister handles POST /session/register requests.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.controller.Register(ctx, req.Email, req.Password, req.Name, req.Role); err != nil {
		h.logger.WarnContext(ctx, "registration failed",
			"request_id", requestID,
			"email", req.Email,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "registration succeeded",
		"request_id", requestID,
		"email", req.Email,
	)
	h.writeSessionStatus(w, ctx, http.StatusCreated)
}

// HandleSendOTP handles POST /session/otp/send requests.
func (h *Handler) HandleSendOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EmailRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	code, err := h.controller.SendVerificationEmail(ctx, req.Email)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OTPResponse{Code: code})
}

// HandleVerifyOTP handles POST /session/otp/verify requests.
func (h *Handler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[VerifyOTPRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.controller.VerifyOTP(ctx, req.Email, req.Code); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandlePasswordReset handles POST /session/password-reset requests.
func (h *Handler) HandlePasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EmailRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.controller.SendPasswordReset(ctx, req.Email); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// HandleMe handles GET /session/me requests.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	state := h.controller.State()
	if !state.IsLoggedIn {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "no active session"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromState(state, ""))
}

// HandleUpdateProfile handles PATCH /session/me requests.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[UpdateProfileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.controller.UpdateUser(ctx, req.ProfilePatch); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromState(h.controller.State(), ""))
}

// HandleLogout handles POST /session/logout requests.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.controller.Logout(ctx); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "logout",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", auth.GetUserID(ctx),
	)
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddFriend handles POST /session/friends requests.
func (h *Handler) HandleAddFriend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AddFriendRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.controller.AddFriend(ctx, req.Email); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromState(h.controller.State(), ""))
}

// HandleAcceptFriend handles POST /session/friends/{friendID}/accept requests.
func (h *Handler) HandleAcceptFriend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	friendID := chi.URLParam(r, "friendID")

	if err := h.controller.AcceptFriendRequest(ctx, friendID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromState(h.controller.State(), ""))
}

// HandleFavoriteDriver handles POST /session/drivers/favorite requests.
func (h *Handler) HandleFavoriteDriver(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[FavoriteDriverRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.controller.AddFavoriteDriver(ctx, req.Email); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromState(h.controller.State(), ""))
}

// HandleAddRide handles POST /session/rides requests.
func (h *Handler) HandleAddRide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AddRideRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.controller.AddToHistory(ctx, req.Entry()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromState(h.controller.State(), ""))
}

// HandleRateRide handles POST /session/rides/{rideID}/rate requests.
func (h *Handler) HandleRateRide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	rideID := chi.URLParam(r, "rideID")

	req, ok := httputil.DecodeAndPrepare[RateRideRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.controller.RateRide(ctx, rideID, req.Rating); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromState(h.controller.State(), ""))
}

// writeSession responds with the current session state plus a fresh access
// token for the active user.
func (h *Handler) writeSession(w http.ResponseWriter, ctx context.Context) {
	h.writeSessionStatus(w, ctx, http.StatusOK)
}

func (h *Handler) writeSessionStatus(w http.ResponseWriter, ctx context.Context, status int) {
	state := h.controller.State()

	var accessToken string
	if state.IsLoggedIn && state.User != nil && h.tokens != nil {
		minted, err := h.tokens.Issue(state.User.ID, state.User.Email, string(state.User.Role))
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to mint access token", "error", err)
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "token mint failed"))
			return
		}
		accessToken = minted
	}
	httputil.WriteJSON(w, status, FromState(state, accessToken))
}
