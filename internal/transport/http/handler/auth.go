package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holiday-promo/api/internal/domain"
)

// turnstileHeader carries the bot-verification token on gated auth routes.
const turnstileHeader = "X-Turnstile-Token"

// authUsecaser is the subset of AuthUsecase the handler needs.
type authUsecaser interface {
	SignUp(ctx context.Context, name, email, password string) (string, *domain.User, error)
	SignIn(ctx context.Context, email, password string) (string, *domain.User, error)
	RequestMagicLink(ctx context.Context, email string) error
	VerifyMagicLink(ctx context.Context, rawToken string) (string, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	verifier    turnstileVerifier
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, verifier turnstileVerifier, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		verifier:    verifier,
		logger:      logger.With("component", "auth_handler"),
	}
}

type signUpRequest struct {
	Name     string `json:"name"     binding:"required,min=2"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=10,max=100"`
}

type signInRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// POST /auth/sign-up
// Turnstile-gated: the challenge token travels in the X-Turnstile-Token header.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if !requireTurnstile(c, h.verifier, c.GetHeader(turnstileHeader)) {
		return
	}

	token, user, err := h.authUsecase.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			respondError(c, http.StatusConflict, errEmailTaken)
			return
		}
		h.logger.Error("sign up", "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	c.JSON(http.StatusCreated, newSessionResponse(token, user))
}

// POST /auth/sign-in
// Turnstile-gated like sign-up.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if !requireTurnstile(c, h.verifier, c.GetHeader(turnstileHeader)) {
		return
	}

	token, user, err := h.authUsecase.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, errInvalidCredentials)
			return
		}
		h.logger.Error("sign in", "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	c.JSON(http.StatusOK, newSessionResponse(token, user))
}

type magicLinkRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /auth/magic-link
// Always returns 200 to avoid revealing whether the email exists.
func (h *AuthHandler) RequestMagicLink(c *gin.Context) {
	var req magicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.authUsecase.RequestMagicLink(c.Request.Context(), req.Email); err != nil {
		h.logger.Error("request magic link", "error", err)
	}

	c.Status(http.StatusOK)
}

// GET /auth/verify?token=<raw>
// Returns {"token": "<jwt>"} on success, 401 on invalid/expired token.
func (h *AuthHandler) Verify(c *gin.Context) {
	rawToken := c.Query("token")
	if rawToken == "" {
		respondError(c, http.StatusUnauthorized, errTokenInvalid)
		return
	}

	jwtToken, err := h.authUsecase.VerifyMagicLink(c.Request.Context(), rawToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			respondError(c, http.StatusUnauthorized, errTokenInvalid)
			return
		}
		h.logger.Error("verify magic link", "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": jwtToken})
}

func newSessionResponse(token string, user *domain.User) sessionResponse {
	return sessionResponse{
		Token: token,
		User: userResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}
}
