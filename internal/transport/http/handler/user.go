package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/holiday-promo/api/internal/domain"
)

type userUsecaser interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, userID, name, email string) (*domain.User, error)
	DeleteAccount(ctx context.Context, userID string) error
}

type UserHandler struct {
	userUsecase userUsecaser
	logger      *slog.Logger
}

func NewUserHandler(userUsecase userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{userUsecase: userUsecase, logger: logger.With("component", "user_handler")}
}

type profileResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userUsecase.GetByID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("get current user", "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(user))
}

type updateProfileRequest struct {
	Name  string `json:"name"  binding:"required,min=2"`
	Email string `json:"email" binding:"required,email"`
}

// PATCH /users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userUsecase.UpdateProfile(c.Request.Context(), c.GetString("userID"), req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			respondError(c, http.StatusConflict, errEmailTaken)
		case errors.Is(err, domain.ErrForbidden):
			respondError(c, http.StatusForbidden, errForbidden)
		case errors.Is(err, domain.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "User not found")
		default:
			h.logger.Error("update profile", "error", err)
			respondError(c, http.StatusInternalServerError, errInternalServer)
		}
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

// DELETE /users/me
// Deletes the caller's account and everything it owns.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.userUsecase.DeleteAccount(c.Request.Context(), c.GetString("userID")); err != nil {
		h.logger.Error("delete account", "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted successfully"})
}

// GET /admin/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userUsecase.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list users", "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	items := make([]profileResponse, 0, len(users))
	for i := range users {
		items = append(items, newProfileResponse(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": items})
}

func newProfileResponse(user *domain.User) profileResponse {
	return profileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
