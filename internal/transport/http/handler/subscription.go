package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/holiday-promo/api/internal/domain"
	"github.com/holiday-promo/api/internal/metrics"
)

type subscriptionUsecaser interface {
	Subscribe(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]domain.Subscription, error)
}

type SubscriptionHandler struct {
	subscriptions subscriptionUsecaser
	verifier      turnstileVerifier
	logger        *slog.Logger
}

func NewSubscriptionHandler(subscriptions subscriptionUsecaser, verifier turnstileVerifier, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptions: subscriptions,
		verifier:      verifier,
		logger:        logger.With("component", "subscription_handler"),
	}
}

type subscribeRequest struct {
	Email          string `json:"email"          binding:"required,email"`
	TurnstileToken string `json:"turnstileToken"`
}

type subscribeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// POST /subscribe
// Turnstile-gated. Duplicates still succeed so the endpoint cannot be used
// to enumerate subscribed emails: 201 for a new signup, 200 for a repeat.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if !requireTurnstile(c, h.verifier, req.TurnstileToken) {
		return
	}

	created, err := h.subscriptions.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("subscribe", "error", err)
		metrics.SubscriptionsTotal.WithLabelValues("error").Inc()
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	if !created {
		metrics.SubscriptionsTotal.WithLabelValues("duplicate").Inc()
		c.JSON(http.StatusOK, subscribeResponse{Success: true, Message: "You're already subscribed!"})
		return
	}

	metrics.SubscriptionsTotal.WithLabelValues("created").Inc()
	c.JSON(http.StatusCreated, subscribeResponse{Success: true, Message: "Successfully subscribed!"})
}

type subscriptionListItem struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// GET /admin/subscriptions
func (h *SubscriptionHandler) List(c *gin.Context) {
	subs, err := h.subscriptions.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list subscriptions", "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	items := make([]subscriptionListItem, 0, len(subs))
	for _, s := range subs {
		items = append(items, subscriptionListItem{
			ID:        s.ID,
			Email:     s.Email,
			CreatedAt: s.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": items})
}
