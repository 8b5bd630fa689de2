package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/holiday-promo/api/internal/facebook"
	"github.com/holiday-promo/api/internal/metrics"
	"github.com/holiday-promo/api/internal/usecase"
)

type deletionUsecaser interface {
	HandleDataDeletion(ctx context.Context, signedRequest string) (string, error)
}

// FacebookHandler serves the data-deletion callback Facebook invokes when a
// user removes the app or asks for their data to be erased.
type FacebookHandler struct {
	deletion deletionUsecaser
	logger   *slog.Logger
	debug    bool
}

func NewFacebookHandler(deletion deletionUsecaser, logger *slog.Logger, debug bool) *FacebookHandler {
	return &FacebookHandler{
		deletion: deletion,
		logger:   logger.With("component", "facebook_handler"),
		debug:    debug,
	}
}

// POST /facebook/data-deletion
// Accepts signed_request as a JSON field or a form field and always answers
// a valid request with a status-check URL, found account or not.
func (h *FacebookHandler) DataDeletion(c *gin.Context) {
	signedRequest := extractSignedRequest(c)
	if signedRequest == "" {
		metrics.DeletionCallbacksTotal.WithLabelValues("missing").Inc()
		respondError(c, http.StatusBadRequest, errSignedReqMissing)
		return
	}

	statusURL, err := h.deletion.HandleDataDeletion(c.Request.Context(), signedRequest)
	if err != nil {
		switch {
		case errors.Is(err, facebook.ErrSecretNotConfigured),
			errors.Is(err, facebook.ErrMalformedRequest),
			errors.Is(err, facebook.ErrInvalidSignature),
			errors.Is(err, facebook.ErrUnsupportedAlgorithm):
			metrics.DeletionCallbacksTotal.WithLabelValues("rejected").Inc()
			h.logger.Warn("facebook data deletion rejected", "error", err)
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, usecase.ErrIdentifierMissing):
			metrics.DeletionCallbacksTotal.WithLabelValues("rejected").Inc()
			respondError(c, http.StatusBadRequest, errUserIDMissing)
		default:
			metrics.DeletionCallbacksTotal.WithLabelValues("error").Inc()
			h.logger.Error("facebook data deletion", "error", err)
			respondInternal(c, h.debug, err)
		}
		return
	}

	metrics.DeletionCallbacksTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"url": statusURL})
}

// extractSignedRequest pulls signed_request from a JSON body or a form body,
// depending on the declared content type. Returns "" when absent.
func extractSignedRequest(c *gin.Context) string {
	contentType := c.ContentType()

	if strings.Contains(contentType, "application/json") {
		var body struct {
			SignedRequest string `json:"signed_request"`
		}
		if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil {
			return ""
		}
		return body.SignedRequest
	}

	return c.PostForm("signed_request")
}
