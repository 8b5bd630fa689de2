package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/holiday-promo/api/internal/domain"
	"github.com/holiday-promo/api/internal/facebook"
	"github.com/holiday-promo/api/internal/repository"
)

// ErrIdentifierMissing means the signed request verified but carried no
// external user ID in either field shape.
var ErrIdentifierMissing = errors.New("user_id missing in signed_request")

// DeletionUsecase handles Facebook's data-deletion callback: authenticate
// the signed request, delete the linked local account if one exists, and
// hand back a status-check URL either way.
type DeletionUsecase struct {
	accounts      repository.AccountRepository
	users         repository.UserRepository
	appSecret     string
	statusBaseURL string
}

func NewDeletionUsecase(accounts repository.AccountRepository, users repository.UserRepository, appSecret, statusBaseURL string) *DeletionUsecase {
	return &DeletionUsecase{
		accounts:      accounts,
		users:         users,
		appSecret:     appSecret,
		statusBaseURL: statusBaseURL,
	}
}

// HandleDataDeletion verifies the signed request and, when the external ID
// maps to a local account, deletes that user. The returned status URL does
// not depend on whether a match was found, so the endpoint never confirms
// account existence. Replays after deletion find no match and still succeed.
func (u *DeletionUsecase) HandleDataDeletion(ctx context.Context, signedRequest string) (string, error) {
	payload, err := facebook.ParseSignedRequest(u.appSecret, signedRequest)
	if err != nil {
		return "", err
	}

	externalID := payload.ExternalUserID()
	if externalID == "" {
		return "", ErrIdentifierMissing
	}

	// The status URL echoes the local user ID when we had one, the
	// external ID otherwise.
	resolvedID := externalID

	account, err := u.accounts.FindByProviderAccount(ctx, facebook.ProviderID, externalID)
	switch {
	case err == nil:
		resolvedID = account.UserID
		if err := u.users.DeleteCascade(ctx, account.UserID); err != nil {
			return "", fmt.Errorf("delete linked user: %w", err)
		}
	case errors.Is(err, domain.ErrAccountNotFound):
		// Nothing to delete; still report a status URL.
	default:
		return "", fmt.Errorf("find linked account: %w", err)
	}

	return u.buildStatusURL(resolvedID)
}

func (u *DeletionUsecase) buildStatusURL(userID string) (string, error) {
	base, err := url.Parse(u.statusBaseURL)
	if err != nil {
		return "", fmt.Errorf("parse deletion status url: %w", err)
	}

	q := base.Query()
	q.Set("confirmation_code", uuid.NewString())
	q.Set("user_id", userID)
	base.RawQuery = q.Encode()
	return base.String(), nil
}
