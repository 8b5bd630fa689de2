package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/holiday-promo/api/internal/domain"
	"github.com/holiday-promo/api/internal/repository"
)

type SubscriptionUsecase struct {
	subscriptions repository.SubscriptionRepository
}

func NewSubscriptionUsecase(subscriptions repository.SubscriptionRepository) *SubscriptionUsecase {
	return &SubscriptionUsecase{subscriptions: subscriptions}
}

// Subscribe records the email and reports whether a new row was created.
// A duplicate is not an error: the caller responds with success either way
// so the endpoint cannot be used to probe which emails are subscribed.
func (u *SubscriptionUsecase) Subscribe(ctx context.Context, emailAddr string) (bool, error) {
	existing, err := u.subscriptions.FindByEmail(ctx, emailAddr)
	if err != nil {
		return false, fmt.Errorf("find subscription: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	if _, err := u.subscriptions.Create(ctx, emailAddr); err != nil {
		// Lost a race with a concurrent subscribe for the same email.
		if errors.Is(err, domain.ErrAlreadySubscribed) {
			return false, nil
		}
		return false, fmt.Errorf("create subscription: %w", err)
	}
	return true, nil
}

func (u *SubscriptionUsecase) List(ctx context.Context) ([]domain.Subscription, error) {
	return u.subscriptions.List(ctx)
}
