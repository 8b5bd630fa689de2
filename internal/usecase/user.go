package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/holiday-promo/api/internal/domain"
	"github.com/holiday-promo/api/internal/repository"
)

type UserUsecase struct {
	users repository.UserRepository
}

func NewUserUsecase(users repository.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

func (u *UserUsecase) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return u.users.FindByID(ctx, id)
}

func (u *UserUsecase) List(ctx context.Context) ([]domain.User, error) {
	return u.users.List(ctx)
}

// UpdateProfile changes the caller's name and email. Only subscriber
// accounts may edit themselves; admin profiles are managed out of band.
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID, name, emailAddr string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleSubscriber {
		return nil, domain.ErrForbidden
	}

	updated, err := u.users.UpdateProfile(ctx, userID, name, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}

// DeleteAccount irreversibly removes the caller's account and all owned rows.
func (u *UserUsecase) DeleteAccount(ctx context.Context, userID string) error {
	if err := u.users.DeleteCascade(ctx, userID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
