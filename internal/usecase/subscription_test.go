package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/holiday-promo/api/internal/domain"
	"github.com/holiday-promo/api/internal/usecase"
)

type fakeSubscriptionRepo struct {
	create      func(ctx context.Context, email string) (*domain.Subscription, error)
	findByEmail func(ctx context.Context, email string) (*domain.Subscription, error)
	list        func(ctx context.Context) ([]domain.Subscription, error)
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, email string) (*domain.Subscription, error) {
	return r.create(ctx, email)
}

func (r *fakeSubscriptionRepo) FindByEmail(ctx context.Context, email string) (*domain.Subscription, error) {
	return r.findByEmail(ctx, email)
}

func (r *fakeSubscriptionRepo) List(ctx context.Context) ([]domain.Subscription, error) {
	return r.list(ctx)
}

func TestSubscribe_NewEmail(t *testing.T) {
	repo := &fakeSubscriptionRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.Subscription, error) {
			return nil, nil
		},
		create: func(_ context.Context, email string) (*domain.Subscription, error) {
			return &domain.Subscription{ID: "sub-1", Email: email}, nil
		},
	}

	created, err := usecase.NewSubscriptionUsecase(repo).Subscribe(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("created = false, want true for a new email")
	}
}

func TestSubscribe_DuplicateIsNotAnError(t *testing.T) {
	repo := &fakeSubscriptionRepo{
		findByEmail: func(_ context.Context, email string) (*domain.Subscription, error) {
			return &domain.Subscription{ID: "sub-1", Email: email}, nil
		},
		create: func(_ context.Context, _ string) (*domain.Subscription, error) {
			t.Fatal("Create must not be called for an existing email")
			return nil, nil
		},
	}

	created, err := usecase.NewSubscriptionUsecase(repo).Subscribe(context.Background(), "dup@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("created = true, want false for a duplicate")
	}
}

func TestSubscribe_LostRaceIsNotAnError(t *testing.T) {
	repo := &fakeSubscriptionRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.Subscription, error) {
			return nil, nil
		},
		create: func(_ context.Context, _ string) (*domain.Subscription, error) {
			return nil, domain.ErrAlreadySubscribed
		},
	}

	created, err := usecase.NewSubscriptionUsecase(repo).Subscribe(context.Background(), "race@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("created = true, want false when the insert lost a race")
	}
}

func TestSubscribe_RepositoryError(t *testing.T) {
	repoErr := errors.New("connection refused")
	repo := &fakeSubscriptionRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.Subscription, error) {
			return nil, repoErr
		},
	}

	_, err := usecase.NewSubscriptionUsecase(repo).Subscribe(context.Background(), "x@example.com")
	if !errors.Is(err, repoErr) {
		t.Errorf("err = %v, want wrapped repoErr", err)
	}
}
