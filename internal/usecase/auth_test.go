package usecase_test

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/holiday-promo/api/internal/domain"
	"github.com/holiday-promo/api/internal/usecase"
	"golang.org/x/crypto/bcrypt"
)

// ---- fakes ----

type fakeUserRepo struct {
	create                   func(ctx context.Context, name, email, passwordHash string, role domain.Role) (*domain.User, error)
	findByID                 func(ctx context.Context, id string) (*domain.User, error)
	findByEmail              func(ctx context.Context, email string) (*domain.User, error)
	findOrCreate             func(ctx context.Context, email string) (*domain.User, error)
	list                     func(ctx context.Context) ([]domain.User, error)
	updateProfile            func(ctx context.Context, id, name, email string) (*domain.User, error)
	deleteCascade            func(ctx context.Context, id string) error
	createMagicToken         func(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	claimMagicToken          func(ctx context.Context, tokenHash string) (*domain.MagicToken, error)
	deleteExpiredMagicTokens func(ctx context.Context) (int64, error)
}

func (r *fakeUserRepo) Create(ctx context.Context, name, email, passwordHash string, role domain.Role) (*domain.User, error) {
	return r.create(ctx, name, email, passwordHash, role)
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findByID(ctx, id)
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findByEmail(ctx, email)
}

func (r *fakeUserRepo) FindOrCreate(ctx context.Context, email string) (*domain.User, error) {
	return r.findOrCreate(ctx, email)
}

func (r *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	return r.list(ctx)
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id, name, email string) (*domain.User, error) {
	return r.updateProfile(ctx, id, name, email)
}

func (r *fakeUserRepo) DeleteCascade(ctx context.Context, id string) error {
	return r.deleteCascade(ctx, id)
}

func (r *fakeUserRepo) CreateMagicToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	return r.createMagicToken(ctx, userID, tokenHash, expiresAt)
}

func (r *fakeUserRepo) ClaimMagicToken(ctx context.Context, tokenHash string) (*domain.MagicToken, error) {
	return r.claimMagicToken(ctx, tokenHash)
}

func (r *fakeUserRepo) DeleteExpiredMagicTokens(ctx context.Context) (int64, error) {
	return r.deleteExpiredMagicTokens(ctx)
}

type fakeEmailSender struct {
	send func(ctx context.Context, to, subject, html, text string) error
}

func (s *fakeEmailSender) Send(ctx context.Context, to, subject, html, text string) error {
	return s.send(ctx, to, subject, html, text)
}

// ---- helpers ----

const (
	testJWTKey      = "test-jwt-secret-at-least-32-chars!!"
	testSiteBaseURL = "http://localhost:8080"
)

func newUsecase(repo *fakeUserRepo, sender *fakeEmailSender) *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(repo, sender, []byte(testJWTKey), testSiteBaseURL)
}

func parseClaims(t *testing.T, signed string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(signed, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected method")
		}
		return []byte(testJWTKey), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("returned JWT is invalid: %v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("could not cast claims")
	}
	return claims
}

var testUser = &domain.User{ID: "user-1", Email: "test@example.com", Role: domain.RoleSubscriber}

// ---- SignUp ----

func TestSignUp_StoresBcryptHashAndSignsJWT(t *testing.T) {
	var storedHash string

	repo := &fakeUserRepo{
		create: func(_ context.Context, name, email, passwordHash string, role domain.Role) (*domain.User, error) {
			storedHash = passwordHash
			return &domain.User{ID: "user-2", Name: name, Email: email, Role: role}, nil
		},
	}

	token, user, err := newUsecase(repo, &fakeEmailSender{}).SignUp(
		context.Background(), "Test User", "new@example.com", "correct-horse-battery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("correct-horse-battery")) != nil {
		t.Error("stored hash does not match the password")
	}
	if user.Role != domain.RoleSubscriber {
		t.Errorf("role = %q, want subscriber", user.Role)
	}

	claims := parseClaims(t, token)
	if claims["sub"] != "user-2" {
		t.Errorf("sub = %v, want user-2", claims["sub"])
	}
	if claims["role"] != string(domain.RoleSubscriber) {
		t.Errorf("role claim = %v", claims["role"])
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{
		create: func(_ context.Context, _, _, _ string, _ domain.Role) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}

	_, _, err := newUsecase(repo, &fakeEmailSender{}).SignUp(
		context.Background(), "Test User", "dup@example.com", "correct-horse-battery")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

// ---- SignIn ----

func signInRepo(t *testing.T, password string) *fakeUserRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	stored := *testUser
	stored.PasswordHash = string(hash)
	return &fakeUserRepo{
		findByEmail: func(_ context.Context, email string) (*domain.User, error) {
			if email != stored.Email {
				return nil, domain.ErrUserNotFound
			}
			return &stored, nil
		},
	}
}

func TestSignIn_CorrectPassword(t *testing.T) {
	repo := signInRepo(t, "correct-horse-battery")

	token, user, err := newUsecase(repo, &fakeEmailSender{}).SignIn(
		context.Background(), testUser.Email, "correct-horse-battery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != testUser.ID {
		t.Errorf("user id = %q", user.ID)
	}

	claims := parseClaims(t, token)
	if claims["email"] != testUser.Email {
		t.Errorf("email claim = %v", claims["email"])
	}
}

func TestSignIn_WrongPassword(t *testing.T) {
	repo := signInRepo(t, "correct-horse-battery")

	_, _, err := newUsecase(repo, &fakeEmailSender{}).SignIn(
		context.Background(), testUser.Email, "wrong-password-here")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestSignIn_UnknownEmail_SameError(t *testing.T) {
	repo := signInRepo(t, "correct-horse-battery")

	_, _, err := newUsecase(repo, &fakeEmailSender{}).SignIn(
		context.Background(), "nobody@example.com", "correct-horse-battery")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestSignIn_PasswordlessAccount(t *testing.T) {
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return testUser, nil // no password hash
		},
	}

	_, _, err := newUsecase(repo, &fakeEmailSender{}).SignIn(
		context.Background(), testUser.Email, "any-password-at-all")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

// ---- RequestMagicLink ----

func TestRequestMagicLink_StoresHashOfEmailedToken(t *testing.T) {
	var capturedHash string
	var capturedBody string

	repo := &fakeUserRepo{
		findOrCreate: func(_ context.Context, _ string) (*domain.User, error) {
			return testUser, nil
		},
		createMagicToken: func(_ context.Context, _, tokenHash string, _ time.Time) error {
			capturedHash = tokenHash
			return nil
		},
	}
	sender := &fakeEmailSender{
		send: func(_ context.Context, _, _, html, _ string) error {
			capturedBody = html
			return nil
		},
	}

	if err := newUsecase(repo, sender).RequestMagicLink(context.Background(), testUser.Email); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Extract the raw token from the link embedded in the email body.
	idx := strings.Index(capturedBody, "?token=")
	if idx == -1 {
		t.Fatal("email body does not contain ?token=")
	}
	rawToken := strings.SplitN(capturedBody[idx+len("?token="):], `"`, 2)[0]

	wantHash := fmt.Sprintf("%x", sha256.Sum256([]byte(rawToken)))
	if capturedHash != wantHash {
		t.Errorf("stored hash %q != SHA-256 of emailed token %q", capturedHash, wantHash)
	}
}

func TestRequestMagicLink_TokenExpiresInFuture(t *testing.T) {
	var capturedExpiry time.Time

	repo := &fakeUserRepo{
		findOrCreate: func(_ context.Context, _ string) (*domain.User, error) {
			return testUser, nil
		},
		createMagicToken: func(_ context.Context, _, _ string, expiresAt time.Time) error {
			capturedExpiry = expiresAt
			return nil
		},
	}
	sender := &fakeEmailSender{
		send: func(_ context.Context, _, _, _, _ string) error { return nil },
	}

	before := time.Now()
	if err := newUsecase(repo, sender).RequestMagicLink(context.Background(), testUser.Email); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !capturedExpiry.After(before) {
		t.Errorf("expiry %v is not after request time %v", capturedExpiry, before)
	}
}

func TestRequestMagicLink_EmailError_Propagates(t *testing.T) {
	sendErr := errors.New("smtp unavailable")
	repo := &fakeUserRepo{
		findOrCreate: func(_ context.Context, _ string) (*domain.User, error) {
			return testUser, nil
		},
		createMagicToken: func(_ context.Context, _, _ string, _ time.Time) error {
			return nil
		},
	}
	sender := &fakeEmailSender{
		send: func(_ context.Context, _, _, _, _ string) error { return sendErr },
	}

	err := newUsecase(repo, sender).RequestMagicLink(context.Background(), testUser.Email)
	if !errors.Is(err, sendErr) {
		t.Errorf("want wrapped sendErr, got %v", err)
	}
}

// ---- VerifyMagicLink ----

func TestVerifyMagicLink_ReturnsSignedJWT(t *testing.T) {
	const rawToken = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	expectedHash := fmt.Sprintf("%x", sha256.Sum256([]byte(rawToken)))

	mt := &domain.MagicToken{ID: "mt-1", UserID: testUser.ID, TokenHash: expectedHash}
	repo := &fakeUserRepo{
		claimMagicToken: func(_ context.Context, tokenHash string) (*domain.MagicToken, error) {
			if tokenHash != expectedHash {
				return nil, domain.ErrTokenInvalid
			}
			return mt, nil
		},
		findByID: func(_ context.Context, _ string) (*domain.User, error) {
			return testUser, nil
		},
	}

	signed, err := newUsecase(repo, &fakeEmailSender{}).VerifyMagicLink(context.Background(), rawToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := parseClaims(t, signed)
	if claims["sub"] != testUser.ID {
		t.Errorf("sub = %v, want %s", claims["sub"], testUser.ID)
	}
}

func TestVerifyMagicLink_InvalidToken(t *testing.T) {
	repo := &fakeUserRepo{
		claimMagicToken: func(_ context.Context, _ string) (*domain.MagicToken, error) {
			return nil, domain.ErrTokenInvalid
		},
	}

	_, err := newUsecase(repo, &fakeEmailSender{}).VerifyMagicLink(context.Background(), "bogus")
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}
