package services

import (
	"context"
	"time"

	"github.com/GregMSThompson/task-tracker/internal/errs"
	"github.com/GregMSThompson/task-tracker/internal/models"
	"github.com/GregMSThompson/task-tracker/internal/session"
	"github.com/GregMSThompson/task-tracker/pkg/logger"
)

type identityProvider interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (session.Session, error)
	SignOut(ctx context.Context, uid string) error
	DeleteAccount(ctx context.Context, uid string) error
}

type userASStore interface {
	CreateUser(ctx context.Context, user *models.User) error
}

type authService struct {
	identity identityProvider
	users    userASStore
}

func NewAuthService(identity identityProvider, users userASStore) *authService {
	return &authService{
		identity: identity,
		users:    users,
	}
}

// Register validates the password locally, creates the identity and then the
// profile document. If the profile cannot be written the identity is deleted
// again so no account exists without a profile.
func (s *authService) Register(ctx context.Context, email, password, first, last string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	uid, err := s.identity.CreateAccount(ctx, email, password)
	if err != nil {
		return "", errs.NewProviderError(err)
	}

	log, ctx := logger.With(ctx, "uid", uid)

	user := &models.User{
		UID:       uid,
		Email:     email,
		FirstName: first,
		LastName:  last,
		CreatedAt: time.Now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		log.Error("failed to create user profile, rolling back account", "error", err)
		if rbErr := s.identity.DeleteAccount(ctx, uid); rbErr != nil {
			log.Error("failed to roll back account", "error", rbErr)
		}
		return "", err
	}

	log.Info("user registered")
	return uid, nil
}

// Login collapses every failure into one invalid-credentials error.
func (s *authService) Login(ctx context.Context, email, password string) (session.Session, error) {
	sess, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		logger.FromContext(ctx).Warn("sign in failed", "error", err)
		return session.Session{}, errs.NewInvalidCredentialsError()
	}
	return sess, nil
}

func (s *authService) Logout(ctx context.Context, id session.Identity) error {
	if !id.SignedIn() {
		return nil
	}
	if err := s.identity.SignOut(ctx, id.UID); err != nil {
		return errs.NewExternalServiceError("identity", "failed to sign out", false, err)
	}
	logger.FromContext(ctx).Info("user signed out")
	return nil
}
