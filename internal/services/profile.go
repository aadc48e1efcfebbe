package services

import (
	"context"

	"github.com/GregMSThompson/task-tracker/internal/dto"
	"github.com/GregMSThompson/task-tracker/internal/errs"
	"github.com/GregMSThompson/task-tracker/internal/models"
	"github.com/GregMSThompson/task-tracker/internal/session"
	"github.com/GregMSThompson/task-tracker/pkg/logger"
)

type profilePSStore interface {
	GetUser(ctx context.Context, uid string) (*models.User, error)
	UpdateName(ctx context.Context, uid, first, last string) error
	DeleteUser(ctx context.Context, uid string) error
}

type reauthenticator interface {
	Reauthenticate(ctx context.Context, email, password string) (bool, error)
	DeleteAccount(ctx context.Context, uid string) error
}

type profileService struct {
	Store    profilePSStore
	Identity reauthenticator
}

func NewProfileService(store profilePSStore, identity reauthenticator) *profileService {
	return &profileService{
		Store:    store,
		Identity: identity,
	}
}

func (s *profileService) Load(ctx context.Context, uid string) (*dto.Profile, error) {
	user, err := s.Store.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	return dto.NewProfile(user), nil
}

// Save overwrites firstName and lastName only and returns exactly what was
// written. The profile is not read back.
func (s *profileService) Save(ctx context.Context, uid, first, last string) (dto.ProfileName, error) {
	if err := s.Store.UpdateName(ctx, uid, first, last); err != nil {
		return dto.ProfileName{}, err
	}
	logger.FromContext(ctx).Info("profile updated")
	return dto.ProfileName{FirstName: first, LastName: last}, nil
}

// DeleteAccount re-authenticates with password, then deletes the profile
// document and then the identity. Nothing is deleted when re-authentication
// fails.
func (s *profileService) DeleteAccount(ctx context.Context, id session.Identity, password string) error {
	log := logger.FromContext(ctx)

	if password == "" {
		return errs.NewValidationError(errs.MissingPasswordMessage)
	}

	ok, err := s.Identity.Reauthenticate(ctx, id.Email, password)
	if err != nil {
		log.Error("re-authentication failed", "error", err)
		return errs.NewDeleteAccountError()
	}
	if !ok {
		return errs.NewWrongPasswordError()
	}

	if err := s.Store.DeleteUser(ctx, id.UID); err != nil {
		log.Error("failed to delete user profile", "error", err)
		return errs.NewDeleteAccountError()
	}

	// TODO: the profile is already gone here; a failure leaves an active
	// identity without a profile until a compensating cleanup job exists.
	if err := s.Identity.DeleteAccount(ctx, id.UID); err != nil {
		log.Error("profile deleted but identity deletion failed", "error", err)
		return errs.NewDeleteAccountError()
	}

	log.Info("account deleted")
	return nil
}
