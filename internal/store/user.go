package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/task-tracker/internal/errs"
	"github.com/GregMSThompson/task-tracker/internal/models"
)

type userStore struct {
	Client     *firestore.Client
	Collection *firestore.CollectionRef
}

func NewUserStore(client *firestore.Client) *userStore {
	return &userStore{
		Client:     client,
		Collection: client.Collection("users"),
	}
}

func (us *userStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := us.Collection.Doc(user.UID).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errs.NewAlreadyExistsError("user profile already exists")
		}
		return errs.NewDatabaseError("create", "failed to create user profile", err)
	}
	return nil
}

// UpdateName writes firstName and lastName and nothing else.
func (us *userStore) UpdateName(ctx context.Context, uid, first, last string) error {
	_, err := us.Collection.Doc(uid).Update(ctx, []firestore.Update{
		{Path: "firstName", Value: first},
		{Path: "lastName", Value: last},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("user profile not found")
		}
		return errs.NewDatabaseError("update", "failed to update user profile", err)
	}
	return nil
}

func (us *userStore) GetUser(ctx context.Context, uid string) (*models.User, error) {
	var user models.User

	doc, err := us.Collection.Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("user profile not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get user profile", err)
	}
	if err := doc.DataTo(&user); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse user profile", err)
	}
	if user.UID == "" {
		user.UID = doc.Ref.ID
	}

	return &user, nil
}

func (us *userStore) DeleteUser(ctx context.Context, uid string) error {
	_, err := us.Collection.Doc(uid).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete user profile", err)
	}
	return nil
}
