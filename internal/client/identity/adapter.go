package identityclient

import (
	"context"
	"errors"
	"strings"

	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"

	"github.com/GregMSThompson/task-tracker/internal/session"
)

// Adapter is the identity provider: Firebase Auth admin operations plus the
// Identity Toolkit password endpoint for sign-in and re-authentication.
type Adapter struct {
	auth    *auth.Client
	toolkit *identitytoolkit.Service
}

func NewAdapter(authClient *auth.Client, toolkit *identitytoolkit.Service) *Adapter {
	return &Adapter{
		auth:    authClient,
		toolkit: toolkit,
	}
}

func (a *Adapter) CreateAccount(ctx context.Context, email, password string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password)

	user, err := a.auth.CreateUser(ctx, params)
	if err != nil {
		return "", err
	}
	return user.UID, nil
}

func (a *Adapter) SignIn(ctx context.Context, email, password string) (session.Session, error) {
	resp, err := a.verifyPassword(ctx, email, password)
	if err != nil {
		return session.Session{}, err
	}

	return session.Session{
		Identity: session.Identity{
			UID:   resp.LocalId,
			Email: resp.Email,
		},
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

// Reauthenticate reports whether password is the current password for email.
// A wrong password is (false, nil); any other failure is returned.
func (a *Adapter) Reauthenticate(ctx context.Context, email, password string) (bool, error) {
	_, err := a.verifyPassword(ctx, email, password)
	if err == nil {
		return true, nil
	}
	if IsWrongPassword(err) {
		return false, nil
	}
	return false, err
}

// SignOut revokes every refresh token issued to uid.
func (a *Adapter) SignOut(ctx context.Context, uid string) error {
	return a.auth.RevokeRefreshTokens(ctx, uid)
}

func (a *Adapter) DeleteAccount(ctx context.Context, uid string) error {
	return a.auth.DeleteUser(ctx, uid)
}

func (a *Adapter) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	return a.auth.VerifyIDToken(ctx, idToken)
}

func (a *Adapter) verifyPassword(ctx context.Context, email, password string) (*identitytoolkit.VerifyPasswordResponse, error) {
	req := &identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}
	return a.toolkit.Relyingparty.VerifyPassword(req).Context(ctx).Do()
}

// wrong-password codes; INVALID_LOGIN_CREDENTIALS replaces the others when
// email enumeration protection is on
var wrongPasswordCodes = []string{
	"INVALID_PASSWORD",
	"INVALID_LOGIN_CREDENTIALS",
}

func IsWrongPassword(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range wrongPasswordCodes {
		if strings.HasPrefix(apiErr.Message, code) {
			return true
		}
	}
	return false
}
