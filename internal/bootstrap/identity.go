package bootstrap

import (
	"context"

	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// InitIdentityToolkit builds the client used for password verification. The
// Admin SDK cannot check passwords, so this goes through the public API key.
func InitIdentityToolkit(ctx context.Context, apiKey string) (*identitytoolkit.Service, error) {
	return identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
}
