package bootstrap

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

// InitFirebase returns the Auth admin client. An empty projectID lets the SDK
// pick it up from the environment.
func InitFirebase(ctx context.Context, projectID string) (*auth.Client, error) {
	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}
	app, err := firebase.NewApp(ctx, conf)
	if err != nil {
		return nil, err
	}
	return app.Auth(ctx)
}
