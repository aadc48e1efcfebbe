package bootstrap

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"

	identityclient "github.com/GregMSThompson/task-tracker/internal/client/identity"
	"github.com/GregMSThompson/task-tracker/internal/config"
	"github.com/GregMSThompson/task-tracker/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	Identity  *identityclient.Adapter
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}

	authClient, err := InitFirebase(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}

	apiKey := cfg.FirebaseAPIKey
	if apiKey == "" {
		apiKey, err = ReadSecret(applicationCtx, cfg.ProjectID, cfg.FirebaseAPIKeySecret)
		if err != nil {
			return bs, err
		}
	}
	toolkit, err := InitIdentityToolkit(applicationCtx, apiKey)
	if err != nil {
		return bs, err
	}
	bs.Identity = identityclient.NewAdapter(authClient, toolkit)

	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.Firestore != nil {
		if err := bs.Firestore.Close(); err != nil {
			bs.Log.Warn("failed to close firestore client", "error", err)
		}
	}
}
