package bootstrap

import (
	"context"

	"cloud.google.com/go/firestore"
)

// InitFirestore connects to the default database. FIRESTORE_EMULATOR_HOST is
// honoured by the client itself.
func InitFirestore(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	return firestore.NewClient(ctx, projectID)
}
