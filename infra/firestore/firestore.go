package firestore

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/firestore"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

func SetupFirestore(ctx *pulumi.Context, prov *gcp.Provider) (*firestore.Database, error) {
	svc, err := enableFireStore(ctx, prov)
	if err != nil {
		return nil, err
	}

	db, err := createDatabase(ctx, prov, svc)
	if err != nil {
		return nil, err
	}

	if err := createTaskIndex(ctx, prov, db); err != nil {
		return nil, err
	}

	return db, nil
}

func enableFireStore(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "firestore", &projects.ServiceArgs{
		Service: pulumi.String("firestore.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createDatabase(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) (*firestore.Database, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	return firestore.NewDatabase(ctx, "firestoreDatabase", &firestore.DatabaseArgs{
		Project:    pulumi.String(projectID),
		Name:       pulumi.String("(default)"),
		LocationId: pulumi.String(region),
		Type:       pulumi.String("FIRESTORE_NATIVE"),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

// createTaskIndex backs the per-user task query: userId == uid ordered by
// createdAt descending.
func createTaskIndex(ctx *pulumi.Context, prov *gcp.Provider, db *firestore.Database) error {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")

	_, err := firestore.NewIndex(ctx, "tasksByUserIndex", &firestore.IndexArgs{
		Project:    pulumi.String(projectID),
		Database:   db.Name,
		Collection: pulumi.String("tasks"),
		Fields: firestore.IndexFieldArray{
			&firestore.IndexFieldArgs{
				FieldPath: pulumi.String("userId"),
				Order:     pulumi.String("ASCENDING"),
			},
			&firestore.IndexFieldArgs{
				FieldPath: pulumi.String("createdAt"),
				Order:     pulumi.String("DESCENDING"),
			},
		},
	},
		pulumi.Provider(prov),
	)
	return err
}
