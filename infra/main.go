package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/task-tracker/infra/cloudrun"
	"github.com/GregMSThompson/task-tracker/infra/docker"
	"github.com/GregMSThompson/task-tracker/infra/firestore"
	"github.com/GregMSThompson/task-tracker/infra/identity"
	"github.com/GregMSThompson/task-tracker/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// enable identity platform for email/password accounts
		ident, err := identity.SetupIdentity(ctx, prov)
		if err != nil {
			return err
		}

		// enable firestore, create the database and the tasks index
		db, err := firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, ident, db, repo)
		if err != nil {
			return err
		}

		return nil
	})
}
