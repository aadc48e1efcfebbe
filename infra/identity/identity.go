package identity

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/identityplatform"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

func SetupIdentity(ctx *pulumi.Context, prov *gcp.Provider) (*identityplatform.Config, error) {
	svc, err := projects.NewService(ctx, "identityToolkitService", &projects.ServiceArgs{
		Service: pulumi.String("identitytoolkit.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	// Enables Identity Platform on the project (firebase) with email/password
	// sign-in only
	return identityplatform.NewConfig(ctx,
		"identityPlatformConfig",
		&identityplatform.ConfigArgs{
			SignIn: &identityplatform.ConfigSignInArgs{
				Email: &identityplatform.ConfigSignInEmailArgs{
					Enabled:          pulumi.Bool(true),
					PasswordRequired: pulumi.Bool(true),
				},
			},
		},
		pulumi.Provider(prov),
		pulumi.DependsOn([]pulumi.Resource{svc}),
	)
}
