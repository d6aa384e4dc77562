package sso_collection

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ssoadmin"
)

// ResolveInstance discovers the organization's Identity Center instance.
// An organization without an instance is a normal outcome, reported via
// ok=false - it halts the run but is not an error.
func ResolveInstance(ctx context.Context, svc SSOAdminAPI) (Instance, bool, error) {
	var out *ssoadmin.ListInstancesOutput
	err := callWithRetry(ctx, func(callCtx aws.Context) error {
		var callErr error
		out, callErr = svc.ListInstancesWithContext(callCtx, &ssoadmin.ListInstancesInput{})
		return callErr
	})
	if err != nil {
		return Instance{}, false, err
	}

	if len(out.Instances) == 0 {
		return Instance{}, false, nil
	}

	first := out.Instances[0]
	return Instance{
		InstanceArn:     aws.StringValue(first.InstanceArn),
		IdentityStoreID: aws.StringValue(first.IdentityStoreId),
	}, true, nil
}
