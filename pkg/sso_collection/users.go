package sso_collection

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/identitystore"
)

// ListAllUsers pages through the directory. The directory is the source of
// truth for identities; a failure here is fatal to the run.
func ListAllUsers(ctx context.Context, svc IdentityStoreAPI, identityStoreID string) ([]*identitystore.User, error) {
	return fetchAllPages(ctx, "users", func(nextToken *string) ([]*identitystore.User, *string, error) {
		var out *identitystore.ListUsersOutput
		err := callWithRetry(ctx, func(callCtx aws.Context) error {
			var callErr error
			out, callErr = svc.ListUsersWithContext(callCtx, &identitystore.ListUsersInput{
				IdentityStoreId: aws.String(identityStoreID),
				NextToken:       nextToken,
			})
			return callErr
		})
		if err != nil {
			return nil, nil, err
		}
		return out.Users, out.NextToken, nil
	})
}

// primaryEmail extracts the user's primary email address, empty when the
// directory holds none.
func primaryEmail(user *identitystore.User) string {
	for _, email := range user.Emails {
		if aws.BoolValue(email.Primary) {
			return aws.StringValue(email.Value)
		}
	}
	return ""
}
