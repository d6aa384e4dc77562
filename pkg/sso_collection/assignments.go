package sso_collection

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ssoadmin"
)

// CorrelateUserAssignments walks every (permission set x provisioned
// account) pair and keeps the assignments whose principal is the given
// user. Failures are local: an account-enumeration failure skips that
// permission set, an assignment-listing failure skips that account, and
// the sweep carries on. A user can hold several assignments across
// accounts and permission sets; all of them are retained.
func CorrelateUserAssignments(ctx context.Context, svc SSOAdminAPI, instanceArn, userID string, permissionSetArns []string) []Assignment {
	var assignments []Assignment

	for _, psArn := range permissionSetArns {
		if ctx.Err() != nil {
			return assignments
		}

		accounts, err := fetchAllPages(ctx, fmt.Sprintf("accounts for permission set %s", psArn), func(nextToken *string) ([]*string, *string, error) {
			var out *ssoadmin.ListAccountsForProvisionedPermissionSetOutput
			err := callWithRetry(ctx, func(callCtx aws.Context) error {
				var callErr error
				out, callErr = svc.ListAccountsForProvisionedPermissionSetWithContext(callCtx, &ssoadmin.ListAccountsForProvisionedPermissionSetInput{
					InstanceArn:      aws.String(instanceArn),
					PermissionSetArn: aws.String(psArn),
					NextToken:        nextToken,
				})
				return callErr
			})
			if err != nil {
				return nil, nil, err
			}
			return out.AccountIds, out.NextToken, nil
		})
		if err != nil {
			fmt.Printf("Error getting accounts for permission set %s: %v\n", psArn, err)
			continue
		}

		for _, accountID := range accounts {
			if ctx.Err() != nil {
				return assignments
			}
			accountID := aws.StringValue(accountID)

			matches, err := listUserAssignments(ctx, svc, instanceArn, accountID, psArn, userID)
			if err != nil {
				fmt.Printf("Error getting account assignments for user %s in account %s: %v\n", userID, accountID, err)
				continue
			}
			assignments = append(assignments, matches...)
		}
	}

	return assignments
}

// listUserAssignments pages through the assignments of one (account,
// permission set) pair and filters to USER principals matching userID.
func listUserAssignments(ctx context.Context, svc SSOAdminAPI, instanceArn, accountID, psArn, userID string) ([]Assignment, error) {
	all, err := fetchAllPages(ctx, fmt.Sprintf("assignments for account %s", accountID), func(nextToken *string) ([]*ssoadmin.AccountAssignment, *string, error) {
		var out *ssoadmin.ListAccountAssignmentsOutput
		err := callWithRetry(ctx, func(callCtx aws.Context) error {
			var callErr error
			out, callErr = svc.ListAccountAssignmentsWithContext(callCtx, &ssoadmin.ListAccountAssignmentsInput{
				InstanceArn:      aws.String(instanceArn),
				AccountId:        aws.String(accountID),
				PermissionSetArn: aws.String(psArn),
				NextToken:        nextToken,
			})
			return callErr
		})
		if err != nil {
			return nil, nil, err
		}
		return out.AccountAssignments, out.NextToken, nil
	})
	if err != nil {
		return nil, err
	}

	var matches []Assignment
	for _, assignment := range all {
		if aws.StringValue(assignment.PrincipalType) != "USER" {
			continue
		}
		if aws.StringValue(assignment.PrincipalId) != userID {
			continue
		}
		matches = append(matches, Assignment{
			UserID:           userID,
			AccountID:        accountID,
			PermissionSetArn: psArn,
		})
	}
	return matches, nil
}
