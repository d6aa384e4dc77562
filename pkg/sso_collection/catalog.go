package sso_collection

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ssoadmin"
)

// BuildPermissionSetCatalog enumerates every permission set in the instance
// and resolves each one's descriptor, attached managed policies and inline
// policy. It returns the ARNs in enumeration order alongside the details
// map. The catalog is built once per run and treated as read-only by the
// correlation sweep.
func BuildPermissionSetCatalog(ctx context.Context, svc SSOAdminAPI, instanceArn string) ([]string, map[string]*PermissionSetDetails, error) {
	arns, err := fetchAllPages(ctx, "permission sets", func(nextToken *string) ([]*string, *string, error) {
		var out *ssoadmin.ListPermissionSetsOutput
		err := callWithRetry(ctx, func(callCtx aws.Context) error {
			var callErr error
			out, callErr = svc.ListPermissionSetsWithContext(callCtx, &ssoadmin.ListPermissionSetsInput{
				InstanceArn: aws.String(instanceArn),
				NextToken:   nextToken,
			})
			return callErr
		})
		if err != nil {
			return nil, nil, err
		}
		return out.PermissionSets, out.NextToken, nil
	})
	if err != nil {
		return nil, nil, err
	}

	ordered := make([]string, 0, len(arns))
	catalog := make(map[string]*PermissionSetDetails, len(arns))
	for _, arn := range arns {
		psArn := aws.StringValue(arn)
		ordered = append(ordered, psArn)
		catalog[psArn] = describePermissionSet(ctx, svc, instanceArn, psArn)
	}

	return ordered, catalog, nil
}

// describePermissionSet resolves one permission set. The managed-policy and
// inline-policy lookups are independent: a failure in either degrades that
// field to its zero value without suppressing the other or dropping the
// permission set.
func describePermissionSet(ctx context.Context, svc SSOAdminAPI, instanceArn, psArn string) *PermissionSetDetails {
	// ManagedPolicies starts as an empty (not nil) slice so a degraded
	// lookup still serializes as [] in the report.
	details := &PermissionSetDetails{Arn: psArn, ManagedPolicies: []ManagedPolicy{}}

	var described *ssoadmin.DescribePermissionSetOutput
	err := callWithRetry(ctx, func(callCtx aws.Context) error {
		var callErr error
		described, callErr = svc.DescribePermissionSetWithContext(callCtx, &ssoadmin.DescribePermissionSetInput{
			InstanceArn:      aws.String(instanceArn),
			PermissionSetArn: aws.String(psArn),
		})
		return callErr
	})
	if err != nil {
		fmt.Printf("Error getting permission set details for %s: %v\n", psArn, err)
		return details
	}
	if described.PermissionSet != nil {
		details.Name = aws.StringValue(described.PermissionSet.Name)
		details.Description = aws.StringValue(described.PermissionSet.Description)
	}

	policies, err := fetchAllPages(ctx, fmt.Sprintf("managed policies for %s", psArn), func(nextToken *string) ([]*ssoadmin.AttachedManagedPolicy, *string, error) {
		var out *ssoadmin.ListManagedPoliciesInPermissionSetOutput
		err := callWithRetry(ctx, func(callCtx aws.Context) error {
			var callErr error
			out, callErr = svc.ListManagedPoliciesInPermissionSetWithContext(callCtx, &ssoadmin.ListManagedPoliciesInPermissionSetInput{
				InstanceArn:      aws.String(instanceArn),
				PermissionSetArn: aws.String(psArn),
				NextToken:        nextToken,
			})
			return callErr
		})
		if err != nil {
			return nil, nil, err
		}
		return out.AttachedManagedPolicies, out.NextToken, nil
	})
	if err != nil {
		fmt.Printf("Error getting managed policies for %s: %v\n", psArn, err)
	} else {
		for _, policy := range policies {
			details.ManagedPolicies = append(details.ManagedPolicies, ManagedPolicy{
				Name: aws.StringValue(policy.Name),
				Arn:  aws.StringValue(policy.Arn),
			})
		}
	}

	var inline *ssoadmin.GetInlinePolicyForPermissionSetOutput
	err = callWithRetry(ctx, func(callCtx aws.Context) error {
		var callErr error
		inline, callErr = svc.GetInlinePolicyForPermissionSetWithContext(callCtx, &ssoadmin.GetInlinePolicyForPermissionSetInput{
			InstanceArn:      aws.String(instanceArn),
			PermissionSetArn: aws.String(psArn),
		})
		return callErr
	})
	if err != nil {
		fmt.Printf("Error getting inline policy for %s: %v\n", psArn, err)
	} else {
		details.InlinePolicy = aws.StringValue(inline.InlinePolicy)
	}

	return details
}
