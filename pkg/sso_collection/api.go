package sso_collection

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/identitystore"
	"github.com/aws/aws-sdk-go/service/organizations"
	"github.com/aws/aws-sdk-go/service/ssoadmin"
)

// Narrow views of the AWS service clients covering only the calls the
// collector issues. Each method matches the SDK signature exactly so the
// real clients satisfy the interfaces and tests can inject fakes.

type SSOAdminAPI interface {
	ListInstancesWithContext(ctx aws.Context, input *ssoadmin.ListInstancesInput, opts ...request.Option) (*ssoadmin.ListInstancesOutput, error)
	ListPermissionSetsWithContext(ctx aws.Context, input *ssoadmin.ListPermissionSetsInput, opts ...request.Option) (*ssoadmin.ListPermissionSetsOutput, error)
	DescribePermissionSetWithContext(ctx aws.Context, input *ssoadmin.DescribePermissionSetInput, opts ...request.Option) (*ssoadmin.DescribePermissionSetOutput, error)
	ListManagedPoliciesInPermissionSetWithContext(ctx aws.Context, input *ssoadmin.ListManagedPoliciesInPermissionSetInput, opts ...request.Option) (*ssoadmin.ListManagedPoliciesInPermissionSetOutput, error)
	GetInlinePolicyForPermissionSetWithContext(ctx aws.Context, input *ssoadmin.GetInlinePolicyForPermissionSetInput, opts ...request.Option) (*ssoadmin.GetInlinePolicyForPermissionSetOutput, error)
	ListAccountsForProvisionedPermissionSetWithContext(ctx aws.Context, input *ssoadmin.ListAccountsForProvisionedPermissionSetInput, opts ...request.Option) (*ssoadmin.ListAccountsForProvisionedPermissionSetOutput, error)
	ListAccountAssignmentsWithContext(ctx aws.Context, input *ssoadmin.ListAccountAssignmentsInput, opts ...request.Option) (*ssoadmin.ListAccountAssignmentsOutput, error)
}

type IdentityStoreAPI interface {
	ListUsersWithContext(ctx aws.Context, input *identitystore.ListUsersInput, opts ...request.Option) (*identitystore.ListUsersOutput, error)
}

type OrganizationsAPI interface {
	DescribeAccountWithContext(ctx aws.Context, input *organizations.DescribeAccountInput, opts ...request.Option) (*organizations.DescribeAccountOutput, error)
}

var (
	_ SSOAdminAPI      = (*ssoadmin.SSOAdmin)(nil)
	_ IdentityStoreAPI = (*identitystore.IdentityStore)(nil)
	_ OrganizationsAPI = (*organizations.Organizations)(nil)
)
