package sso_collection

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/identitystore"
	"github.com/aws/aws-sdk-go/service/organizations"
	"github.com/aws/aws-sdk-go/service/ssoadmin"
)

// Scriptable fakes for the three AWS API surfaces. Errors are injected per
// entity key; call counters back the fetch-once assertions.

type fakeSSOAdmin struct {
	mu    sync.Mutex
	calls map[string]int

	instances        []*ssoadmin.InstanceMetadata
	listInstancesErr error

	permissionSets        []string
	listPermissionSetsErr error

	names       map[string]string
	describeErr map[string]error
	policies    map[string][]*ssoadmin.AttachedManagedPolicy
	policiesErr map[string]error
	inline      map[string]string
	inlineErr   map[string]error
	provisioned map[string][]string // psArn -> account IDs
	provErr     map[string]error
	assignments map[string][]*ssoadmin.AccountAssignment // "account|psArn"
	assignErr   map[string]error
}

func newFakeSSOAdmin() *fakeSSOAdmin {
	return &fakeSSOAdmin{
		calls:       map[string]int{},
		names:       map[string]string{},
		describeErr: map[string]error{},
		policies:    map[string][]*ssoadmin.AttachedManagedPolicy{},
		policiesErr: map[string]error{},
		inline:      map[string]string{},
		inlineErr:   map[string]error{},
		provisioned: map[string][]string{},
		provErr:     map[string]error{},
		assignments: map[string][]*ssoadmin.AccountAssignment{},
		assignErr:   map[string]error{},
	}
}

func (f *fakeSSOAdmin) record(method string) {
	f.mu.Lock()
	f.calls[method]++
	f.mu.Unlock()
}

func (f *fakeSSOAdmin) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func assignmentKey(accountID, psArn string) string {
	return fmt.Sprintf("%s|%s", accountID, psArn)
}

func (f *fakeSSOAdmin) ListInstancesWithContext(ctx aws.Context, input *ssoadmin.ListInstancesInput, opts ...request.Option) (*ssoadmin.ListInstancesOutput, error) {
	f.record("ListInstances")
	if f.listInstancesErr != nil {
		return nil, f.listInstancesErr
	}
	return &ssoadmin.ListInstancesOutput{Instances: f.instances}, nil
}

func (f *fakeSSOAdmin) ListPermissionSetsWithContext(ctx aws.Context, input *ssoadmin.ListPermissionSetsInput, opts ...request.Option) (*ssoadmin.ListPermissionSetsOutput, error) {
	f.record("ListPermissionSets")
	if f.listPermissionSetsErr != nil {
		return nil, f.listPermissionSetsErr
	}
	return &ssoadmin.ListPermissionSetsOutput{PermissionSets: aws.StringSlice(f.permissionSets)}, nil
}

func (f *fakeSSOAdmin) DescribePermissionSetWithContext(ctx aws.Context, input *ssoadmin.DescribePermissionSetInput, opts ...request.Option) (*ssoadmin.DescribePermissionSetOutput, error) {
	f.record("DescribePermissionSet")
	psArn := aws.StringValue(input.PermissionSetArn)
	if err := f.describeErr[psArn]; err != nil {
		return nil, err
	}
	return &ssoadmin.DescribePermissionSetOutput{
		PermissionSet: &ssoadmin.PermissionSet{
			PermissionSetArn: input.PermissionSetArn,
			Name:             aws.String(f.names[psArn]),
		},
	}, nil
}

func (f *fakeSSOAdmin) ListManagedPoliciesInPermissionSetWithContext(ctx aws.Context, input *ssoadmin.ListManagedPoliciesInPermissionSetInput, opts ...request.Option) (*ssoadmin.ListManagedPoliciesInPermissionSetOutput, error) {
	f.record("ListManagedPolicies")
	psArn := aws.StringValue(input.PermissionSetArn)
	if err := f.policiesErr[psArn]; err != nil {
		return nil, err
	}
	return &ssoadmin.ListManagedPoliciesInPermissionSetOutput{AttachedManagedPolicies: f.policies[psArn]}, nil
}

func (f *fakeSSOAdmin) GetInlinePolicyForPermissionSetWithContext(ctx aws.Context, input *ssoadmin.GetInlinePolicyForPermissionSetInput, opts ...request.Option) (*ssoadmin.GetInlinePolicyForPermissionSetOutput, error) {
	f.record("GetInlinePolicy")
	psArn := aws.StringValue(input.PermissionSetArn)
	if err := f.inlineErr[psArn]; err != nil {
		return nil, err
	}
	return &ssoadmin.GetInlinePolicyForPermissionSetOutput{InlinePolicy: aws.String(f.inline[psArn])}, nil
}

func (f *fakeSSOAdmin) ListAccountsForProvisionedPermissionSetWithContext(ctx aws.Context, input *ssoadmin.ListAccountsForProvisionedPermissionSetInput, opts ...request.Option) (*ssoadmin.ListAccountsForProvisionedPermissionSetOutput, error) {
	f.record("ListAccountsForProvisionedPermissionSet")
	psArn := aws.StringValue(input.PermissionSetArn)
	if err := f.provErr[psArn]; err != nil {
		return nil, err
	}
	return &ssoadmin.ListAccountsForProvisionedPermissionSetOutput{AccountIds: aws.StringSlice(f.provisioned[psArn])}, nil
}

func (f *fakeSSOAdmin) ListAccountAssignmentsWithContext(ctx aws.Context, input *ssoadmin.ListAccountAssignmentsInput, opts ...request.Option) (*ssoadmin.ListAccountAssignmentsOutput, error) {
	f.record("ListAccountAssignments")
	key := assignmentKey(aws.StringValue(input.AccountId), aws.StringValue(input.PermissionSetArn))
	if err := f.assignErr[key]; err != nil {
		return nil, err
	}
	return &ssoadmin.ListAccountAssignmentsOutput{AccountAssignments: f.assignments[key]}, nil
}

// fakeIdentityStore serves users in pages of two to exercise cursor
// following on the real listing path.
type fakeIdentityStore struct {
	users    []*identitystore.User
	listErr  error
	pageSize int
	calls    int
}

func (f *fakeIdentityStore) ListUsersWithContext(ctx aws.Context, input *identitystore.ListUsersInput, opts ...request.Option) (*identitystore.ListUsersOutput, error) {
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	pageSize := f.pageSize
	if pageSize <= 0 {
		pageSize = 2
	}
	start := 0
	if input.NextToken != nil {
		start, _ = strconv.Atoi(aws.StringValue(input.NextToken))
	}
	end := start + pageSize
	if end > len(f.users) {
		end = len(f.users)
	}
	out := &identitystore.ListUsersOutput{Users: f.users[start:end]}
	if end < len(f.users) {
		out.NextToken = aws.String(strconv.Itoa(end))
	}
	return out, nil
}

type fakeOrganizations struct {
	mu      sync.Mutex
	names   map[string]string
	lookErr map[string]error
	calls   map[string]int
}

func newFakeOrganizations() *fakeOrganizations {
	return &fakeOrganizations{
		names:   map[string]string{},
		lookErr: map[string]error{},
		calls:   map[string]int{},
	}
}

func (f *fakeOrganizations) DescribeAccountWithContext(ctx aws.Context, input *organizations.DescribeAccountInput, opts ...request.Option) (*organizations.DescribeAccountOutput, error) {
	accountID := aws.StringValue(input.AccountId)
	f.mu.Lock()
	f.calls[accountID]++
	f.mu.Unlock()
	if err := f.lookErr[accountID]; err != nil {
		return nil, err
	}
	return &organizations.DescribeAccountOutput{
		Account: &organizations.Account{
			Id:   input.AccountId,
			Name: aws.String(f.names[accountID]),
		},
	}, nil
}

func (f *fakeOrganizations) callCount(accountID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[accountID]
}

func testUser(id, name, email string, primary bool) *identitystore.User {
	user := &identitystore.User{
		UserId:   aws.String(id),
		UserName: aws.String(name),
	}
	if email != "" {
		user.Emails = []*identitystore.Email{
			{Value: aws.String(email), Primary: aws.Bool(primary)},
		}
	}
	return user
}

func userAssignment(userID string) *ssoadmin.AccountAssignment {
	return &ssoadmin.AccountAssignment{
		PrincipalId:   aws.String(userID),
		PrincipalType: aws.String("USER"),
	}
}

func groupAssignment(groupID string) *ssoadmin.AccountAssignment {
	return &ssoadmin.AccountAssignment{
		PrincipalId:   aws.String(groupID),
		PrincipalType: aws.String("GROUP"),
	}
}
