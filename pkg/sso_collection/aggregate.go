package sso_collection

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/identitystore"
	"github.com/cheggaaa/pb"
)

// ErrNoInstance halts the run: an organization without an Identity Center
// instance has no identities to resolve.
var ErrNoInstance = errors.New("no IAM Identity Center instance found")

// Collector drives the pipeline: resolve instance, build the permission
// set catalog, list the directory, correlate assignments per user, and
// emit one EnabledUser record per user with at least one assignment.
type Collector struct {
	SSOAdmin      SSOAdminAPI
	IdentityStore IdentityStoreAPI
	Organizations OrganizationsAPI

	// ShowProgress enables the terminal progress bar over the per-user
	// correlation sweep.
	ShowProgress bool

	catalog map[string]*PermissionSetDetails
}

// Catalog returns the permission set catalog built by the last Collect
// call. Used by the persistence layer to pick up inline policies.
func (c *Collector) Catalog() map[string]*PermissionSetDetails {
	return c.catalog
}

// Collect runs the full sweep. Output order follows directory listing
// order. Local API failures degrade or skip per entity; only a missing
// instance or a failed user listing aborts the run.
func (c *Collector) Collect(ctx context.Context) ([]EnabledUser, Summary, error) {
	instance, found, err := ResolveInstance(ctx, c.SSOAdmin)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("error getting SSO instance: %w", err)
	}
	if !found {
		return nil, Summary{}, ErrNoInstance
	}

	fmt.Println("Fetching permission sets...")
	permissionSetArns, catalog, err := BuildPermissionSetCatalog(ctx, c.SSOAdmin, instance.InstanceArn)
	if err != nil {
		// The reference behavior carries on with an empty catalog; every
		// user then resolves to zero assignments.
		fmt.Printf("Error getting permission sets: %v\n", err)
		permissionSetArns = nil
		catalog = map[string]*PermissionSetDetails{}
	}
	c.catalog = catalog
	fmt.Printf("Found %d permission sets\n", len(catalog))

	fmt.Println("Fetching all SSO users...")
	users, err := ListAllUsers(ctx, c.IdentityStore, instance.IdentityStoreID)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("error fetching users: %w", err)
	}
	fmt.Printf("Found %d total users\n", len(users))

	accountNames := NewAccountNameResolver(c.Organizations)

	var bar *pb.ProgressBar
	if c.ShowProgress {
		bar = pb.StartNew(len(users))
	}

	// One result slot per directory position keeps output in listing
	// order regardless of worker interleaving.
	results := make([]*EnabledUser, len(users))
	maxConcurrency := correlationConcurrency()
	semaphore := make(chan struct{}, maxConcurrency)
	var wg sync.WaitGroup

	for i, user := range users {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		semaphore <- struct{}{}
		go func(i int, user *identitystore.User) {
			defer wg.Done()
			defer func() { <-semaphore }()

			results[i] = c.correlateUser(ctx, instance.InstanceArn, user, permissionSetArns, catalog, accountNames)
			if bar != nil {
				bar.Increment()
			}
		}(i, user)
	}
	wg.Wait()

	if bar != nil {
		bar.Finish()
	}

	var enabled []EnabledUser
	for _, record := range results {
		if record != nil {
			enabled = append(enabled, *record)
		}
	}

	summary := Summary{
		TotalUsers:          len(users),
		EnabledUsers:        len(enabled),
		TotalPermissionSets: len(catalog),
	}
	return enabled, summary, nil
}

// correlateUser resolves one user's assignments and builds their report
// record, or nil when no assignment resolves.
func (c *Collector) correlateUser(ctx context.Context, instanceArn string, user *identitystore.User, permissionSetArns []string, catalog map[string]*PermissionSetDetails, accountNames *AccountNameResolver) *EnabledUser {
	userID := aws.StringValue(user.UserId)
	userName := aws.StringValue(user.UserName)
	if userName == "" {
		userName = userID
	}

	assignments := CorrelateUserAssignments(ctx, c.SSOAdmin, instanceArn, userID, permissionSetArns)
	if len(assignments) == 0 {
		return nil
	}
	fmt.Printf("User %s has %d assignments - considered ENABLED\n", userName, len(assignments))

	details := make([]AssignmentDetail, 0, len(assignments))
	for _, assignment := range assignments {
		detail := AssignmentDetail{
			AccountID:        assignment.AccountID,
			AccountName:      accountNames.Resolve(ctx, assignment.AccountID),
			PermissionSetArn: assignment.PermissionSetArn,
		}
		detail.ManagedPolicies = []ManagedPolicy{}
		if ps, ok := catalog[assignment.PermissionSetArn]; ok {
			detail.PermissionSetName = ps.Name
			detail.ManagedPolicies = ps.ManagedPolicies
		}
		details = append(details, detail)
	}

	return &EnabledUser{
		UserID:      userID,
		UserName:    userName,
		Email:       primaryEmail(user),
		Status:      "ENABLED",
		Assignments: details,
	}
}

// Concurrency control for the per-user sweep. The default matches the
// reference behavior of one outstanding correlation at a time.
func correlationConcurrency() int {
	maxConcurrency := 1
	if envConcurrency := os.Getenv("CIEMPOSSIBLE_CONCURRENCY"); envConcurrency != "" {
		if parsed, err := strconv.Atoi(envConcurrency); err == nil && parsed > 0 {
			maxConcurrency = parsed
		}
	}
	return maxConcurrency
}
