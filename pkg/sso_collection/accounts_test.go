package sso_collection

import (
	"context"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go/aws/awserr"
)

// TestAccountNameResolver_Memoizes checks that repeated lookups of one
// account hit the API at most once.
func TestAccountNameResolver_Memoizes(t *testing.T) {
	orgs := newFakeOrganizations()
	orgs.names["111111111111"] = "prod"
	resolver := NewAccountNameResolver(orgs)

	for i := 0; i < 10; i++ {
		if name := resolver.Resolve(context.Background(), "111111111111"); name != "prod" {
			t.Fatalf("Resolve = %q, expected prod", name)
		}
	}
	if calls := orgs.callCount("111111111111"); calls != 1 {
		t.Errorf("DescribeAccount called %d times, expected 1", calls)
	}
}

// TestAccountNameResolver_FallbackOnFailure checks that a failed lookup
// yields the account ID and caches the fallback.
func TestAccountNameResolver_FallbackOnFailure(t *testing.T) {
	orgs := newFakeOrganizations()
	orgs.lookErr["222222222222"] = awserr.New("AccessDeniedException", "denied", nil)
	resolver := NewAccountNameResolver(orgs)

	if name := resolver.Resolve(context.Background(), "222222222222"); name != "222222222222" {
		t.Fatalf("Resolve = %q, expected the account ID fallback", name)
	}
	// The fallback is memoized too
	resolver.Resolve(context.Background(), "222222222222")
	if calls := orgs.callCount("222222222222"); calls != 1 {
		t.Errorf("DescribeAccount called %d times, expected 1", calls)
	}
}

// TestAccountNameResolver_ConcurrentCollapse checks that concurrent
// lookups of the same account collapse into a single call.
func TestAccountNameResolver_ConcurrentCollapse(t *testing.T) {
	orgs := newFakeOrganizations()
	orgs.names["333333333333"] = "sandbox"
	resolver := NewAccountNameResolver(orgs)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if name := resolver.Resolve(context.Background(), "333333333333"); name != "sandbox" {
				t.Errorf("Resolve = %q, expected sandbox", name)
			}
		}()
	}
	wg.Wait()

	if calls := orgs.callCount("333333333333"); calls != 1 {
		t.Errorf("DescribeAccount called %d times, expected 1", calls)
	}
}
