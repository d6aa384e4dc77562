package sso_collection

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/organizations"
	lru "github.com/hashicorp/golang-lru/v2"
)

const accountCacheSize = 4096

// AccountNameResolver maps account IDs to display names via Organizations.
// Results are memoized for the lifetime of the run so the same account is
// looked up at most once, even from concurrent correlation workers. A
// failed lookup falls back to the account ID itself and the fallback is
// cached too - name resolution never fails the caller.
type AccountNameResolver struct {
	svc   OrganizationsAPI
	mu    sync.Mutex
	cache *lru.Cache[string, string]
}

func NewAccountNameResolver(svc OrganizationsAPI) *AccountNameResolver {
	cache, _ := lru.New[string, string](accountCacheSize)
	return &AccountNameResolver{svc: svc, cache: cache}
}

// Resolve returns the account's display name, or the account ID when the
// lookup fails. The mutex spans the whole lookup so duplicate concurrent
// requests for one account collapse into a single call.
func (r *AccountNameResolver) Resolve(ctx context.Context, accountID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name, ok := r.cache.Get(accountID); ok {
		return name
	}

	var out *organizations.DescribeAccountOutput
	err := callWithRetry(ctx, func(callCtx aws.Context) error {
		var callErr error
		out, callErr = r.svc.DescribeAccountWithContext(callCtx, &organizations.DescribeAccountInput{
			AccountId: aws.String(accountID),
		})
		return callErr
	})
	if err != nil || out.Account == nil || out.Account.Name == nil {
		if err != nil {
			fmt.Printf("Error getting account name for %s: %v\n", accountID, err)
		}
		r.cache.Add(accountID, accountID)
		return accountID
	}

	name := aws.StringValue(out.Account.Name)
	r.cache.Add(accountID, name)
	return name
}
