package sso_collection

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/cenkalti/backoff/v4"
)

const (
	perCallTimeout = 30 * time.Second
	maxRetries     = 5
)

// callWithRetry runs a single API call with a per-call timeout and retries
// it with exponential backoff, but only for throttling-class failures.
// Not-found and authorization failures come back on the first attempt.
func callWithRetry(ctx context.Context, op func(ctx aws.Context) error) error {
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)

	return backoff.Retry(func() error {
		callCtx, cancel := context.WithTimeout(ctx, perCallTimeout)
		defer cancel()

		err := op(callCtx)
		if err == nil {
			return nil
		}
		if isThrottlingError(err) {
			return err
		}
		return backoff.Permanent(err)
	}, bo)
}

func isThrottlingError(err error) bool {
	if request.IsErrorThrottle(err) {
		return true
	}
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case "Throttling", "ThrottlingException", "TooManyRequestsException", "RequestLimitExceeded":
			return true
		}
	}
	return false
}
