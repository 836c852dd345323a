// Package oracle wraps the external text-generation model: one Generate
// call, bounded retry on overload, and strict-JSON reply decoding with
// caller-supplied fallbacks.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
)

// Client is the single operation we need from a model provider.
// Implementations must be safe for concurrent use.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Kind int

const (
	KindTransport Kind = iota
	KindOverloaded
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindOverloaded:
		return "overloaded"
	case KindEmpty:
		return "empty"
	default:
		return "transport"
	}
}

// Error is what Query returns after retries are exhausted or a
// non-retryable failure occurs.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "oracle: " + e.Kind.String()
	}
	return fmt.Sprintf("oracle: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// classify maps a provider error to a Kind. 503/429 are the provider's
// "come back later" class and the only retryable ones.
func classify(err error) Kind {
	var ge *googleapi.Error
	if errors.As(err, &ge) && (ge.Code == 503 || ge.Code == 429) {
		return KindOverloaded
	}
	return KindTransport
}

// RetryPolicy controls Query. Delay grows linearly: base, 2*base, ...
// No jitter; total worst-case latency is base*(1+2+...+(MaxAttempts-1)).
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func (p RetryPolicy) Delay(attempt int) time.Duration {
	return p.BaseDelay * time.Duration(attempt)
}

var DefaultRetry = RetryPolicy{MaxAttempts: 3, BaseDelay: 2 * time.Second}

type queryOptions struct {
	retryEmpty bool
}

type QueryOption func(*queryOptions)

// WithRetryEmpty retries a blank reply once instead of failing outright.
// Used by the media path, where an empty transcript verdict is usually a
// transient model hiccup.
func WithRetryEmpty() QueryOption {
	return func(o *queryOptions) { o.retryEmpty = true }
}

// Query runs c.Generate with the given retry policy. Overload failures are
// retried after policy.Delay(attempt); anything else fails immediately.
// A blank reply is a failure, not a result.
func Query(ctx context.Context, c Client, prompt string, p RetryPolicy, opts ...QueryOption) (string, error) {
	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	emptyRetried := false
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		text, err := c.Generate(ctx, prompt)
		if err != nil {
			kind := classify(err)
			if kind == KindOverloaded && attempt < p.MaxAttempts {
				lastErr = err
				if err := sleep(ctx, p.Delay(attempt)); err != nil {
					return "", &Error{Kind: KindOverloaded, Err: err}
				}
				continue
			}
			return "", &Error{Kind: kind, Err: err}
		}
		if strings.TrimSpace(text) == "" {
			if o.retryEmpty && !emptyRetried && attempt < p.MaxAttempts {
				emptyRetried = true
				continue
			}
			return "", &Error{Kind: KindEmpty, Err: lastErr}
		}
		return text, nil
	}
	return "", &Error{Kind: KindOverloaded, Err: lastErr}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
