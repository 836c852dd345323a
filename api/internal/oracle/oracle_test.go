package oracle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

// scripted returns its step results in order; extra calls repeat the last.
type scripted struct {
	texts []string
	errs  []error
	calls int
}

func (s *scripted) Generate(ctx context.Context, prompt string) (string, error) {
	i := s.calls
	if i >= len(s.texts) {
		i = len(s.texts) - 1
	}
	s.calls++
	return s.texts[i], s.errs[i]
}

func overloadErr() error {
	return &googleapi.Error{Code: 503, Message: "The model is overloaded"}
}

var fastRetry = RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}

func TestQuerySucceedsAfterOverloads(t *testing.T) {
	c := &scripted{
		texts: []string{"", "", "the answer"},
		errs:  []error{overloadErr(), overloadErr(), nil},
	}
	got, err := Query(context.Background(), c, "p", fastRetry)
	require.NoError(t, err)
	assert.Equal(t, "the answer", got)
	assert.Equal(t, 3, c.calls)
}

func TestQueryExhaustsOverloads(t *testing.T) {
	c := &scripted{
		texts: []string{"", "", ""},
		errs:  []error{overloadErr(), overloadErr(), overloadErr()},
	}
	_, err := Query(context.Background(), c, "p", fastRetry)

	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindOverloaded, oe.Kind)
	assert.Equal(t, 3, c.calls)
}

func TestQueryDoesNotRetryTransportErrors(t *testing.T) {
	c := &scripted{
		texts: []string{""},
		errs:  []error{errors.New("connection refused")},
	}
	_, err := Query(context.Background(), c, "p", fastRetry)

	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindTransport, oe.Kind)
	assert.Equal(t, 1, c.calls)
}

func TestQueryBlankReplyFails(t *testing.T) {
	c := &scripted{texts: []string{"   \n"}, errs: []error{nil}}
	_, err := Query(context.Background(), c, "p", fastRetry)

	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindEmpty, oe.Kind)
	assert.Equal(t, 1, c.calls)
}

func TestQueryRetriesBlankReplyOnceWhenAsked(t *testing.T) {
	c := &scripted{texts: []string{"", "transcript verdict"}, errs: []error{nil, nil}}
	got, err := Query(context.Background(), c, "p", fastRetry, WithRetryEmpty())
	require.NoError(t, err)
	assert.Equal(t, "transcript verdict", got)
	assert.Equal(t, 2, c.calls)

	// Two blanks in a row still fail; the retry happens once.
	c = &scripted{texts: []string{"", "", "late"}, errs: []error{nil, nil, nil}}
	_, err = Query(context.Background(), c, "p", fastRetry, WithRetryEmpty())
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, KindEmpty, oe.Kind)
	assert.Equal(t, 2, c.calls)
}

func TestQueryHonorsContextDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &scripted{
		texts: []string{"", ""},
		errs:  []error{overloadErr(), nil},
	}
	_, err := Query(ctx, c, "p", RetryPolicy{MaxAttempts: 3, BaseDelay: time.Hour})
	require.Error(t, err)
	assert.Equal(t, 1, c.calls)
}

func TestRetryPolicyDelayIsLinear(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, BaseDelay: 2 * time.Second}
	assert.Equal(t, 2*time.Second, p.Delay(1))
	assert.Equal(t, 4*time.Second, p.Delay(2))
	assert.Equal(t, 6*time.Second, p.Delay(3))
}
