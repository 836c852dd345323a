package misinfo

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"misinfo-checker/api/internal/oracle"
)

// fakeOracle replays scripted replies; extra calls repeat the last step.
type fakeOracle struct {
	replies    []string
	errs       []error
	calls      int
	lastPrompt string
}

func (f *fakeOracle) Generate(ctx context.Context, prompt string) (string, error) {
	i := f.calls
	if i >= len(f.replies) {
		i = len(f.replies) - 1
	}
	f.calls++
	f.lastPrompt = prompt
	return f.replies[i], f.errs[i]
}

func replyWith(s string) *fakeOracle {
	return &fakeOracle{replies: []string{s}, errs: []error{nil}}
}

func failWith(msg string) *fakeOracle {
	return &fakeOracle{replies: []string{""}, errs: []error{errors.New(msg)}}
}

var (
	nop       = zerolog.Nop()
	noRetry   = oracle.RetryPolicy{MaxAttempts: 1}
	misinfoJS = "```json\n{\"verdict\":\"MISINFO\",\"place\":\"whole text\",\"reason\":\"contradicts known facts\"}\n```"
)

type fakeFetcher struct {
	text string
	err  error
}

func (f *fakeFetcher) FetchText(ctx context.Context, url string) (string, error) {
	return f.text, f.err
}

type fakePlatform struct {
	transcript string
	err        error
	calls      int
}

func (f *fakePlatform) Fetch(ctx context.Context, videoURL string) (string, error) {
	f.calls++
	return f.transcript, f.err
}

type fakeLocal struct {
	transcript string
	err        error
	calls      int
}

func (f *fakeLocal) Transcribe(ctx context.Context, urlOrPath string) (string, error) {
	f.calls++
	return f.transcript, f.err
}
