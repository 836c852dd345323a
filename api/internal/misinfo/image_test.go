package misinfo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageAnalyzerMisinfoVerdict(t *testing.T) {
	a := NewImageAnalyzer(replyWith(`{"verdict":"MISINFO","reason":"staged photo"}`), nop)
	a.Retry = noRetry

	f := a.Analyze(context.Background(), "uploads/photo.png")
	assert.Equal(t, ModalityImage, f.Type)
	assert.Equal(t, VerdictMisinfo, f.Verdict)
	assert.Equal(t, "uploads/photo.png", f.Place)
	assert.Equal(t, "staged photo", f.Reason)
}

func TestImageAnalyzerFailsOpenOnOracleFailure(t *testing.T) {
	a := NewImageAnalyzer(failWith("boom"), nop)
	a.Retry = noRetry

	f := a.Analyze(context.Background(), "https://example.com/photo.png")
	assert.Equal(t, VerdictAccurate, f.Verdict)
	assert.Equal(t, "https://example.com/photo.png", f.Place)
	assert.Equal(t, "Image analysis failed", f.Reason)
}

func TestImageAnalyzerFailsOpenOnUnparsableReply(t *testing.T) {
	a := NewImageAnalyzer(replyWith("not json at all"), nop)
	a.Retry = noRetry

	f := a.Analyze(context.Background(), "ref")
	assert.Equal(t, VerdictAccurate, f.Verdict)
	assert.Equal(t, "Image analysis failed", f.Reason)
}

func TestImageAnalyzerFillsMissingReason(t *testing.T) {
	a := NewImageAnalyzer(replyWith(`{"verdict":"ACCURATE"}`), nop)
	a.Retry = noRetry

	f := a.Analyze(context.Background(), "ref")
	assert.Equal(t, VerdictAccurate, f.Verdict)
	assert.Equal(t, "No explanation provided", f.Reason)
}
