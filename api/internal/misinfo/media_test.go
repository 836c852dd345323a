package misinfo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

const mediaMisinfoJS = `{"summary":"claims a cure","verdict":"MISINFO DETECTED","reasons":["no clinical evidence","contradicts WHO"],"correctInfo":["no approved cure exists"]}`

func newMediaAnalyzer(o *fakeOracle, platform *fakePlatform, local *fakeLocal) *MediaAnalyzer {
	a := NewMediaAnalyzer(o, platform, local, nop)
	a.Retry = noRetry
	return a
}

func TestMediaAnalyzerPlatformFastPath(t *testing.T) {
	platform := &fakePlatform{transcript: "someone claims a miracle cure"}
	local := &fakeLocal{}
	a := newMediaAnalyzer(replyWith(mediaMisinfoJS), platform, local)

	f := a.Analyze(context.Background(), ModalityVideo, "https://youtu.be/abc123")
	assert.Equal(t, 1, platform.calls)
	assert.Equal(t, 0, local.calls, "platform URLs must not hit the local pipeline")
	assert.Equal(t, VerdictMisinfo, f.Verdict)
	assert.Equal(t, "video", f.Place)
	assert.Equal(t, "no clinical evidence, contradicts WHO", f.Reason)
	assert.Equal(t, "claims a cure", f.Summary)
}

func TestMediaAnalyzerLocalPathForDirectFiles(t *testing.T) {
	platform := &fakePlatform{}
	local := &fakeLocal{transcript: "spoken words"}
	a := newMediaAnalyzer(replyWith(`{"summary":"s","verdict":"INFO IS CORRECT","reasons":["fine"]}`), platform, local)

	f := a.Analyze(context.Background(), ModalityAudio, "https://example.com/talk.mp3")
	assert.Equal(t, 0, platform.calls)
	assert.Equal(t, 1, local.calls)
	assert.Equal(t, ModalityAudio, f.Type)
	assert.Equal(t, VerdictAccurate, f.Verdict)
}

func TestMediaAnalyzerDegradesOnTranscriptFailure(t *testing.T) {
	platform := &fakePlatform{err: errors.New("transcript service: status 502: bad gateway")}
	a := newMediaAnalyzer(replyWith(mediaMisinfoJS), platform, &fakeLocal{})

	f := a.Analyze(context.Background(), ModalityVideo, "https://youtu.be/abc123")
	assert.Equal(t, VerdictAccurate, f.Verdict, "media failures never report misinfo or error")
	assert.Equal(t, "transcript service: status 502: bad gateway", f.Reason)
	assert.Equal(t, "Error occurred", f.Summary)
}

func TestMediaAnalyzerDegradesOnOracleFailure(t *testing.T) {
	platform := &fakePlatform{transcript: "words"}
	a := newMediaAnalyzer(failWith("boom"), platform, &fakeLocal{})

	f := a.Analyze(context.Background(), ModalityVideo, "https://youtu.be/abc123")
	assert.Equal(t, VerdictAccurate, f.Verdict)
	assert.Equal(t, "Error occurred", f.Summary)
}

func TestMediaAnalyzerFallsBackOnUnparsableReply(t *testing.T) {
	platform := &fakePlatform{transcript: "words"}
	a := newMediaAnalyzer(replyWith("free-form essay"), platform, &fakeLocal{})

	f := a.Analyze(context.Background(), ModalityVideo, "https://youtu.be/abc123")
	assert.Equal(t, VerdictAccurate, f.Verdict)
	assert.Equal(t, "Model reply could not be parsed", f.Reason)
	assert.Equal(t, "Not available", f.Summary)
}

func TestMediaAnalyzerMapsVocabularyCaseInsensitively(t *testing.T) {
	platform := &fakePlatform{transcript: "words"}
	a := newMediaAnalyzer(replyWith(`{"summary":"s","verdict":"info is correct","reasons":["r"]}`), platform, &fakeLocal{})

	f := a.Analyze(context.Background(), ModalityVideo, "https://youtu.be/abc123")
	assert.Equal(t, VerdictAccurate, f.Verdict)
}

func TestMediaAnalyzerTruncatesLongTranscripts(t *testing.T) {
	long := make([]byte, 40000)
	for i := range long {
		long[i] = 'a'
	}
	platform := &fakePlatform{transcript: string(long)}
	o := replyWith(mediaMisinfoJS)
	a := newMediaAnalyzer(o, platform, &fakeLocal{})
	a.MaxPrompt = 100

	a.Analyze(context.Background(), ModalityVideo, "https://youtu.be/abc123")
	assert.Equal(t, 1, o.calls)
	assert.Less(t, len(o.lastPrompt), len(mediaPromptTemplate)+200)
}
