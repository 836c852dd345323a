package misinfo

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"misinfo-checker/api/internal/langid"
	"misinfo-checker/api/internal/oracle"
	"misinfo-checker/api/internal/transcribe"
)

const mediaPromptTemplate = `
You are an AI misinformation detection system.
Analyze the following transcript and determine if it contains misinformation.
Provide a short summary, a verdict, reasons for the verdict, and correct information if any misinformation is found.

Transcript:
%s

Return JSON strictly in this format:
{
  "summary": "...",
  "verdict": "MISINFO DETECTED" or "INFO IS CORRECT",
  "reasons": ["..."],
  "correctInfo": ["..."]
}`

// The media prompt uses its own verdict vocabulary; it is mapped to the
// canonical enum here and nowhere else.
const (
	mediaVerdictMisinfo  = "MISINFO DETECTED"
	mediaVerdictAccurate = "INFO IS CORRECT"
)

type mediaReply struct {
	Summary     string   `json:"summary"`
	Verdict     string   `json:"verdict"`
	Reasons     []string `json:"reasons"`
	CorrectInfo []string `json:"correctInfo"`
}

// transcriptSource is the local transcription pipeline.
type transcriptSource interface {
	Transcribe(ctx context.Context, urlOrPath string) (string, error)
}

// platformTranscripts is the video-platform fast path.
type platformTranscripts interface {
	Fetch(ctx context.Context, videoURL string) (string, error)
}

// MediaAnalyzer judges audio/video by transcribing it first. Every step
// failure (download, decode, transcription, oracle, parse) degrades to a
// non-misinfo finding carrying the failure message; this modality never
// reports ERROR.
type MediaAnalyzer struct {
	Oracle    oracle.Client
	Retry     oracle.RetryPolicy
	Platform  platformTranscripts
	Local     transcriptSource
	Degraded  Verdict
	MaxPrompt int

	log zerolog.Logger
}

func NewMediaAnalyzer(c oracle.Client, platform platformTranscripts, local transcriptSource, log zerolog.Logger) *MediaAnalyzer {
	return &MediaAnalyzer{
		Oracle:    c,
		Retry:     oracle.DefaultRetry,
		Platform:  platform,
		Local:     local,
		Degraded:  VerdictAccurate,
		MaxPrompt: transcribe.MaxTranscriptChars,
		log:       log.With().Str("component", "media-analyzer").Logger(),
	}
}

// Analyze transcribes ref (platform URL, direct media URL, or uploaded file
// path) and judges the transcript.
func (a *MediaAnalyzer) Analyze(ctx context.Context, mod Modality, ref string) Finding {
	transcript, err := a.fetchTranscript(ctx, ref)
	if err != nil {
		a.log.Warn().Err(err).Str("ref", ref).Msg("transcript unavailable")
		return a.degraded(mod, err)
	}

	transcript = transcribe.Truncate(transcript, a.MaxPrompt)

	// Informational only; nothing gates on the detected language yet.
	hint := langid.Detect(transcript)
	a.log.Debug().Str("script", hint.Script).Str("lang", hint.Lang).
		Int("chars", len(transcript)).Msg("transcript ready")

	raw, err := oracle.Query(ctx, a.Oracle, fmt.Sprintf(mediaPromptTemplate, transcript), a.Retry, oracle.WithRetryEmpty())
	if err != nil {
		a.log.Warn().Err(err).Msg("oracle query failed")
		return a.degraded(mod, err)
	}

	reply := oracle.DecodeOr(raw, mediaReply{
		Summary: "Not available",
		Verdict: mediaVerdictAccurate,
		Reasons: []string{"Model reply could not be parsed"},
	})

	verdict := a.Degraded
	switch strings.ToUpper(strings.TrimSpace(reply.Verdict)) {
	case mediaVerdictMisinfo:
		verdict = VerdictMisinfo
	case mediaVerdictAccurate:
		verdict = VerdictAccurate
	}

	reason := strings.Join(reply.Reasons, ", ")
	if reason == "" {
		reason = "No explanation provided"
	}
	summary := reply.Summary
	if summary == "" {
		summary = "No summary provided"
	}

	return Finding{
		Type:    mod,
		Verdict: verdict,
		Place:   "video",
		Reason:  reason,
		Summary: summary,
	}
}

func (a *MediaAnalyzer) fetchTranscript(ctx context.Context, ref string) (string, error) {
	if IsVideoPlatformURL(ref) {
		return a.Platform.Fetch(ctx, ref)
	}
	return a.Local.Transcribe(ctx, ref)
}

func (a *MediaAnalyzer) degraded(mod Modality, err error) Finding {
	return Finding{
		Type:    mod,
		Verdict: a.Degraded,
		Place:   "video",
		Reason:  err.Error(),
		Summary: "Error occurred",
	}
}
