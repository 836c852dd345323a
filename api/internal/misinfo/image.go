package misinfo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"misinfo-checker/api/internal/oracle"
)

const imagePromptTemplate = `
You are an AI misinformation detector.
Analyze the image at this URL: %s
Determine if it is being used in a misleading context.
Respond ONLY in JSON format:
{
  "verdict": "MISINFO" | "ACCURATE",
  "reason": "Brief explanation"
}
`

type imageReply struct {
	Verdict string `json:"verdict"`
	Reason  string `json:"reason"`
}

// ImageAnalyzer judges a single image reference. Image findings are
// informational regardless of polarity, so one is always produced; on
// failure the analyzer fails open to ACCURATE rather than ERROR.
type ImageAnalyzer struct {
	Oracle   oracle.Client
	Retry    oracle.RetryPolicy
	Degraded Verdict

	log zerolog.Logger
}

func NewImageAnalyzer(c oracle.Client, log zerolog.Logger) *ImageAnalyzer {
	return &ImageAnalyzer{
		Oracle:   c,
		Retry:    oracle.DefaultRetry,
		Degraded: VerdictAccurate,
		log:      log.With().Str("component", "image-analyzer").Logger(),
	}
}

// Analyze judges the image at ref (an upload path or a link). The finding's
// Place is always the resolved reference.
func (a *ImageAnalyzer) Analyze(ctx context.Context, ref string) Finding {
	raw, err := oracle.Query(ctx, a.Oracle, fmt.Sprintf(imagePromptTemplate, ref), a.Retry)
	if err != nil {
		a.log.Warn().Err(err).Str("ref", ref).Msg("oracle query failed")
		return Finding{Type: ModalityImage, Verdict: a.Degraded, Place: ref, Reason: "Image analysis failed"}
	}

	var reply imageReply
	if err := oracle.Decode(raw, &reply); err != nil {
		a.log.Warn().Err(err).Str("ref", ref).Msg("unparsable oracle reply")
		return Finding{Type: ModalityImage, Verdict: a.Degraded, Place: ref, Reason: "Image analysis failed"}
	}

	reason := reply.Reason
	if reason == "" {
		reason = "No explanation provided"
	}
	return Finding{
		Type:    ModalityImage,
		Verdict: normalizeVerdict(reply.Verdict),
		Place:   ref,
		Reason:  reason,
	}
}
