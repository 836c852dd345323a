package misinfo

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"misinfo-checker/api/internal/oracle"
)

const textPromptTemplate = `
You are a misinformation detection system.
Analyze the following text and determine if it is misinformation.
Ignore any spelling mistakes.

Text:
%s

Return JSON strictly in this format (no markdown, no extra words):
{
  "verdict": "MISINFO" or "ACCURATE",
  "place": "where misinformation appears",
  "reason": "why it's misinformation or accurate"
}
`

type textReply struct {
	Verdict string `json:"verdict"`
	Place   string `json:"place"`
	Reason  string `json:"reason"`
}

// TextAnalyzer judges free text. Degraded is the verdict used when the
// oracle fails outright; text fails closed (ERROR) unlike image/media.
type TextAnalyzer struct {
	Oracle   oracle.Client
	Retry    oracle.RetryPolicy
	Degraded Verdict

	log zerolog.Logger
}

func NewTextAnalyzer(c oracle.Client, log zerolog.Logger) *TextAnalyzer {
	return &TextAnalyzer{
		Oracle:   c,
		Retry:    oracle.DefaultRetry,
		Degraded: VerdictError,
		log:      log.With().Str("component", "text-analyzer").Logger(),
	}
}

func (a *TextAnalyzer) Analyze(ctx context.Context, text string) Finding {
	return a.analyzeAs(ctx, ModalityText, text)
}

// analyzeAs runs the text prompt under another modality label; the article
// analyzer feeds extracted page text through here.
func (a *TextAnalyzer) analyzeAs(ctx context.Context, mod Modality, text string) Finding {
	raw, err := oracle.Query(ctx, a.Oracle, fmt.Sprintf(textPromptTemplate, text), a.Retry)
	if err != nil {
		a.log.Warn().Err(err).Str("modality", string(mod)).Msg("oracle query failed")
		reason := "Defaulted due to error"
		var oe *oracle.Error
		if errors.As(err, &oe) && oe.Kind == oracle.KindOverloaded {
			reason = "The model is currently overloaded. Please try again later."
		}
		return Finding{Type: mod, Verdict: a.Degraded, Place: "N/A", Reason: reason}
	}

	reply := oracle.DecodeOr(raw, textReply{
		Verdict: string(a.Degraded),
		Place:   "N/A",
		Reason:  "Model reply could not be parsed",
	})

	return Finding{
		Type:    mod,
		Verdict: normalizeVerdict(reply.Verdict),
		Place:   reply.Place,
		Reason:  reply.Reason,
	}
}
