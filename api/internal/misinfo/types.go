// Package misinfo implements the analysis pipeline: classify an input,
// run the matching modality analyzer against the oracle, and reduce the
// findings into one verdict.
package misinfo

import "strings"

// Modality is the semantic category assigned to one input. Exactly one per
// request, fixed once classified.
type Modality string

const (
	ModalityText    Modality = "text"
	ModalityArticle Modality = "article"
	ModalityImage   Modality = "image"
	ModalityAudio   Modality = "audio"
	ModalityVideo   Modality = "video"
)

// UploadedFile describes a file the transport layer already saved for us.
type UploadedFile struct {
	MimeType     string
	StoragePath  string
	OriginalName string
}

// Request is the normalized input handed in by the transport layer.
// At least one of Content/URL/File must be set or classification fails.
type Request struct {
	Content string
	URL     string
	File    *UploadedFile
}

// Verdict is the canonical per-finding outcome. Analyzer-specific oracle
// vocabularies are mapped into this at the analyzer boundary and never
// leak past it.
type Verdict string

const (
	VerdictMisinfo  Verdict = "MISINFO"
	VerdictAccurate Verdict = "ACCURATE"
	VerdictError    Verdict = "ERROR"
)

// normalizeVerdict trims and uppercases the oracle's verdict string;
// anything outside the expected vocabulary becomes ERROR.
func normalizeVerdict(s string) Verdict {
	switch Verdict(strings.ToUpper(strings.TrimSpace(s))) {
	case VerdictMisinfo:
		return VerdictMisinfo
	case VerdictAccurate:
		return VerdictAccurate
	default:
		return VerdictError
	}
}

// Finding is one analyzer's verdict plus evidence for one modality.
type Finding struct {
	Type    Modality `json:"type"`
	Verdict Verdict  `json:"verdict"`
	Place   string   `json:"place"`
	Reason  string   `json:"reason"`
	Summary string   `json:"summary,omitempty"`
}

const (
	OverallMisinfo  = "MISINFO DETECTED"
	OverallAccurate = "ACCURATE"
)

// AggregateResult is the top-level outcome for one request. Built once,
// never mutated.
type AggregateResult struct {
	OverallVerdict string    `json:"verdict"`
	Findings       []Finding `json:"locations"`
}

// Aggregate reduces findings to one verdict: misinfo wins if any finding
// says so. Finding order is preserved.
func Aggregate(findings []Finding) AggregateResult {
	verdict := OverallAccurate
	for _, f := range findings {
		if f.Verdict == VerdictMisinfo {
			verdict = OverallMisinfo
			break
		}
	}
	return AggregateResult{OverallVerdict: verdict, Findings: findings}
}
