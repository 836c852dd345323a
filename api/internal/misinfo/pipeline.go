package misinfo

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ArchiveRecord is what gets handed to the persistence sink after a check
// completes.
type ArchiveRecord struct {
	Modality      Modality
	OriginalInput string
	Result        AggregateResult
	Status        string
}

// Archiver is the persistence sink. Archival is fire-and-forget: failures
// are logged, never surfaced to the caller.
type Archiver interface {
	Archive(ctx context.Context, rec ArchiveRecord) error
}

// Pipeline is the single entry point external callers invoke:
// classify → analyze → aggregate → (async) archive.
type Pipeline struct {
	Text    *TextAnalyzer
	Article *ArticleAnalyzer
	Image   *ImageAnalyzer
	Media   *MediaAnalyzer

	Archiver Archiver // nil disables archival

	log zerolog.Logger
}

func NewPipeline(text *TextAnalyzer, article *ArticleAnalyzer, image *ImageAnalyzer, media *MediaAnalyzer, archiver Archiver, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		Text:     text,
		Article:  article,
		Image:    image,
		Media:    media,
		Archiver: archiver,
		log:      log.With().Str("component", "pipeline").Logger(),
	}
}

// Check runs one request through the pipeline. The only error it returns is
// ErrUnclassified (wrapped); analyzer failures come back as degraded
// findings inside a well-formed result.
func (p *Pipeline) Check(ctx context.Context, req Request) (AggregateResult, error) {
	mod, err := Classify(req)
	if err != nil {
		return AggregateResult{}, err
	}
	p.log.Info().Str("modality", string(mod)).Msg("input classified")

	var findings []Finding
	switch mod {
	case ModalityText:
		findings = append(findings, p.Text.Analyze(ctx, req.Content))
	case ModalityArticle:
		findings = append(findings, p.Article.Analyze(ctx, articleURL(req)))
	case ModalityImage:
		findings = append(findings, p.Image.Analyze(ctx, imageRef(req)))
	case ModalityAudio, ModalityVideo:
		findings = append(findings, p.Media.Analyze(ctx, mod, mediaRef(req)))
	}

	res := Aggregate(findings)
	p.archive(mod, req, res)
	return res, nil
}

func (p *Pipeline) archive(mod Modality, req Request, res AggregateResult) {
	if p.Archiver == nil {
		return
	}
	rec := ArchiveRecord{
		Modality:      mod,
		OriginalInput: originalInput(req),
		Result:        res,
		Status:        "completed",
	}
	// Detached from the request context: the response is already computed
	// and must not wait on, or fail with, the archival write.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := p.Archiver.Archive(ctx, rec); err != nil {
			p.log.Error().Err(err).Str("modality", string(mod)).Msg("archive failed")
		}
	}()
}

// articleURL prefers the url field, falling back to url-shaped content.
func articleURL(req Request) string {
	if req.URL != "" {
		return strings.TrimSpace(req.URL)
	}
	return strings.TrimSpace(req.Content)
}

// imageRef resolves a single image reference: uploaded file beats link
// beats inline content.
func imageRef(req Request) string {
	switch {
	case req.File != nil && req.File.StoragePath != "":
		return req.File.StoragePath
	case req.URL != "":
		return strings.TrimSpace(req.URL)
	default:
		return strings.TrimSpace(req.Content)
	}
}

func mediaRef(req Request) string {
	switch {
	case req.File != nil && req.File.StoragePath != "":
		return req.File.StoragePath
	case req.URL != "":
		return strings.TrimSpace(req.URL)
	default:
		return strings.TrimSpace(req.Content)
	}
}

// originalInput is the request's salient identifying string: content, then
// URL, then the uploaded file's declared name.
func originalInput(req Request) string {
	switch {
	case req.Content != "":
		return req.Content
	case req.URL != "":
		return req.URL
	case req.File != nil:
		return req.File.OriginalName
	default:
		return ""
	}
}
