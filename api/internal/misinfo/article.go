package misinfo

import (
	"context"

	"github.com/rs/zerolog"
)

// pageFetcher is what the article analyzer needs from the scrape package.
type pageFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// ArticleAnalyzer scrapes a web page and judges its visible text with the
// text prompt.
type ArticleAnalyzer struct {
	Fetcher  pageFetcher
	Text     *TextAnalyzer
	Degraded Verdict

	log zerolog.Logger
}

func NewArticleAnalyzer(f pageFetcher, text *TextAnalyzer, log zerolog.Logger) *ArticleAnalyzer {
	return &ArticleAnalyzer{
		Fetcher:  f,
		Text:     text,
		Degraded: VerdictError,
		log:      log.With().Str("component", "article-analyzer").Logger(),
	}
}

func (a *ArticleAnalyzer) Analyze(ctx context.Context, url string) Finding {
	pageText, err := a.Fetcher.FetchText(ctx, url)
	if err != nil {
		a.log.Warn().Err(err).Str("url", url).Msg("page fetch failed")
		return Finding{Type: ModalityArticle, Verdict: a.Degraded, Place: url, Reason: err.Error()}
	}
	a.log.Debug().Int("chars", len(pageText)).Str("url", url).Msg("extracted article text")

	f := a.Text.analyzeAs(ctx, ModalityArticle, pageText)
	f.Place = "Article text"
	return f
}
