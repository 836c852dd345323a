// Package scrape turns a page URL into analyzable text. Static HTTP fetch
// first; a headless browser render is the fallback for JS-heavy pages, so
// its cost is only paid when the cheap path fails.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

const (
	maxBodyBytes = 2 << 20 // static fetch cap
	userAgent    = "Mozilla/5.0 (compatible; misinfo-checker/1.0)"
)

var spacePattern = regexp.MustCompile(`\s+`)

// renderFunc produces the final DOM for a URL. Swappable in tests.
type renderFunc func(ctx context.Context, url string) (string, error)

type Fetcher struct {
	httpc  *http.Client
	render renderFunc
	log    zerolog.Logger
}

func NewFetcher(log zerolog.Logger) *Fetcher {
	f := &Fetcher{
		httpc: &http.Client{Timeout: 30 * time.Second},
		log:   log.With().Str("component", "scrape").Logger(),
	}
	f.render = f.renderHeadless
	return f
}

// WithRender overrides the headless fallback (tests).
func (f *Fetcher) WithRender(r renderFunc) *Fetcher {
	f.render = r
	return f
}

// FetchText fetches the page and returns its visible body text with
// whitespace collapsed.
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	src, err := f.fetchStatic(ctx, url)
	if err != nil {
		f.log.Debug().Err(err).Str("url", url).Msg("static fetch failed, rendering")
		src, err = f.render(ctx, url)
		if err != nil {
			return "", fmt.Errorf("scrape %s: %w", url, err)
		}
	}
	return ExtractText(src), nil
}

func (f *Fetcher) fetchStatic(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	ct := resp.Header.Get("Content-Type")
	if ct != "" && !strings.Contains(ct, "html") && !strings.Contains(ct, "text/plain") {
		return "", fmt.Errorf("not a page: %s", ct)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// renderHeadless launches a browser, waits for the network to go idle and
// returns the rendered DOM.
func (f *Fetcher) renderHeadless(ctx context.Context, url string) (string, error) {
	ctl, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return "", fmt.Errorf("launch browser: %w", err)
	}
	browser := rod.New().ControlURL(ctl).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("connect browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait load: %w", err)
	}
	wait := page.WaitRequestIdle(500*time.Millisecond, nil, nil, nil)
	wait()

	src, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read dom: %w", err)
	}
	return src, nil
}

// ExtractText walks the parsed document and joins visible text nodes,
// skipping script/style subtrees, then collapses runs of whitespace.
func ExtractText(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		// html.Parse almost never fails; treat the input as plain text.
		return strings.TrimSpace(spacePattern.ReplaceAllString(src, " "))
	}
	var sb strings.Builder
	walk(doc, &sb)
	return strings.TrimSpace(spacePattern.ReplaceAllString(sb.String(), " "))
}

func walk(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "iframe":
			return
		}
	}
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			sb.WriteString(t)
			sb.WriteByte(' ')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, sb)
	}
}
