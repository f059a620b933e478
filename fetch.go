package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// browserUserAgent is sent on outbound page fetches; some sites serve
// stripped-down markup to unknown clients.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// pageFetcher owns the HTTP client used for enrichment fetches. TLS
// verification is disabled: broken certs are common on the self-hosted
// targets people bookmark, and enrichment is best-effort anyway.
type pageFetcher struct {
	client    *http.Client
	userAgent string
}

func newPageFetcher(cfg CfgFetch) *pageFetcher {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = browserUserAgent
	}

	return &pageFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		userAgent: userAgent,
	}
}

// document fetches rawURL, following redirects, and parses the body as HTML.
func (f *pageFetcher) document(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// Description extracts the page's <meta name="description"> content,
// trimmed. Any fetch or parse failure yields "".
func (f *pageFetcher) Description(ctx context.Context, rawURL string) string {
	doc, err := f.document(ctx, rawURL)
	if err != nil {
		return ""
	}

	description, ok := findMetaDescription(doc)
	if !ok {
		return ""
	}

	return description
}

func findMetaDescription(doc *goquery.Document) (string, bool) {
	content, ok := doc.Find(`meta[name="description"]`).First().Attr("content")
	if !ok {
		return "", false
	}

	return strings.TrimSpace(content), true
}

// findIconLink returns the href of the first <link rel="icon">, then of the
// first <link rel="shortcut icon">. rel="icon" wins regardless of document
// order.
func findIconLink(doc *goquery.Document) (string, bool) {
	for _, sel := range []string{`link[rel="icon"]`, `link[rel="shortcut icon"]`} {
		if href, ok := doc.Find(sel).First().Attr("href"); ok && href != "" {
			return href, true
		}
	}

	return "", false
}
