package main

import (
	"context"
	"fmt"
	"image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// IconResolver discovers a site's declared favicon, falling back to a
// locally rendered letter avatar when none can be found.
type IconResolver struct {
	fetcher  *pageFetcher
	iconDir  string
	fontPath string
	log      *zap.SugaredLogger
}

func newIconResolver(fetcher *pageFetcher, cfg Config, log *zap.SugaredLogger) *IconResolver {
	return &IconResolver{
		fetcher:  fetcher,
		iconDir:  cfg.IconDir,
		fontPath: cfg.FontPath,
		log:      log,
	}
}

// Resolve returns either the absolute URL of the page's declared favicon or
// the path of a freshly written fallback avatar. Fetch and parse failures
// are absorbed; only the fallback file write can return an error.
func (res *IconResolver) Resolve(ctx context.Context, rawURL string) (string, error) {
	doc, err := res.fetcher.document(ctx, rawURL)
	if err != nil {
		res.log.Infow("page fetch failed, rendering avatar", "url", rawURL, "error", err)
		return res.saveAvatar(rawURL)
	}

	href, ok := findIconLink(doc)
	if !ok {
		return res.saveAvatar(rawURL)
	}

	abs, err := resolveRef(rawURL, href)
	if err != nil {
		return res.saveAvatar(rawURL)
	}

	return abs, nil
}

// resolveRef joins href against the page URL, leaving absolute refs intact.
func resolveRef(pageURL, href string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}

	return base.ResolveReference(ref).String(), nil
}

func (res *IconResolver) saveAvatar(rawURL string) (string, error) {
	img := renderLetterAvatar(rawURL, res.fontPath)

	var host string
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}

	// ':' from host:port is not a valid filename character everywhere.
	name := strings.ReplaceAll(host+"_default", ":", "_")
	if !strings.HasSuffix(name, ".png") {
		name += ".png"
	}
	path := filepath.Join(res.iconDir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error while creating icon file: %v", err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return "", fmt.Errorf("error while encoding icon: %v", err)
	}

	return path, nil
}
