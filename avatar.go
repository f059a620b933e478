package main

import (
	"image"
	"net/url"
	"strings"
	"unicode"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/net/publicsuffix"
)

const (
	avatarSize     = 64
	avatarFontSize = 48
)

// avatarLetter picks the letter drawn on a fallback icon: the first digit
// for dotted-decimal IP hosts, otherwise the uppercased first character of
// the host's second-level domain label. 'U' when the URL yields no host.
func avatarLetter(rawURL string) rune {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return 'U'
	}
	host := u.Hostname()

	if isDigits(strings.ReplaceAll(host, ".", "")) {
		return unicode.ToUpper(rune(host[0]))
	}

	label := domainLabel(host)
	if label == "" {
		return 'U'
	}

	return unicode.ToUpper(rune(label[0]))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// domainLabel extracts the registrable second-level label, e.g. "example"
// from "www.example.co.uk". Hosts that are all public suffix (single-label
// hosts like "localhost") fall back to the host itself.
func domainLabel(host string) string {
	host = strings.TrimSuffix(host, ".")

	suffix, _ := publicsuffix.PublicSuffix(host)
	rest := strings.TrimSuffix(strings.TrimSuffix(host, suffix), ".")
	if rest == "" {
		return host
	}

	parts := strings.Split(rest, ".")
	return parts[len(parts)-1]
}

// renderLetterAvatar draws a 64x64 circular icon carrying a single capital
// letter derived from rawURL. Deterministic for a given URL and font. Falls
// back to the built-in face when the font file cannot be loaded.
func renderLetterAvatar(rawURL, fontPath string) image.Image {
	letter := string(avatarLetter(rawURL))

	dc := gg.NewContext(avatarSize, avatarSize)
	dc.DrawCircle(avatarSize/2, avatarSize/2, avatarSize/2)
	dc.SetRGB255(73, 109, 137)
	dc.Fill()

	if err := dc.LoadFontFace(fontPath, avatarFontSize); err != nil {
		dc.SetFontFace(basicfont.Face7x13)
	}

	dc.SetRGB255(255, 255, 255)
	dc.DrawStringAnchored(letter, avatarSize/2, avatarSize/2, 0.5, 0.5)

	return dc.Image()
}
