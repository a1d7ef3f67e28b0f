// Package player implements story assets on top of the mpv media player and its JSON-IPC interface.
package player

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/anisan-cli/reel/story"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Engine opens mpv-backed assets. The zero value uses "mpv" from PATH.
type Engine struct {
	// Binary is the mpv executable to launch.
	Binary string
	// Title is shown in the mpv window.
	Title string
}

// NewEngine returns an engine launching the given mpv binary.
func NewEngine(binary, title string) *Engine {
	return &Engine{Binary: binary, Title: title}
}

// Open validates the source and prepares an asset. Nothing is launched until Initialize.
func (e *Engine) Open(rawURL string, headers map[string]string) (story.Asset, error) {
	target, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid media target: %w", err)
	}

	binary := e.Binary
	if binary == "" {
		binary = "mpv"
	}

	return newMPV(binary, target, sanitizeTitle(e.Title), headerFields(headers)), nil
}

// headerFields renders headers as mpv's --http-header-fields value, in key order.
func headerFields(headers map[string]string) string {
	if len(headers) == 0 {
		return ""
	}

	keys := lo.Keys(headers)
	slices.Sort(keys)

	var b strings.Builder
	for _, k := range keys {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		// mpv splits the list on commas
		b.WriteString(fmt.Sprintf("%s: %s", k, strings.ReplaceAll(headers[k], ",", "%2C")))
	}
	return b.String()
}

// sanitizeMediaTarget validates that a URL is safe to pass to mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// mpv would read it as an option
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		case "file":
			return filepath.Clean(u.Path), nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
