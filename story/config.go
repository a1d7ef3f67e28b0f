package story

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// DefaultErrorText is shown in place of the video when initialization fails.
const DefaultErrorText = "Media failed to load."

// Fit describes how the video surface is inscribed into its box.
type Fit int

const (
	FitContain Fit = iota
	FitCover
	FitFill
	FitWidth
	FitHeight
)

var fitNames = map[Fit]string{
	FitContain: "contain",
	FitCover:   "cover",
	FitFill:    "fill",
	FitWidth:   "fit-width",
	FitHeight:  "fit-height",
}

// String returns the configuration name of the fit mode.
func (f Fit) String() string {
	if name, ok := fitNames[f]; ok {
		return name
	}
	return "unknown"
}

// Fits returns the names of all fit modes.
func Fits() []string {
	return []string{"contain", "cover", "fill", "fit-width", "fit-height"}
}

// ParseFit resolves a fit mode from its configuration name.
func ParseFit(name string) (Fit, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for fit, n := range fitNames {
		if n == name {
			return fit, nil
		}
	}
	return FitContain, fmt.Errorf("unknown fit mode %q, expected one of %s", name, strings.Join(Fits(), ", "))
}

// Config is the immutable description of a story item.
type Config struct {
	URL     string
	Headers map[string]string

	// Autoplay starts the media and resumes the sequencer once the media is ready.
	Autoplay bool

	// Layout hints, passed through to rendering.
	Fit    Fit
	Height mo.Option[float64]

	// Placeholders. An empty LoadingText renders the spinner alone.
	LoadingText string
	ErrorText   string
}

// DefaultConfig returns the configuration for rawURL with every optional field at its default.
func DefaultConfig(rawURL string) Config {
	return Config{
		URL:       rawURL,
		Headers:   map[string]string{},
		Autoplay:  true,
		Fit:       FitContain,
		Height:    mo.None[float64](),
		ErrorText: DefaultErrorText,
	}
}

// Validate reports whether the source URL can be handed to an engine.
func (c Config) Validate() error {
	raw := strings.TrimSpace(c.URL)
	if raw == "" {
		return fmt.Errorf("empty URL")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "" && !lo.Contains([]string{"http", "https", "file"}, strings.ToLower(u.Scheme)) {
		return fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
	}

	if h, ok := c.Height.Get(); ok && h <= 0 {
		return fmt.Errorf("fixed height must be positive, got %g", h)
	}

	return nil
}

// clone returns a copy that shares no mutable state with c.
func (c Config) clone() Config {
	c.Headers = lo.Assign(map[string]string{}, c.Headers)
	if c.ErrorText == "" {
		c.ErrorText = DefaultErrorText
	}
	return c
}
