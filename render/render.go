// Package render projects a story item's state onto what the terminal should show.
package render

import (
	"fmt"
	"math"

	"github.com/anisan-cli/reel/phase"
	"github.com/anisan-cli/reel/story"
	"github.com/samber/mo"
)

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2.0

// Kind selects which placeholder, if any, replaces the video.
type Kind int

const (
	KindLoading Kind = iota
	KindError
	KindVideo
)

// View is the pure projection of one item's render state.
type View struct {
	Kind Kind
	Text string

	// Surface, in cells. Only set for KindVideo.
	Width   int
	Height  int
	Playing bool
	Size    story.Size
}

// Project maps the controller state onto a view for a box of boxW by boxH cells.
func Project(u story.Update, cfg story.Config, boxW, boxH int) View {
	switch u.Phase {
	case phase.Failed:
		text := cfg.ErrorText
		if text == "" {
			text = story.DefaultErrorText
		}
		return View{Kind: KindError, Text: text}
	case phase.Ready:
		w, h := Layout(boxW, boxH, u.AspectRatio, cfg.Fit, cfg.Height)
		return View{
			Kind:    KindVideo,
			Text:    fmt.Sprintf("%s · %s", u.Size, cfg.Fit),
			Width:   w,
			Height:  h,
			Playing: u.Playing,
			Size:    u.Size,
		}
	default:
		return View{Kind: KindLoading, Text: cfg.LoadingText}
	}
}

// Layout sizes the video surface inside the box. A fixed height caps the box
// height; everything else follows the aspect ratio and fit mode.
func Layout(boxW, boxH int, aspect float64, fit story.Fit, fixed mo.Option[float64]) (w, h int) {
	if height, ok := fixed.Get(); ok {
		rows := int(math.Round(height))
		if boxH <= 0 || rows < boxH {
			boxH = rows
		}
	}
	if boxW <= 0 || boxH <= 0 {
		return 0, 0
	}
	if aspect <= 0 {
		aspect = 1
	}
	a := aspect * cellAspect

	widthFor := func(h int) int { return int(math.Round(float64(h) * a)) }
	heightFor := func(w int) int { return int(math.Round(float64(w) / a)) }

	switch fit {
	case story.FitCover, story.FitFill:
		return boxW, boxH
	case story.FitWidth:
		return boxW, min(heightFor(boxW), boxH)
	case story.FitHeight:
		return min(widthFor(boxH), boxW), boxH
	default:
		w, h = boxW, heightFor(boxW)
		if h > boxH {
			h = boxH
			w = widthFor(h)
		}
		return max(w, 1), max(h, 1)
	}
}
