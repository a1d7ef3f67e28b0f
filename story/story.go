// Package story synchronizes the playback of a single story item with the sequencer driving the whole story.
//
// A Controller owns the item's media asset, walks it through initialization,
// mirrors the sequencer's pause/resume signals onto the asset and forwards
// user taps to both sides. See [Controller] for the lifecycle.
package story

import (
	"context"
	"errors"
	"fmt"
)

// ErrLoad is wrapped by every error that prevents the media from initializing.
var ErrLoad = errors.New("media failed to load")

// Size is the natural size of the decoded video in pixels.
type Size struct {
	Width  float64
	Height float64
}

// String implements fmt.Stringer.
func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Asset is an owned handle to a decodable media stream.
type Asset interface {
	// Initialize resolves and prepares the stream. It is the only blocking call.
	Initialize(ctx context.Context) error
	Play() error
	Pause() error
	// Dispose releases the stream. It may be called while Initialize is still running.
	Dispose() error

	IsInitialized() bool
	IsPlaying() bool
	Size() Size
	AspectRatio() float64
}

// Engine creates assets for a source URL and its request headers.
type Engine interface {
	Open(url string, headers map[string]string) (Asset, error)
}

// Signal is a playback notification emitted by a Sequencer.
type Signal int

const (
	SignalPause Signal = iota
	SignalResume
	SignalNext
	SignalPrevious
)

// String returns a human-readable label for the signal.
func (s Signal) String() string {
	switch s {
	case SignalPause:
		return "pause"
	case SignalResume:
		return "resume"
	case SignalNext:
		return "next"
	case SignalPrevious:
		return "previous"
	default:
		return fmt.Sprintf("signal(%d)", int(s))
	}
}

// Subscription is a live registration on a Sequencer's notification stream.
type Subscription interface {
	Cancel()
}

// Sequencer advances the story and broadcasts its playback state.
//
// Handlers registered with Subscribe must never be invoked synchronously from
// within Subscribe, Pause or Resume; the Controller calls those while holding
// its own lock.
type Sequencer interface {
	Pause()
	Resume()
	Subscribe(handler func(Signal)) Subscription
}
