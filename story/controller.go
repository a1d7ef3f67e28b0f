package story

import (
	"context"
	"fmt"
	"sync"

	"github.com/anisan-cli/reel/log"
	"github.com/anisan-cli/reel/phase"
)

// Update is the render trigger emitted whenever the load phase changes.
type Update struct {
	Phase       phase.Phase
	Size        Size
	AspectRatio float64
	Playing     bool
	Err         error
}

// Controller keeps one story item's asset in step with the sequencer.
//
// Lifecycle: New, then Initialize (or Start for the asynchronous form), then
// any number of OnTap calls and sequencer signals, then Dispose. Every method
// is safe for concurrent use. The controller mutex stands in for the UI
// thread: the only work done outside it is the asset's Initialize.
type Controller struct {
	mu sync.Mutex

	engine    Engine
	sequencer Sequencer
	cfg       Config
	phase     phase.Holder

	asset      Asset        // guarded by mu
	sub        Subscription // guarded by mu
	err        error        // guarded by mu
	cancelInit context.CancelFunc
	started    bool
	disposed   bool

	observers    map[int]func(Update) // guarded by mu
	nextObserver int
}

// New creates a controller for cfg. The sequencer may be nil, in which case
// no sequencer commands are issued and no signals are observed.
func New(engine Engine, sequencer Sequencer, cfg Config) *Controller {
	c := &Controller{
		engine:    engine,
		sequencer: sequencer,
		cfg:       cfg.clone(),
		observers: make(map[int]func(Update)),
	}
	// phase changes always happen with mu held
	c.phase.Observe(func(phase.Phase) { c.notifyLocked() })
	return c
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config {
	return c.cfg.clone()
}

// Phase returns the current load phase.
func (c *Controller) Phase() phase.Phase {
	return c.phase.Get()
}

// Err returns the initialization failure, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Snapshot returns the current render state.
func (c *Controller) Snapshot() Update {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Observe registers fn to receive an Update on every phase change, and once
// more when the autoplay decision has been applied to a ready item.
// fn runs with the controller locked and must not call back into it.
func (c *Controller) Observe(fn func(Update)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextObserver
	c.nextObserver++
	c.observers[id] = fn

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// Start runs Initialize on its own goroutine. The returned channel is closed
// once initialization has finished or been suppressed.
func (c *Controller) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Initialize(ctx)
	}()
	return done
}

// Initialize loads the media and settles the autoplay decision.
//
// The sequencer is paused before anything else so the story cannot advance
// past an unresolved item. Failures end in phase.Failed and are never
// returned. Only the first call does anything.
func (c *Controller) Initialize(ctx context.Context) {
	c.mu.Lock()
	if c.started || c.disposed {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.pauseSequencer()

	if err := c.cfg.Validate(); err != nil {
		c.fail(err)
		c.mu.Unlock()
		return
	}

	asset, err := c.engine.Open(c.cfg.URL, c.cfg.Headers)
	if err != nil {
		c.fail(err)
		c.mu.Unlock()
		return
	}
	c.asset = asset

	ctx, cancel := context.WithCancel(ctx)
	c.cancelInit = cancel
	c.mu.Unlock()

	log.Debugf("initializing %s", c.cfg.URL)
	err = asset.Initialize(ctx)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelInit = nil
	if c.disposed {
		log.Debugf("controller for %s disposed during initialization", c.cfg.URL)
		return
	}

	if err != nil {
		c.fail(err)
		return
	}

	c.phase.Set(phase.Ready)
	if c.cfg.Autoplay {
		c.call("play", asset.Play)
		c.resumeSequencer()
	} else {
		c.pauseSequencer()
	}
	c.notifyLocked()

	c.subscribe()
	log.Infof("media ready: %s (%s, autoplay=%t)", c.cfg.URL, asset.Size(), c.cfg.Autoplay)
}

// OnTap toggles playback on both the asset and the sequencer.
// Taps are ignored until the media is ready.
func (c *Controller) OnTap() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed || c.asset == nil || c.phase.Get() != phase.Ready || !c.asset.IsInitialized() {
		return
	}

	if c.asset.IsPlaying() {
		c.call("pause", c.asset.Pause)
		c.pauseSequencer()
		return
	}

	c.call("play", c.asset.Play)
	c.resumeSequencer()
}

// Dispose releases the asset and the sequencer subscription.
// It is safe to call at any time, including while Initialize is in flight,
// and more than once. Nothing reaches the asset or the sequencer from this
// controller after it returns.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}
	c.disposed = true

	if c.cancelInit != nil {
		c.cancelInit()
	}

	if c.sub != nil {
		c.sub.Cancel()
		c.sub = nil
	}

	if c.asset != nil {
		c.call("dispose", c.asset.Dispose)
		c.asset = nil
	}
}

// handleSignal makes the asset follow the sequencer. Anything that is not a
// pause resumes playback.
func (c *Controller) handleSignal(s Signal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed || c.asset == nil || c.sub == nil {
		return
	}

	if s == SignalPause {
		c.call("pause", c.asset.Pause)
		return
	}
	c.call("play", c.asset.Play)
}

func (c *Controller) subscribe() {
	if c.sequencer == nil {
		return
	}
	if c.sub != nil {
		c.sub.Cancel()
	}
	c.sub = c.sequencer.Subscribe(c.handleSignal)
}

func (c *Controller) fail(err error) {
	c.err = fmt.Errorf("%w: %w", ErrLoad, err)
	log.Errorf("load %s: %v", c.cfg.URL, err)
	c.phase.Set(phase.Failed)
}

func (c *Controller) pauseSequencer() {
	if c.sequencer != nil {
		c.sequencer.Pause()
	}
}

func (c *Controller) resumeSequencer() {
	if c.sequencer != nil {
		c.sequencer.Resume()
	}
}

// call runs an asset operation, logging instead of propagating its error.
func (c *Controller) call(op string, fn func() error) {
	if err := fn(); err != nil {
		log.Warnf("%s %s: %v", op, c.cfg.URL, err)
	}
}

// notifyLocked sends the current render state to every observer in
// registration order.
func (c *Controller) notifyLocked() {
	u := c.snapshotLocked()
	for id := 0; id < c.nextObserver; id++ {
		if fn, ok := c.observers[id]; ok {
			fn(u)
		}
	}
}

func (c *Controller) snapshotLocked() Update {
	u := Update{
		Phase: c.phase.Get(),
		Err:   c.err,
	}
	if c.asset != nil && u.Phase == phase.Ready {
		u.Size = c.asset.Size()
		u.AspectRatio = c.asset.AspectRatio()
		u.Playing = c.asset.IsPlaying()
	}
	return u
}
