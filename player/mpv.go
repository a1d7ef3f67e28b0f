package player

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/anisan-cli/reel/log"
	"github.com/anisan-cli/reel/story"
	"github.com/anisan-cli/reel/where"
	"github.com/google/uuid"
)

const (
	socketWaitDelay = 300 * time.Millisecond
	loadPollDelay   = 200 * time.Millisecond
	quitTimeout     = 3 * time.Second
)

var _ story.Asset = (*MPV)(nil)

// errDisposed is returned by operations on an asset that has been disposed.
var errDisposed = errors.New("asset disposed")

// MPV is a story.Asset backed by an mpv process.
//
// The process is started paused by Initialize, which returns once mpv
// reports the video dimensions. Playback state is mirrored from mpv's
// property-change events, so the read accessors never block on IPC.
type MPV struct {
	binary  string
	target  string
	title   string
	headers string

	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when the mpv process exits
	listener   *EventListener
	ipcMu      sync.Mutex // serializes IPC round trips

	mu          sync.Mutex
	initialized bool
	playing     bool
	disposed    bool
	width       float64
	height      float64
}

func newMPV(binary, target, title, headers string) *MPV {
	return &MPV{
		binary:  binary,
		target:  target,
		title:   title,
		headers: headers,
		exited:  make(chan struct{}),
	}
}

// args builds the mpv command line. Only what the sync needs is forced;
// the user's mpv.conf is respected otherwise.
func (m *MPV) args() []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--pause=yes",
		"--keep-open=yes",
		"--force-window=yes",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
	}

	if m.title != "" {
		args = append(args, fmt.Sprintf("--force-media-title=%s", m.title), fmt.Sprintf("--title=%s", m.title))
	}

	if m.headers != "" {
		args = append(args, fmt.Sprintf("--http-header-fields=%s", m.headers))
	}

	return append(args, m.target)
}

// Initialize launches mpv and waits until the media is loaded.
// Cancelling ctx aborts the wait; the process is reaped by Dispose.
func (m *MPV) Initialize(ctx context.Context) error {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return errDisposed
	}

	m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("reel-%s.sock", uuid.NewString()))

	cmd := exec.Command(m.binary, m.args()...)
	cmd.SysProcAttr = sysProcAttr()

	// Dispose only waits for a process that actually started
	if err := cmd.Start(); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("start mpv: %w", err)
	}
	m.cmd = cmd

	exited := m.exited
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()
	m.mu.Unlock()

	if err := m.waitForSocket(ctx); err != nil {
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	width, height, err := m.waitForVideo(ctx)
	if err != nil {
		return err
	}

	listener := NewEventListener(m.socketPath, m.handleProperty, "pause", "width", "height", "eof-reached")
	if err := listener.Start(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		listener.Stop()
		return errDisposed
	}
	m.listener = listener
	m.width, m.height = width, height
	m.initialized = true

	log.Infof("mpv loaded %s (%gx%g) on %s", m.target, width, height, m.socketPath)
	return nil
}

// waitForSocket polls until the IPC socket is accepting connections.
func (m *MPV) waitForSocket(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		case <-time.After(socketWaitDelay):
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
}

// waitForVideo polls the video dimensions, which mpv only reports once the
// stream has been opened and decoded.
func (m *MPV) waitForVideo(ctx context.Context) (width, height float64, err error) {
	for {
		width, err = m.getFloatProperty("width")
		if err == nil {
			height, err = m.getFloatProperty("height")
			if err == nil {
				return width, height, nil
			}
		}
		if !unavailable(err) {
			log.Debugf("waiting for video dimensions: %v", err)
		}

		if idle, idleErr := m.sendCommand([]interface{}{"get_property", "idle-active"}); idleErr == nil && idle == true {
			return 0, 0, fmt.Errorf("mpv could not open %s", m.target)
		}

		select {
		case <-ctx.Done():
			return 0, 0, ctx.Err()
		case <-m.exited:
			return 0, 0, fmt.Errorf("mpv exited while loading %s", m.target)
		case <-time.After(loadPollDelay):
		}
	}
}

// handleProperty mirrors observed mpv properties into the cached state.
func (m *MPV) handleProperty(name string, data interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch name {
	case "pause":
		if paused, ok := data.(bool); ok {
			m.playing = !paused
		}
	case "eof-reached":
		if eof, ok := data.(bool); ok && eof {
			m.playing = false
		}
	case "width":
		if w, ok := data.(float64); ok {
			m.width = w
		}
	case "height":
		if h, ok := data.(float64); ok {
			m.height = h
		}
	}
}

// Play resumes playback.
func (m *MPV) Play() error {
	return m.setPaused(false)
}

// Pause suspends playback.
func (m *MPV) Pause() error {
	return m.setPaused(true)
}

func (m *MPV) setPaused(paused bool) error {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return errDisposed
	}
	if !m.initialized {
		m.mu.Unlock()
		return fmt.Errorf("asset not initialized")
	}
	m.mu.Unlock()

	if _, err := m.sendCommand([]interface{}{"set_property", "pause", paused}); err != nil {
		return err
	}

	m.mu.Lock()
	m.playing = !paused
	m.mu.Unlock()
	return nil
}

// IsInitialized reports whether the media is loaded.
func (m *MPV) IsInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized && !m.disposed
}

// IsPlaying reports whether mpv is playing.
func (m *MPV) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing && !m.disposed
}

// Size returns the video dimensions.
func (m *MPV) Size() story.Size {
	m.mu.Lock()
	defer m.mu.Unlock()
	return story.Size{Width: m.width, Height: m.height}
}

// AspectRatio returns width over height, or 1 while the size is unknown.
func (m *MPV) AspectRatio() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.width <= 0 || m.height <= 0 {
		return 1
	}
	return m.width / m.height
}

// Dispose shuts mpv down and removes its socket. It is idempotent.
func (m *MPV) Dispose() error {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return nil
	}
	m.disposed = true
	m.playing = false
	listener, cmd := m.listener, m.cmd
	m.listener = nil
	m.mu.Unlock()

	if listener != nil {
		listener.Stop()
	}

	if cmd == nil {
		return nil
	}

	// graceful quit first
	_, _ = m.sendCommand([]interface{}{"quit"})

	select {
	case <-m.exited:
	case <-time.After(quitTimeout):
		log.Warnf("killing mpv: no exit after quit")
		_ = killProcess(cmd)
	}

	if err := os.Remove(m.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove socket: %w", err)
	}
	return nil
}

// getFloatProperty retrieves a float64 mpv property via IPC.
func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// unavailable reports whether err is mpv saying a property has no value yet.
func unavailable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "property unavailable")
}
