package player

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/anisan-cli/reel/log"
)

// EventCallback receives mpv property changes and other named events.
type EventCallback func(property string, data interface{})

// EventListener streams mpv events over a dedicated IPC connection.
// mpv scopes observe_property to the connection that issued it, so the
// observers are registered on the same connection the read loop uses.
type EventListener struct {
	socketPath string
	properties []string
	conn       net.Conn
	callback   EventCallback
	stopCh     chan struct{}
	mu         sync.Mutex
	listening  bool
}

// NewEventListener creates a listener observing the given properties.
func NewEventListener(socketPath string, callback EventCallback, properties ...string) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		properties: properties,
		callback:   callback,
		stopCh:     make(chan struct{}),
	}
}

// Start connects, registers the property observers and starts the read loop.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range el.properties {
		payload, err := encodeCommand([]interface{}{"observe_property", i + 1, name})
		if err == nil {
			_, err = conn.Write(payload)
		}
		if err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true
	go el.readLoop(conn)

	log.Debugf("mpv event listener started on %s (observing: %s)", el.socketPath, strings.Join(el.properties, ", "))
	return nil
}

// Stop terminates the listener. It is idempotent.
func (el *EventListener) Stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if !el.listening {
		return
	}

	close(el.stopCh)
	if el.conn != nil {
		el.conn.Close()
	}
	el.listening = false
}

// readLoop reads newline-delimited JSON events until stopped or disconnected.
func (el *EventListener) readLoop(conn net.Conn) {
	buf := make([]byte, readBufSize)
	var remainder []byte

	for {
		select {
		case <-el.stopCh:
			return
		default:
		}

		if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
			return
		}

		n, err := conn.Read(buf)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			select {
			case <-el.stopCh:
			default:
				log.Warnf("event listener read error: %v", err)
			}
			return
		}

		remainder = el.consume(append(remainder, buf[:n]...))
	}
}

// consume dispatches every complete line in data and returns the incomplete tail.
func (el *EventListener) consume(data []byte) []byte {
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			return data
		}
		line := bytes.TrimSpace(data[:i])
		data = data[i+1:]
		if len(line) > 0 {
			el.processEvent(line)
		}
	}
}

// processEvent parses and dispatches a single mpv event line.
// Command replies carry no "event" key and are skipped.
func (el *EventListener) processEvent(line []byte) {
	var event map[string]interface{}
	if err := json.Unmarshal(line, &event); err != nil {
		return
	}

	eventType, ok := event["event"].(string)
	if !ok || el.callback == nil {
		return
	}

	switch eventType {
	case "property-change":
		if name, _ := event["name"].(string); name != "" {
			el.callback(name, event["data"])
		}
	default:
		el.callback(eventType, event)
	}
}
