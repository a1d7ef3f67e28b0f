package player

import (
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// ipcCommand is the JSON structure sent to mpv's IPC socket.
type ipcCommand struct {
	Command []interface{} `json:"command"`
}

// ipcResponse is the JSON structure received from mpv's IPC socket.
type ipcResponse struct {
	Data  interface{} `json:"data"`
	Error string      `json:"error"`
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	readDeadline = 1 * time.Second
	readBufSize  = 4096
)

// sendCommand sends a JSON-IPC command to mpv, retrying transient connection errors.
func (m *MPV) sendCommand(command []interface{}) (interface{}, error) {
	m.ipcMu.Lock()
	defer m.ipcMu.Unlock()

	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		result, err := doSendCommand(m.socketPath, command)
		if err == nil {
			return result, nil
		}
		lastErr = err

		// mpv answered; retrying will not change the answer
		if _, ok := err.(*mpvError); ok {
			break
		}
	}

	return nil, fmt.Errorf("ipc %v: %w", command[0], lastErr)
}

// mpvError is an error reported by mpv itself rather than by the transport.
type mpvError struct {
	msg string
}

func (e *mpvError) Error() string {
	return "mpv error: " + e.msg
}

// encodeCommand renders a newline-terminated IPC command.
func encodeCommand(command []interface{}) ([]byte, error) {
	payload, err := json.Marshal(ipcCommand{Command: command})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	return append(payload, '\n'), nil
}

// decodeResponse parses a single IPC reply.
func decodeResponse(raw []byte) (interface{}, error) {
	var resp ipcResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	if resp.Error != "" && resp.Error != "success" {
		return nil, &mpvError{msg: resp.Error}
	}

	return resp.Data, nil
}

// doSendCommand performs a single IPC round trip on a fresh connection.
func doSendCommand(socketPath string, command []interface{}) (interface{}, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	payload, err := encodeCommand(command)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Write(payload); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	buf := make([]byte, readBufSize)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	return decodeResponse(firstLine(buf[:n]))
}

// firstLine drops anything after the first newline; mpv may interleave events.
func firstLine(b []byte) []byte {
	for i, c := range b {
		if c == '\n' {
			return b[:i]
		}
	}
	return b
}
