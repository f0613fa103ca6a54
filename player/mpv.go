package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/signtutor-cli/signtutor/constant"
	"github.com/signtutor-cli/signtutor/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV implements the Backend interface using mpv's JSON-IPC protocol.
// One process serves a whole practice session; each clip is swapped in with
// a loadfile replace command.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	ended      chan struct{} // receives a signal per end-of-file
	listener   *EventListener
	mu         sync.Mutex // Protects socket writes and process state
}

// NewMPV creates a new MPV backend (does not start the process).
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
		ended:  make(chan struct{}, 1),
	}
}

// Load replaces the current media with the given clip source, spawning mpv
// on first use. The window stays open between clips so the sequence plays
// without flicker.
func (m *MPV) Load(source string) error {
	// Sanitize the target to prevent flag injection from bank scripts
	target, err := sanitizeMediaTarget(source)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if !m.IsRunning() {
		if err := m.spawn(); err != nil {
			return err
		}
	}

	_, err = m.sendCommand([]interface{}{"loadfile", target, "replace"})
	if err != nil {
		return fmt.Errorf("load %s: %w", target, err)
	}

	return nil
}

// spawn starts the mpv process in idle mode and waits for its IPC socket.
func (m *MPV) spawn() error {
	// Generate a random socket path using os.TempDir() for cross-platform
	// support (macOS $TMPDIR is /var/folders/... not /tmp/)
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.Signtutor, randomBytes))
	}

	// Pass ONLY the socket, title and idle flags.
	// Do NOT pass --vo, --profile, --hwdec: respect user's mpv.conf.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", constant.Signtutor),
		fmt.Sprintf("--title=%s", constant.Signtutor), // Some mpv builds only respect --title
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=yes", // hold the last frame at end-of-file instead of going idle
		"--loop-file=no",
	}

	m.cmd = exec.Command("mpv", args...)

	// Detach from parent process group to prevent cascading shell panics.
	m.cmd.SysProcAttr = sysProcAttr()

	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// Reap the process to prevent zombies
	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		// If the socket never became ready, kill the orphaned process
		if m.cmd.Process != nil {
			select {
			case <-m.exited:
			default:
				log.Warnf("killing mpv: socket never became ready")
				_ = m.cmd.Process.Kill()
			}
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return m.startEvents()
}

// startEvents attaches the end-of-file observer that feeds the Ended channel.
func (m *MPV) startEvents() error {
	m.listener = NewEventListener(m.socketPath, func(property string, data interface{}) {
		if property != "eof-reached" {
			return
		}
		reached, ok := data.(bool)
		if !ok || !reached {
			return
		}
		select {
		case m.ended <- struct{}{}:
		default:
			// A pending signal already waits; dropping the duplicate is
			// safe because the consumer treats them as level triggers.
		}
	})
	return m.listener.Start()
}

// Ended yields a signal each time the loaded clip plays to its end.
func (m *MPV) Ended() <-chan struct{} {
	return m.ended
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// Play resumes playback of the loaded clip.
func (m *MPV) Play() error {
	return m.set("pause", false)
}

// Pause suspends playback, holding the current position.
func (m *MPV) Pause() error {
	return m.set("pause", true)
}

// Position returns the current playback position in seconds.
func (m *MPV) Position() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// Duration returns the total duration of the loaded clip in seconds.
func (m *MPV) Duration() (float64, error) {
	return m.getFloatProperty("duration")
}

// SetRate sets the playback speed multiplier; 0.5 is the slow-motion rate.
func (m *MPV) SetRate(rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("rate must be positive, got %v", rate)
	}
	return m.set("speed", rate)
}

// PercentWatched returns how much of the clip has been watched, 0-100.
func (m *MPV) PercentWatched() (float64, error) {
	pos, err := m.Position()
	if err != nil {
		return 0, err
	}

	dur, err := m.Duration()
	if err != nil || dur <= 0 {
		return 0, err
	}

	return (pos / dur) * 100, nil
}

// Seek moves playback to the given absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute"})
	return err
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" || m.cmd == nil {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand([]interface{}{"get_property", "pid"})
	return err == nil
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	if m.listener != nil {
		m.listener.Stop()
	}

	if m.socketPath == "" {
		return nil
	}

	// Try graceful quit via IPC
	_, _ = m.sendCommand([]interface{}{"quit"})

	select {
	case <-m.exited:
		// Clean exit
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)

	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// set writes an mpv property.
func (m *MPV) set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
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

// sanitizeMediaTarget validates that a clip source is safe to hand to mpv.
// Bank scripts are untrusted, so flag-shaped strings are rejected.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty source")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in source")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("source must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	// Treat as local file path
	return filepath.Clean(l), nil
}
