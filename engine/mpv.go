package engine

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playdeck/playdeck/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// Options configures an mpv engine.
type Options struct {
	// Binary is the executable to launch. Defaults to "mpv".
	Binary string

	Autoplay AutoplayPolicy

	// SocketDir is where the IPC socket is created. Defaults to os.TempDir().
	SocketDir string
}

// MPV drives an mpv process over its JSON-IPC socket.
type MPV struct {
	options Options
	events  Hub
	lease   Lease

	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when the mpv process exits
	listener   *listener
	mu         sync.Mutex // serializes socket writes

	audio struct {
		sync.Mutex
		muted  bool
		volume float64
	}
}

// NewMPV creates an mpv engine. The process is started lazily by the first Load.
func NewMPV(options Options) *MPV {
	if options.Binary == "" {
		options.Binary = "mpv"
	}
	if options.Autoplay == "" {
		options.Autoplay = AutoplayMuted
	}
	if options.SocketDir == "" {
		options.SocketDir = os.TempDir()
	}

	m := &MPV{options: options, exited: make(chan struct{})}
	m.audio.muted = true
	return m
}

// args builds the command line. The process starts paused, silent and idle so that
// nothing is heard before the session applies its autoplay policy. keep-open holds the
// last frame at the end so a finished source can be replayed without reloading.
func (m *MPV) args(title string) []string {
	return []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", title),
		fmt.Sprintf("--title=%s", title),
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=yes",
		"--pause=yes",
		"--mute=yes",
		"--volume=0",
	}
}

func (m *MPV) start(title string) error {
	m.socketPath = filepath.Join(m.options.SocketDir, fmt.Sprintf("mpv-%s.sock", uuid.NewString()[:8]))

	m.cmd = exec.Command(m.options.Binary, m.args(title)...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		m.socketPath = ""
		return fmt.Errorf("start %s: %w", m.options.Binary, err)
	}

	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		m.socketPath = ""
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.listener = newListener(m.socketPath, m.events.Emit)
	if err := m.listener.Start(); err != nil {
		return fmt.Errorf("mpv events: %w", err)
	}

	return nil
}

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

// running reports whether the process is alive.
func (m *MPV) running() bool {
	if m.socketPath == "" {
		return false
	}
	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

// Load starts mpv if needed and replaces the current file.
func (m *MPV) Load(source string, meta Meta) error {
	target, err := sanitizeMediaTarget(source)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}
	title := sanitizeTitle(meta.Title)
	if title == "" {
		title = filepath.Base(target)
	}

	if !m.running() {
		if err := m.start(title); err != nil {
			return err
		}
	}

	// pause is global in mpv and survives loadfile; a new source never starts on its own.
	if _, err := m.sendCommand("set_property", "pause", true); err != nil {
		return fmt.Errorf("pause before load: %w", err)
	}

	if _, err := m.sendCommand("set_property", "force-media-title", title); err != nil {
		log.Warnf("mpv: set title: %v", err)
	}

	if _, err := m.sendCommand("loadfile", target, "replace"); err != nil {
		return fmt.Errorf("loadfile: %w", err)
	}

	return nil
}

// Play unpauses playback if the autoplay policy permits it.
func (m *MPV) Play(gesture bool) error {
	m.audio.Lock()
	muted, volume := m.audio.muted, m.audio.volume
	m.audio.Unlock()

	if !m.options.Autoplay.Permits(gesture, muted, volume) {
		return ErrPlayRejected
	}

	_, err := m.sendCommand("set_property", "pause", false)
	return err
}

func (m *MPV) Pause() error {
	_, err := m.sendCommand("set_property", "pause", true)
	return err
}

func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand("seek", seconds, "absolute")
	return err
}

// SetVolume maps [0,1] onto mpv's 0-100 volume scale.
func (m *MPV) SetVolume(v float64) error {
	if _, err := m.sendCommand("set_property", "volume", v*100); err != nil {
		return err
	}

	m.audio.Lock()
	m.audio.volume = v
	m.audio.Unlock()
	return nil
}

func (m *MPV) SetMuted(muted bool) error {
	if _, err := m.sendCommand("set_property", "mute", muted); err != nil {
		return err
	}

	m.audio.Lock()
	m.audio.muted = muted
	m.audio.Unlock()
	return nil
}

func (m *MPV) Subscribe(fn func(Event)) (cancel func()) {
	return m.events.Subscribe(fn)
}

func (m *MPV) Acquire() (release func(), err error) {
	return m.lease.Acquire()
}

// ShowText displays text on the mpv on-screen display for millis milliseconds.
func (m *MPV) ShowText(text string, millis int) error {
	if !m.running() {
		return ErrNotRunning
	}
	_, err := m.sendCommand("show-text", sanitizeTitle(text), millis)
	return err
}

// Stop unloads the current file. mpv stays idle for the next Load.
func (m *MPV) Stop() error {
	if !m.running() {
		return nil
	}
	_, err := m.sendCommand("stop")
	return err
}

// Wait returns a channel closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// Close quits mpv, killing it if it does not exit in time, and removes the socket.
func (m *MPV) Close() error {
	if m.listener != nil {
		m.listener.Stop()
	}

	if m.socketPath == "" {
		return nil
	}

	_, _ = m.sendCommand("quit")

	select {
	case <-m.exited:
	case <-time.After(quitTimeout):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

func (m *MPV) getBool(name string) (bool, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return false, err
	}

	b, ok := data.(bool)
	if !ok {
		return false, fmt.Errorf("property %s: expected bool, got %T", name, data)
	}
	return b, nil
}

// sanitizeMediaTarget validates that a source is safe to pass to mpv.
// Only http(s) URLs and local paths are accepted.
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

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
