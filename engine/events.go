package engine

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"sync"

	"github.com/playdeck/playdeck/log"
)

// observed lists the properties the listener subscribes to on its own connection.
// mpv scopes observers to the client that registered them.
var observed = []string{
	"time-pos",
	"pause",
	"duration",
	"paused-for-cache",
	"seeking",
	"fullscreen",
	"eof-reached",
}

// listener holds a persistent IPC connection and turns mpv notifications into Events.
type listener struct {
	socketPath string
	emit       func(Event)
	translator translator

	mu        sync.Mutex
	conn      net.Conn
	listening bool
}

func newListener(socketPath string, emit func(Event)) *listener {
	return &listener{
		socketPath: socketPath,
		emit:       emit,
		translator: newTranslator(),
	}
}

// Start registers the property observers and begins the read loop.
func (l *listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.listening {
		return nil
	}

	conn, err := net.Dial("unix", l.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range observed {
		payload, _ := json.Marshal(ipcCommand{Command: []any{"observe_property", i + 1, name}})
		if _, err := conn.Write(append(payload, '\n')); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	l.conn = conn
	l.listening = true
	go l.readLoop(conn)

	log.Infof("mpv event listener started on %s", l.socketPath)
	return nil
}

// Stop closes the connection, which ends the read loop.
func (l *listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.listening {
		return
	}
	l.listening = false
	_ = l.conn.Close()
}

func (l *listener) readLoop(conn net.Conn) {
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				log.Warnf("event listener read error: %v", err)
			}
			return
		}

		for _, e := range l.translator.translate(line) {
			l.emit(e)
		}
	}
}

// rawEvent is the subset of an mpv event line the translator needs.
type rawEvent struct {
	Event     string `json:"event"`
	Name      string `json:"name"`
	Data      any    `json:"data"`
	Reason    string `json:"reason"`
	FileError string `json:"file_error"`
}

// translator maps mpv's property changes and events onto the engine vocabulary.
// It only runs on the read loop goroutine.
type translator struct {
	loaded   bool
	paused   bool
	eof      bool
	duration float64
}

func newTranslator() translator {
	return translator{paused: true, duration: math.NaN()}
}

func (t *translator) translate(line []byte) []Event {
	var raw rawEvent
	if err := json.Unmarshal(line, &raw); err != nil || raw.Event == "" {
		return nil
	}

	switch raw.Event {
	case "start-file":
		t.loaded = false
		t.eof = false
		t.duration = math.NaN()
		return nil
	case "file-loaded":
		t.loaded = true
		return []Event{
			{Kind: Metadata, Duration: t.duration},
			{Kind: Ready, Duration: t.duration},
		}
	case "playback-restart":
		if t.loaded && !t.paused {
			return []Event{{Kind: Playing}}
		}
		return nil
	case "end-file":
		wasLoaded := t.loaded
		t.loaded = false
		switch raw.Reason {
		case "eof":
			if wasLoaded && !t.eof {
				return []Event{{Kind: Ended}}
			}
		case "error":
			reason := raw.FileError
			if reason == "" {
				reason = "unknown error"
			}
			return []Event{{Kind: Failed, Err: fmt.Errorf("%w: %s", ErrUnplayable, reason)}}
		}
		return nil
	case "property-change":
		return t.property(raw.Name, raw.Data)
	default:
		return nil
	}
}

func (t *translator) property(name string, data any) []Event {
	switch name {
	case "fullscreen":
		if active, ok := data.(bool); ok {
			return []Event{{Kind: FullscreenChanged, Active: active}}
		}
	case "duration":
		if d, ok := data.(float64); ok && d > 0 {
			t.duration = d
			if t.loaded {
				return []Event{{Kind: Metadata, Duration: d}}
			}
		}
	case "pause":
		paused, ok := data.(bool)
		if !ok || paused == t.paused {
			return nil
		}
		t.paused = paused
		// keep-open pauses on the last frame; that pause is the end, not a user pause.
		if !t.loaded || (paused && t.eof) {
			return nil
		}
		if paused {
			return []Event{{Kind: Paused}}
		}
		return []Event{{Kind: Started}}
	case "eof-reached":
		reached, ok := data.(bool)
		if !ok || reached == t.eof {
			return nil
		}
		t.eof = reached
		if reached && t.loaded {
			return []Event{{Kind: Ended}}
		}
	case "time-pos":
		if pos, ok := data.(float64); ok && t.loaded {
			return []Event{{Kind: TimeUpdate, Time: pos, Duration: t.duration}}
		}
	case "paused-for-cache", "seeking":
		stalled, ok := data.(bool)
		if !ok || !t.loaded {
			return nil
		}
		if stalled {
			return []Event{{Kind: Waiting}}
		}
		if name == "paused-for-cache" && !t.paused {
			return []Event{{Kind: Playing}}
		}
	}
	return nil
}
