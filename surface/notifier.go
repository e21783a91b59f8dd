package surface

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/playdeck/playdeck/style"
)

const noticeLifetime = 3 * time.Second

// notifier shows a short-lived message next to the last rendered line.
type notifier struct {
	notification string
	gen          int
}

type noticeMsg string

type clearNoticeMsg struct{ gen int }

func notify(text string) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(text)
	}
}

func (n *notifier) set(text string) tea.Cmd {
	n.notification = text
	n.gen++
	gen := n.gen
	return tea.Tick(noticeLifetime, func(time.Time) tea.Msg {
		return clearNoticeMsg{gen: gen}
	})
}

func (n *notifier) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case noticeMsg:
		return n.set(string(msg))
	case clearNoticeMsg:
		// a newer notice restarted the countdown
		if msg.gen == n.gen {
			n.notification = ""
		}
	}
	return nil
}

func (n *notifier) View(content string) string {
	if n.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(n.notification)
	return strings.Join(lines, "\n")
}
