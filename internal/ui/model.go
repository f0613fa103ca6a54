// Package ui manages ephemeral status notifications rendered inside the
// terminal interface without interrupting the active view.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/signtutor-cli/signtutor/style"
)

// Model holds the currently visible notification, if any.
type Model struct {
	notification string
	notifiedAt   time.Time
}

// ClearNotificationMsg resets the visible notification.
type ClearNotificationMsg struct{}

// NotifyFeedbackQueued reports that tutor feedback could not be delivered and
// was queued for background reconciliation.
func NotifyFeedbackQueued() tea.Cmd {
	return func() tea.Msg {
		return "Tutor unreachable - feedback queued for retry"
	}
}

// ClearNotification clears the current notification after a short delay.
func ClearNotification() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return ClearNotificationMsg{}
	})
}

// Update consumes notification messages. Any plain string message becomes the
// visible notification; everything else is ignored.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case string:
		m.notification = msg
		m.notifiedAt = time.Now()
		return ClearNotification()
	case ClearNotificationMsg:
		m.notification = ""
		return nil
	}
	return nil
}

// View appends the active notification to the last line of the rendered view.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	rendered := lipgloss.NewStyle().Foreground(style.FaintColor).Render(m.notification)
	lines := strings.Split(mainContent, "\n")
	if len(lines) > 0 {
		lines[len(lines)-1] = lines[len(lines)-1] + "  " + rendered
	}
	return strings.Join(lines, "\n")
}
