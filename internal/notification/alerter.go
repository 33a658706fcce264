package notification

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

// Alerter is the hook fired when a new unread notification arrives. The web
// client plays a sound and, when permission was granted, raises a platform
// notification; implementations decide what that means for their surface.
type Alerter interface {
	Alert(n model.Notification)
}

// TerminalAlerter rings the terminal bell and prints a one-line summary
type TerminalAlerter struct {
	out    io.Writer
	logger *zap.Logger
}

// NewTerminalAlerter creates an alerter writing to out
func NewTerminalAlerter(out io.Writer, logger *zap.Logger) *TerminalAlerter {
	return &TerminalAlerter{out: out, logger: logger}
}

// Alert rings the bell and prints the notification title and message
func (a *TerminalAlerter) Alert(n model.Notification) {
	title := n.Title
	if title == "" {
		title = n.Action
	}
	if _, err := fmt.Fprintf(a.out, "\a[%s] %s\n", title, n.Message); err != nil {
		a.logger.Debug("failed to write alert", zap.Error(err))
	}
}
