// Package notify delivers best-effort reminder alerts. Delivery failures
// are reported to the caller, who logs and swallows them; a failed alert
// never fails a store operation.
package notify

import (
	"github.com/charmbracelet/log"
	"github.com/gen2brain/beeep"

	"todo-tracker/internal/errors"
)

// Notifier defines the notification collaborator contract.
type Notifier interface {
	SendAlert(title, message string) error
}

// DesktopNotifier sends alerts through the operating system's desktop
// notification facility.
type DesktopNotifier struct{}

// NewDesktopNotifier creates a desktop notifier.
func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{}
}

// SendAlert shows a desktop notification.
func (n *DesktopNotifier) SendAlert(title, message string) error {
	if err := beeep.Notify(title, message, ""); err != nil {
		return errors.NewNotificationError(title, err)
	}
	return nil
}

// LogNotifier writes alerts to the logger instead of the desktop.
// Selected through the reminder notifier setting for headless
// environments where desktop delivery is unavailable.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier creates a logger-backed notifier.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendAlert logs the alert at info level.
func (n *LogNotifier) SendAlert(title, message string) error {
	n.logger.Info(title, "message", message)
	return nil
}
