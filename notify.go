package scrollpdf

import (
	"fmt"
	"io"
)

// Notifier receives a one-line, human-readable message when a capture
// session ends. It stands in for whatever the surrounding glue turns
// into a user notification; delivery is fire-and-forget and must not
// block the session.
type Notifier interface {
	Notify(message string)
}

// nopNotifier is the default: messages are dropped.
type nopNotifier struct{}

func (nopNotifier) Notify(string) {}

// WriterNotifier writes each message as one line to an io.Writer.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(message string) {
	fmt.Fprintln(n.W, message)
}
