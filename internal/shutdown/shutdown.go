package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// NotifyOnExitSignal returns a context that is cancelled on SIGINT or SIGTERM.
func NotifyOnExitSignal(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
}
