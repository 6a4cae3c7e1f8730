package shutdown

import (
	"context"
	"syscall"
	"testing"
	"time"
)

func TestNotifyOnExitSignal(t *testing.T) {
	ctx, stop := NotifyOnExitSignal(context.Background())
	defer stop()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("Kill() error = %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled by SIGTERM")
	}
}

func TestNotifyOnExitSignal_Stop(t *testing.T) {
	ctx, stop := NotifyOnExitSignal(context.Background())
	stop()

	if ctx.Err() == nil {
		t.Error("context should be done after stop")
	}
}
