package application

import "context"

// Notifier is a best-effort sink. Implementations log their own failures.
type Notifier interface {
	ApplicationSubmitted(ctx context.Context, app *Application)
	ApplicationStatusChanged(ctx context.Context, app *Application)
}

type nopNotifier struct{}

func (nopNotifier) ApplicationSubmitted(context.Context, *Application)     {}
func (nopNotifier) ApplicationStatusChanged(context.Context, *Application) {}
