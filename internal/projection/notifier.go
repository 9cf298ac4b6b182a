package projection

import "context"

// Notifier is the optional capability for surfacing non-blocking messages
// to an operator. Callers without a notifier use NopNotifier; the client
// never checks for nil.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NopNotifier discards all messages.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string) {}
