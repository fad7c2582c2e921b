package audit

import "context"

// Worker drains audit events from a channel and hands them to the
// publisher. It keeps event delivery off the verification hot path.
type Worker struct {
	publisher Publisher
	inbox     <-chan Event
}

// NewWorker wires a publisher to an inbox channel.
func NewWorker(publisher Publisher, inbox <-chan Event) *Worker {
	return &Worker{publisher: publisher, inbox: inbox}
}

// Run consumes events until the context is canceled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.publisher.Publish(ctx, event); err != nil {
				return err
			}
		}
	}
}
