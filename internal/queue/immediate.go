package queue

import "context"

// ImmediateQueue dispatches each job on its own goroutine. It is the
// default backend for single-process deployments.
type ImmediateQueue struct {
	handler Handler
}

func NewImmediateQueue() *ImmediateQueue {
	return &ImmediateQueue{}
}

func (q *ImmediateQueue) SetHandler(handler Handler) {
	q.handler = handler
}

func (q *ImmediateQueue) Enqueue(_ context.Context, job Job) error {
	if q.handler == nil {
		return nil
	}
	go q.handler(context.Background(), job)
	return nil
}

func (q *ImmediateQueue) Close() {}

var _ HandlerQueue = (*ImmediateQueue)(nil)
