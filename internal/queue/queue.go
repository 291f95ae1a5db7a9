package queue

import "context"

const (
	KindPhase  = "phase"
	KindCycle  = "cycle"
	KindLuteal = "luteal"
)

// Job is a recompute request for one user. Luteal jobs carry the period
// whose preceding window should be scanned.
type Job struct {
	Kind     string `json:"kind"`
	UserID   string `json:"user_id"`
	PeriodID uint   `json:"period_id,omitempty"`
}

// Handler consumes jobs off the request path.
type Handler func(ctx context.Context, job Job)

// Queue decouples event writes from state recomputation.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Close()
}

// HandlerQueue supports late handler binding so the worker can be wired
// after the queue backend is chosen.
type HandlerQueue interface {
	Queue
	SetHandler(handler Handler)
}
