package api

import (
	"context"
	"log"

	"github.com/basaltlabs/basalt/internal/engine"
	"github.com/basaltlabs/basalt/internal/queue"
)

// enqueueJob hands a recompute job to the queue without failing the request.
// State recomputation is advisory; the write the user asked for already
// succeeded.
func (handler *Handler) enqueueJob(job queue.Job) {
	if err := handler.jobs.Enqueue(context.Background(), job); err != nil {
		log.Printf("enqueue %s job for user %s: %v", job.Kind, job.UserID, err)
	}
}

// maybeEnqueueLuteal schedules a luteal length scan for a period. Learning
// and unknown temperature phases cannot anchor an ovulation shift, so those
// skip the scan entirely.
func (handler *Handler) maybeEnqueueLuteal(userID string, periodID uint) {
	state, found, err := handler.repositories.States.FindTemperatureState(userID)
	if err != nil {
		log.Printf("load temperature state for user %s: %v", userID, err)
		return
	}
	if !found {
		return
	}
	phase := engine.Phase(state.Phase)
	if phase != engine.PhaseLow && phase != engine.PhaseElevated {
		return
	}
	handler.enqueueJob(queue.Job{Kind: queue.KindLuteal, UserID: userID, PeriodID: periodID})
}
