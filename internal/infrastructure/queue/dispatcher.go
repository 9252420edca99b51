package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/psychodash/practice-dashboard/internal/core/ports"
	"github.com/psychodash/practice-dashboard/internal/core/service"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

type job struct {
	ctx    context.Context
	notes  string
	result chan ports.SummaryResult
}

// Dispatcher runs summarization requests on a fixed set of workers so that
// concurrent HTTP requests cannot fan out unbounded calls to the summarizer.
type Dispatcher struct {
	jobs    chan job
	workers int
	service ports.SummaryService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, svc ports.SummaryService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Dispatcher{
		jobs:    make(chan job, channelBuffer),
		workers: numWorkers,
		service: svc,
		log:     log,
	}
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		go d.runWorker(ctx, i)
	}
}

// Submit queues notes for summarization. The returned channel receives
// exactly one result and is then closed. If ctx ends before a worker picks
// the job up, the result carries the generic failure text and ctx.Err().
func (d *Dispatcher) Submit(ctx context.Context, notes string) <-chan ports.SummaryResult {
	j := job{ctx: ctx, notes: notes, result: make(chan ports.SummaryResult, 1)}
	select {
	case d.jobs <- j:
	case <-ctx.Done():
		j.result <- ports.SummaryResult{Text: service.SummaryFailed, Err: ctx.Err()}
		close(j.result)
	}
	return j.result
}

// Summarize implements ports.SummaryService on top of the pool, blocking
// until the queued job finishes or ctx ends.
func (d *Dispatcher) Summarize(ctx context.Context, notes string) ports.SummaryResult {
	select {
	case res := <-d.Submit(ctx, notes):
		return res
	case <-ctx.Done():
		return ports.SummaryResult{Text: service.SummaryFailed, Err: ctx.Err()}
	}
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-d.jobs:
			if err := j.ctx.Err(); err != nil {
				j.result <- ports.SummaryResult{Text: service.SummaryFailed, Err: err}
				close(j.result)
				continue
			}
			res := d.service.Summarize(j.ctx, j.notes)
			if !res.OK() {
				d.log.Debug().Err(res.Err).Int("worker_id", id).Msg("summary fell back")
			}
			j.result <- res
			close(j.result)
		}
	}
}
