package queue

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/psychodash/practice-dashboard/internal/core/ports"
	"github.com/psychodash/practice-dashboard/internal/core/service"
)

type countingService struct {
	inFlight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
	delay    time.Duration
}

func (s *countingService) Summarize(_ context.Context, notes string) ports.SummaryResult {
	s.calls.Add(1)
	n := s.inFlight.Add(1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(s.delay)
	s.inFlight.Add(-1)
	return ports.SummaryResult{Text: "summary of " + notes}
}

func TestDispatcher_SubmitReturnsOneResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := &countingService{}
	d := NewDispatcher(2, svc, zerolog.Nop())
	d.Start(ctx)

	ch := d.Submit(ctx, "notes")
	select {
	case res := <-ch:
		if !res.OK() || res.Text != "summary of notes" {
			t.Fatalf("unexpected result %+v", res)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
	}
	if _, open := <-ch; open {
		t.Fatal("expected result channel to be closed")
	}
}

func TestDispatcher_BoundsConcurrency(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := &countingService{delay: 20 * time.Millisecond}
	d := NewDispatcher(2, svc, zerolog.Nop())
	d.Start(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Summarize(ctx, "n")
		}()
	}
	wg.Wait()

	if got := svc.calls.Load(); got != 8 {
		t.Fatalf("expected 8 calls, got %d", got)
	}
	if peak := svc.peak.Load(); peak > 2 {
		t.Fatalf("expected at most 2 concurrent calls, got %d", peak)
	}
}

func TestDispatcher_CancelledBeforeStart(t *testing.T) {
	d := NewDispatcher(1, &countingService{}, zerolog.Nop())
	// Fill the buffer so Submit has to wait; no workers are running.
	for i := 0; i < channelBuffer; i++ {
		d.jobs <- job{result: make(chan ports.SummaryResult, 1)}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := <-d.Submit(ctx, "notes")
	if res.OK() || res.Text != service.SummaryFailed {
		t.Fatalf("expected failure fallback, got %+v", res)
	}
}
