package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bookvault/book-api/internal/api/metrics"
	"github.com/bookvault/book-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes activity entries to a fixed set of workers using
// consistent hashing on the username, guaranteeing per-principal ordering of
// the audit trail.
type Dispatcher struct {
	workers []chan ports.ActivityInput
	service ports.ActivityService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ActivityInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ActivityInput, channelBuffer)
	}
	return d
}

// Start launches the worker goroutines. Workers run until Stop closes their
// channels; cancelling ctx does not abandon queued entries, so entries
// enqueued by in-flight requests during server shutdown are still recorded.
func (d *Dispatcher) Start(ctx context.Context) {
	base := context.WithoutCancel(ctx)
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(base, i, ch)
	}
}

// Stop closes the worker channels and blocks until every queued entry has
// been processed. The HTTP server must be shut down first: Enqueue after
// Stop panics on the closed channel.
func (d *Dispatcher) Stop() {
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()
}

// Enqueue sends an entry to the worker responsible for its username. The
// call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(in ports.ActivityInput) {
	idx := d.shardIndex(in.Username)
	d.workers[idx] <- in
	metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ActivityInput) {
	defer d.wg.Done()
	worker := strconv.Itoa(id)
	for in := range ch {
		metrics.ActivityQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
		if err := d.service.Record(ctx, in); err != nil {
			d.log.Error().Err(err).
				Str("username", in.Username).
				Str("action", in.Action).
				Int("worker_id", id).
				Msg("activity recording failed")
		}
	}
}
