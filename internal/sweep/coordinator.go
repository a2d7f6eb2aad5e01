package sweep

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ccicconetti/stateful-faas-sim/sim"
)

// Coordinator holds a queue of pre-built Config values behind a mutex,
// the same "configurations.lock().unwrap().pop()" shape as the original
// bin/main.rs, translated to Go's sync.Mutex + slice.
type Coordinator struct {
	mu    sync.Mutex
	queue []sim.Config
}

// NewCoordinator returns a Coordinator seeded with configs. The slice is
// copied; the caller's slice is not mutated.
func NewCoordinator(configs []sim.Config) *Coordinator {
	queue := make([]sim.Config, len(configs))
	copy(queue, configs)
	return &Coordinator{queue: queue}
}

// pop removes and returns one config, or ok=false if the queue is empty.
func (c *Coordinator) pop() (sim.Config, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.queue)
	if n == 0 {
		return sim.Config{}, false
	}
	cfg := c.queue[n-1]
	c.queue = c.queue[:n-1]
	return cfg, true
}

// Run spawns workers goroutines, each popping configs off the queue in a
// loop, constructing a fresh Simulation, running it to completion, and
// publishing its Output. Construction errors are logged and skipped —
// one bad config never aborts the whole sweep; the worker pool itself
// never shares simulation state.
//
// A buffered channel sized to the queue's length at construction means
// no worker ever blocks on send. ctx cancellation only prevents workers
// from popping new configs; an in-flight Simulation.Run() is never
// aborted mid-run.
func (c *Coordinator) Run(ctx context.Context, workers int) []sim.Output {
	results := make(chan sim.Output, len(c.queue))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logrus.Infof("sweep: spawned worker #%d", id)
			for {
				select {
				case <-ctx.Done():
					logrus.Infof("sweep: worker #%d stopping: %v", id, ctx.Err())
					return
				default:
				}
				cfg, ok := c.pop()
				if !ok {
					break
				}
				s, err := sim.NewSimulation(cfg)
				if err != nil {
					logrus.Errorf("sweep: skipping config (seed=%d): %v", cfg.Seed, err)
					continue
				}
				results <- s.Run()
			}
			logrus.Infof("sweep: terminated worker #%d", id)
		}(i)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	outputs := make([]sim.Output, 0, cap(results))
	for out := range results {
		outputs = append(outputs, out)
	}
	return outputs
}
