/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: batch.go
Description: Parallel batch rule synthesis. Fans observations out over a worker pool,
preserves input order in the results, and honors context cancellation between items.
*/

package synthesis

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/kleascm/akaylee-mangler/pkg/interfaces"
	"github.com/kleascm/akaylee-mangler/pkg/rules"
)

// Result pairs an observation with the program synthesized for it. Program is
// nil when no supported program reproduces the observation.
type Result struct {
	Observation interfaces.Observation
	Program     *rules.Program
}

// InferBatch synthesizes rules for a batch of observations using the given
// number of workers (defaulting to GOMAXPROCS when workers <= 0). Results come
// back in input order regardless of worker scheduling. Cancellation is checked
// between items; already-completed results are discarded on cancel.
func InferBatch(ctx context.Context, observations []interfaces.Observation, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(observations) {
		workers = len(observations)
	}

	results := make([]Result, len(observations))
	indexes := make(chan int, len(observations))
	for i := range observations {
		indexes <- i
	}
	close(indexes)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				if ctx.Err() != nil {
					return
				}
				obs := observations[i]
				prog, err := Infer(obs.Base, obs.Password)
				if err != nil && !errors.Is(err, ErrNotFound) {
					return
				}
				results[i] = Result{Observation: obs, Program: prog}
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
