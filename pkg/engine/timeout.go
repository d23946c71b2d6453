package engine

import (
	"fmt"
	"time"
)

// EvalTimeout is the default limit for a single evaluation.
const EvalTimeout = 5 * time.Second

type evalResult struct {
	scene  *Scene
	errors []EvalError
	err    error
}

// SetTimeout changes the evaluation limit. Non-positive values restore
// EvalTimeout.
func (e *Engine) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = EvalTimeout
	}
	e.mu.Lock()
	e.timeout = d
	e.mu.Unlock()
}

// wait blocks until the evaluation tagged gen reports on ch or the engine's
// timeout expires. A result from an older generation is dropped.
//
// A timed out sandbox keeps running until it finishes on its own; its result
// lands in the buffered channel and is never read.
func (e *Engine) wait(ch <-chan evalResult, gen uint64) (*Scene, []EvalError, error) {
	e.mu.Lock()
	limit := e.timeout
	e.mu.Unlock()

	timer := time.NewTimer(limit)
	defer timer.Stop()

	select {
	case res := <-ch:
		e.mu.Lock()
		stale := gen != e.generation
		e.mu.Unlock()
		if stale {
			return nil, nil, fmt.Errorf("evaluation %d superseded by newer request", gen)
		}
		return res.scene, res.errors, res.err
	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", limit)
	}
}
