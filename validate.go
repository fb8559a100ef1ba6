// SPDX-License-Identifier: MIT
package treeindex

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/panjf2000/ants/v2"

	"gitlab.com/fisherprime/treeindex/types"
)

// Validate resolves the ancestor chain of every indexed identifier, reporting all failures.
//
// The chains are resolved concurrently on a pool of [Config.PoolSize] goroutines; errors.Is(err,
// ErrCycle) holds when any parent reference cycle exists.
func (idx *Index[T, R]) Validate(ctx context.Context) (err error) {
	operations := len(idx.nodes)
	if operations < 1 {
		return
	}

	pool, err := ants.NewPool(idx.cfg.PoolSize, ants.WithLogger(idx.cfg.Logger))
	if err != nil {
		return
	}
	defer pool.Release()

	validateCtx, validateCancel := context.WithCancel(ctx)
	defer validateCancel()

	// Buffered to the operation count so tasks never block on a departed monitor.
	done := make(chan struct{}, operations)
	errChan := make(chan error, operations)

	submitted := 0
	for id := range idx.nodes {
		id := id
		task := func() {
			// Every task must signal the monitor exactly once.
			defer func() {
				if r := recover(); r != nil {
					errChan <- fmt.Errorf("(%v): %w: %v", id, ErrPanicked, r)
				}
			}()

			if _, e := idx.AllParents(validateCtx, id); e != nil {
				errChan <- fmt.Errorf("(%v): %w", id, e)
				return
			}
			done <- struct{}{}
		}

		if err = pool.Submit(task); err != nil {
			validateCancel()
			break
		}
		submitted++
	}

	monitorErr := types.MonitorChannels(ctx, submitted, done, errChan, "validate")
	if err == nil {
		err = monitorErr
	} else if monitorErr != nil {
		err = fmt.Errorf("%w; %w", err, monitorErr)
	}

	if err != nil && idx.cfg.Debug {
		idx.cfg.Logger.Debugf("validation failure: %s", spew.Sdump(err))
	}

	return
}
