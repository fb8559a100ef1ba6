// SPDX-License-Identifier: MIT
package treeindex

import (
	"context"
	"fmt"
)

// REF: https://www.geeksforgeeks.org/generic-tree-level-order-traversal

const traverseBufferSize = 10

type (
	// TraverseComm defines a channel to communicate info between [Index.Walk] & it's callers.
	TraverseComm[R any] struct {
		record   R
		err      error
		newPeers bool
	}
)

// Record retrieves the walked record.
func (t TraverseComm[R]) Record() R { return t.record }

// Err retrieves the error terminating the walk, if any.
func (t TraverseComm[R]) Err() error { return t.err }

// NewPeers reports whether the record is the first of a new level.
func (t TraverseComm[R]) NewPeers() bool { return t.newPeers }

// Walk performs breadth-first traversal on the descendants of id, pushing them to its channel
// argument.
//
// This operation uses channels to minimize resource wastage.
// A context.Context is used to terminate the walk operation; the channel is always closed.
func (idx *Index[T, R]) Walk(ctx context.Context, id T, traverseChan chan TraverseComm[R]) {
	defer close(traverseChan)

	// Identifiers whose children were queued; duplicates share one children list.
	expanded := map[T]struct{}{id: {}}

	// Level order traversal.
	queue := idx.children[id]
	for len(queue) > 0 {
		var next []R

		// Iterate over the level's records.
		newPeers := true
		for _, front := range queue {
			select {
			case <-ctx.Done():
				// Received context cancellation.
				traverseChan <- TraverseComm[R]{err: ctx.Err()}
				return
			default:
			}

			// Each record has a single parent, a walk can only loop back through id.
			frontID, _ := front.ID()
			if frontID == id {
				traverseChan <- TraverseComm[R]{err: fmt.Errorf("%w: (%v) is its own descendant", ErrCycle, id)}
				return
			}

			// Send record to caller via the channel.
			traverseChan <- TraverseComm[R]{record: front, newPeers: newPeers}
			newPeers = false

			// Add children to the next level.
			if _, ok := expanded[frontID]; ok {
				continue
			}
			expanded[frontID] = struct{}{}
			next = append(next, idx.children[frontID]...)
		}

		queue = next
	}
}

// Descendants lists immediate and children-of children for id, level by level.
func (idx *Index[T, R]) Descendants(ctx context.Context, id T) (descendants []R, err error) {
	descendants = make([]R, 0)
	traverseChan := make(chan TraverseComm[R], traverseBufferSize)

	go idx.Walk(ctx, id, traverseChan)

	for resl := range traverseChan {
		if resl.err != nil {
			err = resl.err
			descendants = nil

			// Drain to release the walker.
			for range traverseChan {
			}

			return
		}

		descendants = append(descendants, resl.record)
	}

	if idx.cfg.Debug {
		idx.cfg.Logger.Debugf("descendants of (%v): %d", id, len(descendants))
	}

	return
}

// DescendantsByLevel lists immediate and children-of children for id grouped by level.
func (idx *Index[T, R]) DescendantsByLevel(ctx context.Context, id T) (levels [][]R, err error) {
	levels = make([][]R, 0)
	traverseChan := make(chan TraverseComm[R], traverseBufferSize)

	go idx.Walk(ctx, id, traverseChan)

	var peers []R
	for resl := range traverseChan {
		if err = resl.err; err != nil {
			levels = nil

			for range traverseChan {
			}

			return
		}

		if !resl.newPeers {
			peers = append(peers, resl.record)
			continue
		}

		if len(peers) > 0 {
			levels = append(levels, peers)
		}
		peers = []R{resl.record}
	}

	if len(peers) > 0 {
		levels = append(levels, peers)
	}

	if idx.cfg.Debug {
		idx.cfg.Logger.Debugf("levels below (%v): %d", id, len(levels))
	}

	return
}
