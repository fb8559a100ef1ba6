// SPDX-License-Identifier: MIT
package treeindex

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

type (
	// Index holds a flat collection of parent-linked records, indexed by identifier & by parent.
	//
	// Synchronization is unnecessary, the type is built once & only read thereafter. Callers must
	// not alter a stored record's identifier or parent after the Index is built.
	Index[T Constraint, R Record[T]] struct {
		// cfg contains a pointer to a [Config] shared with the [BuildSource].
		cfg *Config

		// records holds the source collection in its original order.
		records []R

		// nodes maps identifiers to records; the last duplicate wins.
		nodes map[T]R

		// children maps parent identifiers to their records in source order.
		children map[T][]R

		// ancestors caches resolved ancestor chains, nil when disabled.
		ancestors *lru.Cache[T, []R]
	}
)

// Errors encountered when querying an Index.
var (
	ErrCycle    = errors.New("parent references form a cycle")
	ErrNoLeaves = errors.New("lacks leaves; index is cyclic")
)

// Config retrieves the [Index]'s Config.
func (idx *Index[T, R]) Config() *Config { return idx.cfg }

// Len is the number of records in the source collection.
func (idx *Index[T, R]) Len() int { return len(idx.records) }

// All returns every record in the order it was supplied.
func (idx *Index[T, R]) All(_ context.Context) (records []R) {
	records = make([]R, len(idx.records))
	copy(records, idx.records)

	return
}

// Item retrieves the record identified by id.
func (idx *Index[T, R]) Item(_ context.Context, id T) (record R, ok bool) {
	record, ok = idx.nodes[id]
	return
}

// Children lists the records whose parent is id, in source order.
//
// The list is empty (not nil) for an id lacking children, known or not.
func (idx *Index[T, R]) Children(_ context.Context, id T) (children []R) {
	src := idx.children[id]
	children = make([]R, len(src))
	copy(children, src)

	return
}

// Parent returns the parent record for some record identified by its id.
//
// ok is false when id is unknown or its parent does not resolve to an indexed record.
func (idx *Index[T, R]) Parent(ctx context.Context, id T) (parent R, ok bool) {
	node, ok := idx.Item(ctx, id)
	if !ok {
		return
	}

	parentID, ok := node.ParentID()
	if !ok {
		return
	}

	return idx.Item(ctx, parentID)
}

// AllParents returns the ancestor chain of id nearest first, ending at a root.
//
// The record identified by id is excluded. A parent chain revisiting an id yields [ErrCycle].
func (idx *Index[T, R]) AllParents(ctx context.Context, id T) (parents []R, err error) {
	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
	}

	if idx.ancestors != nil {
		if cached, ok := idx.ancestors.Get(id); ok {
			parents = make([]R, len(cached))
			copy(parents, cached)

			return
		}
	}

	parents = make([]R, 0)
	visited := map[T]struct{}{id: {}}
	trail := []T{id}

	for current := id; ; {
		parent, ok := idx.Parent(ctx, current)
		if !ok {
			break
		}

		// Resolved through nodes, the identifier is present.
		current, _ = parent.ID()
		trail = append(trail, current)

		if _, seen := visited[current]; seen {
			parents = nil
			err = fmt.Errorf("%w: %v", ErrCycle, trail)

			if idx.cfg.Debug {
				idx.cfg.Logger.Debugf("ancestors of (%v): %v", id, err)
			}

			return
		}
		visited[current] = struct{}{}

		parents = append(parents, parent)
	}

	if idx.ancestors != nil {
		cached := make([]R, len(parents))
		copy(cached, parents)
		idx.ancestors.Add(id, cached)
	}

	return
}

// Roots returns the records whose parent does not resolve to an indexed record, in source order.
func (idx *Index[T, R]) Roots(_ context.Context) (roots []R) {
	roots = make([]R, 0)
	for index := range idx.records {
		parentID, ok := idx.records[index].ParentID()
		if ok {
			if _, ok = idx.nodes[parentID]; ok {
				continue
			}
		}

		roots = append(roots, idx.records[index])
	}

	return
}

// Leaves returns the records lacking children, in source order.
//
// An error here indicates an Index whose every record sits on a cycle.
func (idx *Index[T, R]) Leaves(_ context.Context) (leaves []R, err error) {
	leaves = make([]R, 0)
	for index := range idx.records {
		id, _ := idx.records[index].ID()
		if len(idx.children[id]) > 0 {
			continue
		}

		leaves = append(leaves, idx.records[index])
	}

	if len(leaves) < 1 && len(idx.records) > 0 {
		err = ErrNoLeaves
	}

	return
}
