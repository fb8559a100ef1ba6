// SPDX-License-Identifier: MIT
package treeindex

import (
	"context"
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

type (
	// BuildSource is a wrapper type for []Record used to generate the Index.
	BuildSource[T Constraint, R Record[T]] struct {
		cfg *Config

		// debug & logger override the [Config] entries regardless of option order.
		debug  *bool
		logger logrus.FieldLogger

		list       []R
		cycleCheck bool
	}

	// BuildOption defines the BuildSource functional option type.
	BuildOption[T Constraint, R Record[T]] func(*BuildSource[T, R])
)

// Index building errors.
var (
	ErrBuildIndex = errors.New("failed to build index")

	ErrInvalidIndexSrc = errors.New("invalid index source")
	ErrMissingID       = errors.New("record lacks an identifier")

	ErrPanicked = errors.New("recovery from panic")
)

// NewBuildSource instantiates a BuildSource.
func NewBuildSource[T Constraint, R Record[T]](options ...BuildOption[T, R]) *BuildSource[T, R] {
	b := &BuildSource[T, R]{cfg: DefConfig(), list: []R{}}

	for _, opt := range options {
		opt(b)
	}

	if b.logger != nil {
		b.cfg.Logger = b.logger
	}
	if b.debug != nil {
		b.cfg.Debug = *b.debug
	}
	b.cfg.Validate()

	return b
}

// WithRecords configures the underlying list.
func WithRecords[T Constraint, R Record[T]](list []R) BuildOption[T, R] {
	return func(b *BuildSource[T, R]) { b.list = list }
}

// WithConfig configures the [Config] for the built [Index].
//
// The Config is copied; later changes to cfg do not reach the Index.
func WithConfig[T Constraint, R Record[T]](cfg *Config) BuildOption[T, R] {
	return func(b *BuildSource[T, R]) {
		if cfg != nil {
			c := *cfg
			b.cfg = &c
		}
	}
}

// WithBuildLogger configures the logger option.
func WithBuildLogger[T Constraint, R Record[T]](logger logrus.FieldLogger) BuildOption[T, R] {
	return func(b *BuildSource[T, R]) { b.logger = logger }
}

// WithDebug configures the debug option
func WithDebug[T Constraint, R Record[T]](debug bool) BuildOption[T, R] {
	return func(b *BuildSource[T, R]) { b.debug = &debug }
}

// WithCycleCheck runs [Index.Validate] once the Index is built, failing the build on a cycle.
func WithCycleCheck[T Constraint, R Record[T]](check bool) BuildOption[T, R] {
	return func(b *BuildSource[T, R]) { b.cycleCheck = check }
}

// Len retrieves the length of the BuildSource.
func (b *BuildSource[T, R]) Len() int { return len(b.list) }

// Build generates an Index from a BuildSource.
//
// The records are indexed in a single pass; parent references are not required to resolve.
func (b *BuildSource[T, R]) Build(ctx context.Context) (idx *Index[T, R], err error) {
	defer func() {
		if err != nil {
			idx = nil
			err = fmt.Errorf("%w: %w", ErrBuildIndex, err)
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}

		if err != nil && !errors.Is(err, ErrCycle) {
			err = fmt.Errorf("%w: %w", ErrInvalidIndexSrc, err)
		}
	}()

	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
	}

	idx = &Index[T, R]{
		cfg:      b.cfg,
		records:  make([]R, len(b.list)),
		nodes:    make(map[T]R, len(b.list)),
		children: make(map[T][]R),
	}
	copy(idx.records, b.list)

	for index := range idx.records {
		record := idx.records[index]

		id, ok := record.ID()
		if !ok {
			// Skip expensive operation if not debug.
			if b.cfg.Debug {
				b.cfg.Logger.Debugf("malformed record: %s", spew.Sdump(record))
			}

			err = fmt.Errorf("%w: record %d", ErrMissingID, index)
			return
		}
		idx.nodes[id] = record

		parentID, ok := record.ParentID()
		if !ok {
			continue
		}
		idx.children[parentID] = append(idx.children[parentID], record)
	}

	if b.cfg.Debug {
		b.cfg.Logger.Debugf("indexed %d records, %d identifiers, %d parents",
			len(idx.records), len(idx.nodes), len(idx.children))
	}

	if b.cfg.AncestorCacheSize > 0 {
		if idx.ancestors, err = lru.New[T, []R](b.cfg.AncestorCacheSize); err != nil {
			return
		}
	}

	if b.cycleCheck {
		err = idx.Validate(ctx)
	}

	return
}

// New generates an Index from records, shorthand for [BuildSource.Build].
func New[T Constraint, R Record[T]](ctx context.Context, records []R, options ...BuildOption[T, R]) (*Index[T, R], error) {
	options = append([]BuildOption[T, R]{WithRecords[T, R](records)}, options...)

	return NewBuildSource[T, R](options...).Build(ctx)
}
