// SPDX-License-Identifier: MIT
package treeindex

import (
	"context"
	"sort"

	"golang.org/x/exp/constraints"
)

// Constraint is a wrapper interface containing comparable & constraints.Ordered.
type Constraint interface {
	comparable
	constraints.Ordered
}

type (
	// Record defines an interface for entities that can be read into an [Index].
	//
	// Any additional fields are opaque to the [Index] and returned as stored.
	Record[T Constraint] interface {
		// ID obtains the record's identifier, false if the record lacks one.
		ID() (T, bool)
		// ParentID obtains the identifier of the record's parent, false for a root.
		ParentID() (T, bool)
	}

	// DefaultRecord is a sample Record interface implementation carrying a payload.
	DefaultRecord[T Constraint, V any] struct {
		id        T
		parent    T
		hasParent bool
		data      V
	}
)

// NewRecord instantiates a [DefaultRecord] with a parent.
func NewRecord[T Constraint, V any](id, parent T, data V) DefaultRecord[T, V] {
	return DefaultRecord[T, V]{id: id, parent: parent, hasParent: true, data: data}
}

// NewRootRecord instantiates a parentless [DefaultRecord].
func NewRootRecord[T Constraint, V any](id T, data V) DefaultRecord[T, V] {
	return DefaultRecord[T, V]{id: id, data: data}
}

// ID obtains the identifier stored by the DefaultRecord.
func (d DefaultRecord[T, V]) ID() (T, bool) { return d.id, true }

// ParentID obtains the parent stored by the DefaultRecord.
func (d DefaultRecord[T, V]) ParentID() (T, bool) { return d.parent, d.hasParent }

// Data retrieves the DefaultRecord's payload.
func (d DefaultRecord[T, V]) Data() V { return d.data }

// Values returns the identifiers for a list of records, optionally sorted.
//
// Records lacking an identifier are skipped.
func Values[T Constraint, R Record[T]](_ context.Context, records []R, sortValues ...bool) (values []T) {
	values = make([]T, 0, len(records))
	for index := range records {
		if id, ok := records[index].ID(); ok {
			values = append(values, id)
		}
	}

	if len(sortValues) > 0 && sortValues[0] {
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	}

	return
}
