// SPDX-License-Identifier: MIT
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

type (
	// Fields is a loosely typed record holding an identifier, a parent & arbitrary extra values.
	//
	// The reserved keys are [IDKey] & [ParentKey]. Their values must be of type T; integral
	// float64 & json.Number values, as produced by JSON decoding, are accepted for integer T. An
	// identifier of any other type reads as missing. A parent that is absent or not of type T,
	// such as the string "root" for integer identifiers, marks a root.
	Fields[T comparable] map[string]any
)

const (
	IDKey     = "id"
	ParentKey = "parent"

	ReadErrFmt = "failed to read (%s): %w"
)

// Field errors.
var (
	ErrInvalidType  = errors.New("invalid data type")
	ErrMissingField = errors.New("missing field")
)

// ID obtains the identifier stored under [IDKey].
func (f Fields[T]) ID() (id T, ok bool) {
	val, ok := f[IDKey]
	if !ok {
		return
	}

	return readKey[T](val)
}

// ParentID obtains the identifier stored under [ParentKey].
func (f Fields[T]) ParentID() (parent T, ok bool) {
	val, ok := f[ParentKey]
	if !ok {
		return
	}

	return readKey[T](val)
}

// readKey asserts val to T, converting integral JSON numbers for integer T.
func readKey[T comparable](val any) (key T, ok bool) {
	if key, ok = val.(T); ok {
		return
	}

	var num float64
	switch v := val.(type) {
	case float64:
		num = v
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return
		}
		num = n
	default:
		return
	}

	if num != math.Trunc(num) || math.IsInf(num, 0) {
		return
	}

	switch p := any(&key).(type) {
	case *int:
		*p, ok = int(num), true
	case *int32:
		*p, ok = int32(num), true
	case *int64:
		*p, ok = int64(num), true
	case *uint:
		if num >= 0 {
			*p, ok = uint(num), true
		}
	case *uint32:
		if num >= 0 {
			*p, ok = uint32(num), true
		}
	case *uint64:
		if num >= 0 {
			*p, ok = uint64(num), true
		}
	}

	return
}

// Get value from Fields.
func (f Fields[T]) Get(key string) (out any, ok bool) {
	out, ok = f[key]
	return
}

// GetValString obtains a string value.
func (f Fields[T]) GetValString(key string) (strVal string, err error) {
	val, ok := f[key]
	if !ok {
		err = fmt.Errorf(ReadErrFmt, key, ErrMissingField)
		return
	}

	if strVal, ok = val.(string); !ok {
		err = fmt.Errorf(ReadErrFmt, key, ErrInvalidType)
	}

	return
}

// GetValInt obtains an int value, accepting the float64 produced by JSON decoding.
func (f Fields[T]) GetValInt(key string) (intVal int, err error) {
	val, ok := f[key]
	if !ok {
		err = fmt.Errorf(ReadErrFmt, key, ErrMissingField)
		return
	}

	switch v := val.(type) {
	case int:
		intVal = v
	case float64:
		intVal = int(v)
	default:
		err = fmt.Errorf(ReadErrFmt, key, ErrInvalidType)
	}

	return
}
