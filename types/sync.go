// SPDX-License-Identifier: MIT
package types

import (
	"context"
	"errors"
	"fmt"
)

// Synchronization errors.
var (
	ErrInvalidGoroutineCount = errors.New("invalid goroutine count")
)

// MonitorChannels collects completion & error signals from a known number of operations.
//
// Every operation is expected to send exactly once on either done or errChan. errPrefix should
// be in the singular form.
func MonitorChannels(ctx context.Context, operations int, done <-chan struct{}, errChan <-chan error, errPrefix string) (err error) {
	if operations < 0 {
		err = fmt.Errorf("%s %w: %d", errPrefix, ErrInvalidGoroutineCount, operations)
		return
	}

	var errs []error
	for index := 0; index < operations; index++ {
		select {
		case <-ctx.Done():
			errs = append(errs, ctx.Err())
			return errors.Join(errs...)
		case <-done:
		case e := <-errChan:
			errs = append(errs, fmt.Errorf("%s %w", errPrefix, e))
		}
	}

	return errors.Join(errs...)
}
