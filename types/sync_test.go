// SPDX-License-Identifier: MIT
package types

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonitorChannels(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name       string
		operations int
		done       int
		errs       []error
		wantErr    error
	}{
		{name: "all done", operations: 3, done: 3},
		{name: "none", operations: 0},
		{name: "one failure", operations: 3, done: 2, errs: []error{errBoom}, wantErr: errBoom},
		{name: "invalid count", operations: -1, wantErr: ErrInvalidGoroutineCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done := make(chan struct{}, tt.done)
			errChan := make(chan error, len(tt.errs))

			for index := 0; index < tt.done; index++ {
				done <- struct{}{}
			}
			for _, err := range tt.errs {
				errChan <- err
			}

			err := MonitorChannels(context.Background(), tt.operations, done, errChan, "task")
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMonitorChannels_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := MonitorChannels(ctx, 1, make(chan struct{}), make(chan error), "task")
	assert.ErrorIs(t, err, context.Canceled)
}
